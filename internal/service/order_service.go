package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shoptrack/internal/model"
	"shoptrack/internal/repository"
	ws "shoptrack/internal/websocket"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- DTOs ---

type CreateOrderRequest struct {
	Date          string           `json:"date" binding:"required"`
	ProductID     string           `json:"product_id"`
	ProductName   string           `json:"product_name"`
	Category      string           `json:"category"`
	ListingPrice  model.FlexFloat  `json:"listing_price"`
	SettledAmount model.FlexFloat  `json:"settled_amount"`
	Profit        *model.FlexFloat `json:"profit"`
	Status        string           `json:"status"`
}

type UpdateOrderRequest struct {
	Date         string           `json:"date"`
	ProductName  string           `json:"product_name"`
	Category     string           `json:"category"`
	ListingPrice *model.FlexFloat `json:"listing_price"`
}

type ReturnDetailsRequest struct {
	ReturnType     string          `json:"return_type" binding:"omitempty,oneof=courier customer"`
	LossAmount     model.FlexFloat `json:"loss_amount"`
	ClaimStatus    string          `json:"claim_status" binding:"omitempty,oneof=none pending approved rejected not_required"`
	ReceivedStatus string          `json:"received_status" binding:"omitempty,oneof=pending received not_received"`
	BankSettled    bool            `json:"bank_settled"`
}

type ChangeStatusRequest struct {
	Status        string                `json:"status" binding:"required"`
	SettledAmount *model.FlexFloat      `json:"settled_amount"`
	Return        *ReturnDetailsRequest `json:"return"`
}

// ValidationError marks failures caught before any persistence attempt.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func errValidation(format string, args ...interface{}) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// ReturnDetailsRequiredError rejects a bare status flip into the returned
// label. The seed carries the order's existing return fields (or defaults)
// so the client can open the return-editing form pre-filled instead of
// silently recording a return with no loss/claim detail.
type ReturnDetailsRequiredError struct {
	Seed ReturnDetailsRequest `json:"seed"`
}

func (e *ReturnDetailsRequiredError) Error() string {
	return "changing into the returned status requires return details"
}

// --- Interface ---

type OrderService interface {
	List(ctx context.Context, ownerID uuid.UUID) ([]model.Order, error)
	Get(ctx context.Context, ownerID uuid.UUID, id string) (*model.Order, error)
	Create(ctx context.Context, ownerID uuid.UUID, req CreateOrderRequest) (*model.Order, error)
	Update(ctx context.Context, ownerID uuid.UUID, id string, req UpdateOrderRequest) (*model.Order, error)
	ChangeStatus(ctx context.Context, ownerID uuid.UUID, id string, req ChangeStatusRequest) (*model.Order, error)
	UpdateReturnDetails(ctx context.Context, ownerID uuid.UUID, id string, req ReturnDetailsRequest) (*model.Order, error)
	Delete(ctx context.Context, ownerID uuid.UUID, id string) error
}

type orderService struct {
	orderRepo  repository.OrderRepository
	itemRepo   repository.ItemRepository
	workspaces WorkspaceService
	audit      AuditService
	hub        *ws.Hub
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	itemRepo repository.ItemRepository,
	workspaces WorkspaceService,
	audit AuditService,
	hub *ws.Hub,
) OrderService {
	return &orderService{
		orderRepo:  orderRepo,
		itemRepo:   itemRepo,
		workspaces: workspaces,
		audit:      audit,
		hub:        hub,
	}
}

// --- Implementation ---

func (s *orderService) List(ctx context.Context, ownerID uuid.UUID) ([]model.Order, error) {
	return s.orderRepo.ListByOwner(ctx, ownerID)
}

func (s *orderService) Get(ctx context.Context, ownerID uuid.UUID, id string) (*model.Order, error) {
	orderID, err := uuid.Parse(id)
	if err != nil {
		return nil, errValidation("invalid order id: %s", id)
	}
	return s.orderRepo.FindByID(ctx, ownerID, orderID)
}

func (s *orderService) Create(ctx context.Context, ownerID uuid.UUID, req CreateOrderRequest) (*model.Order, error) {
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return nil, errValidation("date must be YYYY-MM-DD, got %q", req.Date)
	}

	settings, err := s.workspaces.SettingsFor(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		if labels := settings.Statuses(); len(labels) > 0 {
			status = labels[0]
		}
	}

	order := model.Order{
		OwnerID:        ownerID,
		Date:           req.Date,
		ProductName:    req.ProductName,
		Category:       req.Category,
		ListingPrice:   req.ListingPrice,
		SettledAmount:  req.SettledAmount,
		Status:         status,
		ClaimStatus:    model.ClaimNone,
		ReceivedStatus: model.ReceivedPending,
	}

	// Snapshot product fields at creation time. The order keeps these even
	// if the item is deleted later.
	if req.ProductID != "" {
		productID, parseErr := uuid.Parse(req.ProductID)
		if parseErr != nil {
			return nil, errValidation("invalid product id: %s", req.ProductID)
		}
		order.ProductID = &productID

		item, findErr := s.itemRepo.FindByID(ctx, ownerID, productID)
		switch {
		case findErr == nil:
			if order.ProductName == "" {
				order.ProductName = item.Name
			}
			if order.Category == "" {
				order.Category = item.Category
			}
			if order.ListingPrice.Float64() == 0 {
				order.ListingPrice = item.RetailPrice
			}
			if order.SettledAmount.Float64() == 0 {
				order.SettledAmount = item.BankSettledAmount
			}
			// profit = settled amount − unit cost, captured once
			profit := decimal.NewFromFloat(order.SettledAmount.Float64()).
				Sub(decimal.NewFromFloat(item.UnitCost.Float64()))
			order.Profit = model.FlexFloat(profit.InexactFloat64())
		case errors.Is(findErr, repository.ErrNotFound):
			// Dangling reference is allowed; fall through to the
			// caller-supplied profit below.
		default:
			return nil, findErr
		}
	}

	if order.Profit.Float64() == 0 && req.Profit != nil {
		order.Profit = *req.Profit
	}

	if err := s.orderRepo.Create(ctx, &order); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, &ownerID, model.ActionCreateOrder, order.ID.String(), order.ProductName, map[string]interface{}{
		"date":           order.Date,
		"status":         order.Status,
		"settled_amount": order.SettledAmount.Float64(),
	})
	s.hub.Notify("orders.changed", ownerID.String())

	return &order, nil
}

func (s *orderService) Update(ctx context.Context, ownerID uuid.UUID, id string, req UpdateOrderRequest) (*model.Order, error) {
	order, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if req.Date != "" {
		if _, parseErr := time.Parse("2006-01-02", req.Date); parseErr != nil {
			return nil, errValidation("date must be YYYY-MM-DD, got %q", req.Date)
		}
		order.Date = req.Date
	}
	if req.ProductName != "" {
		order.ProductName = req.ProductName
	}
	if req.Category != "" {
		order.Category = req.Category
	}
	if req.ListingPrice != nil {
		order.ListingPrice = *req.ListingPrice
	}

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, &ownerID, model.ActionUpdateOrder, order.ID.String(), order.ProductName, nil)
	s.hub.Notify("orders.changed", ownerID.String())

	return order, nil
}

// ChangeStatus moves an order to another workflow label. Moving into the
// returned label demands return details in the same request; any other
// label persists immediately. When the caller also corrects the settled
// amount, profit is recomputed from the original per-unit cost — the stored
// profit is otherwise deliberately left stale.
func (s *orderService) ChangeStatus(ctx context.Context, ownerID uuid.UUID, id string, req ChangeStatusRequest) (*model.Order, error) {
	order, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	settings, err := s.workspaces.SettingsFor(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if !containsLabel(settings.Statuses(), req.Status) {
		return nil, errValidation("status %q is not in the workspace vocabulary", req.Status)
	}

	if req.Status == settings.ReturnedLabel {
		if req.Return == nil {
			return nil, &ReturnDetailsRequiredError{Seed: seedReturnDetails(order)}
		}
		if err := applyReturnRules(order, *req.Return); err != nil {
			return nil, err
		}
		order.Status = req.Status
	} else {
		if req.SettledAmount != nil {
			recomputeProfit(order, *req.SettledAmount)
		}
		order.Status = req.Status

		// Stock is consumed exactly once per order, on its first entry into
		// the settled label. Cycling out and back in does not deduct again.
		if req.Status == settings.SettledLabel && !order.StockDeducted &&
			settings.DeductStockOnSettle && order.ProductID != nil {
			if stockErr := s.itemRepo.AdjustStock(ctx, ownerID, *order.ProductID, -1); stockErr != nil {
				return nil, stockErr
			}
			order.StockDeducted = true
		}
	}

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, &ownerID, model.ActionChangeOrderStatus, order.ID.String(), order.ProductName, map[string]interface{}{
		"status": order.Status,
	})
	s.hub.Notify("orders.changed", ownerID.String())

	return order, nil
}

func (s *orderService) UpdateReturnDetails(ctx context.Context, ownerID uuid.UUID, id string, req ReturnDetailsRequest) (*model.Order, error) {
	order, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	settings, err := s.workspaces.SettingsFor(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if order.Status != settings.ReturnedLabel {
		return nil, errValidation("order is not in the %s status", settings.ReturnedLabel)
	}

	if err := applyReturnRules(order, req); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, &ownerID, model.ActionUpdateReturnDetails, order.ID.String(), order.ProductName, map[string]interface{}{
		"return_type":  order.ReturnType,
		"loss_amount":  order.LossAmount.Float64(),
		"claim_status": order.ClaimStatus,
	})
	s.hub.Notify("orders.changed", ownerID.String())

	return order, nil
}

func (s *orderService) Delete(ctx context.Context, ownerID uuid.UUID, id string) error {
	orderID, err := uuid.Parse(id)
	if err != nil {
		return errValidation("invalid order id: %s", id)
	}

	if err := s.orderRepo.Delete(ctx, ownerID, orderID); err != nil {
		return err
	}

	s.audit.Record(ctx, &ownerID, model.ActionDeleteOrder, id, "", nil)
	s.hub.Notify("orders.changed", ownerID.String())
	return nil
}

// --- Return workflow rules ---

// applyReturnRules applies the operator's return details to the order:
//   - courier returns recover the goods, so the loss is forced to zero and
//     any claim is cleared;
//   - customer returns default the claim to pending unless a concrete claim
//     status already exists or one is supplied;
//   - an empty return type leaves the order unclassified.
func applyReturnRules(order *model.Order, req ReturnDetailsRequest) error {
	switch req.ReturnType {
	case model.ReturnTypeCourier:
		order.ReturnType = model.ReturnTypeCourier
		order.LossAmount = 0
		order.ClaimStatus = model.ClaimNone
	case model.ReturnTypeCustomer:
		order.ReturnType = model.ReturnTypeCustomer
		order.LossAmount = req.LossAmount
		switch {
		case req.ClaimStatus != "" && req.ClaimStatus != model.ClaimNone:
			order.ClaimStatus = req.ClaimStatus
		case order.ClaimStatus != "" && order.ClaimStatus != model.ClaimNone:
			// keep the existing claim
		default:
			order.ClaimStatus = model.ClaimPending
		}
	case "":
		order.ReturnType = ""
		order.LossAmount = req.LossAmount
		order.ClaimStatus = model.ClaimNone
	default:
		return errValidation("unknown return type %q", req.ReturnType)
	}

	if req.ReceivedStatus != "" {
		order.ReceivedStatus = req.ReceivedStatus
	} else if order.ReceivedStatus == "" {
		order.ReceivedStatus = model.ReceivedPending
	}
	order.BankSettled = req.BankSettled

	return nil
}

func seedReturnDetails(order *model.Order) ReturnDetailsRequest {
	seed := ReturnDetailsRequest{
		ReturnType:     order.ReturnType,
		LossAmount:     order.LossAmount,
		ClaimStatus:    order.ClaimStatus,
		ReceivedStatus: order.ReceivedStatus,
		BankSettled:    order.BankSettled,
	}
	if seed.ClaimStatus == "" {
		seed.ClaimStatus = model.ClaimNone
	}
	if seed.ReceivedStatus == "" {
		seed.ReceivedStatus = model.ReceivedPending
	}
	return seed
}

// recomputeProfit re-derives profit after a settled-amount correction using
// the per-unit cost captured at creation (old settled − old profit).
func recomputeProfit(order *model.Order, newAmount model.FlexFloat) {
	unitCost := decimal.NewFromFloat(order.SettledAmount.Float64()).
		Sub(decimal.NewFromFloat(order.Profit.Float64()))
	profit := decimal.NewFromFloat(newAmount.Float64()).Sub(unitCost)

	order.SettledAmount = newAmount
	order.Profit = model.FlexFloat(profit.InexactFloat64())
}
