package service

import (
	"context"
	"errors"
	"strings"

	"shoptrack/internal/model"
	"shoptrack/internal/repository"
	ws "shoptrack/internal/websocket"

	"github.com/google/uuid"
)

// --- DTOs ---

type CreateItemRequest struct {
	SKU               string          `json:"sku" binding:"required"`
	Name              string          `json:"name" binding:"required"`
	Category          string          `json:"category"`
	StockLevel        int             `json:"stock_level" binding:"omitempty,min=0"`
	UnitCost          model.FlexFloat `json:"unit_cost"`
	RetailPrice       model.FlexFloat `json:"retail_price"`
	BankSettledAmount model.FlexFloat `json:"bank_settled_amount"`
	MinStockLevel     int             `json:"min_stock_level" binding:"omitempty,min=0"`
}

type UpdateItemRequest struct {
	SKU               string           `json:"sku" binding:"required"`
	Name              string           `json:"name" binding:"required"`
	Category          string           `json:"category"`
	StockLevel        *int             `json:"stock_level"`
	UnitCost          *model.FlexFloat `json:"unit_cost"`
	RetailPrice       *model.FlexFloat `json:"retail_price"`
	BankSettledAmount *model.FlexFloat `json:"bank_settled_amount"`
	MinStockLevel     *int             `json:"min_stock_level"`
}

// ItemResponse decorates the stored item with the low-stock flag the
// dashboard renders.
type ItemResponse struct {
	model.InventoryItem
	LowStock bool `json:"low_stock"`
}

type InventoryService interface {
	List(ctx context.Context, ownerID uuid.UUID) ([]ItemResponse, error)
	Create(ctx context.Context, ownerID uuid.UUID, req CreateItemRequest) (*ItemResponse, error)
	Update(ctx context.Context, ownerID uuid.UUID, id string, req UpdateItemRequest) (*ItemResponse, error)
	Delete(ctx context.Context, ownerID uuid.UUID, id string) error
}

type inventoryService struct {
	itemRepo repository.ItemRepository
	audit    AuditService
	hub      *ws.Hub
}

func NewInventoryService(itemRepo repository.ItemRepository, audit AuditService, hub *ws.Hub) InventoryService {
	return &inventoryService{itemRepo: itemRepo, audit: audit, hub: hub}
}

func (s *inventoryService) List(ctx context.Context, ownerID uuid.UUID) ([]ItemResponse, error) {
	items, err := s.itemRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	result := make([]ItemResponse, 0, len(items))
	for _, item := range items {
		result = append(result, ItemResponse{InventoryItem: item, LowStock: item.LowStock()})
	}
	return result, nil
}

func (s *inventoryService) Create(ctx context.Context, ownerID uuid.UUID, req CreateItemRequest) (*ItemResponse, error) {
	sku := strings.TrimSpace(req.SKU)
	if sku == "" {
		return nil, errValidation("sku is required")
	}

	if err := s.checkSKUUnique(ctx, ownerID, sku, uuid.Nil); err != nil {
		return nil, err
	}

	item := model.InventoryItem{
		OwnerID:           ownerID,
		SKU:               sku,
		Name:              req.Name,
		Category:          req.Category,
		StockLevel:        req.StockLevel,
		UnitCost:          req.UnitCost,
		RetailPrice:       req.RetailPrice,
		BankSettledAmount: req.BankSettledAmount,
		MinStockLevel:     req.MinStockLevel,
	}

	if err := s.itemRepo.Create(ctx, &item); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, &ownerID, model.ActionCreateItem, item.ID.String(), item.Name, map[string]interface{}{
		"sku":         item.SKU,
		"stock_level": item.StockLevel,
	})
	s.hub.Notify("inventory.changed", ownerID.String())

	return &ItemResponse{InventoryItem: item, LowStock: item.LowStock()}, nil
}

func (s *inventoryService) Update(ctx context.Context, ownerID uuid.UUID, id string, req UpdateItemRequest) (*ItemResponse, error) {
	itemID, err := uuid.Parse(id)
	if err != nil {
		return nil, errValidation("invalid item id: %s", id)
	}

	item, err := s.itemRepo.FindByID(ctx, ownerID, itemID)
	if err != nil {
		return nil, err
	}

	sku := strings.TrimSpace(req.SKU)
	if sku == "" {
		return nil, errValidation("sku is required")
	}
	if err := s.checkSKUUnique(ctx, ownerID, sku, itemID); err != nil {
		return nil, err
	}

	item.SKU = sku
	item.Name = req.Name
	item.Category = req.Category
	if req.StockLevel != nil {
		item.StockLevel = *req.StockLevel
	}
	if req.UnitCost != nil {
		item.UnitCost = *req.UnitCost
	}
	if req.RetailPrice != nil {
		item.RetailPrice = *req.RetailPrice
	}
	if req.BankSettledAmount != nil {
		item.BankSettledAmount = *req.BankSettledAmount
	}
	if req.MinStockLevel != nil {
		item.MinStockLevel = *req.MinStockLevel
	}

	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, &ownerID, model.ActionUpdateItem, item.ID.String(), item.Name, nil)
	s.hub.Notify("inventory.changed", ownerID.String())

	return &ItemResponse{InventoryItem: *item, LowStock: item.LowStock()}, nil
}

// Delete removes the item only. Orders referencing it keep their snapshot
// fields and keep aggregating; their product_id simply dangles.
func (s *inventoryService) Delete(ctx context.Context, ownerID uuid.UUID, id string) error {
	itemID, err := uuid.Parse(id)
	if err != nil {
		return errValidation("invalid item id: %s", id)
	}

	if err := s.itemRepo.Delete(ctx, ownerID, itemID); err != nil {
		return err
	}

	s.audit.Record(ctx, &ownerID, model.ActionDeleteItem, id, "", nil)
	s.hub.Notify("inventory.changed", ownerID.String())
	return nil
}

// checkSKUUnique rejects a SKU already used by another of the owner's items
// (case-insensitive, trimmed) before any write is attempted. The item being
// edited is excluded from the comparison.
func (s *inventoryService) checkSKUUnique(ctx context.Context, ownerID uuid.UUID, sku string, editedID uuid.UUID) error {
	existing, err := s.itemRepo.FindBySKU(ctx, ownerID, sku)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID == editedID {
		return nil
	}
	return errValidation("sku %q is already used by %q", sku, existing.Name)
}
