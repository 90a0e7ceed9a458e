package service

import (
	"context"
	"fmt"
	"time"

	"shoptrack/internal/model"
	"shoptrack/internal/repository"

	"github.com/google/uuid"
)

// --- DTOs ---

type ShareRequest struct {
	TargetUserID string `json:"target_user_id" binding:"required"`
	Inventory    bool   `json:"inventory"`
	Orders       bool   `json:"orders"`
}

type ShareResponse struct {
	ItemsShared  int `json:"items_shared"`
	OrdersShared int `json:"orders_shared"`
}

// ShareService is the administrative bulk-clone operation: it duplicates the
// caller's records under the target account with fresh identities. The
// source owner keeps their copy — nothing moves.
type ShareService interface {
	Share(ctx context.Context, callerID uuid.UUID, req ShareRequest) (*ShareResponse, error)
}

type shareService struct {
	orderRepo repository.OrderRepository
	itemRepo  repository.ItemRepository
	userRepo  repository.UserRepository
	txManager repository.TransactionManager
	audit     AuditService
}

func NewShareService(
	orderRepo repository.OrderRepository,
	itemRepo repository.ItemRepository,
	userRepo repository.UserRepository,
	txManager repository.TransactionManager,
	audit AuditService,
) ShareService {
	return &shareService{
		orderRepo: orderRepo,
		itemRepo:  itemRepo,
		userRepo:  userRepo,
		txManager: txManager,
		audit:     audit,
	}
}

func (s *shareService) Share(ctx context.Context, callerID uuid.UUID, req ShareRequest) (*ShareResponse, error) {
	targetID, err := uuid.Parse(req.TargetUserID)
	if err != nil {
		return nil, errValidation("invalid target user id: %s", req.TargetUserID)
	}
	if targetID == callerID {
		return nil, errValidation("cannot share data with yourself")
	}
	if !req.Inventory && !req.Orders {
		return nil, errValidation("nothing selected to share")
	}
	if _, err := s.userRepo.GetByID(ctx, targetID.String()); err != nil {
		return nil, errValidation("target user does not exist")
	}

	var result ShareResponse
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if req.Inventory {
			items, listErr := s.itemRepo.ListByOwner(txCtx, callerID)
			if listErr != nil {
				return fmt.Errorf("failed to load inventory: %w", listErr)
			}
			for _, item := range items {
				clone := item
				clone.ID = uuid.Nil // fresh identity assigned by the store
				clone.OwnerID = targetID
				clone.CreatedAt = time.Time{}
				clone.UpdatedAt = time.Time{}
				if createErr := s.itemRepo.Create(txCtx, &clone); createErr != nil {
					return fmt.Errorf("failed to clone item %s: %w", item.SKU, createErr)
				}
				result.ItemsShared++
			}
		}

		if req.Orders {
			orders, listErr := s.orderRepo.ListByOwner(txCtx, callerID)
			if listErr != nil {
				return fmt.Errorf("failed to load orders: %w", listErr)
			}
			for _, order := range orders {
				clone := order
				clone.ID = uuid.Nil
				clone.OwnerID = targetID
				clone.CreatedAt = time.Time{}
				clone.UpdatedAt = time.Time{}
				if createErr := s.orderRepo.Create(txCtx, &clone); createErr != nil {
					return fmt.Errorf("failed to clone order %s: %w", order.ID, createErr)
				}
				result.OrdersShared++
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, &callerID, model.ActionShareData, targetID.String(), "", map[string]interface{}{
		"items_shared":  result.ItemsShared,
		"orders_shared": result.OrdersShared,
	})

	return &result, nil
}
