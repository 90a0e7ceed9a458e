package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"shoptrack/internal/model"
	"shoptrack/internal/repository"
	ws "shoptrack/internal/websocket"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	err = db.AutoMigrate(
		&model.User{}, &model.Profile{}, &model.RefreshToken{},
		&model.InventoryItem{}, &model.Order{}, &model.Workspace{}, &model.AuditLog{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

type testEnv struct {
	db         *gorm.DB
	orders     OrderService
	items      InventoryService
	workspaces WorkspaceService
	itemRepo   repository.ItemRepository
	orderRepo  repository.OrderRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := setupTestDB(t)

	hub := ws.NewHub()
	auditService := NewAuditService(repository.NewAuditRepository(db))
	workspaceService := NewWorkspaceService(repository.NewWorkspaceRepository(db), auditService)
	itemRepo := repository.NewItemRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	return &testEnv{
		db:         db,
		orders:     NewOrderService(orderRepo, itemRepo, workspaceService, auditService, hub),
		items:      NewInventoryService(itemRepo, auditService, hub),
		workspaces: workspaceService,
		itemRepo:   itemRepo,
		orderRepo:  orderRepo,
	}
}

func flexPtr(v float64) *model.FlexFloat {
	f := model.FlexFloat(v)
	return &f
}

func TestCreateOrderSnapshotsProduct(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := uuid.New()

	item, err := env.items.Create(ctx, owner, CreateItemRequest{
		SKU: "SHOE-01", Name: "Trail Runner", Category: "Shoes",
		StockLevel: 10, UnitCost: 300, RetailPrice: 500, BankSettledAmount: 450,
	})
	if err != nil {
		t.Fatalf("create item: %v", err)
	}

	order, err := env.orders.Create(ctx, owner, CreateOrderRequest{
		Date:      "2026-01-10",
		ProductID: item.ID.String(),
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	if order.ProductName != "Trail Runner" || order.Category != "Shoes" {
		t.Fatalf("snapshot fields: name=%q category=%q", order.ProductName, order.Category)
	}
	if order.SettledAmount.Float64() != 450 {
		t.Fatalf("settled amount prefill: got %v, want 450", order.SettledAmount.Float64())
	}
	if order.Profit.Float64() != 150 {
		t.Fatalf("profit: got %v, want 150", order.Profit.Float64())
	}
	if order.Status != "Pending" {
		t.Fatalf("default status: got %q", order.Status)
	}
}

func TestCreateOrderSnapshotSurvivesItemDeletion(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := uuid.New()

	item, err := env.items.Create(ctx, owner, CreateItemRequest{
		SKU: "BAG-01", Name: "Tote", Category: "Bags", UnitCost: 50, BankSettledAmount: 120,
	})
	if err != nil {
		t.Fatalf("create item: %v", err)
	}
	order, err := env.orders.Create(ctx, owner, CreateOrderRequest{
		Date: "2026-02-01", ProductID: item.ID.String(),
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	if err := env.items.Delete(ctx, owner, item.ID.String()); err != nil {
		t.Fatalf("delete item: %v", err)
	}

	got, err := env.orders.Get(ctx, owner, order.ID.String())
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if got.ProductName != "Tote" || got.Profit.Float64() != 70 {
		t.Fatalf("snapshot lost after deletion: %+v", got)
	}
}

func TestCreateOrderToleratesDanglingProduct(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := uuid.New()

	order, err := env.orders.Create(ctx, owner, CreateOrderRequest{
		Date:        "2026-01-10",
		ProductID:   uuid.New().String(),
		ProductName: "Imported",
		Profit:      flexPtr(25),
	})
	if err != nil {
		t.Fatalf("create order with dangling product: %v", err)
	}
	if order.Profit.Float64() != 25 {
		t.Fatalf("caller profit: got %v, want 25", order.Profit.Float64())
	}
}

func TestCreateOrderRejectsBadDate(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.orders.Create(context.Background(), uuid.New(), CreateOrderRequest{Date: "10/01/2026"})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestOrdersAreOwnerScoped(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ownerA := uuid.New()
	ownerB := uuid.New()

	order, err := env.orders.Create(ctx, ownerA, CreateOrderRequest{Date: "2026-01-10"})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	if _, err := env.orders.Get(ctx, ownerB, order.ID.String()); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("cross-owner read must be not-found, got %v", err)
	}
	if err := env.orders.Delete(ctx, ownerB, order.ID.String()); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("cross-owner delete must be not-found, got %v", err)
	}
}

func TestChangeStatusRejectsUnknownLabel(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := uuid.New()

	order, err := env.orders.Create(ctx, owner, CreateOrderRequest{Date: "2026-01-10"})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	_, err = env.orders.ChangeStatus(ctx, owner, order.ID.String(), ChangeStatusRequest{Status: "Teleported"})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestChangeStatusIntoReturnedRequiresDetails(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := uuid.New()

	order, err := env.orders.Create(ctx, owner, CreateOrderRequest{Date: "2026-01-10"})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	_, err = env.orders.ChangeStatus(ctx, owner, order.ID.String(), ChangeStatusRequest{Status: "Returned"})
	var detailsErr *ReturnDetailsRequiredError
	if !errors.As(err, &detailsErr) {
		t.Fatalf("expected details-required error, got %v", err)
	}
	if detailsErr.Seed.ClaimStatus != model.ClaimNone || detailsErr.Seed.ReceivedStatus != model.ReceivedPending {
		t.Fatalf("seed defaults: %+v", detailsErr.Seed)
	}

	// The order must be untouched after the rejection.
	got, err := env.orders.Get(ctx, owner, order.ID.String())
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if got.Status == "Returned" {
		t.Fatalf("status must not change without details")
	}
}

func TestChangeStatusCourierReturnForcesZeroLoss(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := uuid.New()

	order, err := env.orders.Create(ctx, owner, CreateOrderRequest{Date: "2026-01-10"})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	updated, err := env.orders.ChangeStatus(ctx, owner, order.ID.String(), ChangeStatusRequest{
		Status: "Returned",
		Return: &ReturnDetailsRequest{
			ReturnType:  model.ReturnTypeCourier,
			LossAmount:  200, // operator input is overridden
			ClaimStatus: model.ClaimPending,
		},
	})
	if err != nil {
		t.Fatalf("change status: %v", err)
	}

	if updated.LossAmount.Float64() != 0 {
		t.Fatalf("courier loss: got %v, want 0", updated.LossAmount.Float64())
	}
	if updated.ClaimStatus != model.ClaimNone {
		t.Fatalf("courier claim: got %q, want none", updated.ClaimStatus)
	}
}

func TestReturnDetailsCustomerDefaultsClaimToPending(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := uuid.New()

	order, err := env.orders.Create(ctx, owner, CreateOrderRequest{Date: "2026-01-10"})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	updated, err := env.orders.ChangeStatus(ctx, owner, order.ID.String(), ChangeStatusRequest{
		Status: "Returned",
		Return: &ReturnDetailsRequest{
			ReturnType: model.ReturnTypeCustomer,
			LossAmount: 80,
		},
	})
	if err != nil {
		t.Fatalf("change status: %v", err)
	}
	if updated.ClaimStatus != model.ClaimPending {
		t.Fatalf("claim default: got %q, want pending", updated.ClaimStatus)
	}
	if updated.LossAmount.Float64() != 80 {
		t.Fatalf("loss: got %v, want 80", updated.LossAmount.Float64())
	}

	// Approving the claim later must stick instead of re-defaulting.
	updated, err = env.orders.UpdateReturnDetails(ctx, owner, order.ID.String(), ReturnDetailsRequest{
		ReturnType:  model.ReturnTypeCustomer,
		LossAmount:  80,
		ClaimStatus: model.ClaimApproved,
	})
	if err != nil {
		t.Fatalf("update return details: %v", err)
	}
	if updated.ClaimStatus != model.ClaimApproved {
		t.Fatalf("claim update: got %q, want approved", updated.ClaimStatus)
	}
}

func TestUpdateReturnDetailsRequiresReturnedStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := uuid.New()

	order, err := env.orders.Create(ctx, owner, CreateOrderRequest{Date: "2026-01-10"})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	_, err = env.orders.UpdateReturnDetails(ctx, owner, order.ID.String(), ReturnDetailsRequest{
		ReturnType: model.ReturnTypeCustomer,
		LossAmount: 50,
	})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestChangeStatusRecomputesProfitFromUnitCost(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := uuid.New()

	order, err := env.orders.Create(ctx, owner, CreateOrderRequest{
		Date:          "2026-01-10",
		SettledAmount: 450,
		Profit:        flexPtr(150), // unit cost is therefore 300
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	updated, err := env.orders.ChangeStatus(ctx, owner, order.ID.String(), ChangeStatusRequest{
		Status:        "Settled",
		SettledAmount: flexPtr(400),
	})
	if err != nil {
		t.Fatalf("change status: %v", err)
	}
	if updated.SettledAmount.Float64() != 400 {
		t.Fatalf("settled amount: got %v, want 400", updated.SettledAmount.Float64())
	}
	if updated.Profit.Float64() != 100 {
		t.Fatalf("recomputed profit: got %v, want 100", updated.Profit.Float64())
	}
}

func TestChangeStatusDeductsStockOnFirstSettle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := uuid.New()

	item, err := env.items.Create(ctx, owner, CreateItemRequest{
		SKU: "HAT-01", Name: "Cap", StockLevel: 5, UnitCost: 10, BankSettledAmount: 30,
	})
	if err != nil {
		t.Fatalf("create item: %v", err)
	}
	order, err := env.orders.Create(ctx, owner, CreateOrderRequest{
		Date: "2026-01-10", ProductID: item.ID.String(),
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	if _, err := env.orders.ChangeStatus(ctx, owner, order.ID.String(), ChangeStatusRequest{Status: "Settled"}); err != nil {
		t.Fatalf("settle: %v", err)
	}

	got, err := env.itemRepo.FindByID(ctx, owner, item.ID)
	if err != nil {
		t.Fatalf("reload item: %v", err)
	}
	if got.StockLevel != 4 {
		t.Fatalf("stock after settle: got %d, want 4", got.StockLevel)
	}

	// Settling an already-settled order must not deduct again.
	if _, err := env.orders.ChangeStatus(ctx, owner, order.ID.String(), ChangeStatusRequest{Status: "Settled"}); err != nil {
		t.Fatalf("re-settle: %v", err)
	}
	got, _ = env.itemRepo.FindByID(ctx, owner, item.ID)
	if got.StockLevel != 4 {
		t.Fatalf("stock after re-settle: got %d, want 4", got.StockLevel)
	}

	// Neither must cycling out of the settled label and back in.
	if _, err := env.orders.ChangeStatus(ctx, owner, order.ID.String(), ChangeStatusRequest{Status: "Pending"}); err != nil {
		t.Fatalf("unsettle: %v", err)
	}
	if _, err := env.orders.ChangeStatus(ctx, owner, order.ID.String(), ChangeStatusRequest{Status: "Settled"}); err != nil {
		t.Fatalf("settle again: %v", err)
	}
	got, _ = env.itemRepo.FindByID(ctx, owner, item.ID)
	if got.StockLevel != 4 {
		t.Fatalf("stock after settle cycle: got %d, want 4 (deducted once)", got.StockLevel)
	}
}
