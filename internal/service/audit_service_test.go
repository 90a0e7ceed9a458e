package service

import (
	"context"
	"testing"

	"shoptrack/internal/model"
	"shoptrack/internal/repository"

	"github.com/google/uuid"
)

func TestAuditTrailRecordsAndFilters(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := uuid.New()

	if _, err := env.items.Create(ctx, owner, CreateItemRequest{SKU: "AUD-1", Name: "Logged"}); err != nil {
		t.Fatalf("create item: %v", err)
	}
	order, err := env.orders.Create(ctx, owner, CreateOrderRequest{Date: "2026-05-01"})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if _, err := env.orders.ChangeStatus(ctx, owner, order.ID.String(), ChangeStatusRequest{Status: "Shipped"}); err != nil {
		t.Fatalf("change status: %v", err)
	}

	audit := NewAuditService(repository.NewAuditRepository(env.db))

	// Unfiltered: all three mutations are on the trail.
	entries, total, err := audit.List(ctx, "", 1, 20)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 3 || len(entries) != 3 {
		t.Fatalf("unfiltered: total=%d len=%d, want 3", total, len(entries))
	}

	// Filtered: the action filter applies to count and rows alike.
	entries, total, err = audit.List(ctx, model.ActionCreateOrder, 1, 20)
	if err != nil {
		t.Fatalf("filtered list: %v", err)
	}
	if total != 1 || len(entries) != 1 {
		t.Fatalf("filtered: total=%d len=%d, want 1", total, len(entries))
	}
	if entries[0].Action != model.ActionCreateOrder || entries[0].EntityID != order.ID.String() {
		t.Fatalf("filtered row: %+v", entries[0])
	}

	// Pagination keeps the filter-free count intact.
	entries, total, err = audit.List(ctx, "", 1, 2)
	if err != nil {
		t.Fatalf("paginated list: %v", err)
	}
	if total != 3 || len(entries) != 2 {
		t.Fatalf("paginated: total=%d len=%d, want total 3 page 2", total, len(entries))
	}
}
