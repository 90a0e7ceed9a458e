package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestCreateItemRejectsDuplicateSKU(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := uuid.New()

	if _, err := env.items.Create(ctx, owner, CreateItemRequest{SKU: "ABC-1", Name: "First"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	// Same SKU in different case with surrounding whitespace still collides.
	_, err := env.items.Create(ctx, owner, CreateItemRequest{SKU: "  abc-1 ", Name: "Second"})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSKUUniquenessIsPerOwner(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.items.Create(ctx, uuid.New(), CreateItemRequest{SKU: "ABC-1", Name: "A"}); err != nil {
		t.Fatalf("create for first owner: %v", err)
	}
	if _, err := env.items.Create(ctx, uuid.New(), CreateItemRequest{SKU: "ABC-1", Name: "B"}); err != nil {
		t.Fatalf("same SKU under another owner must be allowed: %v", err)
	}
}

func TestUpdateItemKeepsOwnSKU(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := uuid.New()

	item, err := env.items.Create(ctx, owner, CreateItemRequest{SKU: "KEEP-1", Name: "Keeper"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Re-saving with its own SKU is not a collision.
	if _, err := env.items.Update(ctx, owner, item.ID.String(), UpdateItemRequest{SKU: "KEEP-1", Name: "Keeper v2"}); err != nil {
		t.Fatalf("update with own sku: %v", err)
	}

	other, err := env.items.Create(ctx, owner, CreateItemRequest{SKU: "OTHER-1", Name: "Other"})
	if err != nil {
		t.Fatalf("create other: %v", err)
	}
	_, err = env.items.Update(ctx, owner, other.ID.String(), UpdateItemRequest{SKU: "keep-1", Name: "Other"})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected collision with another item's sku, got %v", err)
	}
}

func TestListItemsFlagsLowStock(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := uuid.New()

	mustCreate := func(req CreateItemRequest) {
		t.Helper()
		if _, err := env.items.Create(ctx, owner, req); err != nil {
			t.Fatalf("create %s: %v", req.SKU, err)
		}
	}
	mustCreate(CreateItemRequest{SKU: "LOW-1", Name: "Low", StockLevel: 2, MinStockLevel: 5})
	mustCreate(CreateItemRequest{SKU: "OK-1", Name: "Fine", StockLevel: 20, MinStockLevel: 5})
	mustCreate(CreateItemRequest{SKU: "NOMIN-1", Name: "No threshold", StockLevel: 0})

	items, err := env.items.List(ctx, owner)
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	flags := make(map[string]bool)
	for _, it := range items {
		flags[it.SKU] = it.LowStock
	}
	if !flags["LOW-1"] {
		t.Fatalf("LOW-1 must be flagged: %v", flags)
	}
	if flags["OK-1"] {
		t.Fatalf("OK-1 must not be flagged: %v", flags)
	}
	// Zero threshold means the flag never trips, even at zero stock.
	if flags["NOMIN-1"] {
		t.Fatalf("NOMIN-1 must not be flagged: %v", flags)
	}
}
