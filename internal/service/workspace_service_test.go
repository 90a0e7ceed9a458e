package service

import (
	"context"
	"testing"

	"shoptrack/internal/model"

	"github.com/google/uuid"
)

func TestWorkspaceSeededOnFirstRead(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := uuid.New()

	ws, err := env.workspaces.Get(ctx, owner)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(ws.StatusLabels) != len(model.DefaultStatusLabels) {
		t.Fatalf("default statuses: got %v", ws.StatusLabels)
	}
	if ws.SettledLabel != "Settled" || ws.ReturnedLabel != "Returned" {
		t.Fatalf("default designations: %+v", ws)
	}

	// Second read returns the persisted row, not a second seed.
	var count int64
	if err := env.db.Model(&model.Workspace{}).Where("owner_id = ?", owner).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if _, err := env.workspaces.Get(ctx, owner); err != nil {
		t.Fatalf("second get: %v", err)
	}
	if err := env.db.Model(&model.Workspace{}).Where("owner_id = ?", owner).Count(&count).Error; err != nil {
		t.Fatalf("recount: %v", err)
	}
	if count != 1 {
		t.Fatalf("workspace rows: got %d, want 1", count)
	}
}

func TestWorkspaceUpdateValidatesDesignations(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := uuid.New()

	_, err := env.workspaces.Update(ctx, owner, UpdateWorkspaceRequest{
		StatusLabels:  []string{"New", "Done"},
		SettledLabel:  "Done",
		ReturnedLabel: "Sent back", // not in the list
	})
	if err == nil {
		t.Fatal("expected rejection of unknown returned label")
	}

	ws, err := env.workspaces.Update(ctx, owner, UpdateWorkspaceRequest{
		StatusLabels:  []string{"New", "Done", "Sent back"},
		SettledLabel:  "Done",
		ReturnedLabel: "Sent back",
	})
	if err != nil {
		t.Fatalf("valid update: %v", err)
	}
	if ws.SettledLabel != "Done" || ws.ReturnedLabel != "Sent back" {
		t.Fatalf("designations not applied: %+v", ws)
	}
}

func TestRenamedVocabularyDrivesWorkflowAndStats(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := uuid.New()

	_, err := env.workspaces.Update(ctx, owner, UpdateWorkspaceRequest{
		StatusLabels:  []string{"Open", "Paid", "Refunded"},
		SettledLabel:  "Paid",
		ReturnedLabel: "Refunded",
	})
	if err != nil {
		t.Fatalf("configure workspace: %v", err)
	}

	order, err := env.orders.Create(ctx, owner, CreateOrderRequest{
		Date: "2026-04-01", SettledAmount: 200, Profit: flexPtr(60), Status: "Paid",
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	// The custom returned label triggers the details guard like the default.
	_, err = env.orders.ChangeStatus(ctx, owner, order.ID.String(), ChangeStatusRequest{Status: "Refunded"})
	if _, ok := err.(*ReturnDetailsRequiredError); !ok {
		t.Fatalf("expected details-required error for custom label, got %v", err)
	}

	vocab, err := env.workspaces.VocabularyFor(ctx, owner)
	if err != nil {
		t.Fatalf("vocabulary: %v", err)
	}
	orders, err := env.orders.List(ctx, owner)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	stats := ComputeDashboard(orders, vocab)
	if stats.SettledRevenue != 200 || stats.GrossSettledProfit != 60 {
		t.Fatalf("custom settled label must drive revenue: %+v", stats)
	}
}
