package service

import (
	"testing"

	"shoptrack/internal/model"
)

func testVocab() model.Vocabulary {
	return model.Vocabulary{
		Statuses:      []string{"Pending", "Processing", "Shipped", "Settled", "Cancelled", "Returned"},
		SettledLabel:  "Settled",
		ReturnedLabel: "Returned",
	}
}

func settled(date string, amount, profit float64) model.Order {
	return model.Order{
		Date:          date,
		Status:        "Settled",
		SettledAmount: model.FlexFloat(amount),
		Profit:        model.FlexFloat(profit),
	}
}

func TestComputeDashboardOnlySettledCounts(t *testing.T) {
	orders := []model.Order{
		settled("2026-01-10", 450, 150),
		settled("2026-01-15", 300, 100),
		{Date: "2026-01-20", Status: "Pending", SettledAmount: 999, Profit: 500},
		{Date: "2026-01-22", Status: "Cancelled", SettledAmount: 200, Profit: 80},
	}

	stats := ComputeDashboard(orders, testVocab())

	if stats.SettledRevenue != 750 {
		t.Fatalf("revenue: got %v, want 750", stats.SettledRevenue)
	}
	if stats.GrossSettledProfit != 250 {
		t.Fatalf("gross profit: got %v, want 250", stats.GrossSettledProfit)
	}
	if stats.ActiveReturnLoss != 0 {
		t.Fatalf("loss: got %v, want 0", stats.ActiveReturnLoss)
	}
	if stats.NetProfit != 250 {
		t.Fatalf("net: got %v, want 250", stats.NetProfit)
	}
	if stats.OrderCount != 4 {
		t.Fatalf("count: got %v, want 4", stats.OrderCount)
	}
}

func TestComputeDashboardMarginZeroWhenNoRevenue(t *testing.T) {
	orders := []model.Order{
		{Date: "2026-01-20", Status: "Pending", SettledAmount: 100, Profit: 50},
	}

	stats := ComputeDashboard(orders, testVocab())
	if stats.Margin != 0 {
		t.Fatalf("margin: got %v, want 0", stats.Margin)
	}

	stats = ComputeDashboard(nil, testVocab())
	if stats.Margin != 0 || stats.OrderCount != 0 {
		t.Fatalf("empty set: margin=%v count=%v", stats.Margin, stats.OrderCount)
	}
}

func TestComputeDashboardMarginRounding(t *testing.T) {
	orders := []model.Order{
		settled("2026-01-10", 300, 100),
	}

	stats := ComputeDashboard(orders, testVocab())
	// 100/300*100 rounds to two decimal places
	if stats.Margin != 33.33 {
		t.Fatalf("margin: got %v, want 33.33", stats.Margin)
	}
}

func TestComputeDashboardReturnLossRules(t *testing.T) {
	vocab := testVocab()
	base := []model.Order{settled("2026-01-10", 1000, 400)}

	courier := append(base, model.Order{
		Date: "2026-01-12", Status: "Returned",
		ReturnType: model.ReturnTypeCourier, LossAmount: 0,
		ClaimStatus: model.ClaimNone,
	})
	stats := ComputeDashboard(courier, vocab)
	if stats.ActiveReturnLoss != 0 || stats.NetProfit != 400 {
		t.Fatalf("courier return must not contribute loss: loss=%v net=%v", stats.ActiveReturnLoss, stats.NetProfit)
	}

	pendingClaim := append(base, model.Order{
		Date: "2026-01-12", Status: "Returned",
		ReturnType: model.ReturnTypeCustomer, LossAmount: 150,
		ClaimStatus: model.ClaimPending,
	})
	stats = ComputeDashboard(pendingClaim, vocab)
	if stats.ActiveReturnLoss != 150 || stats.NetProfit != 250 {
		t.Fatalf("pending claim counts: loss=%v net=%v", stats.ActiveReturnLoss, stats.NetProfit)
	}

	approvedClaim := append(base, model.Order{
		Date: "2026-01-12", Status: "Returned",
		ReturnType: model.ReturnTypeCustomer, LossAmount: 150,
		ClaimStatus: model.ClaimApproved,
	})
	stats = ComputeDashboard(approvedClaim, vocab)
	if stats.ActiveReturnLoss != 0 || stats.NetProfit != 400 {
		t.Fatalf("approved claim stops counting: loss=%v net=%v", stats.ActiveReturnLoss, stats.NetProfit)
	}

	rejectedClaim := append(base, model.Order{
		Date: "2026-01-12", Status: "Returned",
		ReturnType: model.ReturnTypeCustomer, LossAmount: 150,
		ClaimStatus: model.ClaimRejected,
	})
	stats = ComputeDashboard(rejectedClaim, vocab)
	if stats.ActiveReturnLoss != 150 {
		t.Fatalf("rejected claim keeps counting: loss=%v", stats.ActiveReturnLoss)
	}
}

func TestComputeMonthlyTrendBucketsAndOrder(t *testing.T) {
	orders := []model.Order{
		settled("2026-03-05", 200, 80),
		settled("2026-01-10", 450, 150),
		settled("2026-01-28", 300, 100),
		{Date: "2026-02-14", Status: "Returned",
			ReturnType: model.ReturnTypeCustomer, LossAmount: 50,
			ClaimStatus: model.ClaimPending},
	}

	series := ComputeMonthlyTrend(orders, testVocab())
	if len(series) != 3 {
		t.Fatalf("buckets: got %d, want 3", len(series))
	}
	if series[0].Month != "2026-01" || series[1].Month != "2026-02" || series[2].Month != "2026-03" {
		t.Fatalf("bucket order: %v %v %v", series[0].Month, series[1].Month, series[2].Month)
	}
	if series[0].Revenue != 750 || series[0].Profit != 250 {
		t.Fatalf("january: revenue=%v profit=%v", series[0].Revenue, series[0].Profit)
	}
	if series[1].Revenue != 0 || series[1].Profit != -50 {
		t.Fatalf("february: revenue=%v profit=%v", series[1].Revenue, series[1].Profit)
	}
}

func TestComputeCategoryBreakdown(t *testing.T) {
	orders := []model.Order{
		{Date: "2026-01-10", Status: "Settled", Category: "Shoes", SettledAmount: 400, Profit: 120},
		{Date: "2026-01-12", Status: "Settled", Category: "Shoes", SettledAmount: 500, Profit: 180},
		{Date: "2026-01-14", Status: "Settled", Category: "Bags", SettledAmount: 200, Profit: 60},
		{Date: "2026-01-16", Status: "Returned", Category: "Bags",
			ReturnType: model.ReturnTypeCustomer, LossAmount: 100,
			ClaimStatus: model.ClaimPending},
		{Date: "2026-01-18", Status: "Pending", Category: "Hats", SettledAmount: 50, Profit: 20},
	}

	rows := ComputeCategoryBreakdown(orders, testVocab())
	if len(rows) != 3 {
		t.Fatalf("categories: got %d, want 3", len(rows))
	}
	if rows[0].Category != "Shoes" || rows[0].Profit != 300 || rows[0].Orders != 2 {
		t.Fatalf("top category: %+v", rows[0])
	}
	var bags model.CategoryProfit
	for _, r := range rows {
		if r.Category == "Bags" {
			bags = r
		}
	}
	if bags.Profit != -40 || bags.Orders != 2 {
		t.Fatalf("bags: %+v", bags)
	}
	// Pending orders count toward the row but contribute no profit
	var hats model.CategoryProfit
	for _, r := range rows {
		if r.Category == "Hats" {
			hats = r
		}
	}
	if hats.Profit != 0 || hats.Orders != 1 {
		t.Fatalf("hats: %+v", hats)
	}
}

func TestComputeStatusSummaryCoversVocabularyAndExtras(t *testing.T) {
	statuses := []string{"Pending", "Settled", "Returned"}
	orders := []model.Order{
		{Status: "Settled"},
		{Status: "Settled"},
		{Status: "Pending"},
		{Status: "Archived"}, // stored label no longer in the vocabulary
	}

	rows := ComputeStatusSummary(orders, statuses)
	if len(rows) != 4 {
		t.Fatalf("rows: got %d, want 4", len(rows))
	}

	byStatus := make(map[string]int)
	for _, r := range rows {
		byStatus[r.Status] = r.Count
	}
	if byStatus["Settled"] != 2 || byStatus["Pending"] != 1 || byStatus["Archived"] != 1 {
		t.Fatalf("counts: %v", byStatus)
	}
	if count, ok := byStatus["Returned"]; !ok || count != 0 {
		t.Fatalf("zero-count label must still appear: %v", byStatus)
	}
	if rows[0].Status != "Settled" {
		t.Fatalf("sort by count desc: first row %+v", rows[0])
	}
}
