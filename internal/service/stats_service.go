package service

import (
	"context"
	"sort"

	"shoptrack/internal/model"
	"shoptrack/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StatsService recomputes the derived dashboard entities from the owner's
// order list on every call. The computation itself is pure and never errors:
// bad or missing numeric data degrades to zero instead of propagating NaN.
type StatsService interface {
	Dashboard(ctx context.Context, ownerID uuid.UUID) (model.DashboardStats, error)
	MonthlyTrend(ctx context.Context, ownerID uuid.UUID) ([]model.MonthlyDatapoint, error)
	CategoryBreakdown(ctx context.Context, ownerID uuid.UUID) ([]model.CategoryProfit, error)
	StatusSummary(ctx context.Context, ownerID uuid.UUID) ([]model.StatusCount, error)
	OrderSummaries(ctx context.Context, ownerID uuid.UUID) ([]model.OrderSummary, error)
}

type statsService struct {
	orderRepo  repository.OrderRepository
	workspaces WorkspaceService
}

func NewStatsService(orderRepo repository.OrderRepository, workspaces WorkspaceService) StatsService {
	return &statsService{orderRepo: orderRepo, workspaces: workspaces}
}

func (s *statsService) load(ctx context.Context, ownerID uuid.UUID) ([]model.Order, model.Vocabulary, error) {
	vocab, err := s.workspaces.VocabularyFor(ctx, ownerID)
	if err != nil {
		return nil, model.Vocabulary{}, err
	}
	orders, err := s.orderRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, model.Vocabulary{}, err
	}
	return orders, vocab, nil
}

func (s *statsService) Dashboard(ctx context.Context, ownerID uuid.UUID) (model.DashboardStats, error) {
	orders, vocab, err := s.load(ctx, ownerID)
	if err != nil {
		return model.DashboardStats{}, err
	}
	return ComputeDashboard(orders, vocab), nil
}

func (s *statsService) MonthlyTrend(ctx context.Context, ownerID uuid.UUID) ([]model.MonthlyDatapoint, error) {
	orders, vocab, err := s.load(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return ComputeMonthlyTrend(orders, vocab), nil
}

func (s *statsService) CategoryBreakdown(ctx context.Context, ownerID uuid.UUID) ([]model.CategoryProfit, error) {
	orders, vocab, err := s.load(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return ComputeCategoryBreakdown(orders, vocab), nil
}

func (s *statsService) StatusSummary(ctx context.Context, ownerID uuid.UUID) ([]model.StatusCount, error) {
	orders, vocab, err := s.load(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return ComputeStatusSummary(orders, vocab.Statuses), nil
}

// OrderSummaries builds the compact per-order slice handed to the AI
// narrative endpoint.
func (s *statsService) OrderSummaries(ctx context.Context, ownerID uuid.UUID) ([]model.OrderSummary, error) {
	orders, err := s.orderRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	summaries := make([]model.OrderSummary, 0, len(orders))
	for _, o := range orders {
		summaries = append(summaries, model.OrderSummary{
			Name:          o.ProductName,
			Category:      o.Category,
			ListingPrice:  o.ListingPrice.Float64(),
			SettledAmount: o.SettledAmount.Float64(),
			Profit:        o.Profit.Float64(),
		})
	}
	return summaries, nil
}

// --- Pure aggregation ---

// activeReturnLoss reports whether the order carries a customer-return loss
// still counted against net profit. Courier returns never contribute (goods
// come back to stock); an approved claim means the platform reimbursed the
// loss, so it stops counting the moment it is approved.
func activeReturnLoss(o *model.Order, vocab model.Vocabulary) bool {
	return o.Status == vocab.ReturnedLabel &&
		o.ReturnType == model.ReturnTypeCustomer &&
		o.ClaimStatus != model.ClaimApproved
}

// ComputeDashboard derives the headline revenue/profit/margin numbers.
// Only orders in the settled status contribute revenue and gross profit;
// everything else contributes exactly zero regardless of its own amounts.
func ComputeDashboard(orders []model.Order, vocab model.Vocabulary) model.DashboardStats {
	revenue := decimal.Zero
	gross := decimal.Zero
	loss := decimal.Zero

	for i := range orders {
		o := &orders[i]
		switch {
		case o.Status == vocab.SettledLabel:
			revenue = revenue.Add(decimal.NewFromFloat(o.SettledAmount.Float64()))
			gross = gross.Add(decimal.NewFromFloat(o.Profit.Float64()))
		case activeReturnLoss(o, vocab):
			loss = loss.Add(decimal.NewFromFloat(o.LossAmount.Float64()))
		}
	}

	net := gross.Sub(loss)

	margin := decimal.Zero
	if !revenue.IsZero() {
		margin = net.Div(revenue).Mul(decimal.NewFromInt(100)).Round(2)
	}

	return model.DashboardStats{
		SettledRevenue:     revenue.InexactFloat64(),
		GrossSettledProfit: gross.InexactFloat64(),
		ActiveReturnLoss:   loss.InexactFloat64(),
		NetProfit:          net.InexactFloat64(),
		Margin:             margin.InexactFloat64(),
		OrderCount:         len(orders),
	}
}

// ComputeMonthlyTrend groups orders into YYYY-MM buckets (the first seven
// characters of the ISO date) and accumulates revenue and profit under the
// same settled/returned rules as the dashboard. Buckets come back sorted
// lexicographically ascending, which is chronological for ISO dates.
func ComputeMonthlyTrend(orders []model.Order, vocab model.Vocabulary) []model.MonthlyDatapoint {
	type bucket struct {
		revenue decimal.Decimal
		profit  decimal.Decimal
	}
	buckets := make(map[string]*bucket)

	for i := range orders {
		o := &orders[i]
		month := o.Date
		if len(month) > 7 {
			month = month[:7]
		}

		b, ok := buckets[month]
		if !ok {
			b = &bucket{revenue: decimal.Zero, profit: decimal.Zero}
			buckets[month] = b
		}

		switch {
		case o.Status == vocab.SettledLabel:
			b.revenue = b.revenue.Add(decimal.NewFromFloat(o.SettledAmount.Float64()))
			b.profit = b.profit.Add(decimal.NewFromFloat(o.Profit.Float64()))
		case activeReturnLoss(o, vocab):
			b.profit = b.profit.Sub(decimal.NewFromFloat(o.LossAmount.Float64()))
		}
	}

	months := make([]string, 0, len(buckets))
	for month := range buckets {
		months = append(months, month)
	}
	sort.Strings(months)

	series := make([]model.MonthlyDatapoint, 0, len(months))
	for _, month := range months {
		b := buckets[month]
		series = append(series, model.MonthlyDatapoint{
			Month:   month,
			Revenue: b.revenue.InexactFloat64(),
			Profit:  b.profit.InexactFloat64(),
		})
	}
	return series
}

// ComputeCategoryBreakdown accumulates per-category profit under the
// settled/returned rules, sorted by profit descending (category name breaks
// ties deterministically).
func ComputeCategoryBreakdown(orders []model.Order, vocab model.Vocabulary) []model.CategoryProfit {
	profits := make(map[string]decimal.Decimal)
	counts := make(map[string]int)

	for i := range orders {
		o := &orders[i]
		if _, ok := profits[o.Category]; !ok {
			profits[o.Category] = decimal.Zero
		}
		counts[o.Category]++

		switch {
		case o.Status == vocab.SettledLabel:
			profits[o.Category] = profits[o.Category].Add(decimal.NewFromFloat(o.Profit.Float64()))
		case activeReturnLoss(o, vocab):
			profits[o.Category] = profits[o.Category].Sub(decimal.NewFromFloat(o.LossAmount.Float64()))
		}
	}

	rows := make([]model.CategoryProfit, 0, len(profits))
	for category, profit := range profits {
		rows = append(rows, model.CategoryProfit{
			Category: category,
			Profit:   profit.InexactFloat64(),
			Orders:   counts[category],
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Profit != rows[j].Profit {
			return rows[i].Profit > rows[j].Profit
		}
		return rows[i].Category < rows[j].Category
	})
	return rows
}

// ComputeStatusSummary counts orders per status label. Every label in the
// configured vocabulary appears even with a zero count; labels found on
// stored orders but absent from the vocabulary are appended in first-seen
// order rather than dropped. Rows sort descending by count; the sort is
// stable, so ties keep vocabulary order.
func ComputeStatusSummary(orders []model.Order, statuses []string) []model.StatusCount {
	counts := make(map[string]int)
	known := make(map[string]bool, len(statuses))
	for _, label := range statuses {
		known[label] = true
	}

	var extras []string
	for i := range orders {
		status := orders[i].Status
		if !known[status] && counts[status] == 0 {
			extras = append(extras, status)
		}
		counts[status]++
	}

	rows := make([]model.StatusCount, 0, len(statuses)+len(extras))
	for _, label := range statuses {
		rows = append(rows, model.StatusCount{Status: label, Count: counts[label]})
	}
	for _, label := range extras {
		rows = append(rows, model.StatusCount{Status: label, Count: counts[label]})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Count > rows[j].Count
	})
	return rows
}
