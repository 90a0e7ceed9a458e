package model

// Derived reporting entities. None of these are persisted — they are
// recomputed from the order/inventory lists on every read.

// DashboardStats aggregates revenue, profit and margin across an owner's orders
type DashboardStats struct {
	SettledRevenue     float64 `json:"settled_revenue"`
	GrossSettledProfit float64 `json:"gross_settled_profit"`
	ActiveReturnLoss   float64 `json:"active_return_loss"`
	NetProfit          float64 `json:"net_profit"`
	Margin             float64 `json:"margin"` // percent, 0 when revenue is 0
	OrderCount         int     `json:"order_count"`
}

// MonthlyDatapoint is one YYYY-MM bucket of the trend series
type MonthlyDatapoint struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
	Profit  float64 `json:"profit"`
}

// CategoryProfit is one row of the category breakdown
type CategoryProfit struct {
	Category string  `json:"category"`
	Profit   float64 `json:"profit"`
	Orders   int     `json:"orders"`
}

// StatusCount is one row of the status summary, covering every label in the
// configured vocabulary even when its count is zero
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// OrderSummary is the per-order slice handed to the AI narrative service
type OrderSummary struct {
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	ListingPrice  float64 `json:"listing_price"`
	SettledAmount float64 `json:"settled_amount"`
	Profit        float64 `json:"profit"`
}
