package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"shoptrack/internal/model"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const insightsModel = "gemini-2.0-flash-001"

// GenerateInsights sends a compact order digest to Gemini and returns a short
// plain-language read on how the business is doing. The caller decides what
// slice of orders to include; only the summary fields ever leave the process.
func GenerateInsights(ctx context.Context, apiKey string, stats model.DashboardStats, orders []model.OrderSummary) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return "", fmt.Errorf("create genai client: %w", err)
	}
	defer client.Close()

	gm := client.GenerativeModel(insightsModel)

	payload, err := json.Marshal(orders)
	if err != nil {
		return "", fmt.Errorf("marshal order digest: %w", err)
	}

	today := time.Now().Format("2006-01-02")
	prompt := fmt.Sprintf(`SYSTEM: Today is %s. You are an analyst for a small online shop.

Using the totals and the order digest below, write a short report (3-5 sentences)
for a non-technical owner. Mention overall profitability, the strongest and
weakest categories, and anything unusual about returns or losses. Do not invent
numbers that are not in the data. Plain text only, no markdown.

TOTALS: settled revenue %.2f, gross profit %.2f, return losses %.2f, net profit %.2f, margin %.2f%%, %d orders.

ORDERS: %s`,
		today,
		stats.SettledRevenue, stats.GrossSettledProfit, stats.ActiveReturnLoss,
		stats.NetProfit, stats.Margin, stats.OrderCount,
		string(payload),
	)

	resp, err := gm.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("generate insights: %w", err)
	}
	return extractText(resp), nil
}

func extractText(resp *genai.GenerateContentResponse) string {
	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if txt, ok := part.(genai.Text); ok {
				sb.WriteString(string(txt))
			}
		}
	}
	out := strings.TrimSpace(sb.String())
	if out == "" {
		return "No insights could be generated for the current data."
	}
	return out
}
