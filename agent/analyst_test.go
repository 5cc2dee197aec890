package agent

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/etnz/shopsight"
)

func testDataset() *shopsight.Dataset {
	mk := func(id, category string, selling float64, qty int) shopsight.OrderRecord {
		r := shopsight.OrderRecord{
			ID:            id,
			Time:          time.Date(2025, time.July, 16, 10, 0, 0, 0, time.UTC),
			CustomerID:    "C1",
			CustomerName:  "Customer C1",
			ProductName:   "Widget Standard",
			Category:      category,
			Quantity:      qty,
			CostPrice:     shopsight.USD(selling / 2),
			SellingPrice:  shopsight.USD(selling),
			TotalDiscount: shopsight.USD(0),
			PaymentMethod: "Credit Card",
			City:          "Portland",
			Country:       "USA",
		}
		r.TotalPrice = r.Revenue()
		return r
	}
	return shopsight.NewDataset(
		mk("A1", "Electronics", 800, 1),
		mk("A2", "Books", 20, 3),
	)
}

func callTool(t *testing.T, name string, args map[string]any) map[string]any {
	t.Helper()
	for _, tool := range analystTools(testDataset()) {
		if tool.Declaration().Name == name {
			return tool.Call(context.Background(), "id-1", args).Response
		}
	}
	t.Fatalf("no tool named %q", name)
	return nil
}

func TestAnalystToolNamesAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, tool := range analystTools(testDataset()) {
		name := tool.Declaration().Name
		if seen[name] {
			t.Errorf("duplicate tool name %q", name)
		}
		seen[name] = true
	}
}

func TestSalesSummaryTool(t *testing.T) {
	resp := callTool(t, "sales_summary", nil)
	out, ok := resp["output"].(string)
	if !ok {
		t.Fatalf("sales_summary returned no output: %v", resp)
	}
	if !strings.Contains(out, "Sales Summary") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestToolFilterArguments(t *testing.T) {
	resp := callTool(t, "top_products", map[string]any{"category": "Books"})
	out := resp["output"].(string)
	if strings.Contains(out, "800") {
		t.Errorf("electronics order leaked through the category filter:\n%s", out)
	}

	resp = callTool(t, "sales_summary", map[string]any{"from": "not-a-date"})
	if _, ok := resp["error"]; !ok {
		t.Error("an invalid date must produce a tool error the model can recover from")
	}
}

func TestProfitTrendPeriods(t *testing.T) {
	for _, period := range []string{"day", "week", "month"} {
		resp := callTool(t, "profit_trend", map[string]any{"period": period})
		if _, ok := resp["output"]; !ok {
			t.Errorf("period %s: %v", period, resp)
		}
	}
}
