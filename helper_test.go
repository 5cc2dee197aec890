package shopsight

import "time"

// at is a helper for tests to build timestamps on 2025-07-16.
func at(hour, min int) time.Time {
	return time.Date(2025, time.July, 16, hour, min, 0, 0, time.UTC)
}

// order is a helper for tests to build a plausible record with derived
// totals; tests override fields afterwards when they need odd values.
func order(id, customer string, t time.Time, selling, cost float64, qty int, discount float64) OrderRecord {
	r := OrderRecord{
		ID:            id,
		Time:          t,
		CustomerID:    customer,
		CustomerName:  "Customer " + customer,
		ProductName:   "Widget Standard",
		Category:      "Home",
		Quantity:      qty,
		CostPrice:     USD(cost),
		SellingPrice:  USD(selling),
		TotalDiscount: USD(discount),
		PaymentMethod: "Credit Card",
		City:          "Portland",
		Country:       "USA",
	}
	r.TotalPrice = r.Revenue().Sub(r.TotalDiscount)
	return r
}
