package shopsight

import (
	"slices"

	"github.com/etnz/shopsight/date"
)

// Filter is the set of active restrictions applied before aggregation
// and fraud analysis. The zero Filter matches everything.
//
// Dimensions combine with a logical AND; values inside a multi-select
// dimension combine with a logical OR. An empty selection means no
// restriction on that dimension.
type Filter struct {
	Range          date.Range `json:"range"`
	Categories     []string   `json:"categories"`
	PaymentMethods []string   `json:"payment_methods"`
	Countries      []string   `json:"countries"`
	MinTotal       Money      `json:"min_total"` // zero = unbounded
	MaxTotal       Money      `json:"max_total"` // zero = unbounded
	Fraud          *bool      `json:"fraud,omitempty"` // nil = all records
}

// Match reports whether the record satisfies every active dimension.
func (f Filter) Match(r OrderRecord) bool {
	if !f.Range.Contains(r.Day()) {
		return false
	}
	if len(f.Categories) > 0 && !slices.Contains(f.Categories, r.Category) {
		return false
	}
	if len(f.PaymentMethods) > 0 && !slices.Contains(f.PaymentMethods, r.PaymentMethod) {
		return false
	}
	if len(f.Countries) > 0 && !slices.Contains(f.Countries, r.Country) {
		return false
	}
	if !f.MinTotal.IsZero() && r.TotalPrice.LessThan(f.MinTotal) {
		return false
	}
	if !f.MaxTotal.IsZero() && r.TotalPrice.GreaterThan(f.MaxTotal) {
		return false
	}
	if f.Fraud != nil && r.Fraud != *f.Fraud {
		return false
	}
	return true
}

// ByCategory returns a predicate that matches records of the category.
func ByCategory(category string) func(OrderRecord) bool {
	return func(r OrderRecord) bool { return r.Category == category }
}

// ByCustomer returns a predicate that matches records of the customer.
func ByCustomer(customerID string) func(OrderRecord) bool {
	return func(r OrderRecord) bool { return r.CustomerID == customerID }
}

// ByCoupon returns a predicate that matches records using the coupon code.
func ByCoupon(code string) func(OrderRecord) bool {
	return func(r OrderRecord) bool { return r.CouponCode == code }
}
