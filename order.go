package shopsight

import (
	"time"

	"github.com/etnz/shopsight/date"
)

// OrderRecord is one transaction of the order book.
//
// Records are created once by the synthesizer (or loaded from a CSV
// file) and never mutated afterwards; fraud annotations produced by the
// rule engine live in a separate FraudReport so re-running the engine
// never changes the dataset itself.
type OrderRecord struct {
	ID            string    // unique within a dataset
	Time          time.Time // order timestamp, minute precision matters for the velocity rule
	CustomerID    string    // stable across repeated customers
	CustomerName  string
	ProductName   string
	Category      string
	Quantity      int   // >= 1
	CostPrice     Money // per unit
	SellingPrice  Money // per unit
	TotalDiscount Money // >= 0
	TotalPrice    Money // selling_price*quantity - total_discount, >= 0
	CouponCode    string // empty when no coupon was used
	PaymentMethod string
	City          string
	Country       string
	Fraud         bool // ground truth at generation, or engine-assigned
}

// Day returns the calendar date of the order, the key for daily views.
func (r OrderRecord) Day() date.Date { return date.Of(r.Time) }

// Revenue returns selling_price * quantity, before discount.
func (r OrderRecord) Revenue() Money { return r.SellingPrice.MulInt(r.Quantity) }

// Profit returns (selling_price - cost_price) * quantity - total_discount.
func (r OrderRecord) Profit() Money {
	return r.SellingPrice.Sub(r.CostPrice).MulInt(r.Quantity).Sub(r.TotalDiscount)
}
