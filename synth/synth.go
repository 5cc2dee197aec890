// Package synth generates plausible synthetic order books: a rolled
// product catalog, a fixed customer pool, live coupon codes, and random
// orders over the trailing year. Generation is deterministic for a
// given seed.
package synth

import (
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/etnz/shopsight"
	"github.com/google/uuid"
)

const (
	customerPoolSize = 500
	couponRate       = 0.20 // share of orders carrying a coupon
	maxQuantity      = 5
	shippingCost     = 15 // flat shipping, what FREESHIP waives
	progressStep     = 10_000
)

// Generator produces random order records. All randomness flows from
// the single seeded source, so two generators with the same seed and
// reference time produce identical datasets.
type Generator struct {
	rng       *rand.Rand
	now       time.Time
	products  []Product
	customers []Customer

	// Progress, when set, is called after every 10k generated rows and
	// once at the end.
	Progress func(done int)
}

// New returns a generator seeded with seed. The catalog and the
// customer pool are rolled immediately, dates are generated relative to
// the current time.
func New(seed int64) *Generator {
	rng := rand.New(rand.NewSource(seed))
	return &Generator{
		rng:       rng,
		now:       time.Now().UTC().Truncate(time.Second),
		products:  newProducts(rng),
		customers: newCustomers(rng),
	}
}

// Generate produces n orders and labels them with the fraud engine
// running under cfg, so the ground truth matches what the rule engine
// would flag on reload.
func (g *Generator) Generate(n int, cfg shopsight.FraudConfig) *shopsight.Dataset {
	records := make([]shopsight.OrderRecord, 0, n)
	seen := make(map[string]struct{}, n)
	for i := range n {
		r := g.order()
		for { // 8 hex chars collide within large books, reroll
			if _, dup := seen[r.ID]; !dup {
				break
			}
			r.ID = g.orderID()
		}
		seen[r.ID] = struct{}{}
		records = append(records, r)
		if done := i + 1; g.Progress != nil && done%progressStep == 0 {
			g.Progress(done)
		}
	}
	if g.Progress != nil && n%progressStep != 0 {
		g.Progress(n)
	}

	report := shopsight.EvaluateFraud(shopsight.NewDataset(records...), cfg)
	for i := range records {
		records[i].Fraud = report.Annotations[i].Suspicious
	}
	return shopsight.NewDataset(records...)
}

// order rolls one record without its fraud label.
func (g *Generator) order() shopsight.OrderRecord {
	customer := g.customers[g.rng.Intn(len(g.customers))]
	product := g.products[g.rng.Intn(len(g.products))]
	quantity := 1 + g.rng.Intn(maxQuantity)
	country := countries[g.rng.Intn(len(countries))]
	cities := citiesByCountry[country]

	revenue := product.Price.MulInt(quantity)
	var code string
	var discount shopsight.Money
	if g.rng.Float64() < couponRate {
		coupon := coupons[g.rng.Intn(len(coupons))]
		code, discount = coupon.Code, coupon.discount(revenue)
	}

	return shopsight.OrderRecord{
		ID:            g.orderID(),
		Time:          g.orderTime(),
		CustomerID:    customer.ID,
		CustomerName:  customer.Name,
		ProductName:   product.Name,
		Category:      product.Category,
		Quantity:      quantity,
		CostPrice:     product.Cost,
		SellingPrice:  product.Price,
		TotalDiscount: discount,
		TotalPrice:    revenue.Sub(discount),
		CouponCode:    code,
		PaymentMethod: paymentMethods[g.rng.Intn(len(paymentMethods))],
		City:          cities[g.rng.Intn(len(cities))],
		Country:       country,
	}
}

// discount applies the coupon rules to an order total: nothing below
// the order minimum, the waived shipping for FREESHIP, a straight
// percentage otherwise.
func (c Coupon) discount(total shopsight.Money) shopsight.Money {
	if total.LessThan(c.MinOrder) {
		return shopsight.USD(0)
	}
	if c.FreeShipping {
		return shopsight.USD(roundCents(math.Min(shippingCost, total.AsFloat()*0.1)))
	}
	return shopsight.USD(roundCents(total.AsFloat() * float64(c.Percent) / 100))
}

// orderID is the first 8 hex chars of a random UUID, uppercased.
func (g *Generator) orderID() string {
	id, err := uuid.NewRandomFromReader(g.rng)
	if err != nil { // cannot happen with a rand.Rand reader
		panic(err)
	}
	return strings.ToUpper(id.String()[:8])
}

// orderTime is uniform over the trailing 365 days with a random time of
// day.
func (g *Generator) orderTime() time.Time {
	day := g.now.AddDate(0, 0, -g.rng.Intn(366))
	return time.Date(day.Year(), day.Month(), day.Day(),
		g.rng.Intn(24), g.rng.Intn(60), g.rng.Intn(60), 0, time.UTC)
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
