package shopsight

import (
	"sort"

	"github.com/etnz/shopsight/date"
	"github.com/shopspring/decimal"
)

// SummaryReport holds the headline metrics of a (filtered) dataset.
type SummaryReport struct {
	Span         date.Range `json:"span"`
	Orders       int        `json:"orders"`
	Units        int        `json:"units"`
	Customers    int        `json:"customers"`
	Revenue      Money      `json:"revenue"`
	Discounts    Money      `json:"discounts"`
	Profit       Money      `json:"profit"`
	AvgOrder     Money      `json:"avg_order"`
	Margin       Percent    `json:"margin"`        // profit over revenue
	DiscountRate Percent    `json:"discount_rate"` // discounts over revenue
}

// Summarize computes the headline metrics of the dataset.
func Summarize(ds *Dataset) *SummaryReport {
	s := &SummaryReport{
		Revenue:   USD(0),
		Discounts: USD(0),
		Profit:    USD(0),
		AvgOrder:  USD(0),
	}
	s.Span, _ = ds.Span()

	customers := make(map[string]struct{})
	for _, r := range ds.Records() {
		s.Orders++
		s.Units += r.Quantity
		s.Revenue = s.Revenue.Add(r.Revenue())
		s.Discounts = s.Discounts.Add(r.TotalDiscount)
		s.Profit = s.Profit.Add(r.Profit())
		customers[r.CustomerID] = struct{}{}
	}
	s.Customers = len(customers)

	if s.Orders > 0 {
		s.AvgOrder = M(s.Revenue.Sub(s.Discounts).Ratio(USD(s.Orders)), Currency).Round()
	}
	if !s.Revenue.IsZero() {
		hundred := decimal.NewFromInt(100)
		s.Margin = Percent(s.Profit.Ratio(s.Revenue).Mul(hundred).InexactFloat64())
		s.DiscountRate = Percent(s.Discounts.Ratio(s.Revenue).Mul(hundred).InexactFloat64())
	}
	return s
}

// CustomerRank is one row of the customer value ranking.
type CustomerRank struct {
	CustomerID   string `json:"customer_id"`
	CustomerName string `json:"customer_name"`
	Orders       int    `json:"orders"`
	Spend        Money  `json:"spend"` // summed total_price
	Profit       Money  `json:"profit"`
}

// TopCustomers ranks customers by total spend descending, ties broken
// by ascending customer id. It returns at most k rows (DefaultTopK when
// k <= 0).
func TopCustomers(ds *Dataset, k int) []CustomerRank {
	if k <= 0 {
		k = DefaultTopK
	}
	byID := make(map[string]*CustomerRank)
	for _, r := range ds.Records() {
		e, ok := byID[r.CustomerID]
		if !ok {
			e = &CustomerRank{CustomerID: r.CustomerID, CustomerName: r.CustomerName, Spend: USD(0), Profit: USD(0)}
			byID[r.CustomerID] = e
		}
		e.Orders++
		e.Spend = e.Spend.Add(r.TotalPrice)
		e.Profit = e.Profit.Add(r.Profit())
	}

	ranks := make([]CustomerRank, 0, len(byID))
	for _, e := range byID {
		ranks = append(ranks, *e)
	}
	sort.Slice(ranks, func(i, j int) bool {
		if !ranks[i].Spend.Equal(ranks[j].Spend) {
			return ranks[i].Spend.GreaterThan(ranks[j].Spend)
		}
		return ranks[i].CustomerID < ranks[j].CustomerID
	})
	if len(ranks) > k {
		ranks = ranks[:k]
	}
	return ranks
}

// PaymentShare is one slice of the payment method distribution.
type PaymentShare struct {
	Method  string `json:"method"`
	Orders  int    `json:"orders"`
	Revenue Money  `json:"revenue"`
}

// PaymentMix returns the order count and revenue per payment method,
// sorted by order count descending, ties broken by ascending name.
func PaymentMix(ds *Dataset) []PaymentShare {
	byMethod := make(map[string]*PaymentShare)
	for _, r := range ds.Records() {
		e, ok := byMethod[r.PaymentMethod]
		if !ok {
			e = &PaymentShare{Method: r.PaymentMethod, Revenue: USD(0)}
			byMethod[r.PaymentMethod] = e
		}
		e.Orders++
		e.Revenue = e.Revenue.Add(r.TotalPrice)
	}

	shares := make([]PaymentShare, 0, len(byMethod))
	for _, e := range byMethod {
		shares = append(shares, *e)
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Orders != shares[j].Orders {
			return shares[i].Orders > shares[j].Orders
		}
		return shares[i].Method < shares[j].Method
	})
	return shares
}
