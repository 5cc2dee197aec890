package shopsight

import (
	"time"

	"github.com/shopspring/decimal"
)

// RuleCode identifies one fraud heuristic. Reason codes are always
// reported in the declaration order below, regardless of input row
// order, so two runs over the same table are byte-identical.
type RuleCode int

const (
	// DiscountRatio flags orders whose discount exceeds a fraction of
	// the undiscounted revenue.
	DiscountRatio RuleCode = iota
	// LargeTotal flags orders whose total price exceeds an absolute
	// threshold. An absolute threshold (rather than a mean/stddev
	// policy) keeps the rule deterministic under filtering.
	LargeTotal
	// RepeatedCoupon flags every order of a coupon code used more than
	// a maximum number of times within the dataset.
	RepeatedCoupon
	// Velocity flags an order when the same customer placed another
	// large order within a short time window before or after it.
	Velocity
)

// ruleCodes lists all rules in evaluation and reporting order.
var ruleCodes = []RuleCode{DiscountRatio, LargeTotal, RepeatedCoupon, Velocity}

// RuleCodes returns all rules in reporting order.
func RuleCodes() []RuleCode {
	codes := make([]RuleCode, len(ruleCodes))
	copy(codes, ruleCodes)
	return codes
}

func (c RuleCode) String() string {
	switch c {
	case DiscountRatio:
		return "high-discount-ratio"
	case LargeTotal:
		return "large-order-total"
	case RepeatedCoupon:
		return "repeated-coupon"
	case Velocity:
		return "velocity"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the rule code by name, which is what the
// dashboard displays.
func (c RuleCode) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.String() + `"`), nil
}

// FraudConfig holds the thresholds of the rule engine. The original
// heuristics hard-coded their numbers; here they are explicit, with
// DefaultFraudConfig documenting the defaults.
type FraudConfig struct {
	// MaxDiscountRatio is the highest acceptable total_discount over
	// selling_price*quantity. Orders above it trigger DiscountRatio.
	MaxDiscountRatio decimal.Decimal
	// LargeTotal is the absolute total_price above which an order
	// triggers the LargeTotal rule.
	LargeTotal Money
	// MaxCouponUses is the highest acceptable number of orders sharing
	// one coupon code. More uses trigger RepeatedCoupon on all of them.
	MaxCouponUses int
	// VelocityWindow is how close in time two orders of one customer
	// must be for the Velocity rule to consider them related.
	VelocityWindow time.Duration
	// VelocityTotal is the total_price above which an order counts as
	// "large" for the Velocity rule.
	VelocityTotal Money
}

// DefaultFraudConfig returns the documented default thresholds:
// discount ratio 0.5, large total $1000, 3 coupon uses, 1 hour window
// with a $1000 large-order bar.
func DefaultFraudConfig() FraudConfig {
	return FraudConfig{
		MaxDiscountRatio: decimal.NewFromFloat(0.5),
		LargeTotal:       USD(1000),
		MaxCouponUses:    3,
		VelocityWindow:   time.Hour,
		VelocityTotal:    USD(1000),
	}
}

// Annotation is the engine's verdict for one record.
type Annotation struct {
	Suspicious bool       `json:"suspicious"`
	Reasons    []RuleCode `json:"reasons,omitempty"`
}

// FraudReport is the output of one engine run over a dataset. It is a
// side table: Annotations[i] belongs to dataset row i, and the dataset
// itself is left untouched.
type FraudReport struct {
	Annotations []Annotation
	// Flagged is the number of suspicious records.
	Flagged int
	// ByRule counts how many records each rule flagged. A record
	// triggering several rules is counted once per rule.
	ByRule map[RuleCode]int
	// RevenueAtRisk is the summed total_price of suspicious records.
	RevenueAtRisk Money
}

// EvaluateFraud classifies every record of the dataset as suspicious or
// not, with reason codes. It is a pure function of its input: no
// randomness, no mutation, and re-running it on an unchanged table
// produces an identical report.
//
// The engine makes one full-table pass to compute per-coupon usage
// counts and per-customer large-order timestamps, then one per-record
// pass to evaluate the four rules independently.
func EvaluateFraud(ds *Dataset, cfg FraudConfig) *FraudReport {
	report := &FraudReport{
		Annotations:   make([]Annotation, ds.Len()),
		ByRule:        make(map[RuleCode]int),
		RevenueAtRisk: USD(0),
	}

	// Pass 1: cross-record aggregates.
	couponUses := make(map[string]int)
	largeOrders := make(map[string][]time.Time) // customer_id -> times of large orders
	for _, r := range ds.Records() {
		if r.CouponCode != "" {
			couponUses[r.CouponCode]++
		}
		if r.TotalPrice.GreaterThan(cfg.VelocityTotal) {
			largeOrders[r.CustomerID] = append(largeOrders[r.CustomerID], r.Time)
		}
	}

	// Pass 2: per-record rules, evaluated independently and combined by OR.
	for i, r := range ds.Records() {
		var reasons []RuleCode
		for _, code := range ruleCodes {
			triggered := false
			switch code {
			case DiscountRatio:
				triggered = highDiscountRatio(r, cfg)
			case LargeTotal:
				triggered = r.TotalPrice.GreaterThan(cfg.LargeTotal)
			case RepeatedCoupon:
				triggered = r.CouponCode != "" && couponUses[r.CouponCode] > cfg.MaxCouponUses
			case Velocity:
				triggered = nearbyLargeOrder(r, largeOrders[r.CustomerID], cfg)
			}
			if triggered {
				reasons = append(reasons, code)
				report.ByRule[code]++
			}
		}
		if len(reasons) > 0 {
			report.Annotations[i] = Annotation{Suspicious: true, Reasons: reasons}
			report.Flagged++
			report.RevenueAtRisk = report.RevenueAtRisk.Add(r.TotalPrice)
		}
	}
	return report
}

// highDiscountRatio reports whether total_discount / (selling_price *
// quantity) exceeds the configured maximum. A zero revenue makes the
// record not flaggable by this rule.
func highDiscountRatio(r OrderRecord, cfg FraudConfig) bool {
	revenue := r.Revenue()
	if revenue.IsZero() {
		return false
	}
	return r.TotalDiscount.Ratio(revenue).GreaterThan(cfg.MaxDiscountRatio)
}

// nearbyLargeOrder reports whether any of the customer's large orders,
// other than the record itself, falls within the window before or after
// the record. A single large order never flags itself.
func nearbyLargeOrder(r OrderRecord, large []time.Time, cfg FraudConfig) bool {
	selfIsLarge := r.TotalPrice.GreaterThan(cfg.VelocityTotal)
	seenSelf := false
	for _, t := range large {
		if selfIsLarge && !seenSelf && t.Equal(r.Time) {
			// Skip one occurrence of the record's own timestamp.
			seenSelf = true
			continue
		}
		delta := r.Time.Sub(t)
		if delta < 0 {
			delta = -delta
		}
		if delta <= cfg.VelocityWindow {
			return true
		}
	}
	return false
}
