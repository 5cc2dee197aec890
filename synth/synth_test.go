package synth

import (
	"bytes"
	"regexp"
	"testing"
	"time"

	"github.com/etnz/shopsight"
)

var testNow = time.Date(2025, time.July, 16, 12, 0, 0, 0, time.UTC)

func newTestGenerator(seed int64) *Generator {
	g := New(seed)
	g.now = testNow
	return g
}

func TestGenerate_Deterministic(t *testing.T) {
	cfg := shopsight.DefaultFraudConfig()
	a := newTestGenerator(42).Generate(500, cfg)
	b := newTestGenerator(42).Generate(500, cfg)

	var bufA, bufB bytes.Buffer
	if err := shopsight.EncodeDataset(&bufA, a); err != nil {
		t.Fatal(err)
	}
	if err := shopsight.EncodeDataset(&bufB, b); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(bufA.Bytes(), bufB.Bytes()) {
		t.Error("two generators with the same seed must produce identical datasets")
	}

	c := newTestGenerator(43).Generate(500, cfg)
	var bufC bytes.Buffer
	if err := shopsight.EncodeDataset(&bufC, c); err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(bufA.Bytes(), bufC.Bytes()) {
		t.Error("different seeds should not produce identical datasets")
	}
}

func TestGenerate_Invariants(t *testing.T) {
	idShape := regexp.MustCompile(`^[0-9A-F]{8}$`)
	validCountry := map[string]bool{"USA": true, "Canada": true, "UK": true, "Australia": true}

	ds := newTestGenerator(1).Generate(2000, shopsight.DefaultFraudConfig())
	if ds.Len() != 2000 {
		t.Fatalf("Generate(2000) produced %d rows", ds.Len())
	}

	seen := make(map[string]struct{}, ds.Len())
	customers := make(map[string]struct{})
	withCoupon := 0
	horizon := testNow.AddDate(0, 0, -366)
	for i, r := range ds.Records() {
		if !idShape.MatchString(r.ID) {
			t.Fatalf("row %d: order ID %q is not 8 uppercase hex chars", i, r.ID)
		}
		if _, dup := seen[r.ID]; dup {
			t.Fatalf("row %d: duplicate order ID %q", i, r.ID)
		}
		seen[r.ID] = struct{}{}

		if r.Quantity < 1 || r.Quantity > maxQuantity {
			t.Fatalf("row %d: quantity %d out of range", i, r.Quantity)
		}
		if want := r.Revenue().Sub(r.TotalDiscount); !r.TotalPrice.Equal(want) {
			t.Fatalf("row %d: total %v != revenue %v - discount %v", i, r.TotalPrice, r.Revenue(), r.TotalDiscount)
		}
		if r.TotalDiscount.IsNegative() || r.TotalPrice.IsNegative() {
			t.Fatalf("row %d: negative amounts %v / %v", i, r.TotalDiscount, r.TotalPrice)
		}
		if r.Time.Before(horizon) || r.Time.After(testNow.AddDate(0, 0, 1)) {
			t.Fatalf("row %d: order time %v outside the trailing year", i, r.Time)
		}
		if !validCountry[r.Country] {
			t.Fatalf("row %d: unexpected country %q", i, r.Country)
		}
		if r.City == "" || r.PaymentMethod == "" || r.ProductName == "" {
			t.Fatalf("row %d: missing descriptive fields: %+v", i, r)
		}
		if r.CouponCode != "" {
			withCoupon++
		}
		customers[r.CustomerID] = struct{}{}
	}

	if len(customers) > customerPoolSize {
		t.Errorf("%d distinct customers, pool is %d", len(customers), customerPoolSize)
	}
	// 20% of 2000 rows carry a coupon code; allow a generous band.
	if withCoupon < 250 || withCoupon > 550 {
		t.Errorf("%d of 2000 rows carry a coupon, expected around 400", withCoupon)
	}
}

func TestGenerate_FraudLabelsMatchEngine(t *testing.T) {
	cfg := shopsight.DefaultFraudConfig()
	ds := newTestGenerator(7).Generate(1000, cfg)

	report := shopsight.EvaluateFraud(ds, cfg)
	for i, r := range ds.Records() {
		if r.Fraud != report.Annotations[i].Suspicious {
			t.Fatalf("row %d: stored label %v disagrees with the engine", i, r.Fraud)
		}
	}
}

func TestCouponDiscount(t *testing.T) {
	testCases := []struct {
		name   string
		coupon Coupon
		total  float64
		want   float64
	}{
		{"below minimum", Coupon{Code: "SAVE15", Percent: 15, MinOrder: shopsight.USD(50)}, 40, 0},
		{"straight percentage", Coupon{Code: "SAVE15", Percent: 15, MinOrder: shopsight.USD(50)}, 200, 30},
		{"free shipping capped", Coupon{Code: "FREESHIP", MinOrder: shopsight.USD(75), FreeShipping: true}, 400, 15},
		{"free shipping below cap", Coupon{Code: "FREESHIP", MinOrder: shopsight.USD(75), FreeShipping: true}, 80, 8},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.coupon.discount(shopsight.USD(tc.total))
			if !got.Equal(shopsight.USD(tc.want)) {
				t.Errorf("discount(%v) = %v, want %v", tc.total, got, tc.want)
			}
		})
	}
}
