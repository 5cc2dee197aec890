package shopsight

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

const sampleCSV = `order_id,order_date,customer_id,customer_name,product_name,category,quantity,cost_price,selling_price,total_discount,total_price,coupon_code,payment_method,city,country,is_fraud
A1,2025-07-16 09:30:00,C1,Mary Smith,Laptop Pro,Electronics,1,400,800,0,800,,Credit Card,Portland,USA,false
A2,2025-07-16 10:00:00,C2,John Davis,T-Shirt Basic,Clothing,2,5,15,3,27,SAVE15,PayPal,London,UK,false
`

func TestDecodeDataset(t *testing.T) {
	ds, warns, err := DecodeDataset(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("DecodeDataset() returned unexpected error: %v", err)
	}
	if len(warns) != 0 {
		t.Fatalf("DecodeDataset() returned %d warnings, want 0: %v", len(warns), warns)
	}
	if ds.Len() != 2 {
		t.Fatalf("DecodeDataset() loaded %d rows, want 2", ds.Len())
	}

	r := ds.Record(0)
	if r.ID != "A1" || r.Category != "Electronics" || r.Quantity != 1 {
		t.Errorf("first record mismatch: %+v", r)
	}
	if !r.TotalPrice.Equal(USD(800)) {
		t.Errorf("TotalPrice = %v, want $800.00", r.TotalPrice)
	}
	if r.Time.Hour() != 9 || r.Time.Minute() != 30 {
		t.Errorf("Time = %v, want 09:30", r.Time)
	}
	if got := ds.Record(1).CouponCode; got != "SAVE15" {
		t.Errorf("CouponCode = %q, want SAVE15", got)
	}
}

func TestDecodeDataset_ColumnOrderIsFree(t *testing.T) {
	shuffled := `country,order_id,order_date,customer_id,customer_name,product_name,category,quantity,cost_price,selling_price,total_discount,total_price,coupon_code,payment_method,city
USA,A1,2025-07-16 09:30:00,C1,Mary Smith,Laptop Pro,Electronics,1,400,800,0,800,,Credit Card,Portland
`
	ds, _, err := DecodeDataset(strings.NewReader(shuffled))
	if err != nil {
		t.Fatalf("DecodeDataset() returned unexpected error: %v", err)
	}
	if ds.Len() != 1 || ds.Record(0).Country != "USA" {
		t.Errorf("shuffled columns decoded wrong: %+v", ds.Record(0))
	}
	if ds.Record(0).Fraud {
		t.Error("is_fraud column is optional and should default to false")
	}
}

func TestDecodeDataset_SchemaError(t *testing.T) {
	// quantity and total_price columns are missing.
	bad := `order_id,order_date,customer_id,customer_name,product_name,category,cost_price,selling_price,total_discount,coupon_code,payment_method,city,country
A1,2025-07-16 09:30:00,C1,Mary Smith,Laptop Pro,Electronics,400,800,0,,Credit Card,Portland,USA
`
	_, _, err := DecodeDataset(strings.NewReader(bad))
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("DecodeDataset() error = %v, want a *SchemaError", err)
	}
	if len(schemaErr.Missing) != 2 {
		t.Errorf("Missing = %v, want [quantity total_price]", schemaErr.Missing)
	}
}

func TestDecodeDataset_RowErrors(t *testing.T) {
	testCases := []struct {
		name string
		row  string
	}{
		{"zero quantity", `A9,2025-07-16 09:30:00,C1,Mary Smith,Laptop Pro,Electronics,0,400,800,0,800,,Credit Card,Portland,USA,false`},
		{"negative total", `A9,2025-07-16 09:30:00,C1,Mary Smith,Laptop Pro,Electronics,1,400,800,0,-10,,Credit Card,Portland,USA,false`},
		{"non-numeric price", `A9,2025-07-16 09:30:00,C1,Mary Smith,Laptop Pro,Electronics,1,400,eight hundred,0,800,,Credit Card,Portland,USA,false`},
		{"bad date", `A9,yesterday,C1,Mary Smith,Laptop Pro,Electronics,1,400,800,0,800,,Credit Card,Portland,USA,false`},
		{"missing customer id", `A9,2025-07-16 09:30:00,,Mary Smith,Laptop Pro,Electronics,1,400,800,0,800,,Credit Card,Portland,USA,false`},
		{"duplicate order id", `A1,2025-07-16 09:30:00,C1,Mary Smith,Laptop Pro,Electronics,1,400,800,0,800,,Credit Card,Portland,USA,false`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			in := sampleCSV + tc.row + "\n"
			ds, warns, err := DecodeDataset(strings.NewReader(in))
			if err != nil {
				t.Fatalf("a malformed row must not abort the load, got %v", err)
			}
			if ds.Len() != 2 {
				t.Errorf("loaded %d rows, want 2 (bad row excluded)", ds.Len())
			}
			if len(warns) != 1 {
				t.Fatalf("got %d warnings, want 1: %v", len(warns), warns)
			}
			if warns[0].Line != 4 {
				t.Errorf("warning line = %d, want 4", warns[0].Line)
			}
		})
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	a := order("o1", "C1", at(9, 30), 100, 60, 2, 10)
	a.CouponCode = "WELCOME10"
	b := order("o2", "C2", at(15, 45), 50, 30, 1, 0)
	b.Fraud = true
	src := NewDataset(a, b)

	var buf bytes.Buffer
	if err := EncodeDataset(&buf, src); err != nil {
		t.Fatalf("EncodeDataset() returned unexpected error: %v", err)
	}

	got, warns, err := DecodeDataset(&buf)
	if err != nil || len(warns) != 0 {
		t.Fatalf("DecodeDataset() err=%v warns=%v", err, warns)
	}
	if got.Len() != 2 {
		t.Fatalf("round trip lost rows: %d, want 2", got.Len())
	}
	r := got.Record(0)
	if r.ID != "o1" || r.CouponCode != "WELCOME10" || !r.TotalPrice.Equal(a.TotalPrice) || !r.Time.Equal(a.Time) {
		t.Errorf("round trip record mismatch: %+v", r)
	}
	if !got.Record(1).Fraud {
		t.Error("fraud label must survive the round trip")
	}
}
