package shopsight

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// this file contains the CSV codec for order datasets.
// The format is a flat UTF-8 file with a header row; columns may appear
// in any order, unknown columns are ignored.

// Header lists the canonical column ordering used when encoding.
var Header = []string{
	"order_id", "order_date", "customer_id", "customer_name",
	"product_name", "category", "quantity",
	"cost_price", "selling_price", "total_discount", "total_price",
	"coupon_code", "payment_method", "city", "country", "is_fraud",
}

// requiredColumns are the columns a file must declare to be loadable.
// is_fraud is optional: it is engine-assigned when absent.
var requiredColumns = []string{
	"order_id", "order_date", "customer_id", "customer_name",
	"product_name", "category", "quantity",
	"cost_price", "selling_price", "total_discount", "total_price",
	"coupon_code", "payment_method", "city", "country",
}

// timeFormats are the accepted order_date layouts, tried in order.
var timeFormats = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// SchemaError reports a file-level problem: the upload is rejected as a
// whole and any previously loaded dataset is left intact.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Missing, ", "))
}

// RowError reports one malformed row. Such rows are excluded from the
// dataset and surfaced as data-quality warnings, never as a failed load.
type RowError struct {
	Line int // 1-based physical line in the file, header included
	Err  error
}

func (e RowError) Error() string { return fmt.Sprintf("line %d: %v", e.Line, e.Err) }

// row is the loosely-typed form of one CSV record, validated once at
// load time before conversion to a strongly-typed OrderRecord.
type row struct {
	ID            string `validate:"required"`
	Date          string `validate:"required"`
	CustomerID    string `validate:"required"`
	CustomerName  string `validate:"required"`
	ProductName   string `validate:"required"`
	Category      string `validate:"required"`
	Quantity      int    `validate:"gte=1"`
	CostPrice     Money
	SellingPrice  Money
	TotalDiscount Money
	TotalPrice    Money
	CouponCode    string
	PaymentMethod string
	City          string
	Country       string
	Fraud         bool
}

var rowValidator = validator.New()

// DecodeDataset reads a CSV order file. It returns the dataset of valid
// rows in file order, the list of excluded malformed rows, and an error
// only for file-level problems (unreadable input, missing columns).
func DecodeDataset(r io.Reader) (*Dataset, []RowError, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // rows with a wrong field count become RowErrors

	head, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("cannot read CSV header: %w", err)
	}
	index := make(map[string]int, len(head))
	for i, name := range head {
		index[strings.TrimSpace(strings.ToLower(name))] = i
	}
	var missing []string
	for _, name := range requiredColumns {
		if _, ok := index[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, nil, &SchemaError{Missing: missing}
	}

	var (
		records  []OrderRecord
		rowErrs  []RowError
		seen     = make(map[string]struct{})
		line     = 1 // header
		fraudCol = -1
	)
	if i, ok := index["is_fraud"]; ok {
		fraudCol = i
	}

	for {
		line++
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			rowErrs = append(rowErrs, RowError{Line: line, Err: err})
			continue
		}
		rec, err := decodeRow(fields, index, fraudCol)
		if err != nil {
			rowErrs = append(rowErrs, RowError{Line: line, Err: err})
			continue
		}
		if _, dup := seen[rec.ID]; dup {
			rowErrs = append(rowErrs, RowError{Line: line, Err: fmt.Errorf("duplicate order_id %q", rec.ID)})
			continue
		}
		seen[rec.ID] = struct{}{}
		records = append(records, rec)
	}
	return NewDataset(records...), rowErrs, nil
}

func decodeRow(fields []string, index map[string]int, fraudCol int) (OrderRecord, error) {
	field := func(name string) (string, error) {
		i := index[name]
		if i >= len(fields) {
			return "", fmt.Errorf("row too short, no %s column", name)
		}
		return strings.TrimSpace(fields[i]), nil
	}

	var r row
	var err error
	for name, dst := range map[string]*string{
		"order_id":       &r.ID,
		"order_date":     &r.Date,
		"customer_id":    &r.CustomerID,
		"customer_name":  &r.CustomerName,
		"product_name":   &r.ProductName,
		"category":       &r.Category,
		"coupon_code":    &r.CouponCode,
		"payment_method": &r.PaymentMethod,
		"city":           &r.City,
		"country":        &r.Country,
	} {
		if *dst, err = field(name); err != nil {
			return OrderRecord{}, err
		}
	}

	qty, err := field("quantity")
	if err != nil {
		return OrderRecord{}, err
	}
	if r.Quantity, err = strconv.Atoi(qty); err != nil {
		return OrderRecord{}, fmt.Errorf("invalid quantity %q: %w", qty, err)
	}

	for name, dst := range map[string]*Money{
		"cost_price":     &r.CostPrice,
		"selling_price":  &r.SellingPrice,
		"total_discount": &r.TotalDiscount,
		"total_price":    &r.TotalPrice,
	} {
		s, err := field(name)
		if err != nil {
			return OrderRecord{}, err
		}
		if *dst, err = ParseMoney(s); err != nil {
			return OrderRecord{}, fmt.Errorf("invalid %s %q: %w", name, s, err)
		}
	}

	if fraudCol >= 0 && fraudCol < len(fields) {
		switch strings.ToLower(strings.TrimSpace(fields[fraudCol])) {
		case "true", "1", "yes":
			r.Fraud = true
		}
	}

	if err := rowValidator.Struct(r); err != nil {
		return OrderRecord{}, fmt.Errorf("invalid row: %w", err)
	}
	if r.TotalDiscount.IsNegative() {
		return OrderRecord{}, fmt.Errorf("negative total_discount %s", r.TotalDiscount)
	}
	if r.TotalPrice.IsNegative() {
		return OrderRecord{}, fmt.Errorf("negative total_price %s", r.TotalPrice)
	}

	when, err := parseTime(r.Date)
	if err != nil {
		return OrderRecord{}, err
	}

	return OrderRecord{
		ID:            r.ID,
		Time:          when,
		CustomerID:    r.CustomerID,
		CustomerName:  r.CustomerName,
		ProductName:   r.ProductName,
		Category:      r.Category,
		Quantity:      r.Quantity,
		CostPrice:     r.CostPrice,
		SellingPrice:  r.SellingPrice,
		TotalDiscount: r.TotalDiscount,
		TotalPrice:    r.TotalPrice,
		CouponCode:    r.CouponCode,
		PaymentMethod: r.PaymentMethod,
		City:          r.City,
		Country:       r.Country,
		Fraud:         r.Fraud,
	}, nil
}

func parseTime(s string) (time.Time, error) {
	for _, layout := range timeFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid order_date %q", s)
}

// EncodeDataset writes the dataset as CSV using the canonical Header
// ordering.
func EncodeDataset(w io.Writer, ds *Dataset) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("cannot write CSV header: %w", err)
	}
	for _, r := range ds.Records() {
		fields := []string{
			r.ID,
			r.Time.Format(timeFormats[0]),
			r.CustomerID,
			r.CustomerName,
			r.ProductName,
			r.Category,
			strconv.Itoa(r.Quantity),
			r.CostPrice.Amount(),
			r.SellingPrice.Amount(),
			r.TotalDiscount.Amount(),
			r.TotalPrice.Amount(),
			r.CouponCode,
			r.PaymentMethod,
			r.City,
			r.Country,
			strconv.FormatBool(r.Fraud),
		}
		if err := cw.Write(fields); err != nil {
			return fmt.Errorf("cannot write CSV row for order %s: %w", r.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
