package cmd

import (
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/shopsight"
	"github.com/etnz/shopsight/date"
)

// multiFlag collects a repeatable string flag.
type multiFlag []string

func (m *multiFlag) String() string { return strings.Join(*m, ",") }
func (m *multiFlag) Set(v string) error {
	*m = append(*m, v)
	return nil
}

// filterFlags holds the restriction flags shared by the reporting
// verbs.
type filterFlags struct {
	from, to   string
	categories multiFlag
	payments   multiFlag
	countries  multiFlag
	min, max   float64
	fraud      bool
}

func (ff *filterFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&ff.from, "from", "", "Start date (inclusive), e.g. 2025-07-01")
	f.StringVar(&ff.to, "to", "", "End date (inclusive)")
	f.Var(&ff.categories, "category", "Restrict to a category (repeatable)")
	f.Var(&ff.payments, "payment", "Restrict to a payment method (repeatable)")
	f.Var(&ff.countries, "country", "Restrict to a country (repeatable)")
	f.Float64Var(&ff.min, "min", 0, "Minimum order total")
	f.Float64Var(&ff.max, "max", 0, "Maximum order total")
	f.BoolVar(&ff.fraud, "fraud", false, "Keep only fraud-flagged orders")
}

// Filter builds the domain filter from the parsed flags.
func (ff *filterFlags) Filter() (shopsight.Filter, error) {
	var f shopsight.Filter
	if ff.from != "" {
		d, err := date.Parse(ff.from)
		if err != nil {
			return f, fmt.Errorf("invalid -from: %w", err)
		}
		f.Range.From = d
	}
	if ff.to != "" {
		d, err := date.Parse(ff.to)
		if err != nil {
			return f, fmt.Errorf("invalid -to: %w", err)
		}
		f.Range.To = d
	}
	f.Categories = ff.categories
	f.PaymentMethods = ff.payments
	f.Countries = ff.countries
	if ff.min > 0 {
		f.MinTotal = shopsight.USD(ff.min)
	}
	if ff.max > 0 {
		f.MaxTotal = shopsight.USD(ff.max)
	}
	if ff.fraud {
		yes := true
		f.Fraud = &yes
	}
	return f, nil
}

// loadView loads the order file and applies the filter flags.
func loadView(path string, ff *filterFlags) (*shopsight.Dataset, error) {
	ds, err := loadDataset(path)
	if err != nil {
		return nil, err
	}
	f, err := ff.Filter()
	if err != nil {
		return nil, err
	}
	return ds.Select(f), nil
}
