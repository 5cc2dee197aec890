package shopsight

import (
	"iter"
	"maps"
	"slices"

	"github.com/etnz/shopsight/date"
)

// Dataset is an in-memory table of order records.
//
// Rows keep the order they were created or loaded in, and the table is
// never mutated after construction: every derived view (filter,
// aggregation, fraud report) is computed from it, not applied to it.
type Dataset struct {
	records []OrderRecord
}

// NewDataset creates a dataset from records, keeping their order.
func NewDataset(records ...OrderRecord) *Dataset {
	return &Dataset{records: records}
}

// Len returns the number of records.
func (d *Dataset) Len() int { return len(d.records) }

// Record returns the record at row index i.
func (d *Dataset) Record(i int) OrderRecord { return d.records[i] }

// Records returns an iterator that yields each record in row order.
// When predicates are given, only records matching at least one of them
// are yielded.
func (d *Dataset) Records(predicates ...func(OrderRecord) bool) iter.Seq2[int, OrderRecord] {
	return func(yield func(int, OrderRecord) bool) {
		for i, r := range d.records {
			if len(predicates) > 0 {
				accept := false
				for _, p := range predicates {
					if p(r) {
						accept = true
						break
					}
				}
				if !accept {
					continue
				}
			}
			if !yield(i, r) {
				return
			}
		}
	}
}

// Span returns the calendar range covered by the dataset, and false when
// the dataset is empty.
func (d *Dataset) Span() (date.Range, bool) {
	if len(d.records) == 0 {
		return date.Range{}, false
	}
	r := date.Range{From: d.records[0].Day(), To: d.records[0].Day()}
	for _, rec := range d.records[1:] {
		day := rec.Day()
		if day.Before(r.From) {
			r.From = day
		}
		if day.After(r.To) {
			r.To = day
		}
	}
	return r, true
}

// Select returns a new dataset holding the records matching the filter,
// in their source order. The source dataset is left untouched.
func (d *Dataset) Select(f Filter) *Dataset {
	out := make([]OrderRecord, 0, len(d.records))
	for _, r := range d.records {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return &Dataset{records: out}
}

// Categories returns the sorted set of categories present in the dataset.
func (d *Dataset) Categories() []string {
	return d.distinct(func(r OrderRecord) string { return r.Category })
}

// PaymentMethods returns the sorted set of payment methods present in the dataset.
func (d *Dataset) PaymentMethods() []string {
	return d.distinct(func(r OrderRecord) string { return r.PaymentMethod })
}

// Countries returns the sorted set of countries present in the dataset.
func (d *Dataset) Countries() []string {
	return d.distinct(func(r OrderRecord) string { return r.Country })
}

func (d *Dataset) distinct(key func(OrderRecord) string) []string {
	visited := make(map[string]struct{})
	for _, r := range d.records {
		if k := key(r); k != "" {
			visited[k] = struct{}{}
		}
	}
	values := slices.Collect(maps.Keys(visited))
	slices.Sort(values)
	return values
}
