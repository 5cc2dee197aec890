package shopsight

import (
	"sort"

	"github.com/etnz/shopsight/date"
)

// DailyEntry aggregates all orders of one calendar day.
type DailyEntry struct {
	Day       date.Date `json:"day"`
	Orders    int       `json:"orders"`
	Units     int       `json:"units"`
	Revenue   Money     `json:"revenue"`
	Discounts Money     `json:"discounts"`
	Profit    Money     `json:"profit"`
}

// DailyProfit groups the dataset by calendar date and returns one entry
// per day with at least one order, sorted by day ascending. Days with
// no orders are absent; use FillGaps when a dense series is wanted.
func DailyProfit(ds *Dataset) []DailyEntry {
	byDay := make(map[date.Date]*DailyEntry)
	for _, r := range ds.Records() {
		day := r.Day()
		e, ok := byDay[day]
		if !ok {
			e = &DailyEntry{Day: day, Revenue: USD(0), Discounts: USD(0), Profit: USD(0)}
			byDay[day] = e
		}
		e.Orders++
		e.Units += r.Quantity
		e.Revenue = e.Revenue.Add(r.Revenue())
		e.Discounts = e.Discounts.Add(r.TotalDiscount)
		e.Profit = e.Profit.Add(r.Profit())
	}

	entries := make([]DailyEntry, 0, len(byDay))
	for _, e := range byDay {
		entries = append(entries, *e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Day.Before(entries[j].Day) })
	return entries
}

// FillGaps returns a dense copy of a daily series where every day
// between the first and last entry is present, absent days carrying
// zero values.
func FillGaps(entries []DailyEntry) []DailyEntry {
	if len(entries) == 0 {
		return entries
	}
	dense := make([]DailyEntry, 0, len(entries))
	next := entries[0].Day
	for _, e := range entries {
		for next.Before(e.Day) {
			dense = append(dense, DailyEntry{Day: next, Revenue: USD(0), Discounts: USD(0), Profit: USD(0)})
			next = next.Add(1)
		}
		dense = append(dense, e)
		next = e.Day.Add(1)
	}
	return dense
}

// PeriodEntry aggregates all orders of one week or month.
type PeriodEntry struct {
	Range   date.Range `json:"range"`
	Label   string     `json:"label"` // e.g. "2025-W31" or "2025-07"
	Orders  int        `json:"orders"`
	Revenue Money      `json:"revenue"`
	Profit  Money      `json:"profit"`
}

// PeriodicProfit rolls the daily series up into weekly or monthly
// buckets, sorted ascending. Daily just relabels the daily series.
func PeriodicProfit(ds *Dataset, p date.Period) []PeriodEntry {
	byStart := make(map[date.Date]*PeriodEntry)
	for _, r := range ds.Records() {
		start := r.Day().StartOf(p)
		e, ok := byStart[start]
		if !ok {
			rng := date.NewRange(start, p)
			e = &PeriodEntry{Range: rng, Label: rng.Identifier(), Revenue: USD(0), Profit: USD(0)}
			byStart[start] = e
		}
		e.Orders++
		e.Revenue = e.Revenue.Add(r.Revenue())
		e.Profit = e.Profit.Add(r.Profit())
	}

	entries := make([]PeriodEntry, 0, len(byStart))
	for _, e := range byStart {
		entries = append(entries, *e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Range.From.Before(entries[j].Range.From) })
	return entries
}
