// Package renderer turns reports into markdown, for the terminal verbs
// and for the analyst's context.
package renderer

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/etnz/shopsight"
	md "github.com/nao1215/markdown"
)

func SummaryMarkdown(s *shopsight.SummaryReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	title := "Sales Summary"
	if !s.Span.IsZero() {
		title = fmt.Sprintf("Sales Summary %s to %s", s.Span.From, s.Span.To)
	}
	doc.H1(title)

	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{md.Bold("Revenue"), md.Bold(s.Revenue.String())},
		Rows: [][]string{
			{"Profit", s.Profit.SignedString()},
			{"Discounts", s.Discounts.String()},
			{"Orders", strconv.Itoa(s.Orders)},
			{"Units", strconv.Itoa(s.Units)},
			{"Customers", strconv.Itoa(s.Customers)},
			{"Avg. Order Value", s.AvgOrder.String()},
			{"Margin", s.Margin.String()},
			{"Discount Rate", s.DiscountRate.String()},
		},
	})

	return doc.String()
}

func CustomersMarkdown(ranks []shopsight.CustomerRank) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Top Customers")
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight},
		Header:    []string{"Customer", "Name", "Orders", "Spend", "Profit"},
	}
	for _, r := range ranks {
		table.Rows = append(table.Rows, []string{
			r.CustomerID,
			r.CustomerName,
			strconv.Itoa(r.Orders),
			r.Spend.String(),
			r.Profit.SignedString(),
		})
	}
	doc.Table(table)

	return doc.String()
}

func PaymentsMarkdown(shares []shopsight.PaymentShare) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Payment Methods")
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight},
		Header:    []string{"Method", "Orders", "Revenue"},
	}
	for _, s := range shares {
		table.Rows = append(table.Rows, []string{
			s.Method,
			strconv.Itoa(s.Orders),
			s.Revenue.String(),
		})
	}
	doc.Table(table)

	return doc.String()
}
