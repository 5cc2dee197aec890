package renderer

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/etnz/shopsight"
	"github.com/etnz/shopsight/date"
	md "github.com/nao1215/markdown"
)

func DailyMarkdown(entries []shopsight.DailyEntry) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Daily Profit & Loss")
	if len(entries) == 0 {
		doc.PlainText("No orders in the selected range.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight},
		Header:    []string{"Day", "Orders", "Revenue", "Discounts", "Profit"},
	}
	for _, e := range entries {
		table.Rows = append(table.Rows, []string{
			e.Day.String(),
			strconv.Itoa(e.Orders),
			e.Revenue.String(),
			e.Discounts.String(),
			e.Profit.SignedString(),
		})
	}
	doc.Table(table)

	return doc.String()
}

func PeriodicMarkdown(entries []shopsight.PeriodEntry, p date.Period) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("%s Profit & Loss", p.Name()))
	if len(entries) == 0 {
		doc.PlainText("No orders in the selected range.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight},
		Header:    []string{p.Name(), "Orders", "Revenue", "Profit"},
	}
	for _, e := range entries {
		table.Rows = append(table.Rows, []string{
			e.Label,
			strconv.Itoa(e.Orders),
			e.Revenue.String(),
			e.Profit.SignedString(),
		})
	}
	doc.Table(table)

	return doc.String()
}
