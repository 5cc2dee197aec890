package renderer

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/etnz/shopsight"
	md "github.com/nao1215/markdown"
)

// fraudSampleSize caps how many flagged orders the report lists in
// detail.
const fraudSampleSize = 20

func FraudMarkdown(ds *shopsight.Dataset, report *shopsight.FraudReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Fraud Review")
	doc.PlainText(fmt.Sprintf("%d of %d orders flagged, %s revenue at risk.",
		report.Flagged, ds.Len(), report.RevenueAtRisk.String()))

	doc.H2("Flags by Rule")
	byRule := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Rule", "Orders"},
	}
	for _, code := range shopsight.RuleCodes() {
		byRule.Rows = append(byRule.Rows, []string{
			code.String(),
			strconv.Itoa(report.ByRule[code]),
		})
	}
	doc.Table(byRule)

	if report.Flagged > 0 {
		doc.H2("Flagged Orders")
		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignLeft},
			Header:    []string{"Order", "Date", "Customer", "Total", "Reasons"},
		}
		listed := 0
		for i, r := range ds.Records() {
			a := report.Annotations[i]
			if !a.Suspicious {
				continue
			}
			reasons := make([]string, 0, len(a.Reasons))
			for _, code := range a.Reasons {
				reasons = append(reasons, code.String())
			}
			table.Rows = append(table.Rows, []string{
				r.ID,
				r.Time.Format("2006-01-02 15:04"),
				r.CustomerID,
				r.TotalPrice.String(),
				strings.Join(reasons, ", "),
			})
			if listed++; listed == fraudSampleSize {
				break
			}
		}
		doc.Table(table)
		if report.Flagged > fraudSampleSize {
			doc.PlainText(fmt.Sprintf("... and %d more.", report.Flagged-fraudSampleSize))
		}
	}

	return doc.String()
}
