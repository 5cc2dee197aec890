package renderer

import (
	"bytes"
	"strconv"

	"github.com/etnz/shopsight"
	md "github.com/nao1215/markdown"
)

func TopProductsMarkdown(ranks []shopsight.Rank) string {
	return rankMarkdown("Top Products", "Product", ranks)
}

func TopCategoriesMarkdown(ranks []shopsight.Rank) string {
	return rankMarkdown("Top Categories", "Category", ranks)
}

func rankMarkdown(title, column string, ranks []shopsight.Rank) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(title)
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignRight, md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight},
		Header:    []string{"#", column, "Units", "Orders", "Revenue", "Profit"},
	}
	for i, r := range ranks {
		table.Rows = append(table.Rows, []string{
			strconv.Itoa(i + 1),
			r.Name,
			strconv.Itoa(r.Units),
			strconv.Itoa(r.Orders),
			r.Revenue.String(),
			r.Profit.SignedString(),
		})
	}
	doc.Table(table)

	return doc.String()
}
