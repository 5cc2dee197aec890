package shopsight

import "sort"

// Rank is one row of a product or category ranking.
type Rank struct {
	Name    string `json:"name"`
	Orders  int    `json:"orders"`
	Units   int    `json:"units"`
	Revenue Money  `json:"revenue"`
	Profit  Money  `json:"profit"`
}

// DefaultTopK is the ranking size used when the caller passes k <= 0.
const DefaultTopK = 10

// TopProducts ranks products by total units sold, descending, ties
// broken by ascending product name so the ranking is deterministic.
// It returns at most k rows (DefaultTopK when k <= 0).
func TopProducts(ds *Dataset, k int) []Rank {
	return topBy(ds, k, func(r OrderRecord) string { return r.ProductName })
}

// TopCategories ranks categories by total units sold, with the same
// ordering rules as TopProducts.
func TopCategories(ds *Dataset, k int) []Rank {
	return topBy(ds, k, func(r OrderRecord) string { return r.Category })
}

func topBy(ds *Dataset, k int, key func(OrderRecord) string) []Rank {
	if k <= 0 {
		k = DefaultTopK
	}
	byName := make(map[string]*Rank)
	for _, r := range ds.Records() {
		name := key(r)
		e, ok := byName[name]
		if !ok {
			e = &Rank{Name: name, Revenue: USD(0), Profit: USD(0)}
			byName[name] = e
		}
		e.Orders++
		e.Units += r.Quantity
		e.Revenue = e.Revenue.Add(r.Revenue())
		e.Profit = e.Profit.Add(r.Profit())
	}

	ranks := make([]Rank, 0, len(byName))
	for _, e := range byName {
		ranks = append(ranks, *e)
	}
	sort.Slice(ranks, func(i, j int) bool {
		if ranks[i].Units != ranks[j].Units {
			return ranks[i].Units > ranks[j].Units
		}
		return ranks[i].Name < ranks[j].Name
	})
	if len(ranks) > k {
		ranks = ranks[:k]
	}
	return ranks
}
