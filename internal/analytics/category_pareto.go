package analytics

import (
	"sort"

	"salespulse/internal/util"
)

// Pareto classifications.
const (
	ParetoTopPerformer = "Top Performer"
	ParetoSupporting   = "Supporting Category"
)

// CategoryParetoRow is one product category with its revenue concentration
// metrics, ordered by revenue descending.
type CategoryParetoRow struct {
	Category           string   `json:"category"`
	Revenue            float64  `json:"revenue"`
	Profit             float64  `json:"profit"`
	OrderCount         int      `json:"order_count"`
	UnitsSold          int      `json:"units_sold"`
	RevenueSharePct    *float64 `json:"revenue_share_pct"`
	CumulativeSharePct *float64 `json:"cumulative_share_pct"`
	ProfitMarginPct    *float64 `json:"profit_margin_pct"`
	RevenueRank        int      `json:"revenue_rank"` // dense rank, ties share and do not skip
	Classification     string   `json:"classification"`
}

// BuildCategoryPareto aggregates completed-order lines per category and
// classifies categories by cumulative revenue share against the Pareto
// threshold.
func BuildCategoryPareto(ds *Dataset, opts Options) ([]CategoryParetoRow, error) {
	if ds == nil {
		return nil, ErrNilDataset
	}
	opts = opts.withDefaults()

	type acc struct {
		revenue float64
		profit  float64
		units   int
		orders  map[string]struct{}
	}
	byCategory := make(map[string]*acc)
	for _, line := range ds.Lines {
		a := byCategory[line.Product.Category]
		if a == nil {
			a = &acc{orders: make(map[string]struct{})}
			byCategory[line.Product.Category] = a
		}
		a.revenue += line.SubtotalUSD
		a.profit += line.ProfitUSD
		a.units += line.Item.UnitsSold
		a.orders[line.Order.Order.ID] = struct{}{}
	}

	names := make([]string, 0, len(byCategory))
	var grandTotal float64
	for name, a := range byCategory {
		names = append(names, name)
		grandTotal += a.revenue
	}
	sort.Slice(names, func(i, j int) bool {
		ri, rj := byCategory[names[i]].revenue, byCategory[names[j]].revenue
		if ri != rj {
			return ri > rj
		}

		return names[i] < names[j]
	})

	rows := make([]CategoryParetoRow, 0, len(names))
	var cumulative float64
	for _, name := range names {
		a := byCategory[name]
		cumulative += a.revenue

		cumShare := util.PctOf(cumulative, grandTotal)
		classification := ParetoSupporting
		if cumShare != nil && *cumShare <= opts.ParetoThresholdPct {
			classification = ParetoTopPerformer
		}

		rows = append(rows, CategoryParetoRow{
			Category:           name,
			Revenue:            util.Round2(a.revenue),
			Profit:             util.Round2(a.profit),
			OrderCount:         len(a.orders),
			UnitsSold:          a.units,
			RevenueSharePct:    util.PctOf(a.revenue, grandTotal),
			CumulativeSharePct: cumShare,
			ProfitMarginPct:    util.PctOf(a.profit, a.revenue),
			Classification:     classification,
		})
	}

	revenues := make([]float64, len(rows))
	for i := range rows {
		revenues[i] = rows[i].Revenue
	}
	for i, rank := range denseRankDesc(revenues) {
		rows[i].RevenueRank = rank
	}

	return rows, nil
}
