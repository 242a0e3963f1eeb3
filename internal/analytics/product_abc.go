package analytics

import (
	"sort"

	"salespulse/internal/util"
)

// ABC classes and velocity bands.
const (
	ABCClassA = "A"
	ABCClassB = "B"
	ABCClassC = "C"

	VelocitySlow   = "Slow"
	VelocityMedium = "Medium"
	VelocityFast   = "Fast"
)

// ProductABCRow is one product with its ABC revenue class and its velocity
// band. The two classifications come from different orderings (cumulative
// sales share vs unit-volume percentiles) and are independent of each other.
type ProductABCRow struct {
	ProductID          string   `json:"product_id"`
	Name               string   `json:"name"`
	Category           string   `json:"category"`
	TotalSales         float64  `json:"total_sales"`
	UnitsSold          int      `json:"units_sold"`
	SalesSharePct      *float64 `json:"sales_share_pct"`
	CumulativeSharePct *float64 `json:"cumulative_share_pct"`
	ABCClass           string   `json:"abc_class"`
	Velocity           string   `json:"velocity"`
}

// BuildProductABC aggregates completed-order lines per product, classifies
// each product A/B/C on cumulative sales share (the row that crosses a cut
// line is included in the upper class) and bands unit velocity against the
// population's 25th and 75th percentiles (continuous interpolation).
func BuildProductABC(ds *Dataset, opts Options) ([]ProductABCRow, error) {
	if ds == nil {
		return nil, ErrNilDataset
	}
	opts = opts.withDefaults()

	type acc struct {
		name     string
		category string
		sales    float64
		units    int
	}
	byProduct := make(map[string]*acc)
	for _, line := range ds.Lines {
		a := byProduct[line.Product.ID]
		if a == nil {
			a = &acc{name: line.Product.Name, category: line.Product.Category}
			byProduct[line.Product.ID] = a
		}
		a.sales += line.SubtotalUSD
		a.units += line.Item.UnitsSold
	}

	ids := make([]string, 0, len(byProduct))
	var grandTotal float64
	unitVolumes := make([]float64, 0, len(byProduct))
	for id, a := range byProduct {
		ids = append(ids, id)
		grandTotal += a.sales
		unitVolumes = append(unitVolumes, float64(a.units))
	}
	sort.Slice(ids, func(i, j int) bool {
		si, sj := byProduct[ids[i]].sales, byProduct[ids[j]].sales
		if si != sj {
			return si > sj
		}

		return ids[i] < ids[j]
	})

	sort.Float64s(unitVolumes)
	p25 := percentileCont(unitVolumes, 0.25)
	p75 := percentileCont(unitVolumes, 0.75)

	rows := make([]ProductABCRow, 0, len(ids))
	var cumulative float64
	for _, id := range ids {
		a := byProduct[id]

		// Class boundaries use the share accumulated before this row, so
		// the product that crosses a cut line stays in the upper class.
		var prevSharePct float64
		if grandTotal > 0 {
			prevSharePct = cumulative / grandTotal * 100
		}
		class := ABCClassC
		switch {
		case prevSharePct < opts.ABCClassAPct:
			class = ABCClassA
		case prevSharePct < opts.ABCClassBPct:
			class = ABCClassB
		}

		cumulative += a.sales

		velocity := VelocityMedium
		switch {
		case float64(a.units) < p25:
			velocity = VelocitySlow
		case float64(a.units) > p75:
			velocity = VelocityFast
		}

		rows = append(rows, ProductABCRow{
			ProductID:          id,
			Name:               a.name,
			Category:           a.category,
			TotalSales:         util.Round2(a.sales),
			UnitsSold:          a.units,
			SalesSharePct:      util.PctOf(a.sales, grandTotal),
			CumulativeSharePct: util.PctOf(cumulative, grandTotal),
			ABCClass:           class,
			Velocity:           velocity,
		})
	}

	return rows, nil
}
