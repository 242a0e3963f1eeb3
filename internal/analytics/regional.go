package analytics

import (
	"sort"

	"salespulse/internal/util"
)

// RegionalPerformanceRow is one (region, country, channel) group of completed
// orders with two independent ranking scopes: within the parent region and
// across all groups.
type RegionalPerformanceRow struct {
	Region             string   `json:"region"`
	Country            string   `json:"country"`
	Channel            string   `json:"channel"`
	OrderCount         int      `json:"order_count"`
	Revenue            float64  `json:"revenue"`
	Profit             float64  `json:"profit"`
	UniqueCustomers    int      `json:"unique_customers"`
	AvgOrderValue      *float64 `json:"avg_order_value"`
	RevenuePerCustomer *float64 `json:"revenue_per_customer"`
	RegionalSharePct   *float64 `json:"regional_share_pct"`
	GlobalSharePct     *float64 `json:"global_share_pct"`
	RegionalRank       int      `json:"regional_rank"`
	GlobalRank         int      `json:"global_rank"`
}

type regionalKey struct {
	region  string
	country string
	channel string
}

// BuildRegionalPerformance aggregates completed orders by (region, country,
// channel) and computes both ranking scopes from the single pass.
func BuildRegionalPerformance(ds *Dataset, _ Options) ([]RegionalPerformanceRow, error) {
	if ds == nil {
		return nil, ErrNilDataset
	}

	type acc struct {
		revenue   float64
		profit    float64
		orders    int
		customers map[string]struct{}
	}
	groups := make(map[regionalKey]*acc)
	regionTotals := make(map[string]float64)
	var grandTotal float64

	for _, fact := range ds.Completed {
		key := regionalKey{
			region:  fact.Region.Name,
			country: fact.Region.Country,
			channel: fact.Region.Channel,
		}
		a := groups[key]
		if a == nil {
			a = &acc{customers: make(map[string]struct{})}
			groups[key] = a
		}
		a.revenue += fact.Order.RevenueUSD
		a.profit += fact.Order.Profit
		a.orders++
		a.customers[fact.Customer.ID] = struct{}{}

		regionTotals[key.region] += fact.Order.RevenueUSD
		grandTotal += fact.Order.RevenueUSD
	}

	keys := make([]regionalKey, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		ri, rj := groups[keys[i]].revenue, groups[keys[j]].revenue
		if ri != rj {
			return ri > rj
		}
		if keys[i].region != keys[j].region {
			return keys[i].region < keys[j].region
		}
		if keys[i].country != keys[j].country {
			return keys[i].country < keys[j].country
		}

		return keys[i].channel < keys[j].channel
	})

	rows := make([]RegionalPerformanceRow, 0, len(keys))
	globalRevenues := make([]float64, 0, len(keys))
	regionRevenues := make(map[string][]float64)
	regionRowIdx := make(map[string][]int)

	for i, key := range keys {
		a := groups[key]
		rows = append(rows, RegionalPerformanceRow{
			Region:             key.region,
			Country:            key.country,
			Channel:            key.channel,
			OrderCount:         a.orders,
			Revenue:            util.Round2(a.revenue),
			Profit:             util.Round2(a.profit),
			UniqueCustomers:    len(a.customers),
			AvgOrderValue:      util.Ratio(a.revenue, float64(a.orders)),
			RevenuePerCustomer: util.Ratio(a.revenue, float64(len(a.customers))),
			RegionalSharePct:   util.PctOf(a.revenue, regionTotals[key.region]),
			GlobalSharePct:     util.PctOf(a.revenue, grandTotal),
		})
		globalRevenues = append(globalRevenues, a.revenue)
		regionRevenues[key.region] = append(regionRevenues[key.region], a.revenue)
		regionRowIdx[key.region] = append(regionRowIdx[key.region], i)
	}

	for i, rank := range rankDesc(globalRevenues) {
		rows[i].GlobalRank = rank
	}
	for region, revenues := range regionRevenues {
		for pos, rank := range rankDesc(revenues) {
			rows[regionRowIdx[region][pos]].RegionalRank = rank
		}
	}

	return rows, nil
}
