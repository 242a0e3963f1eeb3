package analytics

import (
	"sort"

	"salespulse/internal/util"
)

// RevenueTrendRow is one calendar month of completed-order revenue.
type RevenueTrendRow struct {
	Month             string   `json:"month"` // ISO calendar month, e.g. "2024-01"
	TotalRevenue      float64  `json:"total_revenue"`
	OrderCount        int      `json:"order_count"`
	TotalProfit       float64  `json:"total_profit"`
	MovingAvg3M       float64  `json:"moving_avg_3m"`
	MoMGrowthPct      *float64 `json:"mom_growth_pct"` // null for the first month or a zero prior month
	CumulativeRevenue float64  `json:"cumulative_revenue"`
	RevenueRank       int      `json:"revenue_rank"`
}

// BuildRevenueTrend aggregates completed orders into a monthly series with a
// trailing three-month moving average, month-over-month growth, running total
// and revenue rank.
func BuildRevenueTrend(ds *Dataset, _ Options) ([]RevenueTrendRow, error) {
	if ds == nil {
		return nil, ErrNilDataset
	}

	type acc struct {
		revenue float64
		profit  float64
		orders  int
	}
	byMonth := make(map[string]*acc)
	for _, fact := range ds.Completed {
		key := fact.Order.OrderDate.Format("2006-01")
		a := byMonth[key]
		if a == nil {
			a = &acc{}
			byMonth[key] = a
		}
		a.revenue += fact.Order.RevenueUSD
		a.profit += fact.Order.Profit
		a.orders++
	}

	months := make([]string, 0, len(byMonth))
	for key := range byMonth {
		months = append(months, key)
	}
	sort.Strings(months)

	rows := make([]RevenueTrendRow, 0, len(months))
	var cumulative float64
	for i, key := range months {
		a := byMonth[key]
		cumulative += a.revenue

		// Trailing window: current month plus up to two preceding ones.
		windowSum := a.revenue
		windowLen := 1
		for j := i - 1; j >= 0 && j >= i-2; j-- {
			windowSum += byMonth[months[j]].revenue
			windowLen++
		}

		var growth *float64
		if i > 0 {
			prev := byMonth[months[i-1]].revenue
			growth = util.PctOf(a.revenue-prev, prev)
		}

		rows = append(rows, RevenueTrendRow{
			Month:             key,
			TotalRevenue:      util.Round2(a.revenue),
			OrderCount:        a.orders,
			TotalProfit:       util.Round2(a.profit),
			MovingAvg3M:       util.Round2(windowSum / float64(windowLen)),
			MoMGrowthPct:      growth,
			CumulativeRevenue: util.Round2(cumulative),
		})
	}

	revenues := make([]float64, len(rows))
	for i := range rows {
		revenues[i] = rows[i].TotalRevenue
	}
	for i, rank := range rankDesc(revenues) {
		rows[i].RevenueRank = rank
	}

	return rows, nil
}
