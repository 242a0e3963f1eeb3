package analytics

import (
	"sort"
	"time"

	"salespulse/internal/util"
)

// DayOfWeekRow is one weekday bucket of daily-aggregated completed revenue.
type DayOfWeekRow struct {
	DayNum           int      `json:"day_num"` // 0=Sunday .. 6=Saturday
	DayName          string   `json:"day_name"`
	AvgOrders        float64  `json:"avg_orders"`
	AvgRevenue       float64  `json:"avg_revenue"`
	RevenueStdDev    *float64 `json:"revenue_std_dev"` // null with fewer than two observed days
	SeasonalityIndex *float64 `json:"seasonality_index"`
}

// MonthlySeasonalityRow is one calendar-month bucket, all years merged.
type MonthlySeasonalityRow struct {
	MonthNum        int     `json:"month_num"` // 1=January .. 12=December
	MonthName       string  `json:"month_name"`
	AvgDailyRevenue float64 `json:"avg_daily_revenue"`
	TotalRevenue    float64 `json:"total_revenue"`
}

type dailyAgg struct {
	date    time.Time
	revenue float64
	orders  int
}

// BuildDayOfWeek groups completed-order revenue by calendar day first, so a
// day with many orders counts once in the variance, then buckets the daily
// series by weekday. The seasonality index compares each weekday's average
// revenue to the mean across the observed weekday buckets, scaled to 100.
func BuildDayOfWeek(ds *Dataset, _ Options) ([]DayOfWeekRow, error) {
	if ds == nil {
		return nil, ErrNilDataset
	}

	daily := aggregateDaily(ds)

	type bucket struct {
		revenues []float64
		orders   int
	}
	byDay := make(map[int]*bucket)
	for _, d := range daily {
		dow := int(d.date.Weekday())
		b := byDay[dow]
		if b == nil {
			b = &bucket{}
			byDay[dow] = b
		}
		b.revenues = append(b.revenues, d.revenue)
		b.orders += d.orders
	}

	days := make([]int, 0, len(byDay))
	var avgSum float64
	for dow, b := range byDay {
		days = append(days, dow)
		avgSum += mean(b.revenues)
	}
	sort.Ints(days)
	overallAvg := avgSum / float64(len(byDay))

	rows := make([]DayOfWeekRow, 0, len(days))
	for _, dow := range days {
		b := byDay[dow]
		avgRevenue := mean(b.revenues)

		var stdDev *float64
		if sd := sampleStdDev(b.revenues); sd != nil {
			stdDev = util.Float64Ptr(util.Round2(*sd))
		}

		rows = append(rows, DayOfWeekRow{
			DayNum:           dow,
			DayName:          time.Weekday(dow).String(),
			AvgOrders:        util.Round2(float64(b.orders) / float64(len(b.revenues))),
			AvgRevenue:       util.Round2(avgRevenue),
			RevenueStdDev:    stdDev,
			SeasonalityIndex: util.PctOf(avgRevenue, overallAvg),
		})
	}

	return rows, nil
}

// BuildMonthlySeasonality buckets the daily series by month number,
// independent of year: all Januaries merge.
func BuildMonthlySeasonality(ds *Dataset, _ Options) ([]MonthlySeasonalityRow, error) {
	if ds == nil {
		return nil, ErrNilDataset
	}

	daily := aggregateDaily(ds)

	type bucket struct {
		revenue float64
		days    int
	}
	byMonth := make(map[int]*bucket)
	for _, d := range daily {
		m := int(d.date.Month())
		b := byMonth[m]
		if b == nil {
			b = &bucket{}
			byMonth[m] = b
		}
		b.revenue += d.revenue
		b.days++
	}

	months := make([]int, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Ints(months)

	rows := make([]MonthlySeasonalityRow, 0, len(months))
	for _, m := range months {
		b := byMonth[m]
		rows = append(rows, MonthlySeasonalityRow{
			MonthNum:        m,
			MonthName:       time.Month(m).String(),
			AvgDailyRevenue: util.Round2(b.revenue / float64(b.days)),
			TotalRevenue:    util.Round2(b.revenue),
		})
	}

	return rows, nil
}

// aggregateDaily collapses completed orders into one row per calendar day.
func aggregateDaily(ds *Dataset) []dailyAgg {
	byDate := make(map[string]*dailyAgg)
	for _, fact := range ds.Completed {
		key := fact.Order.OrderDate.Format("2006-01-02")
		d := byDate[key]
		if d == nil {
			year, month, day := fact.Order.OrderDate.Date()
			d = &dailyAgg{date: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
			byDate[key] = d
		}
		d.revenue += fact.Order.RevenueUSD
		d.orders++
	}

	daily := make([]dailyAgg, 0, len(byDate))
	for _, d := range byDate {
		daily = append(daily, *d)
	}
	sort.Slice(daily, func(i, j int) bool { return daily[i].date.Before(daily[j].date) })

	return daily
}
