package analytics

import (
	"salespulse/internal/util"
)

// Membership bucket labels.
const (
	MembershipPrime    = "Prime"
	MembershipNonPrime = "Non-Prime"
)

// PrimeComparisonRow is one membership bucket of the two-row comparison.
type PrimeComparisonRow struct {
	Membership        string   `json:"membership"`
	CustomerCount     int      `json:"customer_count"`
	OrderCount        int      `json:"order_count"`
	OrdersPerCustomer *float64 `json:"orders_per_customer"`
	Revenue           float64  `json:"revenue"`
	Profit            float64  `json:"profit"`
	ProfitMarginPct   *float64 `json:"profit_margin_pct"`
	UnitsPerOrder     *float64 `json:"units_per_order"`
}

// BuildPrimeComparison joins customers, completed orders and line items into
// the Prime vs Non-Prime two-row comparison. Straight ratios, no ranking.
func BuildPrimeComparison(ds *Dataset, _ Options) ([]PrimeComparisonRow, error) {
	if ds == nil {
		return nil, ErrNilDataset
	}

	type acc struct {
		customers map[string]struct{}
		orders    int
		revenue   float64
		profit    float64
		units     int
	}
	buckets := map[bool]*acc{
		true:  {customers: make(map[string]struct{})},
		false: {customers: make(map[string]struct{})},
	}

	for _, fact := range ds.Completed {
		a := buckets[fact.Customer.PrimeMember]
		a.customers[fact.Customer.ID] = struct{}{}
		a.orders++
		a.revenue += fact.Order.RevenueUSD
		a.profit += fact.Order.Profit
	}
	for _, line := range ds.Lines {
		buckets[line.Order.Customer.PrimeMember].units += line.Item.UnitsSold
	}

	rows := make([]PrimeComparisonRow, 0, 2)
	for _, prime := range []bool{true, false} {
		a := buckets[prime]
		label := MembershipNonPrime
		if prime {
			label = MembershipPrime
		}
		rows = append(rows, PrimeComparisonRow{
			Membership:        label,
			CustomerCount:     len(a.customers),
			OrderCount:        a.orders,
			OrdersPerCustomer: util.Ratio(float64(a.orders), float64(len(a.customers))),
			Revenue:           util.Round2(a.revenue),
			Profit:            util.Round2(a.profit),
			ProfitMarginPct:   util.PctOf(a.profit, a.revenue),
			UnitsPerOrder:     util.Ratio(float64(a.units), float64(a.orders)),
		})
	}

	return rows, nil
}
