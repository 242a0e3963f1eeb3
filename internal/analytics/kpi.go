package analytics

import (
	"fmt"
	"time"

	"salespulse/internal/domain/entity"
	"salespulse/internal/util"
)

// KPISummary is the headline figures block at the top of the dashboard.
type KPISummary struct {
	TotalRevenue    float64  `json:"total_revenue"`
	TotalProfit     float64  `json:"total_profit"`
	TotalOrders     int      `json:"total_orders"`
	TotalUnitsSold  int      `json:"total_units_sold"`
	AvgOrderValue   *float64 `json:"avg_order_value"`
	ProfitMarginPct *float64 `json:"profit_margin_pct"`
	UniqueCustomers int      `json:"unique_customers"`
	UniqueProducts  int      `json:"unique_products"`
	UniqueCountries int      `json:"unique_countries"`
	PrimeMemberPct  *float64 `json:"prime_member_pct"`
	LateDeliveryPct *float64 `json:"late_delivery_pct"`
	DataPeriod      string   `json:"data_period"`
}

// BuildKPISummary computes the headline metrics over completed orders. The
// data period spans all orders regardless of status.
func BuildKPISummary(ds *Dataset, _ Options) (*KPISummary, error) {
	if ds == nil {
		return nil, ErrNilDataset
	}

	kpi := &KPISummary{}

	var revenue, profit float64
	customers := make(map[string]struct{})
	countries := make(map[string]struct{})
	primeOrders := 0
	for _, fact := range ds.Completed {
		revenue += fact.Order.RevenueUSD
		profit += fact.Order.Profit
		customers[fact.Customer.ID] = struct{}{}
		countries[fact.Region.Country] = struct{}{}
		if fact.Customer.PrimeMember {
			primeOrders++
		}
	}

	products := make(map[string]struct{})
	for _, line := range ds.Lines {
		products[line.Product.ID] = struct{}{}
		kpi.TotalUnitsSold += line.Item.UnitsSold
	}

	lateShipments, completedShipments := 0, 0
	for _, fact := range ds.Shipments {
		if fact.Order.Order.Status != entity.OrderStatusCompleted {
			continue
		}
		completedShipments++
		if fact.Record.IsLate {
			lateShipments++
		}
	}

	kpi.TotalRevenue = util.Round2(revenue)
	kpi.TotalProfit = util.Round2(profit)
	kpi.TotalOrders = len(ds.Completed)
	kpi.AvgOrderValue = util.Ratio(revenue, float64(len(ds.Completed)))
	kpi.ProfitMarginPct = util.PctOf(profit, revenue)
	kpi.UniqueCustomers = len(customers)
	kpi.UniqueProducts = len(products)
	kpi.UniqueCountries = len(countries)
	kpi.PrimeMemberPct = util.PctOf(float64(primeOrders), float64(len(ds.Completed)))
	kpi.LateDeliveryPct = util.PctOf(float64(lateShipments), float64(completedShipments))
	kpi.DataPeriod = dataPeriod(ds)

	return kpi, nil
}

func dataPeriod(ds *Dataset) string {
	var min, max time.Time
	for _, fact := range ds.Orders {
		d := fact.Order.OrderDate
		if min.IsZero() || d.Before(min) {
			min = d
		}
		if d.After(max) {
			max = d
		}
	}
	if min.IsZero() {
		return ""
	}

	return fmt.Sprintf("%s - %s", min.Format("Jan 2006"), max.Format("Jan 2006"))
}
