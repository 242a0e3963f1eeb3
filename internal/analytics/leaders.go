package analytics

import (
	"sort"

	"salespulse/internal/util"
)

// How deep the leader boards go, matching the dashboard layout.
const (
	topProductLimit = 20
	topBrandLimit   = 15
)

// TopProductRow is one entry of the product leader board.
type TopProductRow struct {
	ProductID       string   `json:"product_id"`
	Name            string   `json:"name"`
	Category        string   `json:"category"`
	Brand           string   `json:"brand"`
	Revenue         float64  `json:"revenue"`
	Profit          float64  `json:"profit"`
	UnitsSold       int      `json:"units_sold"`
	OrderCount      int      `json:"order_count"`
	ProfitMarginPct *float64 `json:"profit_margin_pct"`
}

// TopBrandRow is one entry of the brand leader board.
type TopBrandRow struct {
	Brand          string   `json:"brand"`
	Revenue        float64  `json:"revenue"`
	Profit         float64  `json:"profit"`
	UnitsSold      int      `json:"units_sold"`
	OrderCount     int      `json:"order_count"`
	MarketSharePct *float64 `json:"market_share_pct"`
}

// OrderStatusRow is one order status with its share of all orders.
type OrderStatusRow struct {
	Status        string   `json:"status"`
	OrderCount    int      `json:"order_count"`
	Revenue       float64  `json:"revenue"`
	OrderSharePct *float64 `json:"order_share_pct"`
}

// BuildTopProducts returns the highest-revenue products from completed-order
// lines.
func BuildTopProducts(ds *Dataset, _ Options) ([]TopProductRow, error) {
	if ds == nil {
		return nil, ErrNilDataset
	}

	type acc struct {
		name     string
		category string
		brand    string
		revenue  float64
		profit   float64
		units    int
		orders   map[string]struct{}
	}
	byProduct := make(map[string]*acc)
	for _, line := range ds.Lines {
		a := byProduct[line.Product.ID]
		if a == nil {
			a = &acc{
				name:     line.Product.Name,
				category: line.Product.Category,
				brand:    line.Product.Brand,
				orders:   make(map[string]struct{}),
			}
			byProduct[line.Product.ID] = a
		}
		a.revenue += line.SubtotalUSD
		a.profit += line.ProfitUSD
		a.units += line.Item.UnitsSold
		a.orders[line.Order.Order.ID] = struct{}{}
	}

	ids := sortedKeysByRevenue(byProduct, func(a *acc) float64 { return a.revenue })

	limit := topProductLimit
	if len(ids) < limit {
		limit = len(ids)
	}
	rows := make([]TopProductRow, 0, limit)
	for _, id := range ids[:limit] {
		a := byProduct[id]
		rows = append(rows, TopProductRow{
			ProductID:       id,
			Name:            a.name,
			Category:        a.category,
			Brand:           a.brand,
			Revenue:         util.Round2(a.revenue),
			Profit:          util.Round2(a.profit),
			UnitsSold:       a.units,
			OrderCount:      len(a.orders),
			ProfitMarginPct: util.PctOf(a.profit, a.revenue),
		})
	}

	return rows, nil
}

// BuildTopBrands returns the highest-revenue brands from completed-order
// lines.
func BuildTopBrands(ds *Dataset, _ Options) ([]TopBrandRow, error) {
	if ds == nil {
		return nil, ErrNilDataset
	}

	type acc struct {
		revenue float64
		profit  float64
		units   int
		orders  map[string]struct{}
	}
	byBrand := make(map[string]*acc)
	var grandTotal float64
	for _, line := range ds.Lines {
		a := byBrand[line.Product.Brand]
		if a == nil {
			a = &acc{orders: make(map[string]struct{})}
			byBrand[line.Product.Brand] = a
		}
		a.revenue += line.SubtotalUSD
		a.profit += line.ProfitUSD
		a.units += line.Item.UnitsSold
		a.orders[line.Order.Order.ID] = struct{}{}
		grandTotal += line.SubtotalUSD
	}

	brands := sortedKeysByRevenue(byBrand, func(a *acc) float64 { return a.revenue })

	limit := topBrandLimit
	if len(brands) < limit {
		limit = len(brands)
	}
	rows := make([]TopBrandRow, 0, limit)
	for _, brand := range brands[:limit] {
		a := byBrand[brand]
		rows = append(rows, TopBrandRow{
			Brand:          brand,
			Revenue:        util.Round2(a.revenue),
			Profit:         util.Round2(a.profit),
			UnitsSold:      a.units,
			OrderCount:     len(a.orders),
			MarketSharePct: util.PctOf(a.revenue, grandTotal),
		})
	}

	return rows, nil
}

// BuildOrderStatus breaks all orders down by status.
func BuildOrderStatus(ds *Dataset, _ Options) ([]OrderStatusRow, error) {
	if ds == nil {
		return nil, ErrNilDataset
	}

	type acc struct {
		orders  int
		revenue float64
	}
	byStatus := make(map[string]*acc)
	for _, fact := range ds.Orders {
		a := byStatus[fact.Order.Status.String()]
		if a == nil {
			a = &acc{}
			byStatus[fact.Order.Status.String()] = a
		}
		a.orders++
		a.revenue += fact.Order.RevenueUSD
	}

	statuses := make([]string, 0, len(byStatus))
	for status := range byStatus {
		statuses = append(statuses, status)
	}
	sort.Slice(statuses, func(i, j int) bool {
		oi, oj := byStatus[statuses[i]].orders, byStatus[statuses[j]].orders
		if oi != oj {
			return oi > oj
		}

		return statuses[i] < statuses[j]
	})

	rows := make([]OrderStatusRow, 0, len(statuses))
	for _, status := range statuses {
		a := byStatus[status]
		rows = append(rows, OrderStatusRow{
			Status:        status,
			OrderCount:    a.orders,
			Revenue:       util.Round2(a.revenue),
			OrderSharePct: util.PctOf(float64(a.orders), float64(len(ds.Orders))),
		})
	}

	return rows, nil
}

// sortedKeysByRevenue orders map keys by a descending metric, name ascending
// on ties.
func sortedKeysByRevenue[V any](m map[string]V, metric func(V) float64) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		ri, rj := metric(m[keys[i]]), metric(m[keys[j]])
		if ri != rj {
			return ri > rj
		}

		return keys[i] < keys[j]
	})

	return keys
}
