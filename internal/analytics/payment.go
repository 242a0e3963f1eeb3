package analytics

import (
	"sort"

	"salespulse/internal/domain/entity"
	"salespulse/internal/util"
)

// PaymentMethodRow rolls up orders of every status for one payment method.
type PaymentMethodRow struct {
	PaymentMethod     string   `json:"payment_method"`
	TotalOrders       int      `json:"total_orders"`
	TotalRevenue      float64  `json:"total_revenue"`
	CompletedOrders   int      `json:"completed_orders"`
	RefundedOrders    int      `json:"refunded_orders"`
	AvgFeeRatePct     *float64 `json:"avg_fee_rate_pct"`
	CompletionRatePct *float64 `json:"completion_rate_pct"`
	RefundRatePct     *float64 `json:"refund_rate_pct"`
	RevenueSharePct   *float64 `json:"revenue_share_pct"`
	RevenueRank       int      `json:"revenue_rank"`
}

type paymentStatusKey struct {
	method string
	status entity.OrderStatus
}

// BuildPaymentMethods groups all orders by (payment method, status) first and
// rolls the pairs up per method. Completion and refund rates are undefined,
// not zero, for a method with no orders.
func BuildPaymentMethods(ds *Dataset, _ Options) ([]PaymentMethodRow, error) {
	if ds == nil {
		return nil, ErrNilDataset
	}

	type statusAcc struct {
		orders  int
		revenue float64
		fees    float64
	}
	byMethodStatus := make(map[paymentStatusKey]*statusAcc)
	for _, fact := range ds.Orders {
		key := paymentStatusKey{method: fact.Order.PaymentMethod, status: fact.Order.Status}
		a := byMethodStatus[key]
		if a == nil {
			a = &statusAcc{}
			byMethodStatus[key] = a
		}
		a.orders++
		a.revenue += fact.Order.RevenueUSD
		a.fees += fact.Order.Fees
	}

	type methodAcc struct {
		orders    int
		revenue   float64
		fees      float64
		completed int
		refunded  int
	}
	byMethod := make(map[string]*methodAcc)
	var grandTotal float64
	for key, a := range byMethodStatus {
		m := byMethod[key.method]
		if m == nil {
			m = &methodAcc{}
			byMethod[key.method] = m
		}
		m.orders += a.orders
		m.revenue += a.revenue
		m.fees += a.fees
		switch key.status {
		case entity.OrderStatusCompleted:
			m.completed += a.orders
		case entity.OrderStatusRefunded:
			m.refunded += a.orders
		}
		grandTotal += a.revenue
	}

	methods := make([]string, 0, len(byMethod))
	for method := range byMethod {
		methods = append(methods, method)
	}
	sort.Slice(methods, func(i, j int) bool {
		ri, rj := byMethod[methods[i]].revenue, byMethod[methods[j]].revenue
		if ri != rj {
			return ri > rj
		}

		return methods[i] < methods[j]
	})

	rows := make([]PaymentMethodRow, 0, len(methods))
	for _, method := range methods {
		m := byMethod[method]
		rows = append(rows, PaymentMethodRow{
			PaymentMethod:     method,
			TotalOrders:       m.orders,
			TotalRevenue:      util.Round2(m.revenue),
			CompletedOrders:   m.completed,
			RefundedOrders:    m.refunded,
			AvgFeeRatePct:     util.PctOf(m.fees, m.revenue),
			CompletionRatePct: util.PctOf(float64(m.completed), float64(m.orders)),
			RefundRatePct:     util.PctOf(float64(m.refunded), float64(m.orders)),
			RevenueSharePct:   util.PctOf(m.revenue, grandTotal),
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
