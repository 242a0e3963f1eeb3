package analytics

import (
	"sort"

	"salespulse/internal/domain/entity"
	"salespulse/internal/util"
)

// Composite score weights: delivery rate and on-time rate carry 40 points
// each, delivery speed the remaining 20, normalized against a 30-day window.
// Averages beyond 30 days push the speed term negative; that is intentional
// and must not be clamped.
const (
	shippingRateWeight      = 0.4
	shippingSpeedWeight     = 20.0
	shippingSpeedNormalDays = 30.0
)

// ShippingPerformanceRow is one (courier, shipping method, region) group that
// met the minimum sample size.
type ShippingPerformanceRow struct {
	Courier          string  `json:"courier"`
	ShippingMethod   string  `json:"shipping_method"`
	Region           string  `json:"region"`
	Shipments        int     `json:"shipments"`
	DeliveryRatePct  float64 `json:"delivery_rate_pct"`
	OnTimeRatePct    float64 `json:"on_time_rate_pct"`
	AvgDaysToDeliver float64 `json:"avg_days_to_deliver"`
	PerformanceScore float64 `json:"performance_score"`
}

type shippingKey struct {
	courier string
	method  string
	region  string
}

// BuildShippingPerformance groups shipments by courier, shipping method and
// region, drops under-sampled groups and scores the rest.
func BuildShippingPerformance(ds *Dataset, opts Options) ([]ShippingPerformanceRow, error) {
	if ds == nil {
		return nil, ErrNilDataset
	}
	opts = opts.withDefaults()

	type acc struct {
		shipments int
		delivered int
		onTime    int
		days      float64
	}
	groups := make(map[shippingKey]*acc)
	for _, fact := range ds.Shipments {
		key := shippingKey{
			courier: fact.Record.Courier,
			method:  fact.Record.ShippingMethod,
			region:  fact.Order.Region.Name,
		}
		a := groups[key]
		if a == nil {
			a = &acc{}
			groups[key] = a
		}
		a.shipments++
		if fact.Record.Status == entity.DeliveryStatusDelivered {
			a.delivered++
		}
		if !fact.Record.IsLate {
			a.onTime++
		}
		a.days += fact.Record.DaysToDeliver
	}

	keys := make([]shippingKey, 0, len(groups))
	for key, a := range groups {
		if a.shipments < opts.MinShipmentSample {
			// Insufficient sample, excluded rather than reported.
			continue
		}
		keys = append(keys, key)
	}

	rows := make([]ShippingPerformanceRow, 0, len(keys))
	for _, key := range keys {
		a := groups[key]
		deliveryRate := float64(a.delivered) / float64(a.shipments) * 100
		onTimeRate := float64(a.onTime) / float64(a.shipments) * 100
		avgDays := a.days / float64(a.shipments)

		score := shippingRateWeight*deliveryRate +
			shippingRateWeight*onTimeRate +
			shippingSpeedWeight*(1-avgDays/shippingSpeedNormalDays)

		rows = append(rows, ShippingPerformanceRow{
			Courier:          key.courier,
			ShippingMethod:   key.method,
			Region:           key.region,
			Shipments:        a.shipments,
			DeliveryRatePct:  util.Round2(deliveryRate),
			OnTimeRatePct:    util.Round2(onTimeRate),
			AvgDaysToDeliver: util.Round1(avgDays),
			PerformanceScore: util.Round2(score),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].PerformanceScore != rows[j].PerformanceScore {
			return rows[i].PerformanceScore > rows[j].PerformanceScore
		}
		if rows[i].Courier != rows[j].Courier {
			return rows[i].Courier < rows[j].Courier
		}
		if rows[i].ShippingMethod != rows[j].ShippingMethod {
			return rows[i].ShippingMethod < rows[j].ShippingMethod
		}

		return rows[i].Region < rows[j].Region
	})

	return rows, nil
}
