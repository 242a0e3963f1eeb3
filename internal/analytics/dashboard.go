package analytics

import "time"

// Dashboard is the single consumer-facing document. Section and field names
// are stable: the renderer binds to them by name.
type Dashboard struct {
	GeneratedAt   time.Time `json:"generated_at"`
	RunID         string    `json:"run_id"`
	ReferenceDate string    `json:"reference_date"` // ISO date anchoring recency

	KPIs *KPISummary `json:"kpis,omitempty"`

	MonthlyRevenueTrend []RevenueTrendRow        `json:"monthly_revenue_trend"`
	CategoryPareto      []CategoryParetoRow      `json:"category_pareto"`
	RegionalPerformance []RegionalPerformanceRow `json:"regional_performance"`
	RFMSegments         []RFMSegmentRow          `json:"rfm_segments"`
	ProductABC          []ProductABCRow          `json:"product_abc"`
	DayOfWeek           []DayOfWeekRow           `json:"day_of_week"`
	MonthlySeasonality  []MonthlySeasonalityRow  `json:"monthly_seasonality"`
	PaymentMethods      []PaymentMethodRow       `json:"payment_methods"`
	ShippingPerformance []ShippingPerformanceRow `json:"shipping_performance"`
	PrimeComparison     []PrimeComparisonRow     `json:"prime_comparison"`
	CohortRetention     []CohortRetentionRow     `json:"cohort_retention"`

	TopProducts []TopProductRow  `json:"top_products"`
	TopBrands   []TopBrandRow    `json:"top_brands"`
	OrderStatus []OrderStatusRow `json:"order_status"`

	Warnings []Warning `json:"warnings,omitempty"`
}
