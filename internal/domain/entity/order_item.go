package entity

// OrderItem is a line-item fact row belonging to an order.
// LineSubtotal must equal UnitPrice × UnitsSold × (1 − DiscountRate) within
// rounding tolerance; rows that break the invariant are excluded from
// aggregation with a logged warning.
type OrderItem struct {
	OrderID      string  // Reference to the parent order.
	ProductID    string  // Reference into the product dimension.
	UnitsSold    int     `validate:"gt=0"` // Units sold on the line, always positive.
	UnitPrice    float64 // Price per unit in the order's local currency.
	DiscountRate float64 `validate:"gte=0,lte=1"` // Fractional discount, 0–1.
	LineSubtotal float64 // Extended line amount in local currency.
}

// ExpectedSubtotal recomputes the line amount from its components.
func (i OrderItem) ExpectedSubtotal() float64 {
	return i.UnitPrice * float64(i.UnitsSold) * (1 - i.DiscountRate)
}
