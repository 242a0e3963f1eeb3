// Package entity contains the core business objects of the project.
package entity

import "time"

// OrderStatus represents the lifecycle state of an order in the snapshot.
type OrderStatus string

const (
	// OrderStatusCompleted indicates a fulfilled order; only these count toward revenue.
	OrderStatusCompleted OrderStatus = "Completed"
	// OrderStatusRefunded indicates the order was paid and later refunded.
	OrderStatusRefunded OrderStatus = "Refunded"
	// OrderStatusCancelled indicates the order was cancelled before fulfilment.
	OrderStatusCancelled OrderStatus = "Cancelled"
	// OrderStatusPending indicates the order has not settled yet.
	OrderStatusPending OrderStatus = "Pending"
)

// String returns the string representation of the OrderStatus.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid checks if the OrderStatus is a valid value.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusCompleted, OrderStatusRefunded, OrderStatusCancelled, OrderStatusPending:
		return true
	default:
		return false
	}
}

// Order is a sales fact row. Orders are read-only inputs to the pipeline;
// RevenueUSD and Profit are expected to be populated for every order that
// participates in revenue reporting.
type Order struct {
	ID            string      // Source order identifier.
	CustomerID    string      // Reference into the customer dimension.
	RegionID      string      // Reference into the region dimension.
	OrderDate     time.Time   // Calendar date the order was placed.
	Status        OrderStatus // Completed, Refunded, Cancelled or Pending.
	PaymentMethod string      // Payment method label, e.g. "Credit Card".
	RevenueLocal  float64     // Order revenue in the region's local currency.
	RevenueUSD    float64     // Order revenue converted to USD.
	Profit        float64     // Order profit in USD.
	Tax           float64     // Tax amount in USD.
	Fees          float64     // Payment processing fees in USD.
}
