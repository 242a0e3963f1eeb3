package entity

// DeliveryStatus represents the terminal state of a shipment.
type DeliveryStatus string

const (
	// DeliveryStatusDelivered indicates the shipment reached the customer.
	DeliveryStatusDelivered DeliveryStatus = "Delivered"
	// DeliveryStatusInTransit indicates the shipment is still moving.
	DeliveryStatusInTransit DeliveryStatus = "InTransit"
	// DeliveryStatusReturned indicates the shipment came back to the seller.
	DeliveryStatusReturned DeliveryStatus = "Returned"
	// DeliveryStatusLost indicates the shipment was lost by the courier.
	DeliveryStatusLost DeliveryStatus = "Lost"
)

// String returns the string representation of the DeliveryStatus.
func (s DeliveryStatus) String() string {
	return string(s)
}

// IsValid checks if the DeliveryStatus is a valid value.
func (s DeliveryStatus) IsValid() bool {
	switch s {
	case DeliveryStatusDelivered, DeliveryStatusInTransit, DeliveryStatusReturned, DeliveryStatusLost:
		return true
	default:
		return false
	}
}

// ShipmentRecord is a shipping fact row; at most one exists per order.
type ShipmentRecord struct {
	OrderID        string         // Reference to the shipped order.
	Courier        string         // Courier label, e.g. "DHL".
	ShippingMethod string         // Shipping method label, e.g. "Express".
	Status         DeliveryStatus // Terminal delivery state.
	IsLate         bool           // Whether the delivery missed its promised date.
	DaysToDeliver  float64        // Days from dispatch to delivery.
}
