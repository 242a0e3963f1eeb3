package entity

// Snapshot is the complete, self-consistent set of fact and dimension rows the
// pipeline runs over. It is immutable for the duration of a run.
type Snapshot struct {
	Orders    []Order
	Items     []OrderItem
	Products  []Product
	Customers []Customer
	Regions   []Region
	Shipments []ShipmentRecord
}
