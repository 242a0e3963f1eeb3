package entity

// Product is a product dimension row.
type Product struct {
	ID        string // Source product identifier.
	Name      string // Display name.
	Category  string // Product category, e.g. "Electronics".
	Brand     string // Brand label.
	SKU       string `validate:"required"` // Stock keeping unit, unique across the snapshot.
	UnitPrice float64
}
