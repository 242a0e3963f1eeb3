package entity

// Customer is a customer dimension row.
type Customer struct {
	ID          string // Source customer identifier.
	Name        string // Display name.
	Email       string // Contact email, used only as a display attribute.
	PrimeMember bool   // Whether the customer holds a Prime membership.
	Country     string // Customer's home country.
}
