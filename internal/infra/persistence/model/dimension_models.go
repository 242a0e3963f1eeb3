package model

// ProductModel is the GORM-specific struct for the 'products' dimension table.
type ProductModel struct {
	ID        string  `gorm:"type:varchar(64);primary_key"`
	Name      string  `gorm:"type:varchar(255);not null"`
	Category  string  `gorm:"type:varchar(100);not null;index"`
	Brand     string  `gorm:"type:varchar(100);not null"`
	SKU       string  `gorm:"type:varchar(64);not null;uniqueIndex"`
	UnitPrice float64 `gorm:"type:decimal(12,2);not null"`
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}

// CustomerModel is the GORM-specific struct for the 'customers' dimension table.
type CustomerModel struct {
	ID          string `gorm:"type:varchar(64);primary_key"`
	Name        string `gorm:"type:varchar(255);not null"`
	Email       string `gorm:"type:varchar(255);not null"`
	PrimeMember bool   `gorm:"not null;default:false"`
	Country     string `gorm:"type:varchar(100)"`
}

// TableName explicitly sets the table name for GORM.
func (CustomerModel) TableName() string {
	return "customers"
}

// RegionModel is the GORM-specific struct for the 'regions' dimension table.
type RegionModel struct {
	ID        string  `gorm:"type:varchar(64);primary_key"`
	Name      string  `gorm:"type:varchar(100);not null"`
	Country   string  `gorm:"type:varchar(100);not null"`
	Channel   string  `gorm:"type:varchar(100);not null"`
	Currency  string  `gorm:"type:varchar(8);not null"`
	FXRateUSD float64 `gorm:"type:decimal(12,6);not null"`
}

// TableName explicitly sets the table name for GORM.
func (RegionModel) TableName() string {
	return "regions"
}

// ShipmentModel is the GORM-specific struct for the 'shipments' fact table.
type ShipmentModel struct {
	OrderID        string  `gorm:"type:varchar(64);primary_key"`
	Courier        string  `gorm:"type:varchar(100);not null"`
	ShippingMethod string  `gorm:"type:varchar(100);not null"`
	Status         string  `gorm:"type:varchar(16);not null"`
	IsLate         bool    `gorm:"not null;default:false"`
	DaysToDeliver  float64 `gorm:"type:decimal(6,2);not null;default:0"`
}

// TableName explicitly sets the table name for GORM.
func (ShipmentModel) TableName() string {
	return "shipments"
}
