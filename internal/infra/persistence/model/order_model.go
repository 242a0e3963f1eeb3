// Package model contains the GORM-specific structs for the star schema tables.
package model

import "time"

// OrderModel is the GORM-specific struct for the 'orders' fact table.
type OrderModel struct {
	ID            string    `gorm:"type:varchar(64);primary_key"`
	CustomerID    string    `gorm:"type:varchar(64);not null;index"`
	RegionID      string    `gorm:"type:varchar(64);not null;index"`
	OrderDate     time.Time `gorm:"type:date;not null;index"`
	Status        string    `gorm:"type:varchar(16);not null;index"`
	PaymentMethod string    `gorm:"type:varchar(64);not null"`
	RevenueLocal  float64   `gorm:"type:decimal(14,2);not null"`
	RevenueUSD    float64   `gorm:"type:decimal(14,2);not null"`
	Profit        float64   `gorm:"type:decimal(14,2);not null"`
	Tax           float64   `gorm:"type:decimal(14,2);not null;default:0"`
	Fees          float64   `gorm:"type:decimal(14,2);not null;default:0"`
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}
