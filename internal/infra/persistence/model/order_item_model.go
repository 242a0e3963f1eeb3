package model

// OrderItemModel is the GORM-specific struct for the 'order_items' fact table.
type OrderItemModel struct {
	ID           int64   `gorm:"primaryKey;autoIncrement"`
	OrderID      string  `gorm:"type:varchar(64);not null;index"`
	ProductID    string  `gorm:"type:varchar(64);not null;index"`
	UnitsSold    int     `gorm:"not null"`
	UnitPrice    float64 `gorm:"type:decimal(12,2);not null"`
	DiscountRate float64 `gorm:"type:decimal(5,4);not null;default:0"`
	LineSubtotal float64 `gorm:"type:decimal(14,2);not null"`
}

// TableName explicitly sets the table name for GORM.
func (OrderItemModel) TableName() string {
	return "order_items"
}
