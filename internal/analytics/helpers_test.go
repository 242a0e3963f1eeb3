package analytics

import (
	"time"

	"salespulse/internal/domain/entity"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testRegion(id string) entity.Region {
	return entity.Region{
		ID:        id,
		Name:      "EMEA",
		Country:   "Germany",
		Channel:   "Online",
		Currency:  "USD",
		FXRateUSD: 1,
	}
}

func testCustomer(id string, prime bool) entity.Customer {
	return entity.Customer{
		ID:          id,
		Name:        "Customer " + id,
		Email:       id + "@example.com",
		PrimeMember: prime,
		Country:     "Germany",
	}
}

func testProduct(id, category, brand string) entity.Product {
	return entity.Product{
		ID:       id,
		Name:     "Product " + id,
		Category: category,
		Brand:    brand,
		SKU:      "SKU-" + id,
	}
}

func completedOrder(id, customerID, regionID string, date time.Time, revenueUSD, profit float64) entity.Order {
	return entity.Order{
		ID:            id,
		CustomerID:    customerID,
		RegionID:      regionID,
		OrderDate:     date,
		Status:        entity.OrderStatusCompleted,
		PaymentMethod: "Credit Card",
		RevenueLocal:  revenueUSD,
		RevenueUSD:    revenueUSD,
		Profit:        profit,
	}
}

// line builds a consistent order item: unit price equals the subtotal divided
// by the units, no discount.
func line(orderID, productID string, units int, subtotal float64) entity.OrderItem {
	return entity.OrderItem{
		OrderID:      orderID,
		ProductID:    productID,
		UnitsSold:    units,
		UnitPrice:    subtotal / float64(units),
		DiscountRate: 0,
		LineSubtotal: subtotal,
	}
}
