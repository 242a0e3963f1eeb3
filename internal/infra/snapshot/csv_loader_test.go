package snapshot

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"salespulse/internal/domain/entity"
	"salespulse/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFixture(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestCSVLoader_LoadOrders(t *testing.T) {
	tmpDir := t.TempDir()

	ordersCSV := `id,customer_id,region_id,order_date,status,payment_method,revenue_local,revenue_usd,profit,tax,fees
O-1,C-1,R-1,2025-03-14,Completed,Credit Card,120.50,130.00,40.00,10.00,3.50
O-2,C-2,R-1,2025-03-15,Refunded,PayPal,75.00,80.00,-5.00,6.00,2.00
`
	writeFixture(t, tmpDir, "orders.csv", ordersCSV)

	loader := NewCSVLoader(tmpDir, newTestLogger())
	orders, err := loader.LoadOrders()
	require.NoError(t, err)

	require.Len(t, orders, 2)
	assert.Equal(t, "O-1", orders[0].ID)
	assert.Equal(t, "C-1", orders[0].CustomerID)
	assert.Equal(t, entity.OrderStatusCompleted, orders[0].Status)
	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), orders[0].OrderDate)
	assert.InDelta(t, 130.00, orders[0].RevenueUSD, 0.001)
	assert.InDelta(t, 3.50, orders[0].Fees, 0.001)

	assert.Equal(t, entity.OrderStatusRefunded, orders[1].Status)
	assert.InDelta(t, -5.00, orders[1].Profit, 0.001)
}

func TestCSVLoader_LoadOrders_RejectsUnknownStatus(t *testing.T) {
	tmpDir := t.TempDir()

	ordersCSV := `id,customer_id,region_id,order_date,status,payment_method,revenue_local,revenue_usd,profit,tax,fees
O-1,C-1,R-1,2025-03-14,Shipped,Credit Card,120.50,130.00,40.00,10.00,3.50
`
	writeFixture(t, tmpDir, "orders.csv", ordersCSV)

	loader := NewCSVLoader(tmpDir, newTestLogger())
	_, err := loader.LoadOrders()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown status")
}

func TestCSVLoader_LoadOrderItems(t *testing.T) {
	tmpDir := t.TempDir()

	itemsCSV := `order_id,product_id,units_sold,unit_price,discount_rate,line_subtotal
O-1,P-1,3,10.00,0.10,27.00
O-1,P-2,1,99.99,0,99.99
`
	writeFixture(t, tmpDir, "order_items.csv", itemsCSV)

	loader := NewCSVLoader(tmpDir, newTestLogger())
	items, err := loader.LoadOrderItems()
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Equal(t, "P-1", items[0].ProductID)
	assert.Equal(t, 3, items[0].UnitsSold)
	assert.InDelta(t, 0.10, items[0].DiscountRate, 0.0001)
	assert.InDelta(t, 27.00, items[0].LineSubtotal, 0.001)
}

func TestCSVLoader_LoadOrderItems_RejectsNonPositiveUnits(t *testing.T) {
	tmpDir := t.TempDir()

	itemsCSV := `order_id,product_id,units_sold,unit_price,discount_rate,line_subtotal
O-1,P-1,0,10.00,0.10,0.00
`
	writeFixture(t, tmpDir, "order_items.csv", itemsCSV)

	loader := NewCSVLoader(tmpDir, newTestLogger())
	_, err := loader.LoadOrderItems()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "order_items.csv line 2")
}

func TestCSVLoader_LoadRegions_RejectsZeroFXRate(t *testing.T) {
	tmpDir := t.TempDir()

	regionsCSV := `id,name,country,channel,currency,fx_rate_usd
R-1,EMEA,Germany,Online,EUR,0
`
	writeFixture(t, tmpDir, "regions.csv", regionsCSV)

	loader := NewCSVLoader(tmpDir, newTestLogger())
	_, err := loader.LoadRegions()
	require.Error(t, err)
}

func TestCSVLoader_LoadShipments_OptionalFile(t *testing.T) {
	tmpDir := t.TempDir()

	loader := NewCSVLoader(tmpDir, newTestLogger())
	shipments, err := loader.LoadShipments()
	require.NoError(t, err)
	assert.Empty(t, shipments)
}

func TestCSVLoader_LoadSnapshot(t *testing.T) {
	tmpDir := t.TempDir()

	writeFixture(t, tmpDir, "orders.csv", `id,customer_id,region_id,order_date,status,payment_method,revenue_local,revenue_usd,profit,tax,fees
O-1,C-1,R-1,2025-03-14,Completed,Credit Card,120.50,130.00,40.00,10.00,3.50
`)
	writeFixture(t, tmpDir, "order_items.csv", `order_id,product_id,units_sold,unit_price,discount_rate,line_subtotal
O-1,P-1,3,10.00,0.10,27.00
`)
	writeFixture(t, tmpDir, "products.csv", `id,name,category,brand,sku,unit_price
P-1,Wireless Mouse,Electronics,Logi,SKU-001,10.00
`)
	writeFixture(t, tmpDir, "customers.csv", `id,name,email,prime_member,country
C-1,Ada,ada@example.com,true,Germany
`)
	writeFixture(t, tmpDir, "regions.csv", `id,name,country,channel,currency,fx_rate_usd
R-1,EMEA,Germany,Online,EUR,1.08
`)
	writeFixture(t, tmpDir, "shipments.csv", `order_id,courier,shipping_method,status,is_late,days_to_deliver
O-1,DHL,Express,Delivered,false,2.5
`)

	loader := NewCSVLoader(tmpDir, newTestLogger())
	snapshot, err := loader.LoadSnapshot(context.Background())
	require.NoError(t, err)

	assert.Len(t, snapshot.Orders, 1)
	assert.Len(t, snapshot.Items, 1)
	assert.Len(t, snapshot.Products, 1)
	assert.Len(t, snapshot.Customers, 1)
	assert.Len(t, snapshot.Regions, 1)
	require.Len(t, snapshot.Shipments, 1)
	assert.Equal(t, entity.DeliveryStatusDelivered, snapshot.Shipments[0].Status)
	assert.True(t, snapshot.Customers[0].PrimeMember)
}

func TestCSVLoader_LoadSnapshot_EmptyOrders(t *testing.T) {
	tmpDir := t.TempDir()

	writeFixture(t, tmpDir, "orders.csv", "id,customer_id,region_id,order_date,status,payment_method,revenue_local,revenue_usd,profit,tax,fees\n")
	writeFixture(t, tmpDir, "order_items.csv", "order_id,product_id,units_sold,unit_price,discount_rate,line_subtotal\n")
	writeFixture(t, tmpDir, "products.csv", "id,name,category,brand,sku,unit_price\n")
	writeFixture(t, tmpDir, "customers.csv", "id,name,email,prime_member,country\n")
	writeFixture(t, tmpDir, "regions.csv", "id,name,country,channel,currency,fx_rate_usd\n")

	loader := NewCSVLoader(tmpDir, newTestLogger())
	_, err := loader.LoadSnapshot(context.Background())
	require.ErrorIs(t, err, repository.ErrEmptySnapshot)
}
