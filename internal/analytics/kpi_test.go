package analytics

import (
	"testing"
	"time"

	"salespulse/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildKPISummary(t *testing.T) {
	t.Parallel()

	cancelled := completedOrder("O-3", "C-2", "R-1", day(2024, time.March, 1), 999, 99)
	cancelled.Status = entity.OrderStatusCancelled

	snap := &entity.Snapshot{
		Orders: []entity.Order{
			completedOrder("O-1", "C-1", "R-1", day(2024, time.January, 5), 200, 50),
			completedOrder("O-2", "C-2", "R-1", day(2024, time.February, 10), 100, 30),
			cancelled,
		},
		Items: []entity.OrderItem{
			line("O-1", "P-1", 3, 200),
			line("O-2", "P-2", 2, 100),
		},
		Products: []entity.Product{
			testProduct("P-1", "Electronics", "Acme"),
			testProduct("P-2", "Home", "Nest"),
		},
		Customers: []entity.Customer{testCustomer("C-1", true), testCustomer("C-2", false)},
		Regions:   []entity.Region{testRegion("R-1")},
		Shipments: []entity.ShipmentRecord{
			{OrderID: "O-1", Courier: "DHL", ShippingMethod: "Express", Status: entity.DeliveryStatusDelivered, IsLate: true, DaysToDeliver: 5},
			{OrderID: "O-2", Courier: "DHL", ShippingMethod: "Express", Status: entity.DeliveryStatusDelivered, IsLate: false, DaysToDeliver: 3},
			{OrderID: "O-3", Courier: "DHL", ShippingMethod: "Express", Status: entity.DeliveryStatusReturned, IsLate: true, DaysToDeliver: 9},
		},
	}

	ds := NewDataset(snap, Options{})
	kpi, err := BuildKPISummary(ds, Options{})
	require.NoError(t, err)

	assert.InDelta(t, 300, kpi.TotalRevenue, 0.001)
	assert.InDelta(t, 80, kpi.TotalProfit, 0.001)
	assert.Equal(t, 2, kpi.TotalOrders)
	assert.Equal(t, 5, kpi.TotalUnitsSold)
	require.NotNil(t, kpi.AvgOrderValue)
	assert.InDelta(t, 150, *kpi.AvgOrderValue, 0.001)
	require.NotNil(t, kpi.ProfitMarginPct)
	assert.InDelta(t, 26.67, *kpi.ProfitMarginPct, 0.001)
	assert.Equal(t, 2, kpi.UniqueCustomers)
	assert.Equal(t, 2, kpi.UniqueProducts)
	assert.Equal(t, 1, kpi.UniqueCountries)
	require.NotNil(t, kpi.PrimeMemberPct)
	assert.InDelta(t, 50, *kpi.PrimeMemberPct, 0.001)
	// Only shipments of completed orders count: one late out of two.
	require.NotNil(t, kpi.LateDeliveryPct)
	assert.InDelta(t, 50, *kpi.LateDeliveryPct, 0.001)
	// The period spans every order, the cancelled March one included.
	assert.Equal(t, "Jan 2024 - Mar 2024", kpi.DataPeriod)
}

func TestBuildKPISummary_EmptyDataset(t *testing.T) {
	t.Parallel()

	ds := NewDataset(&entity.Snapshot{}, Options{})
	kpi, err := BuildKPISummary(ds, Options{})
	require.NoError(t, err)

	assert.Zero(t, kpi.TotalOrders)
	assert.Nil(t, kpi.AvgOrderValue)
	assert.Nil(t, kpi.ProfitMarginPct)
	assert.Nil(t, kpi.LateDeliveryPct)
	assert.Empty(t, kpi.DataPeriod)
}

func TestBuildKPISummary_NilDataset(t *testing.T) {
	t.Parallel()

	_, err := BuildKPISummary(nil, Options{})
	assert.ErrorIs(t, err, ErrNilDataset)
}
