package analytics

import (
	"fmt"
	"testing"
	"time"

	"salespulse/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// shippingSnapshot builds ten shipments for one courier group: 7 delivered,
// 6 on time, 100 delivery days in total.
func shippingSnapshot() *entity.Snapshot {
	snap := &entity.Snapshot{
		Customers: []entity.Customer{testCustomer("C-1", false)},
		Regions:   []entity.Region{testRegion("R-1")},
	}

	for i := 0; i < 10; i++ {
		id := fmt.Sprintf("O-%d", i)
		snap.Orders = append(snap.Orders, completedOrder(id, "C-1", "R-1", day(2024, time.January, 1+i), 100, 10))

		status := entity.DeliveryStatusDelivered
		if i >= 7 {
			status = entity.DeliveryStatusInTransit
		}
		snap.Shipments = append(snap.Shipments, entity.ShipmentRecord{
			OrderID:        id,
			Courier:        "DHL",
			ShippingMethod: "Express",
			Status:         status,
			IsLate:         i >= 6,
			DaysToDeliver:  10,
		})
	}

	return snap
}

func TestBuildShippingPerformance_Score(t *testing.T) {
	t.Parallel()

	ds := NewDataset(shippingSnapshot(), Options{})
	rows, err := BuildShippingPerformance(ds, Options{MinShipmentSample: 10})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "DHL", row.Courier)
	assert.Equal(t, "Express", row.ShippingMethod)
	assert.Equal(t, "EMEA", row.Region)
	assert.Equal(t, 10, row.Shipments)
	assert.InDelta(t, 70, row.DeliveryRatePct, 0.001)
	assert.InDelta(t, 60, row.OnTimeRatePct, 0.001)
	assert.InDelta(t, 10, row.AvgDaysToDeliver, 0.001)
	// 0.4*70 + 0.4*60 + 20*(1 - 10/30) = 65.33
	assert.InDelta(t, 65.33, row.PerformanceScore, 0.001)
}

func TestBuildShippingPerformance_SlowGroupScoresNegativeSpeedTerm(t *testing.T) {
	t.Parallel()

	snap := shippingSnapshot()
	for i := range snap.Shipments {
		snap.Shipments[i].DaysToDeliver = 45
	}

	ds := NewDataset(snap, Options{})
	rows, err := BuildShippingPerformance(ds, Options{MinShipmentSample: 10})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	// 0.4*70 + 0.4*60 + 20*(1 - 45/30) = 52 - 10 = 42, no clamping.
	assert.InDelta(t, 42, rows[0].PerformanceScore, 0.001)
}

func TestBuildShippingPerformance_MinimumSample(t *testing.T) {
	t.Parallel()

	ds := NewDataset(shippingSnapshot(), Options{})
	rows, err := BuildShippingPerformance(ds, Options{MinShipmentSample: 11})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestBuildShippingPerformance_NilDataset(t *testing.T) {
	t.Parallel()

	_, err := BuildShippingPerformance(nil, Options{})
	assert.ErrorIs(t, err, ErrNilDataset)
}
