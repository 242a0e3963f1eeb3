package analytics

import (
	"testing"
	"time"

	"salespulse/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func regionalSnapshot() *entity.Snapshot {
	emeaOnline := entity.Region{ID: "R-1", Name: "EMEA", Country: "Germany", Channel: "Online", Currency: "USD", FXRateUSD: 1}
	emeaRetail := entity.Region{ID: "R-2", Name: "EMEA", Country: "Germany", Channel: "Retail", Currency: "USD", FXRateUSD: 1}
	apacOnline := entity.Region{ID: "R-3", Name: "APAC", Country: "Japan", Channel: "Online", Currency: "USD", FXRateUSD: 1}

	return &entity.Snapshot{
		Orders: []entity.Order{
			completedOrder("O-1", "C-1", "R-1", day(2024, time.January, 5), 600, 60),
			completedOrder("O-2", "C-2", "R-1", day(2024, time.January, 6), 400, 40),
			completedOrder("O-3", "C-1", "R-2", day(2024, time.January, 7), 300, 30),
			completedOrder("O-4", "C-3", "R-3", day(2024, time.January, 8), 700, 70),
		},
		Customers: []entity.Customer{
			testCustomer("C-1", true),
			testCustomer("C-2", false),
			testCustomer("C-3", false),
		},
		Regions: []entity.Region{emeaOnline, emeaRetail, apacOnline},
	}
}

func TestBuildRegionalPerformance(t *testing.T) {
	t.Parallel()

	ds := NewDataset(regionalSnapshot(), Options{})
	rows, err := BuildRegionalPerformance(ds, Options{})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	byKey := map[string]RegionalPerformanceRow{}
	for _, row := range rows {
		byKey[row.Region+"/"+row.Channel] = row
	}

	online := byKey["EMEA/Online"]
	assert.Equal(t, 2, online.OrderCount)
	assert.InDelta(t, 1000, online.Revenue, 0.001)
	assert.Equal(t, 2, online.UniqueCustomers)
	require.NotNil(t, online.AvgOrderValue)
	assert.InDelta(t, 500, *online.AvgOrderValue, 0.001)
	require.NotNil(t, online.RegionalSharePct)
	assert.InDelta(t, 76.92, *online.RegionalSharePct, 0.01)
	require.NotNil(t, online.GlobalSharePct)
	assert.InDelta(t, 50, *online.GlobalSharePct, 0.001)
	assert.Equal(t, 1, online.RegionalRank)
	assert.Equal(t, 1, online.GlobalRank)

	retail := byKey["EMEA/Retail"]
	assert.Equal(t, 2, retail.RegionalRank)
	assert.Equal(t, 3, retail.GlobalRank)

	apac := byKey["APAC/Online"]
	// Sole group within its region but second globally.
	assert.Equal(t, 1, apac.RegionalRank)
	assert.Equal(t, 2, apac.GlobalRank)
	require.NotNil(t, apac.RegionalSharePct)
	assert.InDelta(t, 100, *apac.RegionalSharePct, 0.001)
}

func TestBuildRegionalPerformance_OrderedByRevenue(t *testing.T) {
	t.Parallel()

	ds := NewDataset(regionalSnapshot(), Options{})
	rows, err := BuildRegionalPerformance(ds, Options{})
	require.NoError(t, err)

	for i := 1; i < len(rows); i++ {
		assert.GreaterOrEqual(t, rows[i-1].Revenue, rows[i].Revenue)
	}
}

func TestBuildRegionalPerformance_NilDataset(t *testing.T) {
	t.Parallel()

	_, err := BuildRegionalPerformance(nil, Options{})
	assert.ErrorIs(t, err, ErrNilDataset)
}
