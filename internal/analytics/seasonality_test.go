package analytics

import (
	"testing"
	"time"

	"salespulse/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDayOfWeek(t *testing.T) {
	t.Parallel()

	// Two Mondays (100 and 200 across three orders) and one Tuesday (50).
	snap := &entity.Snapshot{
		Orders: []entity.Order{
			completedOrder("O-1", "C-1", "R-1", day(2024, time.January, 1), 60, 6),  // Monday
			completedOrder("O-2", "C-1", "R-1", day(2024, time.January, 1), 40, 4),  // same Monday
			completedOrder("O-3", "C-1", "R-1", day(2024, time.January, 8), 200, 20), // next Monday
			completedOrder("O-4", "C-1", "R-1", day(2024, time.January, 2), 50, 5),  // Tuesday
		},
		Customers: []entity.Customer{testCustomer("C-1", false)},
		Regions:   []entity.Region{testRegion("R-1")},
	}

	ds := NewDataset(snap, Options{})
	rows, err := BuildDayOfWeek(ds, Options{})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	monday := rows[0]
	assert.Equal(t, 1, monday.DayNum)
	assert.Equal(t, "Monday", monday.DayName)
	// Two observed Mondays with three orders between them.
	assert.InDelta(t, 1.5, monday.AvgOrders, 0.001)
	assert.InDelta(t, 150, monday.AvgRevenue, 0.001)
	require.NotNil(t, monday.RevenueStdDev)
	assert.InDelta(t, 70.71, *monday.RevenueStdDev, 0.01)
	// Overall weekday average is (150+50)/2 = 100.
	require.NotNil(t, monday.SeasonalityIndex)
	assert.InDelta(t, 150, *monday.SeasonalityIndex, 0.001)

	tuesday := rows[1]
	assert.Equal(t, 2, tuesday.DayNum)
	assert.InDelta(t, 1, tuesday.AvgOrders, 0.001)
	assert.InDelta(t, 50, tuesday.AvgRevenue, 0.001)
	// A single observed day has no sample deviation.
	assert.Nil(t, tuesday.RevenueStdDev)
	require.NotNil(t, tuesday.SeasonalityIndex)
	assert.InDelta(t, 50, *tuesday.SeasonalityIndex, 0.001)
}

func TestBuildMonthlySeasonality_MergesYears(t *testing.T) {
	t.Parallel()

	snap := &entity.Snapshot{
		Orders: []entity.Order{
			completedOrder("O-1", "C-1", "R-1", day(2023, time.January, 10), 100, 10),
			completedOrder("O-2", "C-1", "R-1", day(2024, time.January, 15), 300, 30),
			completedOrder("O-3", "C-1", "R-1", day(2024, time.February, 1), 40, 4),
		},
		Customers: []entity.Customer{testCustomer("C-1", false)},
		Regions:   []entity.Region{testRegion("R-1")},
	}

	ds := NewDataset(snap, Options{})
	rows, err := BuildMonthlySeasonality(ds, Options{})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	jan := rows[0]
	assert.Equal(t, 1, jan.MonthNum)
	assert.Equal(t, "January", jan.MonthName)
	// Both Januaries merge: two observed days, 400 total.
	assert.InDelta(t, 400, jan.TotalRevenue, 0.001)
	assert.InDelta(t, 200, jan.AvgDailyRevenue, 0.001)

	feb := rows[1]
	assert.Equal(t, 2, feb.MonthNum)
	assert.InDelta(t, 40, feb.TotalRevenue, 0.001)
}

func TestBuildDayOfWeek_NilDataset(t *testing.T) {
	t.Parallel()

	_, err := BuildDayOfWeek(nil, Options{})
	assert.ErrorIs(t, err, ErrNilDataset)

	_, err = BuildMonthlySeasonality(nil, Options{})
	assert.ErrorIs(t, err, ErrNilDataset)
}
