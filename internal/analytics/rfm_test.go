package analytics

import (
	"testing"
	"time"

	"salespulse/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_FirstMatchWins(t *testing.T) {
	t.Parallel()

	tests := []struct {
		r, f, m int
		want    string
	}{
		{5, 5, 5, "Champions"},
		{4, 4, 4, "Champions"},
		{3, 4, 1, "Loyal"},
		{4, 5, 3, "Champions"},
		{5, 2, 1, "Potential Loyalists"},
		{5, 1, 1, "New"},
		{4, 1, 5, "Promising"},
		{3, 2, 2, "Need Attention"},
		{3, 1, 1, "About to Sleep"},
		{3, 2, 1, "About to Sleep"},
		{1, 3, 3, "At Risk"},
		{2, 4, 1, "Cannot Lose Them"},
		{1, 1, 5, "Cannot Lose Them"},
		{2, 1, 1, "Hibernating"},
		{1, 1, 1, "Lost"},
		{1, 2, 2, "Lost"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, classify(tt.r, tt.f, tt.m), "r=%d f=%d m=%d", tt.r, tt.f, tt.m)
	}
}

func TestAssignTiers_RecencyInverted(t *testing.T) {
	t.Parallel()

	population := []*rfmCustomer{
		{customer: &entity.Customer{ID: "C-1"}, recencyDays: 1, frequency: 10, monetary: 1000},
		{customer: &entity.Customer{ID: "C-2"}, recencyDays: 30, frequency: 8, monetary: 800},
		{customer: &entity.Customer{ID: "C-3"}, recencyDays: 60, frequency: 6, monetary: 600},
		{customer: &entity.Customer{ID: "C-4"}, recencyDays: 120, frequency: 4, monetary: 400},
		{customer: &entity.Customer{ID: "C-5"}, recencyDays: 300, frequency: 2, monetary: 200},
	}

	assignTiers(population)

	// The most recent customer gets recency tier 5, the stalest tier 1;
	// frequency and monetary tiers rise with the raw metric.
	assert.Equal(t, 5, population[0].r)
	assert.Equal(t, 5, population[0].f)
	assert.Equal(t, 5, population[0].m)
	assert.Equal(t, 1, population[4].r)
	assert.Equal(t, 1, population[4].f)
	assert.Equal(t, 1, population[4].m)
	assert.Equal(t, 3, population[2].r)
	assert.Equal(t, 3, population[2].f)
	assert.Equal(t, 3, population[2].m)
}

func TestBuildRFMSegments(t *testing.T) {
	t.Parallel()

	ref := day(2024, time.June, 30)

	var orders []entity.Order
	customers := []entity.Customer{
		testCustomer("C-1", true),
		testCustomer("C-2", false),
		testCustomer("C-3", false),
		testCustomer("C-4", false),
		testCustomer("C-5", false),
	}

	// C-1: recent and frequent, C-5: one stale order.
	dates := map[string][]time.Time{
		"C-1": {day(2024, time.June, 25), day(2024, time.June, 1), day(2024, time.May, 10), day(2024, time.April, 2), day(2024, time.March, 1)},
		"C-2": {day(2024, time.June, 10), day(2024, time.May, 1), day(2024, time.April, 1), day(2024, time.March, 15)},
		"C-3": {day(2024, time.May, 20), day(2024, time.April, 10), day(2024, time.February, 1)},
		"C-4": {day(2024, time.March, 1), day(2024, time.January, 15)},
		"C-5": {day(2023, time.September, 1)},
	}
	revenue := map[string]float64{"C-1": 500, "C-2": 400, "C-3": 300, "C-4": 200, "C-5": 100}

	for _, c := range customers {
		for _, d := range dates[c.ID] {
			orders = append(orders, completedOrder("O-"+c.ID+"-"+d.Format("20060102"), c.ID, "R-1", d, revenue[c.ID], 10))
		}
	}

	snap := &entity.Snapshot{
		Orders:    orders,
		Customers: customers,
		Regions:   []entity.Region{testRegion("R-1")},
	}

	ds := NewDataset(snap, Options{ReferenceDate: ref})
	rows, err := BuildRFMSegments(ds, Options{})
	require.NoError(t, err)
	require.NotEmpty(t, rows)

	var total, prime int
	for _, row := range rows {
		total += row.CustomerCount
		prime += row.PrimeMembers
	}
	assert.Equal(t, 5, total)
	assert.Equal(t, 1, prime)

	// C-1 scores 5/5/5 and C-2 scores 4/4/4: both are Champions.
	assert.Equal(t, "Champions", rows[0].Segment)
	assert.Equal(t, 2, rows[0].CustomerCount)
	assert.InDelta(t, 2050, rows[0].AvgMonetary, 0.001)
	assert.InDelta(t, 4.5, rows[0].AvgFrequency, 0.001)
	assert.Equal(t, 1, rows[0].PrimeMembers)
}

func TestBuildRFMSegments_RowsFollowRulePriority(t *testing.T) {
	t.Parallel()

	snap := &entity.Snapshot{
		Orders: []entity.Order{
			completedOrder("O-1", "C-1", "R-1", day(2024, time.June, 1), 100, 10),
			completedOrder("O-2", "C-2", "R-1", day(2024, time.January, 1), 50, 5),
		},
		Customers: []entity.Customer{testCustomer("C-1", false), testCustomer("C-2", false)},
		Regions:   []entity.Region{testRegion("R-1")},
	}

	ds := NewDataset(snap, Options{ReferenceDate: day(2024, time.June, 30)})
	rows, err := BuildRFMSegments(ds, Options{})
	require.NoError(t, err)

	// Segment rows come out in rule order, whatever the counts.
	positions := map[string]int{}
	for i, rule := range segmentRules {
		positions[rule.name] = i
	}
	for i := 1; i < len(rows); i++ {
		assert.Less(t, positions[rows[i-1].Segment], positions[rows[i].Segment])
	}
}

func TestBuildRFMSegments_NilDataset(t *testing.T) {
	t.Parallel()

	_, err := BuildRFMSegments(nil, Options{})
	assert.ErrorIs(t, err, ErrNilDataset)
}
