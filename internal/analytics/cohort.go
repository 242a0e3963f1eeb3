package analytics

import (
	"sort"
	"time"

	"salespulse/internal/util"
)

// CohortRetentionRow is one cell of the retention matrix: the share of a
// first-purchase-month cohort still active N months later.
type CohortRetentionRow struct {
	CohortMonth      string  `json:"cohort_month"` // ISO calendar month of first completed order
	CohortSize       int     `json:"cohort_size"`
	MonthsSinceFirst int     `json:"months_since_first"`
	ActiveCustomers  int     `json:"active_customers"`
	RetentionPct     float64 `json:"retention_pct"`
}

// BuildCohortRetention assigns each customer to the calendar month of their
// first completed order and counts distinct active customers per
// (cohort, months-since-first) pair. Month arithmetic is year*12+month delta;
// day of month is deliberately ignored, matching the source semantics. The
// matrix is truncated to the configured horizon.
func BuildCohortRetention(ds *Dataset, opts Options) ([]CohortRetentionRow, error) {
	if ds == nil {
		return nil, ErrNilDataset
	}
	opts = opts.withDefaults()

	firstOrder := make(map[string]time.Time)
	for _, fact := range ds.Completed {
		first, ok := firstOrder[fact.Customer.ID]
		if !ok || fact.Order.OrderDate.Before(first) {
			firstOrder[fact.Customer.ID] = fact.Order.OrderDate
		}
	}

	type cohortKey struct {
		cohort string
		months int
	}
	active := make(map[cohortKey]map[string]struct{})
	cohortSizes := make(map[string]map[string]struct{})

	for _, fact := range ds.Completed {
		first := firstOrder[fact.Customer.ID]
		cohort := first.Format("2006-01")

		months := monthDelta(first, fact.Order.OrderDate)
		if months >= opts.CohortHorizonMonths {
			continue
		}

		key := cohortKey{cohort: cohort, months: months}
		if active[key] == nil {
			active[key] = make(map[string]struct{})
		}
		active[key][fact.Customer.ID] = struct{}{}

		if cohortSizes[cohort] == nil {
			cohortSizes[cohort] = make(map[string]struct{})
		}
		cohortSizes[cohort][fact.Customer.ID] = struct{}{}
	}

	keys := make([]cohortKey, 0, len(active))
	for key := range active {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].cohort != keys[j].cohort {
			return keys[i].cohort < keys[j].cohort
		}

		return keys[i].months < keys[j].months
	})

	rows := make([]CohortRetentionRow, 0, len(keys))
	for _, key := range keys {
		size := len(cohortSizes[key.cohort])
		rows = append(rows, CohortRetentionRow{
			CohortMonth:      key.cohort,
			CohortSize:       size,
			MonthsSinceFirst: key.months,
			ActiveCustomers:  len(active[key]),
			RetentionPct:     util.Round2(float64(len(active[key])) / float64(size) * 100),
		})
	}

	return rows, nil
}

// monthDelta returns the whole-month difference between two dates at month
// granularity: (year delta)*12 + month delta.
func monthDelta(from, to time.Time) int {
	return (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
}
