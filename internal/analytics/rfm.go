package analytics

import (
	"sort"
	"time"

	"salespulse/internal/domain/entity"
	"salespulse/internal/util"
)

// RFMSegmentRow aggregates the customers assigned to one RFM segment.
type RFMSegmentRow struct {
	Segment        string  `json:"segment"`
	CustomerCount  int     `json:"customer_count"`
	AvgMonetary    float64 `json:"avg_monetary"`
	AvgFrequency   float64 `json:"avg_frequency"`
	AvgRecencyDays float64 `json:"avg_recency_days"`
	PrimeMembers   int     `json:"prime_members"`
}

// segmentRules are evaluated top to bottom; the first match wins. Predicate
// ranges deliberately overlap, so the order is load-bearing.
var segmentRules = []struct {
	name  string
	match func(r, f, m int) bool
}{
	{"Champions", func(r, f, m int) bool { return r >= 4 && f >= 4 && m >= 4 }},
	{"Loyal", func(r, f, m int) bool { return r >= 3 && f >= 4 }},
	{"Potential Loyalists", func(r, f, m int) bool { return r >= 4 && f >= 2 }},
	{"New", func(r, f, m int) bool { return r == 5 && f == 1 }},
	{"Promising", func(r, f, m int) bool { return r == 4 && f == 1 }},
	{"Need Attention", func(r, f, m int) bool { return r == 3 && f >= 2 && m >= 2 }},
	{"About to Sleep", func(r, f, m int) bool { return r == 3 }},
	{"At Risk", func(r, f, m int) bool { return r <= 2 && f >= 3 && m >= 3 }},
	{"Cannot Lose Them", func(r, f, m int) bool { return r <= 2 && (f >= 4 || m >= 4) }},
	{"Hibernating", func(r, f, m int) bool { return r == 2 }},
	{"Lost", func(r, f, m int) bool { return true }},
}

type rfmCustomer struct {
	customer    *entity.Customer
	recencyDays int
	frequency   int
	monetary    float64
	r, f, m     int
}

// BuildRFMSegments scores every customer with at least one completed order on
// recency, frequency and monetary value, tiers each metric into five
// equal-count quantile buckets over the whole population (recency inverted, 5
// = most recent) and aggregates customers per segment.
func BuildRFMSegments(ds *Dataset, _ Options) ([]RFMSegmentRow, error) {
	if ds == nil {
		return nil, ErrNilDataset
	}

	byCustomer := make(map[string]*rfmCustomer)
	lastOrder := make(map[string]time.Time)
	for _, fact := range ds.Completed {
		c := byCustomer[fact.Customer.ID]
		if c == nil {
			c = &rfmCustomer{customer: fact.Customer}
			byCustomer[fact.Customer.ID] = c
		}
		c.frequency++
		c.monetary += fact.Order.RevenueUSD
		if fact.Order.OrderDate.After(lastOrder[fact.Customer.ID]) {
			lastOrder[fact.Customer.ID] = fact.Order.OrderDate
		}
	}

	population := make([]*rfmCustomer, 0, len(byCustomer))
	for id, c := range byCustomer {
		c.recencyDays = int(ds.ReferenceDate.Sub(lastOrder[id]).Hours() / 24)
		population = append(population, c)
	}

	assignTiers(population)

	return segmentRows(population), nil
}

// assignTiers buckets each metric independently with NTILE(5). Recency sorts
// ascending so the most recent customers land in the first bucket, which is
// then inverted to tier 5; frequency and monetary tiers rise with the metric.
func assignTiers(population []*rfmCustomer) {
	n := len(population)
	if n == 0 {
		return
	}
	buckets := ntile(5, n)

	byRecency := make([]*rfmCustomer, n)
	copy(byRecency, population)
	sort.SliceStable(byRecency, func(i, j int) bool {
		if byRecency[i].recencyDays != byRecency[j].recencyDays {
			return byRecency[i].recencyDays < byRecency[j].recencyDays
		}

		return byRecency[i].customer.ID < byRecency[j].customer.ID
	})
	for pos, c := range byRecency {
		c.r = 6 - buckets[pos]
	}

	byFrequency := make([]*rfmCustomer, n)
	copy(byFrequency, population)
	sort.SliceStable(byFrequency, func(i, j int) bool {
		if byFrequency[i].frequency != byFrequency[j].frequency {
			return byFrequency[i].frequency < byFrequency[j].frequency
		}

		return byFrequency[i].customer.ID < byFrequency[j].customer.ID
	})
	for pos, c := range byFrequency {
		c.f = buckets[pos]
	}

	byMonetary := make([]*rfmCustomer, n)
	copy(byMonetary, population)
	sort.SliceStable(byMonetary, func(i, j int) bool {
		if byMonetary[i].monetary != byMonetary[j].monetary {
			return byMonetary[i].monetary < byMonetary[j].monetary
		}

		return byMonetary[i].customer.ID < byMonetary[j].customer.ID
	})
	for pos, c := range byMonetary {
		c.m = buckets[pos]
	}
}

func segmentRows(population []*rfmCustomer) []RFMSegmentRow {
	type acc struct {
		count     int
		monetary  float64
		frequency int
		recency   int
		prime     int
	}
	bySegment := make(map[string]*acc)
	for _, c := range population {
		segment := classify(c.r, c.f, c.m)
		a := bySegment[segment]
		if a == nil {
			a = &acc{}
			bySegment[segment] = a
		}
		a.count++
		a.monetary += c.monetary
		a.frequency += c.frequency
		a.recency += c.recencyDays
		if c.customer.PrimeMember {
			a.prime++
		}
	}

	rows := make([]RFMSegmentRow, 0, len(bySegment))
	for _, rule := range segmentRules {
		a, ok := bySegment[rule.name]
		if !ok {
			continue
		}
		rows = append(rows, RFMSegmentRow{
			Segment:        rule.name,
			CustomerCount:  a.count,
			AvgMonetary:    util.Round2(a.monetary / float64(a.count)),
			AvgFrequency:   util.Round2(float64(a.frequency) / float64(a.count)),
			AvgRecencyDays: util.Round2(float64(a.recency) / float64(a.count)),
			PrimeMembers:   a.prime,
		})
	}

	return rows
}

func classify(r, f, m int) string {
	for _, rule := range segmentRules {
		if rule.match(r, f, m) {
			return rule.name
		}
	}

	// Unreachable: the last rule matches everything.
	return "Lost"
}
