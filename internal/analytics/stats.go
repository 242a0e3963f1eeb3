package analytics

import (
	"math"
	"sort"
)

// rankDesc assigns SQL RANK() semantics over values ranked descending: equal
// values share the smallest rank of the tie group and the following rank
// skips. The result is positionally aligned with the input.
func rankDesc(values []float64) []int {
	idx := make([]int, len(values))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return values[idx[a]] > values[idx[b]]
	})

	ranks := make([]int, len(values))
	for pos, i := range idx {
		if pos > 0 && values[i] == values[idx[pos-1]] {
			ranks[i] = ranks[idx[pos-1]]

			continue
		}
		ranks[i] = pos + 1
	}

	return ranks
}

// denseRankDesc assigns DENSE_RANK() semantics over values ranked descending:
// equal values share a rank and subsequent ranks do not skip.
func denseRankDesc(values []float64) []int {
	idx := make([]int, len(values))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return values[idx[a]] > values[idx[b]]
	})

	ranks := make([]int, len(values))
	rank := 0
	for pos, i := range idx {
		if pos == 0 || values[i] != values[idx[pos-1]] {
			rank++
		}
		ranks[i] = rank
	}

	return ranks
}

// ntile partitions n sorted positions into k equal-count buckets, SQL NTILE
// style: the first n%k buckets take one extra member. Returned buckets are
// 1-based and aligned with the sorted position.
func ntile(k, n int) []int {
	if n == 0 || k <= 0 {
		return nil
	}

	buckets := make([]int, n)
	base := n / k
	extra := n % k
	pos := 0
	for b := 1; b <= k && pos < n; b++ {
		size := base
		if b <= extra {
			size++
		}
		for i := 0; i < size; i++ {
			buckets[pos] = b
			pos++
		}
	}

	return buckets
}

// percentileCont computes PERCENTILE_CONT over an ascending-sorted slice:
// linear interpolation between closest ranks at h = (n-1)*p.
func percentileCont(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if n == 1 {
		return sorted[0]
	}

	h := float64(n-1) * p
	lo := int(math.Floor(h))
	hi := int(math.Ceil(h))
	if lo == hi {
		return sorted[lo]
	}

	return sorted[lo] + (h-float64(lo))*(sorted[hi]-sorted[lo])
}

// mean returns the arithmetic mean, zero for an empty slice.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}

// sampleStdDev returns the sample standard deviation (n-1 denominator), or
// nil when fewer than two observations exist.
func sampleStdDev(values []float64) *float64 {
	if len(values) < 2 {
		return nil
	}

	m := mean(values)
	var sum float64
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	sd := math.Sqrt(sum / float64(len(values)-1))

	return &sd
}
