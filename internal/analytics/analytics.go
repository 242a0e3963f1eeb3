// Package analytics turns a star-schema snapshot into the flat report tables
// consumed by the dashboard renderer. Each report is an independent
// group-by-then-reduce pass over the joined dataset; ranking, running totals
// and quantile tiers are computed with an explicit sort followed by a single
// linear scan carrying running state.
package analytics

import (
	"time"

	"github.com/pkg/errors"
)

// ErrNilDataset is returned when a report builder is invoked without a dataset.
var ErrNilDataset = errors.New("analytics: nil dataset")

// Options holds the tunable thresholds of the report builders.
type Options struct {
	// ReferenceDate anchors RFM recency. Zero means the newest order date
	// in the snapshot.
	ReferenceDate time.Time

	// ParetoThresholdPct splits top performer categories from supporting
	// ones on cumulative revenue share.
	ParetoThresholdPct float64

	// ABCClassAPct and ABCClassBPct are the cumulative sales share cut
	// lines for product classes A and B.
	ABCClassAPct float64
	ABCClassBPct float64

	// MinShipmentSample drops courier groups with fewer shipments.
	MinShipmentSample int

	// CohortHorizonMonths truncates the retention matrix, counting from
	// the cohort's first month (horizon 12 keeps months 0..11).
	CohortHorizonMonths int
}

// DefaultOptions returns the thresholds the dashboard was designed around.
func DefaultOptions() Options {
	return Options{
		ParetoThresholdPct:  80,
		ABCClassAPct:        70,
		ABCClassBPct:        90,
		MinShipmentSample:   10,
		CohortHorizonMonths: 12,
	}
}

// withDefaults fills zero-valued thresholds with the defaults so partially
// populated configs behave.
func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.ParetoThresholdPct <= 0 {
		o.ParetoThresholdPct = def.ParetoThresholdPct
	}
	if o.ABCClassAPct <= 0 {
		o.ABCClassAPct = def.ABCClassAPct
	}
	if o.ABCClassBPct <= 0 {
		o.ABCClassBPct = def.ABCClassBPct
	}
	if o.MinShipmentSample <= 0 {
		o.MinShipmentSample = def.MinShipmentSample
	}
	if o.CohortHorizonMonths <= 0 {
		o.CohortHorizonMonths = def.CohortHorizonMonths
	}

	return o
}

// Warning codes surfaced in the output document.
const (
	// WarnMissingReference marks a fact row referencing an absent dimension key.
	WarnMissingReference = "missing_reference"
	// WarnSnapshotInconsistency marks a row violating a structural invariant.
	WarnSnapshotInconsistency = "snapshot_inconsistency"
	// WarnReportFailed marks a report section that could not be built.
	WarnReportFailed = "report_failed"
)

// Warning is a non-fatal condition encountered while joining or aggregating.
type Warning struct {
	Code   string `json:"code"`
	Detail string `json:"detail"`
}
