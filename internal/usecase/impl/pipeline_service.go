// Package impl contains the concrete use-case implementations.
package impl

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"salespulse/config"
	"salespulse/internal/analytics"
	"salespulse/internal/domain/repository"
	"salespulse/internal/domain/service"
	"salespulse/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type pipelineService struct {
	snapshots repository.SnapshotRepository
	publisher service.DocumentPublisher
	cfg       *config.Config
	logger    *slog.Logger
}

// NewPipelineService creates the pipeline use case.
func NewPipelineService(
	snapshots repository.SnapshotRepository,
	publisher service.DocumentPublisher,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.PipelineUsecase {
	return &pipelineService{
		snapshots: snapshots,
		publisher: publisher,
		cfg:       cfg,
		logger:    logger,
	}
}

// Run loads the snapshot, fans the report builders out and publishes the
// assembled dashboard. A failing section becomes a warning in the document;
// it never blocks the other sections.
func (s *pipelineService) Run(ctx context.Context) (*analytics.Dashboard, error) {
	started := time.Now()
	runID := uuid.NewString()
	logger := s.logger.With(slog.String("runId", runID))

	snap, err := s.snapshots.LoadSnapshot(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load snapshot")
	}
	if len(snap.Orders) == 0 {
		return nil, repository.ErrEmptySnapshot
	}

	opts := s.options()
	ds := analytics.NewDataset(snap, opts)
	for _, warning := range ds.Warnings {
		logger.Warn("snapshot row skipped",
			slog.String("code", warning.Code),
			slog.String("detail", warning.Detail))
	}

	doc := s.buildSections(ds, opts, logger)
	doc.GeneratedAt = time.Now().UTC()
	doc.RunID = runID
	doc.ReferenceDate = ds.ReferenceDate.Format("2006-01-02")

	if err := s.publisher.Publish(ctx, doc); err != nil {
		return nil, errors.Wrap(err, "publish dashboard document")
	}

	logger.Info("pipeline run finished",
		slog.Int("orders", len(snap.Orders)),
		slog.Int("warnings", len(doc.Warnings)),
		slog.Duration("elapsed", time.Since(started)))

	return doc, nil
}

// options maps the config thresholds onto the analytics options; unset values
// fall back to the analytics defaults.
func (s *pipelineService) options() analytics.Options {
	a := s.cfg.Analytics
	opts := analytics.Options{
		ParetoThresholdPct:  a.ParetoThresholdPct,
		ABCClassAPct:        a.ABCClassAPct,
		ABCClassBPct:        a.ABCClassBPct,
		MinShipmentSample:   a.MinShipmentSample,
		CohortHorizonMonths: a.CohortHorizonMonths,
	}
	if a.ReferenceDate != "" {
		// Validated at config load time.
		opts.ReferenceDate, _ = time.Parse("2006-01-02", a.ReferenceDate)
	}

	return opts
}

// buildSections runs every report builder on its own goroutine. The sections
// share no state: each writes a distinct document field, only the warning
// list is guarded. The reports are isolated failure domains.
func (s *pipelineService) buildSections(ds *analytics.Dataset, opts analytics.Options, logger *slog.Logger) *analytics.Dashboard {
	doc := &analytics.Dashboard{}
	doc.Warnings = append(doc.Warnings, ds.Warnings...)

	var mu sync.Mutex
	fail := func(section string, err error) {
		logger.Warn("report section failed", slog.String("section", section), slog.Any("error", err))
		mu.Lock()
		defer mu.Unlock()
		doc.Warnings = append(doc.Warnings, analytics.Warning{
			Code:   analytics.WarnReportFailed,
			Detail: fmt.Sprintf("%s: %v", section, err),
		})
	}

	sections := []struct {
		name  string
		build func() error
	}{
		{"kpis", func() (err error) { doc.KPIs, err = analytics.BuildKPISummary(ds, opts); return }},
		{"monthly_revenue_trend", func() (err error) { doc.MonthlyRevenueTrend, err = analytics.BuildRevenueTrend(ds, opts); return }},
		{"category_pareto", func() (err error) { doc.CategoryPareto, err = analytics.BuildCategoryPareto(ds, opts); return }},
		{"regional_performance", func() (err error) { doc.RegionalPerformance, err = analytics.BuildRegionalPerformance(ds, opts); return }},
		{"rfm_segments", func() (err error) { doc.RFMSegments, err = analytics.BuildRFMSegments(ds, opts); return }},
		{"product_abc", func() (err error) { doc.ProductABC, err = analytics.BuildProductABC(ds, opts); return }},
		{"day_of_week", func() (err error) { doc.DayOfWeek, err = analytics.BuildDayOfWeek(ds, opts); return }},
		{"monthly_seasonality", func() (err error) { doc.MonthlySeasonality, err = analytics.BuildMonthlySeasonality(ds, opts); return }},
		{"payment_methods", func() (err error) { doc.PaymentMethods, err = analytics.BuildPaymentMethods(ds, opts); return }},
		{"shipping_performance", func() (err error) { doc.ShippingPerformance, err = analytics.BuildShippingPerformance(ds, opts); return }},
		{"prime_comparison", func() (err error) { doc.PrimeComparison, err = analytics.BuildPrimeComparison(ds, opts); return }},
		{"cohort_retention", func() (err error) { doc.CohortRetention, err = analytics.BuildCohortRetention(ds, opts); return }},
		{"top_products", func() (err error) { doc.TopProducts, err = analytics.BuildTopProducts(ds, opts); return }},
		{"top_brands", func() (err error) { doc.TopBrands, err = analytics.BuildTopBrands(ds, opts); return }},
		{"order_status", func() (err error) { doc.OrderStatus, err = analytics.BuildOrderStatus(ds, opts); return }},
	}

	var wg sync.WaitGroup
	for _, section := range sections {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := section.build(); err != nil {
				fail(section.name, err)
			}
		}()
	}
	wg.Wait()

	return doc
}
