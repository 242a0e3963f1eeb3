// Package usecase defines the application-layer contracts.
package usecase

import (
	"context"

	"salespulse/internal/analytics"
)

// PipelineUsecase runs the full aggregation pass: load the snapshot, build
// every report section, publish the dashboard document.
type PipelineUsecase interface {
	// Run executes one pipeline pass and returns the published document.
	Run(ctx context.Context) (*analytics.Dashboard, error)
}
