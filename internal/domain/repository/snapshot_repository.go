// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"salespulse/internal/domain/entity"

	"github.com/pkg/errors"
)

// Domain-specific errors for snapshot loading.
var (
	// ErrEmptySnapshot is returned when the source holds no orders at all.
	ErrEmptySnapshot = errors.New("snapshot contains no orders")
)

// SnapshotRepository loads the complete analytics snapshot from a source.
// Implementations exist for Postgres (the star schema) and for CSV export
// directories; both return the same in-memory shape.
type SnapshotRepository interface {
	// LoadSnapshot bulk-reads all fact and dimension rows.
	LoadSnapshot(ctx context.Context) (*entity.Snapshot, error)
}
