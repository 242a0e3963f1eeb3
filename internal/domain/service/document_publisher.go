// Package service defines interfaces for infrastructure collaborators used by
// the use-case layer.
package service

import "context"

// DocumentPublisher writes the finished dashboard document to its destination.
// The consuming renderer only ever reads what this publishes; it never talks
// back to the pipeline.
type DocumentPublisher interface {
	// Publish serializes the document and writes it under the configured key.
	Publish(ctx context.Context, doc any) error

	// Close releases any resources held by the publisher.
	Close() error
}
