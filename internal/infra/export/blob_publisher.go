// Package export publishes the finished dashboard document.
package export

import (
	"context"
	"encoding/json"
	"log/slog"

	"salespulse/config"
	"salespulse/internal/domain/service"

	"github.com/pkg/errors"
	"gocloud.dev/blob"

	// Registered bucket drivers.
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/s3blob"
)

const contentTypeJSON = "application/json"

type blobPublisher struct {
	bucket    *blob.Bucket
	objectKey string
	pretty    bool
	logger    *slog.Logger
}

// NewBlobPublisher opens the configured bucket and returns a publisher that
// writes the dashboard document as a single JSON object.
func NewBlobPublisher(ctx context.Context, cfg *config.Config, logger *slog.Logger) (service.DocumentPublisher, error) {
	if cfg.Output.BucketURL == "" {
		return nil, errors.New("output.bucketURL is required")
	}

	bucket, err := blob.OpenBucket(ctx, cfg.Output.BucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open bucket %s", cfg.Output.BucketURL)
	}

	return &blobPublisher{
		bucket:    bucket,
		objectKey: cfg.Output.ObjectKey,
		pretty:    cfg.Output.Pretty,
		logger:    logger,
	}, nil
}

// Publish marshals doc and overwrites the configured object key.
func (p *blobPublisher) Publish(ctx context.Context, doc any) error {
	var (
		payload []byte
		err     error
	)
	if p.pretty {
		payload, err = json.MarshalIndent(doc, "", "  ")
	} else {
		payload, err = json.Marshal(doc)
	}
	if err != nil {
		return errors.Wrap(err, "failed to marshal dashboard document")
	}

	writeErr := p.bucket.WriteAll(ctx, p.objectKey, payload, &blob.WriterOptions{
		ContentType: contentTypeJSON,
	})
	if writeErr != nil {
		return errors.Wrapf(writeErr, "failed to write %s", p.objectKey)
	}

	p.logger.Info("dashboard document published",
		slog.String("objectKey", p.objectKey),
		slog.Int("bytes", len(payload)),
	)

	return nil
}

// Close releases the underlying bucket handle.
func (p *blobPublisher) Close() error {
	return errors.WithStack(p.bucket.Close())
}
