package repository

import (
	"context"

	"github.com/user/snap-site/internal/entity"
)

// ResultStore persists capture records outside the PNG files themselves.
type ResultStore interface {
	// Save stores one record. A record for the same run and suffix is replaced.
	Save(ctx context.Context, run entity.Run, record *entity.CaptureRecord) error
	// Close flushes pending writes and releases connections.
	Close(ctx context.Context) error
}

// CaptureLister lists the records saved during the current run.
type CaptureLister interface {
	List(ctx context.Context) ([]entity.CaptureRecord, error)
}
