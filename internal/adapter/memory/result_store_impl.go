package memory

import (
	"context"
	"sync"

	"github.com/user/snap-site/internal/entity"
)

// ResultStoreImpl keeps the records of the current run in memory for the
// status server.
type ResultStoreImpl struct {
	mu      sync.RWMutex
	records []entity.CaptureRecord
}

// NewResultStore creates an empty in-memory store.
func NewResultStore() *ResultStoreImpl {
	return &ResultStoreImpl{}
}

// Save appends a copy of the record.
func (s *ResultStoreImpl) Save(_ context.Context, _ entity.Run, record *entity.CaptureRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, *record)
	return nil
}

// List returns the records saved so far, in capture order.
func (s *ResultStoreImpl) List(context.Context) ([]entity.CaptureRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.CaptureRecord, len(s.records))
	copy(out, s.records)
	return out, nil
}

func (s *ResultStoreImpl) Close(context.Context) error { return nil }
