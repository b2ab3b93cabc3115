package usecase

import (
	"context"
	"errors"

	"github.com/user/snap-site/internal/entity"
	"github.com/user/snap-site/internal/repository"
)

// ResultStores fans records out to every configured store.
type ResultStores []repository.ResultStore

// Save writes record to every store and joins their errors.
func (s ResultStores) Save(ctx context.Context, run entity.Run, record *entity.CaptureRecord) error {
	var errs []error
	for _, store := range s {
		if err := store.Save(ctx, run, record); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close closes every store and joins their errors.
func (s ResultStores) Close(ctx context.Context) error {
	var errs []error
	for _, store := range s {
		if err := store.Close(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
