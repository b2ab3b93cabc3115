package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/user/snap-site/internal/entity"
	"github.com/user/snap-site/pkg/utils"
)

const (
	runsKey         = "snapsite:runs"
	runKeyPrefix    = "snapsite:run:"
	latestKeyPrefix = "snapsite:latest:"

	timeLayout = time.RFC3339Nano
)

// ResultStoreImpl provides a concrete implementation for the ResultStore interface using Redis.
//
// Layout:
//
//	snapsite:runs                  sorted set of run ids scored by start time
//	snapsite:run:<id>              hash with the run's mode and start time
//	snapsite:run:<id>:captures     hash suffix -> JSON capture record
//	snapsite:latest:<sha256(url)>  JSON of the most recent capture of a URL
type ResultStoreImpl struct {
	client *redis.Client
}

// NewResultStore creates a new instance of ResultStoreImpl.
func NewResultStore(client *redis.Client) *ResultStoreImpl {
	return &ResultStoreImpl{client: client}
}

// Ping checks the connection.
func (r *ResultStoreImpl) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func runKey(runID string) string {
	return runKeyPrefix + runID
}

func capturesKey(runID string) string {
	return runKeyPrefix + runID + ":captures"
}

// latestKey creates a consistent Redis key for a given URL by hashing it.
func latestKey(url string) string {
	return fmt.Sprintf("%s%s", latestKeyPrefix, utils.HashURL(url))
}

// Save writes the record and the run metadata in a single transaction.
func (r *ResultStoreImpl) Save(ctx context.Context, run entity.Run, record *entity.CaptureRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return err
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZAdd(ctx, runsKey, redis.Z{Score: float64(run.StartedAt.Unix()), Member: run.ID})
		pipe.HSet(ctx, runKey(run.ID), "mode", string(run.Mode), "started_at", run.StartedAt.UTC().Format(timeLayout))
		pipe.HSet(ctx, capturesKey(run.ID), record.Result.Input.Suffix, payload)
		pipe.Set(ctx, latestKey(record.Result.Input.URL), payload, 0)
		return nil
	})
	if err != nil {
		return fmt.Errorf("saving capture record for %s to redis: %w", record.Result.Input.Suffix, err)
	}
	return nil
}

// Close closes the client.
func (r *ResultStoreImpl) Close(context.Context) error {
	return r.client.Close()
}
