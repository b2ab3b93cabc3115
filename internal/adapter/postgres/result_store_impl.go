package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/user/snap-site/internal/entity"
)

// Execer is the subset of *pgxpool.Pool the store needs.
type Execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

const schema = `
	CREATE TABLE IF NOT EXISTS captures (
		run_id TEXT NOT NULL,
		mode TEXT NOT NULL,
		run_started_at TIMESTAMPTZ NOT NULL,
		suffix TEXT NOT NULL,
		url TEXT NOT NULL,
		output_path TEXT NOT NULL,
		rendered_height_px BIGINT NOT NULL,
		navigate_ms BIGINT NOT NULL,
		screenshot_ms BIGINT NOT NULL,
		output_size_bytes BIGINT NOT NULL,
		captured_at TIMESTAMPTZ NOT NULL,
		PRIMARY KEY (run_id, suffix)
	);
`

// ResultStoreImpl provides a concrete implementation for the ResultStore interface using PostgreSQL.
type ResultStoreImpl struct {
	db    Execer
	close func()
}

// NewResultStore creates a new instance of ResultStoreImpl. closeFn is called
// by Close and may be nil.
func NewResultStore(db Execer, closeFn func()) *ResultStoreImpl {
	return &ResultStoreImpl{db: db, close: closeFn}
}

// EnsureSchema creates the captures table if it does not exist.
func (r *ResultStoreImpl) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("creating captures table: %w", err)
	}
	return nil
}

// Save stores or updates the capture record for a suffix within a run.
func (r *ResultStoreImpl) Save(ctx context.Context, run entity.Run, record *entity.CaptureRecord) error {
	res := record.Result
	query := `
		INSERT INTO captures (run_id, mode, run_started_at, suffix, url, output_path, rendered_height_px, navigate_ms, screenshot_ms, output_size_bytes, captured_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (run_id, suffix) DO UPDATE SET
			url = EXCLUDED.url,
			output_path = EXCLUDED.output_path,
			rendered_height_px = EXCLUDED.rendered_height_px,
			navigate_ms = EXCLUDED.navigate_ms,
			screenshot_ms = EXCLUDED.screenshot_ms,
			output_size_bytes = EXCLUDED.output_size_bytes,
			captured_at = EXCLUDED.captured_at;
	`

	_, err := r.db.Exec(ctx, query,
		run.ID,
		string(run.Mode),
		run.StartedAt,
		res.Input.Suffix,
		res.Input.URL,
		res.OutputPath,
		res.RenderedHeightPx,
		res.NavigateDuration.Milliseconds(),
		res.ScreenshotDuration.Milliseconds(),
		res.OutputFileSizeBytes,
		res.CapturedAt,
	)
	if err != nil {
		return fmt.Errorf("saving capture record for %s to postgres: %w", res.Input.Suffix, err)
	}
	return nil
}

// Close releases the underlying pool.
func (r *ResultStoreImpl) Close(context.Context) error {
	if r.close != nil {
		r.close()
	}
	return nil
}
