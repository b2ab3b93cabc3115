package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/snap-site/internal/entity"
)

type execCall struct {
	sql  string
	args []any
}

type fakeExecer struct {
	calls []execCall
	err   error
}

func (f *fakeExecer) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.calls = append(f.calls, execCall{sql: sql, args: args})
	if f.err != nil {
		return pgconn.CommandTag{}, f.err
	}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func TestResultStore_EnsureSchema(t *testing.T) {
	db := &fakeExecer{}
	store := NewResultStore(db, nil)

	require.NoError(t, store.EnsureSchema(context.Background()))
	require.Len(t, db.calls, 1)
	assert.Contains(t, db.calls[0].sql, "CREATE TABLE IF NOT EXISTS captures")
	assert.Contains(t, db.calls[0].sql, "PRIMARY KEY (run_id, suffix)")
}

func TestResultStore_Save(t *testing.T) {
	db := &fakeExecer{}
	store := NewResultStore(db, nil)
	started := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	captured := started.Add(2 * time.Second)

	rec := &entity.CaptureRecord{
		RunID: "run-9",
		Result: entity.CaptureResult{
			Input:               entity.CaptureInput{Suffix: "docs/index.html", URL: "http://localhost:8080/docs/index.html"},
			OutputPath:          "shots/docs/index.html.png",
			RenderedHeightPx:    2048,
			NavigateDuration:    1500 * time.Millisecond,
			ScreenshotDuration:  250 * time.Millisecond,
			OutputFileSizeBytes: 123456,
			CapturedAt:          captured,
		},
	}
	run := entity.Run{ID: "run-9", Mode: entity.ModeDirectory, StartedAt: started}

	require.NoError(t, store.Save(context.Background(), run, rec))
	require.Len(t, db.calls, 1)
	assert.Contains(t, db.calls[0].sql, "ON CONFLICT (run_id, suffix) DO UPDATE")
	assert.Equal(t, []any{
		"run-9", "directory", started,
		"docs/index.html", "http://localhost:8080/docs/index.html", "shots/docs/index.html.png",
		int64(2048), int64(1500), int64(250), int64(123456), captured,
	}, db.calls[0].args)
}

func TestResultStore_SaveError(t *testing.T) {
	boom := errors.New("connection reset")
	store := NewResultStore(&fakeExecer{err: boom}, nil)

	err := store.Save(context.Background(), entity.Run{ID: "r"}, &entity.CaptureRecord{
		Result: entity.CaptureResult{Input: entity.CaptureInput{Suffix: "a.html"}},
	})
	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "a.html")
}

func TestResultStore_Close(t *testing.T) {
	closed := 0
	store := NewResultStore(&fakeExecer{}, func() { closed++ })
	require.NoError(t, store.Close(context.Background()))
	assert.Equal(t, 1, closed)
}
