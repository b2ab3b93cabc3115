package main

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/snap-site/internal/entity"
	"github.com/user/snap-site/pkg/config"
	"go.uber.org/zap"
)

func TestOpenStores_MemoryOnly(t *testing.T) {
	stores, captures, err := openStores(context.Background(), &config.Config{}, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, stores, 1)
	assert.Same(t, captures, stores[0])
}

func TestOpenStores_RedisAndManifest(t *testing.T) {
	m := miniredis.RunT(t)
	manifestPath := filepath.Join(t.TempDir(), "manifest.yaml")
	cfg := &config.Config{RedisAddr: m.Addr(), ManifestPath: manifestPath}
	ctx := context.Background()

	stores, captures, err := openStores(ctx, cfg, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, stores, 3)

	run := entity.Run{ID: "run-1", Mode: entity.ModeURL, StartedAt: time.Now()}
	rec := &entity.CaptureRecord{RunID: run.ID, Result: entity.CaptureResult{
		Input: entity.CaptureInput{Suffix: "/example.com/", URL: "http://example.com/"},
	}}
	require.NoError(t, stores.Save(ctx, run, rec))
	require.NoError(t, stores.Close(ctx))

	list, err := captures.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.True(t, m.Exists("snapsite:run:run-1:captures"))
	_, err = os.Stat(manifestPath)
	assert.NoError(t, err)
}

func TestOpenStores_RedisUnreachable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, _, err = openStores(ctx, &config.Config{RedisAddr: addr}, zap.NewNop())
	assert.ErrorContains(t, err, "connecting to redis")
}
