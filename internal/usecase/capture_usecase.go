package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/user/snap-site/internal/entity"
	"github.com/user/snap-site/internal/repository"
	"github.com/user/snap-site/pkg/metrics"
	"github.com/user/snap-site/pkg/utils"
	"go.uber.org/zap"
)

// RowReporter receives each completed capture.
type RowReporter interface {
	Row(res entity.CaptureResult)
}

// CaptureUseCase drives a single page through every input, in order.
type CaptureUseCase struct {
	page     repository.Page
	outDir   string
	reporter RowReporter
	store    repository.ResultStore
	run      entity.Run
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// NewCaptureUseCase creates a new instance of the capture use case. store may
// be nil when no result sinks are configured.
func NewCaptureUseCase(
	page repository.Page,
	outDir string,
	reporter RowReporter,
	store repository.ResultStore,
	run entity.Run,
	m *metrics.Metrics,
	logger *zap.Logger,
) *CaptureUseCase {
	return &CaptureUseCase{
		page:     page,
		outDir:   outDir,
		reporter: reporter,
		store:    store,
		run:      run,
		metrics:  m,
		logger:   logger.With(zap.String("component", "capture")),
	}
}

// CaptureAll captures inputs sequentially. The first failure aborts the batch;
// results of the captures that completed before it are still returned and
// their files are left on disk.
func (uc *CaptureUseCase) CaptureAll(ctx context.Context, inputs []entity.CaptureInput) ([]entity.CaptureResult, error) {
	results := make([]entity.CaptureResult, 0, len(inputs))
	for _, input := range inputs {
		res, err := uc.Capture(ctx, input)
		if err != nil {
			errorType := repository.ErrorType(err)
			uc.metrics.IncFailure(errorType)
			uc.logger.Error("capture failed", zap.String("url", input.URL), zap.String("error_type", errorType), zap.Error(err))
			return results, err
		}

		uc.metrics.ObserveCapture(res)
		uc.reporter.Row(res)
		uc.save(ctx, res)
		results = append(results, res)
	}
	return results, nil
}

// Capture performs navigate, measure, screenshot and persist for one input.
func (uc *CaptureUseCase) Capture(ctx context.Context, input entity.CaptureInput) (entity.CaptureResult, error) {
	res := entity.CaptureResult{
		Input:      input,
		OutputPath: utils.OutputPath(uc.outDir, input.Suffix),
	}

	dir := filepath.Dir(res.OutputPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return res, fmt.Errorf("%w: creating %s: %v", repository.ErrFilesystem, dir, err)
	}

	start := time.Now()
	if err := uc.page.Navigate(ctx, input.URL); err != nil {
		return res, fmt.Errorf("capturing %s: %w", input.URL, err)
	}
	res.NavigateDuration = time.Since(start)

	height, err := uc.page.BodyHeight(ctx)
	if err != nil {
		return res, fmt.Errorf("capturing %s: %w", input.URL, err)
	}
	res.RenderedHeightPx = height

	start = time.Now()
	buf, err := uc.page.FullScreenshot(ctx)
	if err != nil {
		return res, fmt.Errorf("capturing %s: %w", input.URL, err)
	}
	if err := os.WriteFile(res.OutputPath, buf, 0o644); err != nil {
		return res, fmt.Errorf("%w: writing %s: %v", repository.ErrFilesystem, res.OutputPath, err)
	}
	res.ScreenshotDuration = time.Since(start)

	info, err := os.Stat(res.OutputPath)
	if err != nil {
		return res, fmt.Errorf("%w: %v", repository.ErrFilesystem, err)
	}
	res.OutputFileSizeBytes = info.Size()
	res.CapturedAt = time.Now()

	uc.logger.Debug("captured page",
		zap.String("url", input.URL),
		zap.String("output", res.OutputPath),
		zap.Int64("height_px", res.RenderedHeightPx),
		zap.Duration("navigate", res.NavigateDuration),
		zap.Duration("screenshot", res.ScreenshotDuration),
	)
	return res, nil
}

func (uc *CaptureUseCase) save(ctx context.Context, res entity.CaptureResult) {
	if uc.store == nil {
		return
	}
	record := &entity.CaptureRecord{RunID: uc.run.ID, Result: res}
	if err := uc.store.Save(ctx, uc.run, record); err != nil {
		// Result sinks are auxiliary; the PNG is already on disk.
		uc.logger.Warn("failed to store capture record", zap.String("suffix", res.Input.Suffix), zap.Error(err))
	}
}
