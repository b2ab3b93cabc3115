package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/user/snap-site/internal/entity"
	"github.com/user/snap-site/internal/repository"
	"github.com/user/snap-site/pkg/config"
	"github.com/user/snap-site/pkg/metrics"
	"go.uber.org/zap"
)

// Reporter prints the configuration banner and the capture table.
type Reporter interface {
	RowReporter
	Banner(cfg *config.Config)
	Header()
	Success()
}

// Snapshotter runs one invocation: resolve inputs, open the browser, capture
// every input, optionally idle, and release the browser.
type Snapshotter struct {
	cfg      *config.Config
	resolver *InputResolver
	launcher repository.BrowserLauncher
	reporter Reporter
	store    repository.ResultStore
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// NewSnapshotter creates a new Snapshotter. store may be nil.
func NewSnapshotter(
	cfg *config.Config,
	launcher repository.BrowserLauncher,
	reporter Reporter,
	store repository.ResultStore,
	m *metrics.Metrics,
	logger *zap.Logger,
) *Snapshotter {
	return &Snapshotter{
		cfg:      cfg,
		resolver: NewInputResolver(logger),
		launcher: launcher,
		reporter: reporter,
		store:    store,
		metrics:  m,
		logger:   logger,
	}
}

// Run executes the whole pipeline. Inputs are resolved before the browser is
// launched, so configuration errors never start a browser. With cfg.Wait set,
// Run blocks after capturing until ctx is cancelled and then releases the
// browser normally.
func (s *Snapshotter) Run(ctx context.Context) error {
	s.reporter.Banner(s.cfg)

	inputs, err := s.resolver.Resolve(s.cfg)
	if err != nil {
		s.metrics.IncFailure(repository.ErrorType(err))
		return err
	}
	s.metrics.InputsResolved.Set(float64(len(inputs)))

	run := entity.Run{ID: uuid.NewString(), Mode: s.cfg.Mode(), StartedAt: time.Now()}
	s.logger.Info("starting run",
		zap.String("run_id", run.ID),
		zap.String("mode", string(run.Mode)),
		zap.Int("inputs", len(inputs)),
	)

	if err := s.runSession(ctx, run, inputs); err != nil {
		return err
	}

	s.reporter.Success()
	return nil
}

func (s *Snapshotter) runSession(ctx context.Context, run entity.Run, inputs []entity.CaptureInput) (err error) {
	page, err := s.launcher.Launch(ctx, repository.SessionOptions{
		Headless:          s.cfg.Headless,
		Width:             s.cfg.Width,
		Height:            s.cfg.Height,
		Dark:              s.cfg.Dark,
		NavigationTimeout: s.cfg.PageLoadTimeout,
		ChromePath:        s.cfg.ChromePath,
		RemoteURL:         s.cfg.RemoteURL,
	})
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}
	defer func() {
		if cerr := page.Close(); cerr != nil {
			s.logger.Warn("failed to close browser", zap.Error(cerr))
			if err == nil {
				err = fmt.Errorf("closing browser: %w", cerr)
			}
		}
	}()

	if len(inputs) > 0 {
		s.reporter.Header()
	}

	capture := NewCaptureUseCase(page, s.cfg.OutDir, s.reporter, s.store, run, s.metrics, s.logger)
	if _, err := capture.CaptureAll(ctx, inputs); err != nil {
		return err
	}

	if s.cfg.Wait {
		s.logger.Info("captures done, keeping the browser open until interrupted")
		<-ctx.Done()
		s.logger.Info("interrupted, closing browser")
	}
	return nil
}
