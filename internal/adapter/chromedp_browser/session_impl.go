package chromedp_browser

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/chromedp"
	"github.com/user/snap-site/internal/repository"
	"go.uber.org/zap"
)

// pngQuality makes chromedp.FullScreenshot encode PNG instead of JPEG.
const pngQuality = 100

// Launcher starts a browser through chromedp.
type Launcher struct {
	logger *zap.Logger
}

// NewLauncher creates a new browser launcher.
func NewLauncher(logger *zap.Logger) *Launcher {
	return &Launcher{logger: logger.With(zap.String("component", "browser"))}
}

// ChromedpPage is the single tab of a launched browser.
type ChromedpPage struct {
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc
	timeout     time.Duration
	logger      *zap.Logger

	closeOnce sync.Once
	closeErr  error
}

func allocatorOptions(opts repository.SessionOptions) []chromedp.ExecAllocatorOption {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.WindowSize(opts.Width, opts.Height),
	)
	if opts.ChromePath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.ChromePath))
	}
	return allocOpts
}

// darkMode emulates prefers-color-scheme: dark on the page.
func darkMode() chromedp.Action {
	return emulation.SetEmulatedMedia().WithFeatures([]*emulation.MediaFeature{
		{Name: "prefers-color-scheme", Value: "dark"},
	})
}

// Launch starts (or attaches to) a browser and prepares one page with the
// requested viewport and color scheme. The browser is not bound to ctx:
// cancelling ctx aborts the launch, but afterwards only Close releases it.
func (l *Launcher) Launch(ctx context.Context, opts repository.SessionOptions) (repository.Page, error) {
	base := context.WithoutCancel(ctx)

	var (
		allocCtx    context.Context
		allocCancel context.CancelFunc
	)
	if opts.RemoteURL != "" {
		l.logger.Info("connecting to browser", zap.String("url", opts.RemoteURL))
		allocCtx, allocCancel = chromedp.NewRemoteAllocator(base, opts.RemoteURL)
	} else {
		l.logger.Info("launching browser", zap.Bool("headless", opts.Headless), zap.String("exec_path", opts.ChromePath))
		allocCtx, allocCancel = chromedp.NewExecAllocator(base, allocatorOptions(opts)...)
	}

	logf := l.logger.Sugar().Debugf
	tabCtx, tabCancel := chromedp.NewContext(allocCtx, chromedp.WithLogf(logf), chromedp.WithErrorf(logf))

	p := &ChromedpPage{
		ctx:         tabCtx,
		cancel:      tabCancel,
		allocCancel: allocCancel,
		timeout:     opts.NavigationTimeout,
		logger:      l.logger,
	}

	setup := []chromedp.Action{chromedp.EmulateViewport(int64(opts.Width), int64(opts.Height))}
	if opts.Dark {
		setup = append(setup, darkMode())
	}

	// The first Run allocates the browser and must use the chromedp context
	// itself; a derived context with a deadline would take the browser down
	// with it.
	stop := context.AfterFunc(ctx, tabCancel)
	err := chromedp.Run(tabCtx, setup...)
	stop()
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("starting browser: %w", err)
	}

	l.logger.Info("browser started",
		zap.Int("viewport_w", opts.Width),
		zap.Int("viewport_h", opts.Height),
		zap.Bool("dark", opts.Dark))
	return p, nil
}

// run executes actions on the page, bounded by timeout and by ctx.
func (p *ChromedpPage) run(ctx context.Context, timeout time.Duration, actions ...chromedp.Action) error {
	var (
		runCtx context.Context
		cancel context.CancelFunc
	)
	if timeout > 0 {
		runCtx, cancel = context.WithTimeout(p.ctx, timeout)
	} else {
		runCtx, cancel = context.WithCancel(p.ctx)
	}
	defer cancel()

	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	return chromedp.Run(runCtx, actions...)
}

// Navigate loads url and waits for the load event.
func (p *ChromedpPage) Navigate(ctx context.Context, url string) error {
	p.logger.Debug("navigating", zap.String("url", url))
	if err := p.run(ctx, p.timeout, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("%w: %s: %w", repository.ErrNavigation, url, err)
	}
	return nil
}

// BodyHeight evaluates document.body.clientHeight.
func (p *ChromedpPage) BodyHeight(ctx context.Context) (int64, error) {
	var height int64
	if err := p.run(ctx, p.timeout, chromedp.Evaluate(`document.body.clientHeight`, &height)); err != nil {
		return 0, fmt.Errorf("%w: reading body height: %w", repository.ErrEvaluation, err)
	}
	return height, nil
}

// FullScreenshot captures the entire document as PNG.
func (p *ChromedpPage) FullScreenshot(ctx context.Context) ([]byte, error) {
	var buf []byte
	if err := p.run(ctx, p.timeout, chromedp.FullScreenshot(&buf, pngQuality)); err != nil {
		return nil, fmt.Errorf("%w: %w", repository.ErrCapture, err)
	}
	return buf, nil
}

// Close closes the page and gracefully shuts the browser down. A browser we
// attached to with a remote URL is left running; only our tab is closed.
// Close is idempotent.
func (p *ChromedpPage) Close() error {
	p.closeOnce.Do(func() {
		p.logger.Info("closing browser")
		p.closeErr = chromedp.Cancel(p.ctx)
		if errors.Is(p.closeErr, context.Canceled) {
			// Launch was aborted before the browser came up.
			p.closeErr = nil
		}
		p.cancel()
		p.allocCancel()
	})
	return p.closeErr
}
