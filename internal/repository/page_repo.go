package repository

import (
	"context"
	"time"
)

// Page is the single browser tab a run drives. Calls must not overlap.
type Page interface {
	// Navigate loads url and returns once the page's load event has fired.
	Navigate(ctx context.Context, url string) error
	// BodyHeight returns document.body.clientHeight of the current document.
	BodyHeight(ctx context.Context) (int64, error)
	// FullScreenshot returns a PNG of the whole rendered document.
	FullScreenshot(ctx context.Context) ([]byte, error)
	// Close releases the tab and the browser behind it.
	Close() error
}

// SessionOptions configures the browser and its page.
type SessionOptions struct {
	Headless          bool
	Width             int
	Height            int
	Dark              bool
	NavigationTimeout time.Duration
	ChromePath        string
	RemoteURL         string
}

// BrowserLauncher acquires a configured page. The caller owns the returned
// Page and must Close it.
type BrowserLauncher interface {
	Launch(ctx context.Context, opts SessionOptions) (Page, error)
}
