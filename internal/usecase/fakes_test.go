package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/user/snap-site/internal/entity"
	"github.com/user/snap-site/internal/repository"
	"github.com/user/snap-site/pkg/config"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

type fakePage struct {
	mu        sync.Mutex
	calls     []string
	failOn    map[string]error // url -> navigate error
	heightErr error
	shotErr   error
	heights   map[string]int64
	current   string
	closed    int
}

func newFakePage() *fakePage {
	return &fakePage{failOn: map[string]error{}, heights: map[string]int64{}}
}

func (p *fakePage) Navigate(_ context.Context, url string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, "navigate "+url)
	if err, ok := p.failOn[url]; ok {
		return err
	}
	p.current = url
	return nil
}

func (p *fakePage) BodyHeight(context.Context) (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, "height")
	if p.heightErr != nil {
		return 0, p.heightErr
	}
	if h, ok := p.heights[p.current]; ok {
		return h, nil
	}
	return 600, nil
}

func (p *fakePage) FullScreenshot(context.Context) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, "screenshot")
	if p.shotErr != nil {
		return nil, p.shotErr
	}
	return append(append([]byte{}, pngHeader...), []byte(p.current)...), nil
}

func (p *fakePage) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed++
	return nil
}

type fakeLauncher struct {
	page     *fakePage
	err      error
	launches int
	opts     repository.SessionOptions
}

func (l *fakeLauncher) Launch(_ context.Context, opts repository.SessionOptions) (repository.Page, error) {
	l.launches++
	l.opts = opts
	if l.err != nil {
		return nil, l.err
	}
	return l.page, nil
}

type recordingReporter struct {
	banners int
	headers int
	rows    []entity.CaptureResult
	success int
}

func (r *recordingReporter) Banner(*config.Config)        { r.banners++ }
func (r *recordingReporter) Header()                      { r.headers++ }
func (r *recordingReporter) Row(res entity.CaptureResult) { r.rows = append(r.rows, res) }
func (r *recordingReporter) Success()                     { r.success++ }

type memoryStore struct {
	records []*entity.CaptureRecord
	err     error
	closed  bool
}

func (s *memoryStore) Save(_ context.Context, _ entity.Run, record *entity.CaptureRecord) error {
	if s.err != nil {
		return s.err
	}
	s.records = append(s.records, record)
	return nil
}

func (s *memoryStore) Close(context.Context) error {
	s.closed = true
	return nil
}

func navErr(url string) error {
	return fmt.Errorf("%w: %s: net::ERR_CONNECTION_REFUSED", repository.ErrNavigation, url)
}
