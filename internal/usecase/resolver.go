package usecase

import (
	"fmt"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/user/snap-site/internal/entity"
	"github.com/user/snap-site/internal/repository"
	"github.com/user/snap-site/pkg/config"
	"github.com/user/snap-site/pkg/utils"
	"go.uber.org/zap"
)

// SiteQuery selects files under a static-site directory.
type SiteQuery struct {
	Dir      string
	Include  string
	Excludes []string
	Protocol string
	HostPort string
}

// InputResolver turns configuration into the ordered list of pages to capture.
type InputResolver struct {
	logger *zap.Logger
}

// NewInputResolver creates a new InputResolver.
func NewInputResolver(logger *zap.Logger) *InputResolver {
	return &InputResolver{logger: logger.With(zap.String("component", "resolver"))}
}

// Resolve picks directory or URL mode from cfg.
func (r *InputResolver) Resolve(cfg *config.Config) ([]entity.CaptureInput, error) {
	var (
		inputs []entity.CaptureInput
		err    error
	)
	if cfg.Mode() == entity.ModeURL {
		inputs = r.ResolveURL(cfg.URL)
	} else {
		inputs, err = r.ResolveSite(SiteQuery{
			Dir:      cfg.SiteDir,
			Include:  cfg.Include,
			Excludes: cfg.Excludes,
			Protocol: cfg.Protocol,
			HostPort: cfg.HostPort,
		})
		if err != nil {
			return nil, err
		}
	}
	return r.dedupe(inputs), nil
}

// ResolveSite matches files under q.Dir against the include pattern and drops
// those matching any exclude pattern. Paths are slash separated and relative
// to q.Dir; results are sorted.
func (r *InputResolver) ResolveSite(q SiteQuery) ([]entity.CaptureInput, error) {
	info, err := os.Stat(q.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: site dir does not exist: %s", repository.ErrConfiguration, q.Dir)
		}
		return nil, fmt.Errorf("%w: %v", repository.ErrFilesystem, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: site dir is not a directory: %s", repository.ErrConfiguration, q.Dir)
	}
	for _, p := range append([]string{q.Include}, q.Excludes...) {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("%w: invalid glob pattern %q", repository.ErrConfiguration, p)
		}
	}

	matches, err := doublestar.Glob(os.DirFS(q.Dir), q.Include, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("%w: matching %q in %s: %v", repository.ErrFilesystem, q.Include, q.Dir, err)
	}
	sort.Strings(matches)
	r.logger.Info("found files", zap.Int("count", len(matches)), zap.String("include", q.Include))

	inputs := make([]entity.CaptureInput, 0, len(matches))
	for _, suffix := range matches {
		r.logger.Debug("found", zap.String("suffix", suffix))
		if pattern, ok := matchAny(q.Excludes, suffix); ok {
			r.logger.Info("skipping excluded page", zap.String("suffix", suffix), zap.String("pattern", pattern))
			continue
		}
		inputs = append(inputs, entity.CaptureInput{
			Suffix: suffix,
			URL:    utils.SiteURL(q.Protocol, q.HostPort, suffix),
		})
	}
	return inputs, nil
}

// ResolveURL returns the single input for URL mode. The suffix keeps host and
// port, see utils.SuffixFromURL.
func (r *InputResolver) ResolveURL(rawURL string) []entity.CaptureInput {
	return []entity.CaptureInput{{Suffix: utils.SuffixFromURL(rawURL), URL: rawURL}}
}

// dedupe keeps the first input for each output suffix.
func (r *InputResolver) dedupe(inputs []entity.CaptureInput) []entity.CaptureInput {
	seen := make(map[string]struct{}, len(inputs))
	out := inputs[:0]
	for _, in := range inputs {
		if _, ok := seen[in.Suffix]; ok {
			r.logger.Warn("dropping input with duplicate output suffix", zap.String("suffix", in.Suffix), zap.String("url", in.URL))
			continue
		}
		seen[in.Suffix] = struct{}{}
		out = append(out, in)
	}
	return out
}

func matchAny(patterns []string, name string) (string, bool) {
	for _, p := range patterns {
		// Patterns were validated up front, so Match cannot fail here.
		if ok, _ := doublestar.Match(p, name); ok {
			return p, true
		}
	}
	return "", false
}
