package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/user/snap-site/internal/entity"
	"github.com/user/snap-site/pkg/config"
)

const header = "  Height  Goto Time  Shot Time       Size    Suffix"

// SuccessLine is printed once every capture has completed.
const SuccessLine = "Snapshot captured successfully"

// Reporter prints the human readable capture table.
type Reporter struct {
	out io.Writer
}

// New creates a Reporter writing to out.
func New(out io.Writer) *Reporter {
	return &Reporter{out: out}
}

// Banner prints one line per configuration value. It has no effect on behaviour.
func (r *Reporter) Banner(cfg *config.Config) {
	lines := []struct {
		label string
		value any
	}{
		{"site dir", cfg.SiteDir},
		{"url", cfg.URL},
		{"output dir", cfg.OutDir},
		{"include", cfg.Include},
		{"excludes", strings.Join(cfg.Excludes, ",")},
		{"host:port", cfg.HostPort},
		{"protocol", cfg.Protocol},
		{"view height", cfg.Height},
		{"view width", cfg.Width},
		{"dark mode", cfg.Dark},
		{"headless", cfg.Headless},
		{"wait", cfg.Wait},
	}
	for _, l := range lines {
		fmt.Fprintf(r.out, "%-11s: %v\n", l.label, l.value)
	}
}

// Header prints the column header of the capture table.
func (r *Reporter) Header() {
	fmt.Fprintln(r.out, header)
}

// Row prints one completed capture.
func (r *Reporter) Row(res entity.CaptureResult) {
	fmt.Fprintf(r.out, "%6dpx    %6.2fs    %6.2fs  %6.2f MB    %s\n",
		res.RenderedHeightPx,
		res.NavigateDuration.Seconds(),
		res.ScreenshotDuration.Seconds(),
		res.SizeMB(),
		res.Input.Suffix,
	)
}

// Success prints the final success line.
func (r *Reporter) Success() {
	fmt.Fprintln(r.out, SuccessLine)
}
