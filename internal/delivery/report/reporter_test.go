package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/user/snap-site/internal/entity"
	"github.com/user/snap-site/pkg/config"
)

func TestRow_Format(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf)

	r.Header()
	r.Row(entity.CaptureResult{
		Input:               entity.CaptureInput{Suffix: "blog/post.html"},
		RenderedHeightPx:    1834,
		NavigateDuration:    1234 * time.Millisecond,
		ScreenshotDuration:  56 * time.Millisecond,
		OutputFileSizeBytes: 2_345_678,
	})

	want := "  Height  Goto Time  Shot Time       Size    Suffix\n" +
		"  1834px      1.23s      0.06s    2.35 MB    blog/post.html\n"
	assert.Equal(t, want, buf.String())
}

func TestRow_WideValuesAreNotTruncated(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Row(entity.CaptureResult{
		Input:               entity.CaptureInput{Suffix: "x"},
		RenderedHeightPx:    12345678,
		NavigateDuration:    1000 * time.Second,
		OutputFileSizeBytes: 123_456_789_000,
	})
	assert.Equal(t, "12345678px    1000.00s      0.00s  123456.79 MB    x\n", buf.String())
}

func TestBanner(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Banner(&config.Config{
		SiteDir:  "./site",
		OutDir:   "./shots",
		Include:  "**/*.html",
		Excludes: []string{"about.html", "drafts/**"},
		HostPort: "localhost:8080",
		Protocol: "http",
		Height:   600,
		Width:    1200,
		Headless: true,
	})

	out := buf.String()
	assert.Contains(t, out, "site dir   : ./site\n")
	assert.Contains(t, out, "excludes   : about.html,drafts/**\n")
	assert.Contains(t, out, "view height: 600\n")
	assert.Contains(t, out, "headless   : true\n")
	assert.Contains(t, out, "wait       : false\n")
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 12)
}

func TestSuccess(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Success()
	assert.Equal(t, "Snapshot captured successfully\n", buf.String())
}
