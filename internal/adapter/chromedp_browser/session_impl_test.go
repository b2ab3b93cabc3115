package chromedp_browser

import (
	"testing"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/chromedp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/snap-site/internal/repository"
)

func TestAllocatorOptions(t *testing.T) {
	base := allocatorOptions(repository.SessionOptions{Headless: true, Width: 1200, Height: 600})
	assert.Len(t, base, len(chromedp.DefaultExecAllocatorOptions)+5)

	withPath := allocatorOptions(repository.SessionOptions{Width: 1200, Height: 600, ChromePath: "/usr/bin/chromium"})
	assert.Len(t, withPath, len(base)+1)
}

func TestDarkMode(t *testing.T) {
	params, ok := darkMode().(*emulation.SetEmulatedMediaParams)
	require.True(t, ok)
	require.Len(t, params.Features, 1)
	assert.Equal(t, "prefers-color-scheme", params.Features[0].Name)
	assert.Equal(t, "dark", params.Features[0].Value)
}
