//go:build browser

package browser

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qaforge/web-tests/capture"
	"github.com/qaforge/web-tests/config"
)

// These tests drive a real headless browser. Run them with: go test -tags browser ./browser

func launchForTest(t *testing.T) *Manager {
	c := desktop
	c.Headless = true
	c.SlowMo = 0
	m, err := Launch(c, config.TimeoutConfig{Default: 5 * time.Second, Long: 10 * time.Second, Short: time.Second}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, m.Close()) })
	return m
}

func TestCaptureAgainstRealPage(t *testing.T) {
	m := launchForTest(t)
	ctx, err := m.NewContext()
	require.NoError(t, err)
	defer ctx.Close()
	page, err := m.NewPage(ctx)
	require.NoError(t, err)

	root := t.TempDir()
	coordinator := capture.NewCoordinator(capture.Config{
		Enabled: true, TraceOnFailure: true, ReportsRoot: root, FullPageScreenshots: true,
	}, nil, nil)
	cp := coordinator.Begin(capture.Session{
		ID: t.Name() + "[" + m.Name() + "]", Page: CapturePage(page), Context: CaptureContext(ctx),
	})
	require.Equal(t, capture.TraceStarted, cp.TraceState())

	require.NoError(t, page.SetContent(`<h1>hi</h1><script>console.log("hello"); setTimeout(() => { throw new Error("oops") }, 0)</script>`))
	require.NoError(t, page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{State: playwright.LoadStateLoad}))
	assert.Eventually(t, func() bool { return cp.Console().Len() >= 2 }, 5*time.Second, 50*time.Millisecond)

	report := cp.Finish(capture.Failed)

	assert.Equal(t, capture.Written, report.Screenshot.Status)
	assert.Equal(t, capture.Written, report.ConsoleLog.Status)
	assert.Equal(t, capture.Saved, report.Trace.Status)
	for _, f := range report.Files() {
		info, err := os.Stat(f)
		require.NoError(t, err)
		assert.NotZero(t, info.Size())
	}
	data, err := os.ReadFile(report.ConsoleLog.Path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[console.log] hello")
	assert.Contains(t, string(data), "[pageerror]")
	assert.Equal(t, ".zip", filepath.Ext(report.Trace.Path))
}

func TestPassingSessionDiscardsRealTrace(t *testing.T) {
	m := launchForTest(t)
	ctx, err := m.NewContext()
	require.NoError(t, err)
	defer ctx.Close()
	page, err := m.NewPage(ctx)
	require.NoError(t, err)

	root := t.TempDir()
	coordinator := capture.NewCoordinator(capture.Config{Enabled: true, TraceOnFailure: true, ReportsRoot: root}, nil, nil)
	cp := coordinator.Begin(capture.Session{ID: t.Name(), Page: CapturePage(page), Context: CaptureContext(ctx)})

	report := cp.Finish(capture.Passed)

	assert.Equal(t, capture.Discarded, report.Trace.Status)
	assert.Empty(t, report.Files())
}
