package capture

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestWriteConsoleLog(t *testing.T) {
	dir := t.TempDir()
	attacher := &fakeAttacher{}
	w := NewWriter(attacher, nil)
	path := filepath.Join(dir, "logs", "x.txt")

	result := w.WriteConsoleLog("key", path, []string{"[console.log] a", "[pageerror] b"})

	require.Equal(t, Written, result.Status)
	assert.True(t, result.Attached)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[console.log] a\n[pageerror] b\n", string(data))
	require.Len(t, attacher.attached, 1)
	assert.Equal(t, "key", attacher.attached[0].key)
	assert.Equal(t, "browser_console_log", attacher.attached[0].Name)
	assert.Equal(t, "text/plain", attacher.attached[0].ContentType)
	assert.Equal(t, data, attacher.attached[0].Data)
}

func TestWriteConsoleLogSkipsEmptyBuffer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.txt")
	result := NewWriter(nil, nil).WriteConsoleLog("key", path, nil)
	assert.Equal(t, WriteSkipped, result.Status)
	assert.NoFileExists(t, path)
}

func TestWriteScreenshot(t *testing.T) {
	page := newFakePage()
	path := filepath.Join(t.TempDir(), "screenshots", "x.png")

	result := NewWriter(nil, nil).WriteScreenshot("key", path, page, true)

	require.Equal(t, Written, result.Status)
	assert.False(t, result.Attached)
	assert.Equal(t, []bool{true}, page.fullPage)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, page.screenshot, data)
}

func TestWriteScreenshotFailureIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	page := newFakePage()
	page.screenshotErr = errPageClosed
	path := filepath.Join(t.TempDir(), "x.png")

	result := NewWriter(&fakeAttacher{}, zap.New(core)).WriteScreenshot("key", path, page, false)

	assert.Equal(t, WriteFailed, result.Status)
	assert.ErrorIs(t, result.Err, errPageClosed)
	assert.NoFileExists(t, path)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "Failed to save artifact", logs.All()[0].Message)
}

func TestWriteScreenshotWithoutPage(t *testing.T) {
	result := NewWriter(nil, nil).WriteScreenshot("key", "unused.png", nil, true)
	assert.Equal(t, WriteSkipped, result.Status)
}

func TestAttachFailureDoesNotFailWrite(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	attacher := &fakeAttacher{err: errors.New("allure is not configured")}
	path := filepath.Join(t.TempDir(), "x.txt")

	result := NewWriter(attacher, zap.New(core)).WriteConsoleLog("key", path, []string{"line"})

	assert.Equal(t, Written, result.Status)
	assert.False(t, result.Attached)
	assert.FileExists(t, path)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "Could not attach artifact to report", logs.All()[0].Message)
}

func TestAttachFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.zip")
	require.NoError(t, os.WriteFile(path, []byte("PK"), 0o644))
	attacher := &fakeAttacher{}

	assert.True(t, NewWriter(attacher, nil).AttachFile(KindTrace, "key", path))
	assert.False(t, NewWriter(attacher, nil).AttachFile(KindTrace, "key", path+".missing"))
	assert.False(t, NewWriter(nil, nil).AttachFile(KindTrace, "key", path))

	require.Len(t, attacher.attached, 1)
	assert.Equal(t, "playwright_trace.zip", attacher.attached[0].Name)
	assert.Equal(t, "application/zip", attacher.attached[0].ContentType)
	assert.Equal(t, "zip", attacher.attached[0].Extension)
}

func TestEnsureDirIsIdempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	done := make(chan error, 4)
	for i := 0; i < cap(done); i++ {
		go func() { done <- EnsureDir(dir) }()
	}
	for i := 0; i < cap(done); i++ {
		assert.NoError(t, <-done)
	}
	assert.DirExists(t, dir)
}
