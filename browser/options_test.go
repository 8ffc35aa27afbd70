package browser

import (
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/qaforge/web-tests/config"
)

var desktop = config.BrowserConfig{
	Name:     "chromium",
	Headless: false,
	SlowMo:   150 * time.Millisecond,
	Viewport: config.Viewport{Width: 1920, Height: 1080},
	Locale:   "en-US",
	Timezone: "America/Vancouver",
}

func TestLaunchOptions(t *testing.T) {
	opts := LaunchOptions(desktop)
	require.NotNil(t, opts.Headless)
	assert.False(t, *opts.Headless)
	require.NotNil(t, opts.SlowMo)
	assert.Equal(t, 150.0, *opts.SlowMo)
}

func TestContextOptions(t *testing.T) {
	opts := ContextOptions(desktop, nil)
	assert.Equal(t, &playwright.Size{Width: 1920, Height: 1080}, opts.Viewport)
	assert.Equal(t, "en-US", *opts.Locale)
	assert.Equal(t, "America/Vancouver", *opts.TimezoneId)
	assert.True(t, *opts.IgnoreHttpsErrors)
	assert.Nil(t, opts.UserAgent)
	assert.Nil(t, opts.IsMobile)
}

func TestContextOptionsWithDevice(t *testing.T) {
	c := desktop
	c.Device = ldvalue.NewOptionalString("iPhone 12")
	device := &playwright.DeviceDescriptor{
		UserAgent:         "Mozilla/5.0 (iPhone)",
		Viewport:          &playwright.Size{Width: 390, Height: 664},
		DeviceScaleFactor: 3,
		IsMobile:          true,
		HasTouch:          true,
	}

	opts := ContextOptions(c, device)

	assert.Equal(t, &playwright.Size{Width: 390, Height: 664}, opts.Viewport)
	assert.Equal(t, "Mozilla/5.0 (iPhone)", *opts.UserAgent)
	assert.Equal(t, 3.0, *opts.DeviceScaleFactor)
	assert.True(t, *opts.IsMobile)
	assert.True(t, *opts.HasTouch)
	assert.Equal(t, "en-US", *opts.Locale)
}

func TestAdaptersOfNilAreNil(t *testing.T) {
	assert.Nil(t, CapturePage(nil))
	assert.Nil(t, CaptureContext(nil))
}
