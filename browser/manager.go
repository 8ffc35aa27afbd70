// Package browser starts Playwright and creates the browser contexts and pages that tests use.
package browser

import (
	"errors"
	"fmt"
	"os"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"github.com/qaforge/web-tests/config"
)

// Manager owns one Playwright driver and one launched browser for the whole run. Each test gets
// its own context from NewContext, so cookies and storage are never shared between tests.
type Manager struct {
	config   config.BrowserConfig
	timeouts config.TimeoutConfig
	logger   *zap.Logger
	pw       *playwright.Playwright
	browser  playwright.Browser
	device   *playwright.DeviceDescriptor
}

// Launch starts the Playwright driver and the configured browser. Browsers are installed first
// unless PLAYWRIGHT_PREINSTALLED=1.
func Launch(browserConfig config.BrowserConfig, timeouts config.TimeoutConfig, logger *zap.Logger) (*Manager, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if os.Getenv("PLAYWRIGHT_PREINSTALLED") != "1" {
		if err := playwright.Install(&playwright.RunOptions{Browsers: []string{browserConfig.Name}}); err != nil {
			return nil, fmt.Errorf("could not install playwright browsers: %w", err)
		}
	}
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("could not start playwright: %w", err)
	}
	m := &Manager{config: browserConfig, timeouts: timeouts, logger: logger, pw: pw}

	if browserConfig.Device.IsDefined() {
		name := browserConfig.Device.StringValue()
		d, ok := pw.Devices[name]
		if !ok {
			_ = pw.Stop()
			return nil, fmt.Errorf("unknown device %q", name)
		}
		m.device = d
	}

	browserType, err := m.browserType()
	if err != nil {
		_ = pw.Stop()
		return nil, err
	}
	m.browser, err = browserType.Launch(LaunchOptions(browserConfig))
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("could not launch %s: %w", browserConfig.Name, err)
	}
	logger.Info("Launched browser",
		zap.String("browser", browserConfig.Name),
		zap.String("version", m.browser.Version()),
		zap.Bool("headless", browserConfig.Headless))
	return m, nil
}

func (m *Manager) browserType() (playwright.BrowserType, error) {
	switch m.config.Name {
	case "chromium":
		return m.pw.Chromium, nil
	case "firefox":
		return m.pw.Firefox, nil
	case "webkit":
		return m.pw.WebKit, nil
	default:
		return nil, fmt.Errorf("unsupported browser %q", m.config.Name)
	}
}

// Name is the browser name used as the parameter of every browser test.
func (m *Manager) Name() string {
	return m.config.Name
}

// NewContext creates an isolated browser context with the configured viewport, locale and
// timezone, or the configured device emulation.
func (m *Manager) NewContext() (playwright.BrowserContext, error) {
	ctx, err := m.browser.NewContext(ContextOptions(m.config, m.device))
	if err != nil {
		return nil, fmt.Errorf("could not create browser context: %w", err)
	}
	ctx.SetDefaultTimeout(float64(m.timeouts.Default.Milliseconds()))
	ctx.SetDefaultNavigationTimeout(float64(m.timeouts.Long.Milliseconds()))
	return ctx, nil
}

// NewPage opens a page in ctx.
func (m *Manager) NewPage(ctx playwright.BrowserContext) (playwright.Page, error) {
	page, err := ctx.NewPage()
	if err != nil {
		return nil, fmt.Errorf("could not create page: %w", err)
	}
	page.SetDefaultTimeout(float64(m.timeouts.Default.Milliseconds()))
	return page, nil
}

// Close shuts down the browser and the driver.
func (m *Manager) Close() error {
	var errs []error
	if m.browser != nil {
		if err := m.browser.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing browser: %w", err))
		}
	}
	if m.pw != nil {
		if err := m.pw.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("stopping playwright: %w", err))
		}
	}
	return errors.Join(errs...)
}

// LaunchOptions converts the browser settings to Playwright launch options.
func LaunchOptions(c config.BrowserConfig) playwright.BrowserTypeLaunchOptions {
	return playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(c.Headless),
		SlowMo:   playwright.Float(float64(c.SlowMo.Milliseconds())),
	}
}

// ContextOptions converts the browser settings to Playwright context options. A device
// descriptor, if given, replaces the viewport and adds its user agent and touch settings.
func ContextOptions(c config.BrowserConfig, device *playwright.DeviceDescriptor) playwright.BrowserNewContextOptions {
	opts := playwright.BrowserNewContextOptions{
		Viewport:          &playwright.Size{Width: c.Viewport.Width, Height: c.Viewport.Height},
		Locale:            playwright.String(c.Locale),
		TimezoneId:        playwright.String(c.Timezone),
		IgnoreHttpsErrors: playwright.Bool(true),
	}
	if device != nil {
		if device.Viewport != nil {
			opts.Viewport = device.Viewport
		}
		opts.UserAgent = playwright.String(device.UserAgent)
		opts.DeviceScaleFactor = playwright.Float(device.DeviceScaleFactor)
		opts.IsMobile = playwright.Bool(device.IsMobile)
		opts.HasTouch = playwright.Bool(device.HasTouch)
	}
	return opts
}
