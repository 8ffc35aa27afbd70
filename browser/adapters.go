package browser

import (
	"sync/atomic"

	"github.com/playwright-community/playwright-go"

	"github.com/qaforge/web-tests/capture"
)

type capturePage struct {
	page playwright.Page
}

// CapturePage exposes a Playwright page to failure capture. It returns nil for a nil page.
func CapturePage(page playwright.Page) capture.Page {
	if page == nil {
		return nil
	}
	return capturePage{page: page}
}

func (p capturePage) OnConsole(handler func(capture.ConsoleMessage)) capture.Subscription {
	var active atomic.Bool
	active.Store(true)
	listener := func(m playwright.ConsoleMessage) {
		if active.Load() {
			handler(m)
		}
	}
	p.page.OnConsole(listener)
	return capture.SubscriptionFunc(func() {
		if active.Swap(false) {
			p.page.RemoveListener("console", listener)
		}
	})
}

func (p capturePage) OnPageError(handler func(error)) capture.Subscription {
	var active atomic.Bool
	active.Store(true)
	listener := func(err error) {
		if active.Load() {
			handler(err)
		}
	}
	p.page.OnPageError(listener)
	return capture.SubscriptionFunc(func() {
		if active.Swap(false) {
			p.page.RemoveListener("pageerror", listener)
		}
	})
}

func (p capturePage) Screenshot(fullPage bool) ([]byte, error) {
	return p.page.Screenshot(playwright.PageScreenshotOptions{FullPage: playwright.Bool(fullPage)})
}

type captureContext struct {
	context playwright.BrowserContext
}

// CaptureContext exposes a Playwright browser context's tracing to failure capture. It returns
// nil for a nil context.
func CaptureContext(context playwright.BrowserContext) capture.BrowserContext {
	if context == nil {
		return nil
	}
	return captureContext{context: context}
}

func (c captureContext) StartTracing(opts capture.TraceOptions) error {
	start := playwright.TracingStartOptions{
		Screenshots: playwright.Bool(opts.Screenshots),
		Snapshots:   playwright.Bool(opts.Snapshots),
		Sources:     playwright.Bool(opts.Sources),
	}
	if opts.Title != "" {
		start.Title = playwright.String(opts.Title)
	}
	return c.context.Tracing().Start(start)
}

func (c captureContext) StopTracing(path string) error {
	if path == "" {
		return c.context.Tracing().Stop()
	}
	return c.context.Tracing().Stop(path)
}
