package webtests

import (
	"context"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/qaforge/web-tests/apps/reqres"
	"github.com/qaforge/web-tests/browser"
	"github.com/qaforge/web-tests/capture"
	"github.com/qaforge/web-tests/config"
	"github.com/qaforge/web-tests/framework"
	"github.com/qaforge/web-tests/logging"
	"github.com/qaforge/web-tests/pages"
)

// Browser creates the isolated contexts and pages that browser tests run in. *browser.Manager
// implements it.
type Browser interface {
	Name() string
	NewContext() (playwright.BrowserContext, error)
	NewPage(playwright.BrowserContext) (playwright.Page, error)
}

// Environment is everything the suites share for a run.
type Environment struct {
	Config config.Config
	// Browser returns the browser, launching it if necessary. If nil, browser tests fail.
	Browser func() (Browser, error)
	// Capture may be nil, in which case no failure artifacts are captured.
	Capture *capture.Coordinator
	ReqRes  *reqres.Client
	Logger  *zap.Logger
}

// T is the test API. It implements require.TestingT, so testify assertions can be used with it.
type T struct {
	context *framework.Context
	env     *Environment
}

// Page is the browser page of one test along with its navigation helper and capture session.
type Page struct {
	playwright.Page
	Nav     *pages.Navigator
	Capture *capture.Capture
	Browser string
}

func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

func (t *T) FailNow() {
	t.context.FailNow()
}

func (t *T) Failed() bool {
	return t.context.Failed()
}

// BodyFailed reports whether the test action failed, not counting failures during teardown.
func (t *T) BodyFailed() bool {
	return t.context.BodyFailed()
}

func (t *T) ID() framework.TestID {
	return t.context.ID()
}

func (t *T) Config() config.Config {
	return t.env.Config
}

func (t *T) Env() *Environment {
	return t.env
}

func (t *T) Run(name string, action func(*T), markers ...string) {
	t.context.Run(name, func(c *framework.Context) {
		action(&T{context: c, env: t.env})
	}, markers...)
}

func (t *T) Group(name string, action func(*T), markers ...string) {
	t.context.Group(name, func(c *framework.Context) {
		action(&T{context: c, env: t.env})
	}, markers...)
}

// RunWithPage runs a browser test. The test gets a fresh context and page, which are closed when
// it finishes, after failure artifacts have been captured.
func (t *T) RunWithPage(name string, action func(*T, *Page), markers ...string) {
	t.Run(name, func(t *T) {
		action(t, t.OpenPage())
	}, append(markers, framework.MarkerUI)...)
}

// Defer schedules a function to run when the test finishes. See framework.Context.Defer.
func (t *T) Defer(fn func()) {
	t.context.Defer(fn)
}

// Debug adds a line to the test's debug output and to the process log.
func (t *T) Debug(message string, args ...interface{}) {
	t.context.Debug(message, args...)
	t.processLog().Printf(message, args...)
}

func (t *T) processLog() framework.Logger {
	if t.env.Logger == nil {
		return framework.NullLogger()
	}
	return framework.LoggerWithPrefix(logging.Printf{Logger: t.env.Logger}, "["+t.ID().String()+"] ")
}

func (t *T) Skip() {
	t.context.Skip()
}

func (t *T) SkipWithReason(reason string) {
	t.context.SkipWithReason(reason)
}

// APIContext returns a context bounded by the API timeout, cancelled when the test finishes.
func (t *T) APIContext() context.Context {
	timeout := t.env.Config.API.Timeout
	if timeout <= 0 {
		return context.Background()
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	t.Defer(cancel)
	return ctx
}

// ReqRes returns the ReqRes client, failing the test if there is none.
func (t *T) ReqRes() *reqres.Client {
	require.NotNil(t, t.env.ReqRes, "ReqRes client was not configured")
	return t.env.ReqRes
}

// OpenPage creates a browser context and page for the current test and begins capturing. The
// capture session is keyed by the test ID with the browser name as a parameter, so that the
// same test run in two browsers gets distinct artifact names.
func (t *T) OpenPage() *Page {
	require.NotNil(t, t.env.Browser, "no browser was configured for this run")
	b, err := t.env.Browser()
	require.NoError(t, err, "browser is not available")

	bctx, err := b.NewContext()
	require.NoError(t, err)
	t.Defer(func() {
		if err := bctx.Close(); err != nil {
			t.Debug("error closing browser context: %s", err)
		}
	})
	page, err := b.NewPage(bctx)
	require.NoError(t, err)

	id := t.ID().String()
	cp := t.env.Capture.Begin(capture.Session{
		ID:        id + "[" + b.Name() + "]",
		ReportKey: id,
		Page:      browser.CapturePage(page),
		Context:   browser.CaptureContext(bctx),
	})
	// Registered after the context close, so it runs first.
	t.Defer(func() {
		report := cp.Finish(capture.OutcomeOf(t.BodyFailed()))
		for _, f := range report.Files() {
			t.Debug("failure artifact: %s", f)
		}
	})

	return &Page{
		Page:    page,
		Nav:     pages.NewNavigator(page, t.env.Config.Timeouts.Default),
		Capture: cp,
		Browser: b.Name(),
	}
}
