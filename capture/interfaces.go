package capture

// ConsoleMessage is a message that a page wrote to the browser console.
type ConsoleMessage interface {
	// Type is the console level: "log", "warning", "error", and so on.
	Type() string
	Text() string
}

// Subscription is a registered event handler. Cancel removes it; calling Cancel more than once
// has no further effect.
type Subscription interface {
	Cancel()
}

// SubscriptionFunc adapts a plain function to the Subscription interface.
type SubscriptionFunc func()

func (f SubscriptionFunc) Cancel() {
	if f != nil {
		f()
	}
}

// Page is the part of a browser page that failure capture uses.
type Page interface {
	// OnConsole registers a handler for console messages.
	OnConsole(handler func(ConsoleMessage)) Subscription
	// OnPageError registers a handler for uncaught errors thrown by page scripts.
	OnPageError(handler func(error)) Subscription
	// Screenshot returns a PNG image of the page.
	Screenshot(fullPage bool) ([]byte, error)
}

// TraceOptions controls what a trace recording includes.
type TraceOptions struct {
	Screenshots bool
	Snapshots   bool
	Sources     bool
	Title       string
}

// BrowserContext is the part of a browser context that failure capture uses.
type BrowserContext interface {
	StartTracing(opts TraceOptions) error
	// StopTracing ends the recording. If path is non-empty the trace archive is written there,
	// otherwise the recording is thrown away.
	StopTracing(path string) error
}

// Attachment is a captured artifact forwarded to a reporting tool.
type Attachment struct {
	Name        string
	ContentType string
	Extension   string
	Data        []byte
}

// Attacher is implemented by reporting integrations that can store artifacts alongside a test
// result. key identifies the test in the report.
type Attacher interface {
	Attach(key string, a Attachment) error
}
