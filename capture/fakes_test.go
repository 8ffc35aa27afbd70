package capture

import (
	"errors"
	"os"
	"sync"
	"testing"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var errPageClosed = errors.New("target page, context or browser has been closed")

type fakeMessage struct {
	level, text string
}

func (m fakeMessage) Type() string { return m.level }
func (m fakeMessage) Text() string { return m.text }

type brokenMessage struct{}

func (brokenMessage) Type() string { panic("protocol error") }
func (brokenMessage) Text() string { return "" }

type fakePage struct {
	consoleHandlers map[int]func(ConsoleMessage)
	errorHandlers   map[int]func(error)
	nextID          int
	cancelled       int
	screenshot      []byte
	screenshotErr   error
	fullPage        []bool
	lock            sync.Mutex
}

func newFakePage() *fakePage {
	return &fakePage{
		consoleHandlers: make(map[int]func(ConsoleMessage)),
		errorHandlers:   make(map[int]func(error)),
		screenshot:      []byte("\x89PNG fake"),
	}
}

func (p *fakePage) OnConsole(handler func(ConsoleMessage)) Subscription {
	p.lock.Lock()
	defer p.lock.Unlock()
	id := p.nextID
	p.nextID++
	p.consoleHandlers[id] = handler
	return p.subscription(func() { delete(p.consoleHandlers, id) })
}

func (p *fakePage) OnPageError(handler func(error)) Subscription {
	p.lock.Lock()
	defer p.lock.Unlock()
	id := p.nextID
	p.nextID++
	p.errorHandlers[id] = handler
	return p.subscription(func() { delete(p.errorHandlers, id) })
}

func (p *fakePage) subscription(remove func()) Subscription {
	var once sync.Once
	return SubscriptionFunc(func() {
		once.Do(func() {
			p.lock.Lock()
			defer p.lock.Unlock()
			remove()
			p.cancelled++
		})
	})
}

func (p *fakePage) Screenshot(fullPage bool) ([]byte, error) {
	p.fullPage = append(p.fullPage, fullPage)
	if p.screenshotErr != nil {
		return nil, p.screenshotErr
	}
	return p.screenshot, nil
}

func (p *fakePage) emitConsole(m ConsoleMessage) {
	p.lock.Lock()
	handlers := make([]func(ConsoleMessage), 0, len(p.consoleHandlers))
	for _, h := range p.consoleHandlers {
		handlers = append(handlers, h)
	}
	p.lock.Unlock()
	for _, h := range handlers {
		h(m)
	}
}

func (p *fakePage) emitError(err error) {
	p.lock.Lock()
	handlers := make([]func(error), 0, len(p.errorHandlers))
	for _, h := range p.errorHandlers {
		handlers = append(handlers, h)
	}
	p.lock.Unlock()
	for _, h := range handlers {
		h(err)
	}
}

func (p *fakePage) handlerCount() int {
	p.lock.Lock()
	defer p.lock.Unlock()
	return len(p.consoleHandlers) + len(p.errorHandlers)
}

type fakeContext struct {
	startErr   error
	startPanic bool
	stopErr    error
	started    []TraceOptions
	stops      []string
}

func (c *fakeContext) StartTracing(opts TraceOptions) error {
	if c.startPanic {
		panic("tracing is not supported")
	}
	c.started = append(c.started, opts)
	return c.startErr
}

func (c *fakeContext) StopTracing(path string) error {
	c.stops = append(c.stops, path)
	if c.stopErr != nil {
		return c.stopErr
	}
	if path != "" {
		return os.WriteFile(path, []byte("PK fake trace"), 0o644)
	}
	return nil
}

type recordedAttachment struct {
	key string
	Attachment
}

type fakeAttacher struct {
	attached []recordedAttachment
	err      error
}

func (a *fakeAttacher) Attach(key string, at Attachment) error {
	if a.err != nil {
		return a.err
	}
	a.attached = append(a.attached, recordedAttachment{key, at})
	return nil
}

func (a *fakeAttacher) names() []string {
	var ret []string
	for _, at := range a.attached {
		ret = append(ret, at.Name)
	}
	return ret
}
