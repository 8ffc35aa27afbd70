package capture

import (
	"fmt"
	"sync"
)

const (
	unreadableConsoleLine = "[console] <unreadable message>"
	unreadablePageError   = "[pageerror] <unreadable error>"
)

// ConsoleRecorder keeps the console output and uncaught page errors of one page, in the order
// they arrived. Lines are only appended while the recorder is attached.
type ConsoleRecorder struct {
	lines    []string
	subs     []Subscription
	attached bool
	lock     sync.Mutex
}

func NewConsoleRecorder() *ConsoleRecorder {
	return &ConsoleRecorder{}
}

// Attach subscribes to the page's console and page error events. It never panics; if the page
// refuses a subscription the recorder simply gets fewer lines.
func (r *ConsoleRecorder) Attach(page Page) error {
	if page == nil {
		return nil
	}
	r.lock.Lock()
	r.attached = true
	r.lock.Unlock()

	var subs []Subscription
	err := safely(func() error {
		subs = append(subs, page.OnConsole(r.recordConsole))
		subs = append(subs, page.OnPageError(r.recordPageError))
		return nil
	})

	r.lock.Lock()
	r.subs = append(r.subs, subs...)
	r.lock.Unlock()
	return err
}

// Detach removes the event subscriptions. Lines arriving afterward are ignored.
func (r *ConsoleRecorder) Detach() {
	r.lock.Lock()
	subs := r.subs
	r.subs = nil
	r.attached = false
	r.lock.Unlock()

	for _, s := range subs {
		if s != nil {
			_ = safely(func() error { s.Cancel(); return nil })
		}
	}
}

// Lines returns a copy of everything recorded so far.
func (r *ConsoleRecorder) Lines() []string {
	r.lock.Lock()
	defer r.lock.Unlock()
	return append([]string(nil), r.lines...)
}

func (r *ConsoleRecorder) Len() int {
	r.lock.Lock()
	defer r.lock.Unlock()
	return len(r.lines)
}

func (r *ConsoleRecorder) recordConsole(m ConsoleMessage) {
	r.append(formatConsoleMessage(m))
}

func (r *ConsoleRecorder) recordPageError(err error) {
	r.append(formatPageError(err))
}

func (r *ConsoleRecorder) append(line string) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.attached {
		r.lines = append(r.lines, line)
	}
}

func formatConsoleMessage(m ConsoleMessage) (line string) {
	defer func() {
		if recover() != nil {
			line = unreadableConsoleLine
		}
	}()
	if m == nil {
		return unreadableConsoleLine
	}
	return fmt.Sprintf("[console.%s] %s", m.Type(), m.Text())
}

func formatPageError(err error) (line string) {
	defer func() {
		if recover() != nil {
			line = unreadablePageError
		}
	}()
	if err == nil {
		return unreadablePageError
	}
	return "[pageerror] " + err.Error()
}

func safely(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = fmt.Errorf("recovered panic: %w", e)
			} else {
				err = fmt.Errorf("recovered panic: %v", r)
			}
		}
	}()
	return fn()
}
