package browser

import "sync"

// Lazy launches the browser the first time it is needed, so that a run that selects only API
// tests never starts Playwright.
type Lazy struct {
	launch  func() (*Manager, error)
	once    sync.Once
	manager *Manager
	err     error
}

func NewLazy(launch func() (*Manager, error)) *Lazy {
	return &Lazy{launch: launch}
}

// Get returns the launched browser. A launch failure is remembered and returned on every call.
func (l *Lazy) Get() (*Manager, error) {
	l.once.Do(func() {
		l.manager, l.err = l.launch()
	})
	return l.manager, l.err
}

// Close shuts the browser down if it was launched. After Close, Get never launches.
func (l *Lazy) Close() error {
	l.once.Do(func() {})
	if l.manager == nil {
		return nil
	}
	return l.manager.Close()
}
