// Package pages holds the browser actions shared by every page object. Page objects embed no
// base type; each one holds a *Navigator and builds its own operations from it.
package pages

import (
	"fmt"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
)

// DefaultWaitTimeout applies to the Wait* helpers when the caller passes zero.
const DefaultWaitTimeout = 5 * time.Second

type Navigator struct {
	page    playwright.Page
	timeout time.Duration
}

// NewNavigator wraps page. waitTimeout is used by the Wait* helpers when they are given zero.
func NewNavigator(page playwright.Page, waitTimeout time.Duration) *Navigator {
	if waitTimeout <= 0 {
		waitTimeout = DefaultWaitTimeout
	}
	return &Navigator{page: page, timeout: waitTimeout}
}

func (n *Navigator) Page() playwright.Page {
	return n.page
}

// Open goes to url and waits for the DOM to be loaded.
func (n *Navigator) Open(url string) error {
	if _, err := n.page.Goto(url); err != nil {
		return fmt.Errorf("could not open %s: %w", url, err)
	}
	return n.waitForDOM()
}

func (n *Navigator) Refresh() error {
	if _, err := n.page.Reload(); err != nil {
		return fmt.Errorf("could not reload page: %w", err)
	}
	return n.waitForDOM()
}

func (n *Navigator) waitForDOM() error {
	return n.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State: playwright.LoadStateDomcontentloaded,
	})
}

func (n *Navigator) Locator(selector string) playwright.Locator {
	return n.page.Locator(selector)
}

// Click waits for the element to be visible, then clicks it.
func (n *Navigator) Click(selector string) error {
	if err := n.WaitForVisible(selector, 0); err != nil {
		return err
	}
	return n.page.Locator(selector).Click()
}

// Fill waits for the input to be visible, then replaces its value.
func (n *Navigator) Fill(selector, value string) error {
	if err := n.WaitForVisible(selector, 0); err != nil {
		return err
	}
	return n.page.Locator(selector).Fill(value)
}

// Type waits for the input to be visible, then types value one key at a time.
func (n *Navigator) Type(selector, value string) error {
	if err := n.WaitForVisible(selector, 0); err != nil {
		return err
	}
	return n.page.Locator(selector).PressSequentially(value)
}

func (n *Navigator) WaitForVisible(selector string, timeout time.Duration) error {
	return n.waitFor(selector, playwright.WaitForSelectorStateVisible, timeout)
}

func (n *Navigator) WaitForHidden(selector string, timeout time.Duration) error {
	return n.waitFor(selector, playwright.WaitForSelectorStateHidden, timeout)
}

func (n *Navigator) waitFor(selector string, state *playwright.WaitForSelectorState, timeout time.Duration) error {
	err := n.page.Locator(selector).First().WaitFor(playwright.LocatorWaitForOptions{
		State:   state,
		Timeout: playwright.Float(n.millis(timeout)),
	})
	if err != nil {
		return fmt.Errorf("waiting for %s to be %s: %w", selector, *state, err)
	}
	return nil
}

// WaitForURL waits until the page URL contains part.
func (n *Navigator) WaitForURL(part string, timeout time.Duration) error {
	return n.page.WaitForURL(URLPattern(part), playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(n.millis(timeout)),
	})
}

// IsVisible reports whether the first matching element is visible. Errors count as not visible.
func (n *Navigator) IsVisible(selector string) bool {
	visible, err := n.page.Locator(selector).First().IsVisible()
	return err == nil && visible
}

// Text returns the text content of the first matching element.
func (n *Navigator) Text(selector string) (string, error) {
	return n.page.Locator(selector).First().TextContent()
}

func (n *Navigator) Count(selector string) (int, error) {
	return n.page.Locator(selector).Count()
}

func (n *Navigator) millis(timeout time.Duration) float64 {
	if timeout <= 0 {
		timeout = n.timeout
	}
	return float64(timeout.Milliseconds())
}

// JoinURL appends a relative path to a base URL with exactly one slash between them. An empty
// path returns the base URL without a trailing slash.
func JoinURL(base, path string) string {
	base = strings.TrimRight(base, "/")
	path = strings.TrimLeft(path, "/")
	if path == "" {
		return base
	}
	return base + "/" + path
}

// URLPattern is the glob that matches any URL containing part.
func URLPattern(part string) string {
	return "**" + part + "**"
}
