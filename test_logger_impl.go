package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/qaforge/web-tests/framework"
)

var (
	failColor = color.New(color.FgRed, color.Bold)
	skipColor = color.New(color.FgYellow)
	hintColor = color.New(color.Faint)
)

// ConsoleTestLogger prints test progress. Tests excluded by the filter are not mentioned.
type ConsoleTestLogger struct {
	Out                  io.Writer
	DebugOutputOnFailure bool
	DebugOutputOnSuccess bool
	pending              []framework.TestID
}

func (c *ConsoleTestLogger) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

// TestStarted holds the test name back until the test reports something, so that filtered
// tests produce no output.
func (c *ConsoleTestLogger) TestStarted(id framework.TestID) {
	c.pending = append(c.pending, id)
}

func (c *ConsoleTestLogger) announce(id framework.TestID) {
	if c.dropPending(id) {
		fmt.Fprintf(c.out(), "[%s]\n", id)
	}
}

func (c *ConsoleTestLogger) TestError(id framework.TestID, err error) {
	c.announce(id)
	for _, line := range strings.Split(err.Error(), "\n") {
		fmt.Fprintf(c.out(), "  %s\n", line)
	}
}

func (c *ConsoleTestLogger) TestFinished(id framework.TestID, failed bool, debugOutput framework.CapturedOutput) {
	c.announce(id)
	if failed {
		failColor.Fprintf(c.out(), "  FAILED: %s\n", id)
		hintColor.Fprintf(c.out(), "  re-run with: %s\n", rerunCommand(id))
	}
	if len(debugOutput) > 0 &&
		((failed && c.DebugOutputOnFailure) || (!failed && c.DebugOutputOnSuccess)) {
		debugOutput.Dump(c.out(), "    DEBUG ")
	}
}

func (c *ConsoleTestLogger) TestSkipped(id framework.TestID, reason string) {
	if reason == framework.ExcludedByFilter {
		c.dropPending(id)
		return
	}
	c.announce(id)
	if reason == "" {
		skipColor.Fprintf(c.out(), "  SKIPPED: %s\n", id)
	} else {
		skipColor.Fprintf(c.out(), "  SKIPPED: %s (%s)\n", id, reason)
	}
}

func (c *ConsoleTestLogger) dropPending(id framework.TestID) bool {
	for i, p := range c.pending {
		if p.String() == id.String() {
			c.pending = append(c.pending[:i], c.pending[i+1:]...)
			return true
		}
	}
	return false
}
