// Package capturetest connects failure capture to ordinary go test functions.
package capturetest

import (
	"testing"

	"github.com/qaforge/web-tests/capture"
)

// BindTB finishes c when tb completes, using tb.Failed() as the outcome, and logs the path of
// every artifact written. A nil c does nothing.
func BindTB(tb testing.TB, c *capture.Capture) {
	if c == nil {
		return
	}
	tb.Cleanup(func() {
		report := c.Finish(capture.OutcomeOf(tb.Failed()))
		for _, f := range report.Files() {
			tb.Logf("failure artifact: %s", f)
		}
	})
}
