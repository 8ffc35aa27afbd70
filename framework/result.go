package framework

import (
	"fmt"
	"io"
	"strings"
)

type Results struct {
	Tests    []TestResult
	Failures []TestResult
}

type TestResult struct {
	TestID  TestID
	Errors  []error
	Skipped bool
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// Counts returns the number of tests that passed, failed, and were skipped.
func (r Results) Counts() (passed, failed, skipped int) {
	for _, t := range r.Tests {
		if t.Skipped {
			skipped++
		}
	}
	failed = len(r.Failures)
	passed = len(r.Tests) - failed - skipped
	return
}

type TestID struct {
	Path []string
}

// Child returns the ID of a subtest. The path is copied so that sibling IDs never share storage.
func (t TestID) Child(name string) TestID {
	path := make([]string, 0, len(t.Path)+1)
	path = append(path, t.Path...)
	return TestID{Path: append(path, name)}
}

func (t TestID) IsRoot() bool {
	return len(t.Path) == 0
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}

// PrintResults writes a summary of the test run, listing every failed test with its errors.
func PrintResults(w io.Writer, results Results) {
	passed, failed, skipped := results.Counts()
	if len(results.Failures) > 0 {
		fmt.Fprintln(w, "FAILED TESTS:")
		for _, f := range results.Failures {
			fmt.Fprintf(w, "  %s\n", f.TestID)
			for _, err := range f.Errors {
				for _, line := range strings.Split(err.Error(), "\n") {
					fmt.Fprintf(w, "    %s\n", line)
				}
			}
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "%d passed, %d failed, %d skipped\n", passed, failed, skipped)
}
