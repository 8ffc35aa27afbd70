package framework

import (
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Filter is a function that can determine whether to run a specific test or not.
type Filter func(TestID, Markers) bool

// AllFilters combines filters so that a test runs only if every non-nil filter accepts it.
func AllFilters(filters ...Filter) Filter {
	return func(id TestID, markers Markers) bool {
		for _, f := range filters {
			if f != nil && !f(id, markers) {
				return false
			}
		}
		return true
	}
}

// Markers are the tags attached to a test, such as "smoke" or "flaky".
type Markers []string

func (m Markers) Has(marker string) bool {
	for _, x := range m {
		if x == marker {
			return true
		}
	}
	return false
}

// With returns a new marker list with the given markers added. The receiver is not modified.
func (m Markers) With(markers ...string) Markers {
	if len(markers) == 0 {
		return m
	}
	ret := make(Markers, 0, len(m)+len(markers))
	ret = append(ret, m...)
	for _, x := range markers {
		if !ret.Has(x) {
			ret = append(ret, x)
		}
	}
	return ret
}

type RegexFilters struct {
	MustMatch    RegexList
	MustNotMatch RegexList
}

func (r RegexFilters) AsFilter(id TestID, _ Markers) bool {
	name := id.String()
	return (!r.MustMatch.IsDefined() || r.MustMatch.AnyMatch(name)) &&
		!r.MustNotMatch.AnyMatch(name)
}

type RegexList struct {
	patterns []*regexp.Regexp
}

func (r RegexList) String() string {
	var ss []string
	for _, p := range r.patterns {
		ss = append(ss, `"`+p.String()+`"`)
	}
	return strings.Join(ss, " or ")
}

// Set is called by the command line parser
func (r *RegexList) Set(value string) error {
	rx, err := regexp.Compile(value)
	if err != nil {
		return fmt.Errorf("invalid regex: %w", err)
	}
	r.patterns = append(r.patterns, rx)
	return nil
}

// Type is used by the command line parser in help output.
func (r *RegexList) Type() string {
	return "regex"
}

func (r RegexList) IsDefined() bool {
	return len(r.patterns) != 0
}

func (r RegexList) AnyMatch(s string) bool {
	for _, p := range r.patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

func PrintFilterDescription(w io.Writer, filters RegexFilters, mode ExecutionMode) {
	if filters.MustMatch.IsDefined() || filters.MustNotMatch.IsDefined() || mode != ModeAll {
		fmt.Fprintln(w, "Some tests will be skipped based on the filter criteria for this test run:")
		if filters.MustMatch.IsDefined() {
			fmt.Fprintf(w, "  skip any not matching %s\n", filters.MustMatch)
		}
		if filters.MustNotMatch.IsDefined() {
			fmt.Fprintf(w, "  skip any matching %s\n", filters.MustNotMatch)
		}
		if mode != ModeAll {
			fmt.Fprintf(w, "  execution mode %s: %s\n", mode, mode.Description())
		}
		fmt.Fprintln(w)
	}
}
