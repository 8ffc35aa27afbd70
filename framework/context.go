package framework

import (
	"errors"
	"fmt"
	"runtime/debug"
)

// ExcludedByFilter is the skip reason reported for tests that the filter did not select.
const ExcludedByFilter = "excluded by filter parameters"

type environment struct {
	results    Results
	testLogger TestLogger
	filter     Filter
}

// Context is the state of one test or group of tests. It plays the same role as Go's *testing.T
// and implements require.TestingT, so assertions from testify can be used with it directly.
type Context struct {
	env         *environment
	id          TestID
	markers     Markers
	debugLogger CapturingLogger
	failed      bool
	bodyFailed  bool
	skipped     bool
	skipReason  string
	finished    bool
	errors      []error
	cleanups    []func()
}

// Run creates the root context and runs the action in it. Tests are added with Context.Run.
func Run(
	filter Filter,
	testLogger TestLogger,
	action func(*Context),
) Results {
	if testLogger == nil {
		testLogger = nullTestLogger{}
	}
	env := &environment{
		filter:     filter,
		testLogger: testLogger,
	}
	c := &Context{env: env}
	c.run(action)
	return env.results
}

func (c *Context) run(action func(*Context)) {
	defer func() {
		if r := recover(); r != nil {
			c.recordPanic(r)
		}
		c.finished = true
		c.bodyFailed = c.failed
		c.runCleanups()
		if c.id.IsRoot() && !c.failed {
			return
		}
		result := TestResult{TestID: c.id, Errors: c.errors, Skipped: c.skipped}
		c.env.results.Tests = append(c.env.results.Tests, result)
		if c.failed && !c.skipped {
			c.env.results.Failures = append(c.env.results.Failures, result)
		}
	}()

	action(c)
}

func (c *Context) recordPanic(r interface{}) {
	if c.skipped {
		return
	}
	c.failed = true
	var addError error
	if _, ok := r.(*Context); ok {
		if len(c.errors) == 0 {
			addError = errors.New("test failed with no failure message")
		}
	} else {
		addError = fmt.Errorf("unexpected panic in test: %+v\n%s", r, string(debug.Stack()))
	}
	if addError != nil {
		c.errors = append(c.errors, addError)
		c.env.testLogger.TestError(c.id, addError)
	}
}

// runCleanups calls the functions registered with Defer in reverse order. Each one is isolated:
// a panic in a cleanup is reported as a test error but does not stop the remaining cleanups.
func (c *Context) runCleanups() {
	for len(c.cleanups) > 0 {
		last := len(c.cleanups) - 1
		fn := c.cleanups[last]
		c.cleanups = c.cleanups[:last]
		func() {
			defer func() {
				if r := recover(); r != nil {
					c.recordPanic(r)
				}
			}()
			fn()
		}()
	}
}

func (c *Context) ID() TestID {
	return c.id
}

// Markers returns the markers of this test, including the ones inherited from enclosing groups.
func (c *Context) Markers() Markers {
	return c.markers
}

// Run runs a subtest. The filter decides whether it runs at all; markers are added to the ones
// inherited from this context and are visible to the filter.
func (c *Context) Run(name string, action func(*Context), markers ...string) {
	id := c.id.Child(name)
	allMarkers := c.markers.With(markers...)

	c.env.testLogger.TestStarted(id)
	if c.env.filter != nil && !c.env.filter(id, allMarkers) {
		c.env.testLogger.TestSkipped(id, ExcludedByFilter)
		return
	}
	c1 := &Context{
		id:      id,
		markers: allMarkers,
		env:     c.env,
	}
	c1.run(action)
	if c1.skipped {
		c.env.testLogger.TestSkipped(id, c1.skipReason)
	} else {
		c.env.testLogger.TestFinished(id, c1.failed, c1.debugLogger.Output())
	}
}

// Group runs a set of subtests under a common name. Filters are only applied to the subtests,
// and the group itself produces no result.
func (c *Context) Group(name string, action func(*Context), markers ...string) {
	g := &Context{
		id:      c.id.Child(name),
		markers: c.markers.With(markers...),
		env:     c.env,
	}
	defer g.runCleanups()
	action(g)
}

// Defer schedules a function to run when the test finishes, after the test action has returned
// or panicked. Functions run in reverse order of registration. By the time they run, Failed
// reports the final outcome of the test action.
func (c *Context) Defer(fn func()) {
	c.cleanups = append(c.cleanups, fn)
}

// Failed reports whether the test has failed so far.
func (c *Context) Failed() bool {
	return c.failed
}

// BodyFailed reports whether the test action itself failed, ignoring failures in deferred
// functions. It is only meaningful once Finished is true.
func (c *Context) BodyFailed() bool {
	return c.bodyFailed
}

// Finished reports whether the test action has completed, so that the outcome is settled.
func (c *Context) Finished() bool {
	return c.finished
}

func (c *Context) Errorf(format string, args ...interface{}) {
	c.failed = true
	err := fmt.Errorf(format, args...)
	c.errors = append(c.errors, err)
	c.env.testLogger.TestError(c.id, err)
}

func (c *Context) FailNow() {
	panic(c)
}

func (c *Context) Skip() {
	c.skipped = true
	panic(c)
}

func (c *Context) SkipWithReason(reason string) {
	c.skipReason = reason
	c.Skip()
}

func (c *Context) Debug(message string, args ...interface{}) {
	c.debugLogger.Printf(message, args...)
}

func (c *Context) DebugLogger() Logger {
	return &c.debugLogger
}
