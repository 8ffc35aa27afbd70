// Package framework contains the low-level test runner that the suites are built on.
//
// The general model is:
//
// 1. A test context, similar to Go's *testing.T, associates a piece of test logic with a test
// identifier and accumulates success/failure results. Contexts nest: Run starts a subtest,
// Group only adds a name prefix.
//
// 2. Tests can carry markers ("smoke", "flaky", ...). A Filter sees the test ID and its markers
// and decides whether the test runs. Regex filters and execution modes are both filters.
//
// 3. Functions registered with Defer run after the test action, once its outcome is settled.
// This is where fixtures are torn down and where failure artifacts are captured.
//
// 4. A TestLogger is notified as tests start, report errors, finish, or are skipped.
//
// The domain-specific code that knows what is being tested provides the fixtures (browser pages,
// API clients) and a test API on top of the context.
package framework
