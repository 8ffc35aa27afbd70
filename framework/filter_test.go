package framework

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testID(path ...string) TestID {
	return TestID{Path: path}
}

func TestRegexFilters(t *testing.T) {
	var f RegexFilters
	require.NoError(t, f.MustMatch.Set("saucedemo"))
	require.NoError(t, f.MustNotMatch.Set("logout$"))

	assert.True(t, f.AsFilter(testID("saucedemo", "auth", "login success"), nil))
	assert.False(t, f.AsFilter(testID("saucedemo", "inventory", "logout"), nil))
	assert.False(t, f.AsFilter(testID("demoqa", "slider"), nil))
}

func TestRegexListRejectsInvalidPattern(t *testing.T) {
	var r RegexList
	assert.Error(t, r.Set("("))
	assert.False(t, r.IsDefined())
}

func TestSelectExecutionMode(t *testing.T) {
	for _, tc := range []struct {
		smoke, full, flaky bool
		expected           ExecutionMode
	}{
		{false, false, false, ModeAll},
		{true, false, false, ModeSmoke},
		{false, true, false, ModeFull},
		{false, false, true, ModeFlaky},
	} {
		mode, err := SelectExecutionMode(tc.smoke, tc.full, tc.flaky)
		require.NoError(t, err)
		assert.Equal(t, tc.expected, mode)
	}
}

func TestSelectExecutionModeConflict(t *testing.T) {
	for _, flags := range [][3]bool{
		{true, true, false},
		{true, false, true},
		{false, true, true},
		{true, true, true},
	} {
		_, err := SelectExecutionMode(flags[0], flags[1], flags[2])
		assert.ErrorIs(t, err, ErrConflictingModes)
	}
}

func TestExecutionModeFilters(t *testing.T) {
	id := testID("x")
	smoke := Markers{MarkerSmoke}
	flaky := Markers{MarkerFlaky}
	var none Markers

	assert.True(t, ModeSmoke.AsFilter(id, smoke))
	assert.False(t, ModeSmoke.AsFilter(id, none))

	assert.True(t, ModeFull.AsFilter(id, smoke))
	assert.True(t, ModeFull.AsFilter(id, none))
	assert.False(t, ModeFull.AsFilter(id, flaky))

	assert.True(t, ModeFlaky.AsFilter(id, flaky))
	assert.False(t, ModeFlaky.AsFilter(id, smoke))

	assert.True(t, ModeAll.AsFilter(id, none))
}

func TestAllFiltersSkipsNil(t *testing.T) {
	var regex RegexFilters
	require.NoError(t, regex.MustMatch.Set("auth"))
	f := AllFilters(regex.AsFilter, nil, ModeSmoke.AsFilter)

	assert.True(t, f(testID("saucedemo", "auth"), Markers{MarkerSmoke}))
	assert.False(t, f(testID("saucedemo", "auth"), nil))
	assert.False(t, f(testID("saucedemo", "cart"), Markers{MarkerSmoke}))
}

func TestMarkersWithDoesNotModifyReceiver(t *testing.T) {
	base := make(Markers, 1, 4)
	base[0] = "ui"
	a := base.With("smoke")
	b := base.With("flaky", "ui")
	assert.Equal(t, Markers{"ui", "smoke"}, a)
	assert.Equal(t, Markers{"ui", "flaky"}, b)
	assert.Equal(t, Markers{"ui"}, base)
}

func TestPrintFilterDescription(t *testing.T) {
	var buf bytes.Buffer
	PrintFilterDescription(&buf, RegexFilters{}, ModeAll)
	assert.Empty(t, buf.String())

	var f RegexFilters
	require.NoError(t, f.MustNotMatch.Set("slider"))
	PrintFilterDescription(&buf, f, ModeFull)
	assert.Contains(t, buf.String(), `skip any matching "slider"`)
	assert.Contains(t, buf.String(), "execution mode full")
}

func TestPrintResults(t *testing.T) {
	var buf bytes.Buffer
	results := Results{
		Tests: []TestResult{
			{TestID: testID("a")},
			{TestID: testID("b"), Errors: []error{assert.AnError}},
			{TestID: testID("c"), Skipped: true},
		},
	}
	results.Failures = []TestResult{results.Tests[1]}
	PrintResults(&buf, results)
	assert.Contains(t, buf.String(), "FAILED TESTS:\n  b\n")
	assert.Contains(t, buf.String(), "1 passed, 1 failed, 1 skipped")
}
