package allure

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qaforge/web-tests/capture"
	"github.com/qaforge/web-tests/framework"
)

func newTestReporter(t *testing.T) *Reporter {
	r, err := NewReporter(filepath.Join(t.TempDir(), "allure-results"), nil)
	require.NoError(t, err)
	r.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return r
}

func readResults(t *testing.T, dir string) []Test {
	files, err := filepath.Glob(filepath.Join(dir, "*-result.json"))
	require.NoError(t, err)
	var ret []Test
	for _, f := range files {
		data, err := os.ReadFile(f)
		require.NoError(t, err)
		var test Test
		require.NoError(t, json.Unmarshal(data, &test))
		ret = append(ret, test)
	}
	return ret
}

func TestFailedTestWithAttachments(t *testing.T) {
	r := newTestReporter(t)
	id := framework.TestID{Path: []string{"saucedemo", "auth", "login success"}}

	r.TestStarted(id)
	require.NoError(t, r.Attach(id.String(), capture.Attachment{
		Name: "failure_screenshot", ContentType: "image/png", Extension: "png", Data: []byte("png"),
	}))
	r.TestError(id, errors.New("expected title \"Products\"\nat inventory.go:12"))
	r.TestFinished(id, true, nil)

	results := readResults(t, r.Dir())
	require.Len(t, results, 1)
	test := results[0]
	assert.Equal(t, StatusFail, test.Status)
	assert.Equal(t, StageFinished, test.Stage)
	assert.Equal(t, "login success", test.Name)
	assert.Equal(t, "saucedemo/auth/login success", test.FullName)
	assert.NotEmpty(t, test.HistoryID)
	require.NotNil(t, test.StatusDetails)
	assert.Equal(t, `expected title "Products"`, test.StatusDetails.Message)
	assert.Equal(t, "at inventory.go:12", test.StatusDetails.Trace)
	assert.Contains(t, test.Labels, Label{Name: "parentSuite", Value: "saucedemo"})
	assert.Contains(t, test.Labels, Label{Name: "suite", Value: "auth"})

	require.Len(t, test.Attachments, 1)
	a := test.Attachments[0]
	assert.Equal(t, "failure_screenshot", a.Name)
	assert.Equal(t, "image/png", a.Type)
	assert.True(t, strings.HasSuffix(a.Source, "-attachment.png"))
	data, err := os.ReadFile(filepath.Join(r.Dir(), a.Source))
	require.NoError(t, err)
	assert.Equal(t, "png", string(data))
}

func TestHistoryIDIsStableAcrossRuns(t *testing.T) {
	id := framework.TestID{Path: []string{"demoqa", "slider", "set slider value[25]"}}
	var ids []string
	for i := 0; i < 2; i++ {
		r := newTestReporter(t)
		r.TestStarted(id)
		r.TestFinished(id, false, nil)
		results := readResults(t, r.Dir())
		require.Len(t, results, 1)
		ids = append(ids, results[0].HistoryID)
		assert.Equal(t, "set slider value", results[0].Name)
		assert.Equal(t, []Parameter{{Name: "param", Value: "25"}}, results[0].Parameters)
		assert.Equal(t, StatusPass, results[0].Status)
	}
	assert.Equal(t, ids[0], ids[1])
}

func TestFilteredTestsAreNotReported(t *testing.T) {
	r := newTestReporter(t)
	filtered := framework.TestID{Path: []string{"a"}}
	skipped := framework.TestID{Path: []string{"b"}}

	r.TestStarted(filtered)
	r.TestSkipped(filtered, framework.ExcludedByFilter)
	r.TestStarted(skipped)
	r.TestSkipped(skipped, "site is down")

	results := readResults(t, r.Dir())
	require.Len(t, results, 1)
	assert.Equal(t, StatusSkip, results[0].Status)
	assert.Equal(t, "site is down", results[0].StatusDetails.Message)
}

func TestAttachWithoutTestIsAnError(t *testing.T) {
	r := newTestReporter(t)
	err := r.Attach("nobody", capture.Attachment{Name: "x", Extension: "txt"})
	assert.ErrorIs(t, err, errNoTestInProgress)
}

func TestWriteEnvironment(t *testing.T) {
	r := newTestReporter(t)
	require.NoError(t, r.WriteEnvironment(map[string]string{"browser": "webkit", "ci": "false"}))
	data, err := os.ReadFile(filepath.Join(r.Dir(), "environment.properties"))
	require.NoError(t, err)
	assert.Equal(t, "browser=webkit\nci=false\n", string(data))
}
