package allure

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/qaforge/web-tests/capture"
	"github.com/qaforge/web-tests/framework"
)

var errNoTestInProgress = errors.New("no test in progress")

// parameterSuffix matches a trailing "[value]" in a test name, as used for parametrized tests.
var parameterSuffix = regexp.MustCompile(`^(.*)\[([^\[\]]*)\]$`)

// Reporter is a framework.TestLogger that writes one result file per test, and a
// capture.Attacher that stores artifacts next to them. Tests are keyed by their TestID string.
type Reporter struct {
	dir     string
	logger  *zap.Logger
	now     func() time.Time
	pending map[string]*Test
	lock    sync.Mutex
}

func NewReporter(dir string, logger *zap.Logger) (*Reporter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create Allure results directory: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reporter{
		dir:     dir,
		logger:  logger,
		now:     time.Now,
		pending: make(map[string]*Test),
	}, nil
}

func (r *Reporter) Dir() string {
	return r.dir
}

// WriteEnvironment writes environment.properties, which Allure shows on the report overview.
func (r *Reporter) WriteEnvironment(info map[string]string) error {
	keys := make([]string, 0, len(info))
	for k := range info {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s=%s\n", k, info[k])
	}
	return os.WriteFile(filepath.Join(r.dir, "environment.properties"), []byte(b.String()), 0o644)
}

func (r *Reporter) TestStarted(id framework.TestID) {
	name, params := splitParameters(id)
	fullName := id.String()
	t := &Test{
		UUID:        uuid.New().String(),
		HistoryID:   uuid.NewMD5(uuid.NameSpaceURL, []byte(fullName)).String(),
		Name:        name,
		FullName:    fullName,
		Start:       r.now().UnixMilli(),
		Labels:      labelsFor(id),
		Parameters:  params,
		Attachments: []Attachment{},
	}
	r.lock.Lock()
	r.pending[fullName] = t
	r.lock.Unlock()
}

func (r *Reporter) TestError(id framework.TestID, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	t := r.pending[id.String()]
	if t == nil {
		return
	}
	message, trace := err.Error(), ""
	if i := strings.Index(message, "\n"); i >= 0 {
		message, trace = message[:i], message[i+1:]
	}
	if t.StatusDetails == nil {
		t.StatusDetails = &StatusDetails{Message: message, Trace: trace}
	} else {
		t.StatusDetails.Message += "\n" + message
	}
}

func (r *Reporter) TestFinished(id framework.TestID, failed bool, _ framework.CapturedOutput) {
	status := StatusPass
	if failed {
		status = StatusFail
	}
	r.finish(id, status, "")
}

func (r *Reporter) TestSkipped(id framework.TestID, reason string) {
	if reason == framework.ExcludedByFilter {
		r.lock.Lock()
		delete(r.pending, id.String())
		r.lock.Unlock()
		return
	}
	r.finish(id, StatusSkip, reason)
}

// Attach implements capture.Attacher.
func (r *Reporter) Attach(key string, a capture.Attachment) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	t := r.pending[key]
	if t == nil {
		return fmt.Errorf("cannot attach %s to %q: %w", a.Name, key, errNoTestInProgress)
	}
	source := fmt.Sprintf("%s-attachment.%s", uuid.New().String(), a.Extension)
	if err := os.WriteFile(filepath.Join(r.dir, source), a.Data, 0o644); err != nil {
		return err
	}
	t.Attachments = append(t.Attachments, Attachment{Name: a.Name, Source: source, Type: a.ContentType})
	return nil
}

func (r *Reporter) finish(id framework.TestID, status, reason string) {
	r.lock.Lock()
	t := r.pending[id.String()]
	delete(r.pending, id.String())
	r.lock.Unlock()
	if t == nil {
		return
	}
	t.Status = status
	t.Stage = StageFinished
	t.Stop = r.now().UnixMilli()
	if reason != "" && t.StatusDetails == nil {
		t.StatusDetails = &StatusDetails{Message: reason}
	}
	if err := r.writeResult(t); err != nil {
		r.logger.Warn("Could not write Allure result", zap.String("test", t.FullName), zap.Error(err))
	}
}

func (r *Reporter) writeResult(t *Test) error {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(r.dir, t.UUID+"-result.json"), data, 0o644)
}

func splitParameters(id framework.TestID) (string, []Parameter) {
	name := ""
	if len(id.Path) > 0 {
		name = id.Path[len(id.Path)-1]
	}
	if m := parameterSuffix.FindStringSubmatch(name); m != nil {
		return strings.TrimSpace(m[1]), []Parameter{{Name: "param", Value: m[2]}}
	}
	return name, nil
}

func labelsFor(id framework.TestID) []Label {
	labels := []Label{
		{Name: "framework", Value: "web-tests"},
		{Name: "language", Value: "go"},
	}
	if len(id.Path) > 1 {
		labels = append(labels, Label{Name: "parentSuite", Value: id.Path[0]})
	}
	if len(id.Path) > 2 {
		labels = append(labels, Label{Name: "suite", Value: strings.Join(id.Path[1:len(id.Path)-1], "/")})
	}
	if host, err := os.Hostname(); err == nil {
		labels = append(labels, Label{Name: "host", Value: host})
	}
	return labels
}
