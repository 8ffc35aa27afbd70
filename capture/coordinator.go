// Package capture collects diagnostic artifacts for browser tests that fail.
//
// For each browser-driven test a Coordinator begins a Capture, which records the page's console
// output and starts a trace recording. When the test finishes, Finish is called with its
// outcome: on failure the console log, a screenshot and the trace archive are written under the
// reports directory; on success the trace is discarded and nothing is written. Nothing that
// goes wrong here can change the outcome of the test.
package capture

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

type Outcome int

const (
	Pending Outcome = iota
	Passed
	Failed
)

// OutcomeOf converts a test runner's failed flag to an Outcome.
func OutcomeOf(failed bool) Outcome {
	if failed {
		return Failed
	}
	return Passed
}

func (o Outcome) String() string {
	switch o {
	case Pending:
		return "pending"
	case Passed:
		return "passed"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Session identifies one test execution and the browser resources it uses. Either resource may
// be nil.
type Session struct {
	// ID is the fully qualified test name, used for artifact file names.
	ID string
	// ReportKey identifies the test to the Attacher. Defaults to ID.
	ReportKey string
	Page      Page
	Context   BrowserContext
}

// Report is what Finish did for one session.
type Report struct {
	SessionID  string
	Outcome    Outcome
	TraceStart StartResult
	ConsoleLog WriteResult
	Screenshot WriteResult
	Trace      StopResult
}

// Files returns the paths of every artifact that was written.
func (r Report) Files() []string {
	var files []string
	for _, w := range []WriteResult{r.ConsoleLog, r.Screenshot} {
		if w.Status == Written {
			files = append(files, w.Path)
		}
	}
	if r.Trace.Status == Saved {
		files = append(files, r.Trace.Path)
	}
	return files
}

// Coordinator is shared by all sessions in a run. It holds no per-session state.
type Coordinator struct {
	config Config
	writer *Writer
	logger *zap.Logger
	now    func() time.Time
}

// NewCoordinator creates a Coordinator. attacher may be nil if no report tool is in use.
func NewCoordinator(config Config, attacher Attacher, logger *zap.Logger) *Coordinator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if attacher == nil {
		logger.Debug("No report integration, artifacts will only be written to disk")
	}
	return &Coordinator{
		config: config,
		writer: NewWriter(attacher, logger),
		logger: logger,
		now:    time.Now,
	}
}

func (c *Coordinator) Config() Config {
	return c.config
}

// Begin sets up capture for a session. It returns nil, whose methods do nothing, if capture is
// disabled or the session has neither a page nor a browser context.
func (c *Coordinator) Begin(s Session) *Capture {
	if c == nil || !c.config.Enabled || (s.Page == nil && s.Context == nil) {
		return nil
	}
	if s.ReportKey == "" {
		s.ReportKey = s.ID
	}
	for _, kind := range []Kind{KindScreenshot, KindTrace, KindConsoleLog} {
		if err := EnsureDir(c.config.Dir(kind)); err != nil {
			c.logger.Warn("Could not create artifact directory",
				zap.String("dir", c.config.Dir(kind)), zap.Error(err))
		}
	}

	cp := &Capture{coordinator: c, session: s}
	if s.Page != nil {
		cp.console = NewConsoleRecorder()
		if err := cp.console.Attach(s.Page); err != nil {
			c.logger.Warn("Console capture is incomplete", zap.String("session", s.ID), zap.Error(err))
		}
	}
	if c.config.TraceOnFailure && s.Context != nil {
		cp.trace = NewTraceRecorder(s.Context)
		cp.traceStart = cp.trace.Start(DefaultTraceOptions)
		if cp.traceStart.Status == FailedToStart {
			c.logger.Warn("Trace recording could not start",
				zap.String("session", s.ID), zap.Error(cp.traceStart.Err))
		}
	}
	return cp
}

// Capture is the capture state of a single session.
type Capture struct {
	coordinator *Coordinator
	session     Session
	console     *ConsoleRecorder
	trace       *TraceRecorder
	traceStart  StartResult
	finished    bool
	report      Report
	lock        sync.Mutex
}

// Console returns the session's console recorder, or nil if the session has no page.
func (cp *Capture) Console() *ConsoleRecorder {
	if cp == nil {
		return nil
	}
	return cp.console
}

// TraceState returns the current state of the session's trace recording.
func (cp *Capture) TraceState() TraceState {
	if cp == nil {
		return TraceIdle
	}
	return cp.trace.State()
}

// Finish applies the test outcome. Only the first call has any effect; later calls return the
// same Report.
func (cp *Capture) Finish(outcome Outcome) Report {
	if cp == nil {
		return Report{Outcome: outcome}
	}
	cp.lock.Lock()
	defer cp.lock.Unlock()
	if cp.finished {
		return cp.report
	}
	cp.finished = true

	// Console lines that arrive during teardown do not belong to the test.
	if cp.console != nil {
		cp.console.Detach()
	}

	s := cp.session
	report := Report{SessionID: s.ID, Outcome: outcome, TraceStart: cp.traceStart}
	if outcome == Failed {
		c := cp.coordinator
		stamp := Stamp(c.now())
		if cp.console != nil {
			report.ConsoleLog = c.writer.WriteConsoleLog(s.ReportKey,
				artifactPath(c.config.Dir(KindConsoleLog), s.ID, KindConsoleLog, stamp), cp.console.Lines())
		}
		report.Screenshot = c.writer.WriteScreenshot(s.ReportKey,
			artifactPath(c.config.Dir(KindScreenshot), s.ID, KindScreenshot, stamp), s.Page,
			c.config.FullPageScreenshots)
		report.Trace = cp.saveTrace(artifactPath(c.config.Dir(KindTrace), s.ID, KindTrace, stamp))
	} else {
		report.Trace = cp.trace.StopAndDiscard()
		if report.Trace.Status == FailedToDiscard {
			cp.coordinator.logger.Warn("Trace recording could not be stopped",
				zap.String("session", s.ID), zap.Error(report.Trace.Err))
		}
	}
	cp.report = report
	return report
}

func (cp *Capture) saveTrace(path string) StopResult {
	c := cp.coordinator
	if cp.trace.State() != TraceStarted {
		return StopResult{Status: NotRecorded}
	}
	if err := EnsureDir(c.config.Dir(KindTrace)); err != nil {
		c.logger.Warn("Could not create artifact directory", zap.String("dir", c.config.Dir(KindTrace)), zap.Error(err))
	}
	result := cp.trace.StopAndSave(path)
	switch result.Status {
	case Saved:
		c.logger.Debug("Saved artifact", zap.Stringer("kind", KindTrace), zap.String("path", path))
		result.Attached = c.writer.AttachFile(KindTrace, cp.session.ReportKey, path)
	case FailedToSave:
		c.logger.Warn("Failed to save artifact", zap.Stringer("kind", KindTrace),
			zap.String("session", cp.session.ID), zap.String("path", path), zap.Error(result.Err))
	}
	return result
}
