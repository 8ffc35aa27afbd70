package capture

import (
	"errors"
	"fmt"
	"sync"
)

// DefaultTraceOptions records screenshots, DOM snapshots and sources.
var DefaultTraceOptions = TraceOptions{Screenshots: true, Snapshots: true, Sources: true}

type TraceState int

const (
	TraceIdle TraceState = iota
	TraceStarted
	TraceStoppedSaved
	TraceStoppedDiscarded
)

func (s TraceState) String() string {
	switch s {
	case TraceIdle:
		return "idle"
	case TraceStarted:
		return "started"
	case TraceStoppedSaved:
		return "stopped_saved"
	case TraceStoppedDiscarded:
		return "stopped_discarded"
	default:
		return fmt.Sprintf("TraceState(%d)", int(s))
	}
}

type StartStatus int

const (
	StartNotRequested StartStatus = iota
	Started
	FailedToStart
)

func (s StartStatus) String() string {
	switch s {
	case StartNotRequested:
		return "not requested"
	case Started:
		return "started"
	case FailedToStart:
		return "failed to start"
	default:
		return fmt.Sprintf("StartStatus(%d)", int(s))
	}
}

// StartResult reports what happened when a trace recording was requested.
type StartResult struct {
	Status StartStatus
	Err    error
}

type StopStatus int

const (
	NotRecorded StopStatus = iota
	Saved
	Discarded
	FailedToSave
	FailedToDiscard
)

func (s StopStatus) String() string {
	switch s {
	case NotRecorded:
		return "not recorded"
	case Saved:
		return "saved"
	case Discarded:
		return "discarded"
	case FailedToSave:
		return "failed to save"
	case FailedToDiscard:
		return "failed to discard"
	default:
		return fmt.Sprintf("StopStatus(%d)", int(s))
	}
}

// StopResult reports the outcome of ending a trace recording. Attached is true if a saved
// trace was also handed to the report tool.
type StopResult struct {
	Status   StopStatus
	Path     string
	Err      error
	Attached bool
}

// TraceRecorder drives the trace recording of a single browser context. A recording is started
// at most once and stopped at most once: idle -> started -> stopped_saved | stopped_discarded.
// Stopping a recorder that never started reports NotRecorded and does not touch the context.
type TraceRecorder struct {
	context BrowserContext
	state   TraceState
	lock    sync.Mutex
}

func NewTraceRecorder(context BrowserContext) *TraceRecorder {
	return &TraceRecorder{context: context}
}

func (r *TraceRecorder) State() TraceState {
	if r == nil {
		return TraceIdle
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.state
}

// Start begins recording. A failure leaves the recorder idle.
func (r *TraceRecorder) Start(opts TraceOptions) StartResult {
	if r == nil || r.context == nil {
		return StartResult{Status: StartNotRequested}
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.state != TraceIdle {
		return StartResult{Status: FailedToStart, Err: fmt.Errorf("trace recorder is %s", r.state)}
	}
	if err := safely(func() error { return r.context.StartTracing(opts) }); err != nil {
		return StartResult{Status: FailedToStart, Err: err}
	}
	r.state = TraceStarted
	return StartResult{Status: Started}
}

// StopAndSave ends the recording and writes the archive to path.
func (r *TraceRecorder) StopAndSave(path string) StopResult {
	if path == "" {
		return StopResult{Status: FailedToSave, Err: errors.New("no trace path given")}
	}
	return r.stop(path)
}

// StopAndDiscard ends the recording without writing anything.
func (r *TraceRecorder) StopAndDiscard() StopResult {
	return r.stop("")
}

func (r *TraceRecorder) stop(path string) StopResult {
	if r == nil {
		return StopResult{Status: NotRecorded}
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.state != TraceStarted {
		return StopResult{Status: NotRecorded}
	}
	err := safely(func() error { return r.context.StopTracing(path) })
	// The engine may or may not have stopped after an error; either way nothing was kept and the
	// recorder must not try again.
	if path == "" {
		r.state = TraceStoppedDiscarded
		if err != nil {
			return StopResult{Status: FailedToDiscard, Err: err}
		}
		return StopResult{Status: Discarded}
	}
	if err != nil {
		r.state = TraceStoppedDiscarded
		return StopResult{Status: FailedToSave, Path: path, Err: err}
	}
	r.state = TraceStoppedSaved
	return StopResult{Status: Saved, Path: path}
}
