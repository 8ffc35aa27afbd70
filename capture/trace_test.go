package capture

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceRecorderSave(t *testing.T) {
	ctx := &fakeContext{}
	r := NewTraceRecorder(ctx)
	assert.Equal(t, TraceIdle, r.State())

	start := r.Start(DefaultTraceOptions)
	require.Equal(t, Started, start.Status)
	assert.Equal(t, TraceStarted, r.State())
	assert.Equal(t, []TraceOptions{{Screenshots: true, Snapshots: true, Sources: true}}, ctx.started)

	path := filepath.Join(t.TempDir(), "trace.zip")
	stop := r.StopAndSave(path)
	assert.Equal(t, StopResult{Status: Saved, Path: path}, stop)
	assert.Equal(t, TraceStoppedSaved, r.State())
	assert.FileExists(t, path)

	assert.Equal(t, NotRecorded, r.StopAndDiscard().Status)
	assert.Len(t, ctx.stops, 1)
}

func TestTraceRecorderDiscard(t *testing.T) {
	ctx := &fakeContext{}
	r := NewTraceRecorder(ctx)
	r.Start(DefaultTraceOptions)

	assert.Equal(t, Discarded, r.StopAndDiscard().Status)
	assert.Equal(t, TraceStoppedDiscarded, r.State())
	assert.Equal(t, []string{""}, ctx.stops)
}

func TestTraceRecorderStartFailureLeavesIdle(t *testing.T) {
	for name, ctx := range map[string]*fakeContext{
		"error": {startErr: errors.New("tracing has been already started")},
		"panic": {startPanic: true},
	} {
		t.Run(name, func(t *testing.T) {
			r := NewTraceRecorder(ctx)
			start := r.Start(DefaultTraceOptions)
			assert.Equal(t, FailedToStart, start.Status)
			assert.Error(t, start.Err)
			assert.Equal(t, TraceIdle, r.State())

			assert.Equal(t, NotRecorded, r.StopAndSave(filepath.Join(t.TempDir(), "x.zip")).Status)
			assert.Equal(t, NotRecorded, r.StopAndDiscard().Status)
			assert.Empty(t, ctx.stops)
		})
	}
}

func TestTraceRecorderCannotStartTwice(t *testing.T) {
	r := NewTraceRecorder(&fakeContext{})
	r.Start(DefaultTraceOptions)
	assert.Equal(t, FailedToStart, r.Start(DefaultTraceOptions).Status)
	assert.Equal(t, TraceStarted, r.State())
}

func TestTraceRecorderStopFailures(t *testing.T) {
	ctx := &fakeContext{stopErr: errPageClosed}
	r := NewTraceRecorder(ctx)
	r.Start(DefaultTraceOptions)
	stop := r.StopAndSave("trace.zip")
	assert.Equal(t, FailedToSave, stop.Status)
	assert.ErrorIs(t, stop.Err, errPageClosed)
	assert.Equal(t, TraceStoppedDiscarded, r.State())

	r = NewTraceRecorder(ctx)
	r.Start(DefaultTraceOptions)
	assert.Equal(t, FailedToDiscard, r.StopAndDiscard().Status)
}

func TestNilTraceRecorder(t *testing.T) {
	var r *TraceRecorder
	assert.Equal(t, TraceIdle, r.State())
	assert.Equal(t, StartNotRequested, r.Start(DefaultTraceOptions).Status)
	assert.Equal(t, NotRecorded, r.StopAndDiscard().Status)
	assert.Equal(t, StartNotRequested, NewTraceRecorder(nil).Start(DefaultTraceOptions).Status)
}
