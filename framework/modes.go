package framework

import (
	"errors"
	"fmt"
)

const (
	MarkerSmoke = "smoke"
	MarkerFlaky = "flaky"
	MarkerAPI   = "api"
	MarkerUI    = "ui"
)

// ErrConflictingModes is returned when more than one execution mode is requested for a run.
var ErrConflictingModes = errors.New("only one execution mode can be selected: --smoke, --full, or --flaky")

// ExecutionMode selects a subset of the suite by marker.
type ExecutionMode int

const (
	// ModeAll runs every test.
	ModeAll ExecutionMode = iota
	// ModeSmoke runs only tests marked smoke.
	ModeSmoke
	// ModeFull runs everything except tests marked flaky.
	ModeFull
	// ModeFlaky runs only tests marked flaky.
	ModeFlaky
)

// SelectExecutionMode turns the execution mode flags into a mode. Setting more than one of them
// is a usage error.
func SelectExecutionMode(smoke, full, flaky bool) (ExecutionMode, error) {
	selected := 0
	mode := ModeAll
	for _, m := range []struct {
		set  bool
		mode ExecutionMode
	}{{smoke, ModeSmoke}, {full, ModeFull}, {flaky, ModeFlaky}} {
		if m.set {
			selected++
			mode = m.mode
		}
	}
	if selected > 1 {
		return ModeAll, ErrConflictingModes
	}
	return mode, nil
}

func (m ExecutionMode) String() string {
	switch m {
	case ModeAll:
		return "all"
	case ModeSmoke:
		return "smoke"
	case ModeFull:
		return "full"
	case ModeFlaky:
		return "flaky"
	default:
		return fmt.Sprintf("ExecutionMode(%d)", int(m))
	}
}

func (m ExecutionMode) Description() string {
	switch m {
	case ModeSmoke:
		return "run smoke tests only"
	case ModeFull:
		return "run full regression suite (exclude flaky tests)"
	case ModeFlaky:
		return "run flaky tests only"
	default:
		return "run all tests"
	}
}

func (m ExecutionMode) AsFilter(_ TestID, markers Markers) bool {
	switch m {
	case ModeSmoke:
		return markers.Has(MarkerSmoke)
	case ModeFull:
		return !markers.Has(MarkerFlaky)
	case ModeFlaky:
		return markers.Has(MarkerFlaky)
	default:
		return true
	}
}
