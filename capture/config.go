package capture

import "path/filepath"

const DefaultReportsRoot = "reports"

// Config is resolved once per run and never modified afterward.
type Config struct {
	// Enabled is the master switch for all capture.
	Enabled bool
	// TraceOnFailure gates the trace recorder.
	TraceOnFailure bool
	// ReportsRoot is the directory that the artifact subdirectories are created in.
	ReportsRoot string
	// FullPageScreenshots captures the whole scrollable page instead of the viewport.
	FullPageScreenshots bool
}

func DefaultConfig() Config {
	return Config{
		Enabled:             true,
		TraceOnFailure:      true,
		ReportsRoot:         DefaultReportsRoot,
		FullPageScreenshots: true,
	}
}

// Dir returns the directory that artifacts of the given kind are written to.
func (c Config) Dir(kind Kind) string {
	root := c.ReportsRoot
	if root == "" {
		root = DefaultReportsRoot
	}
	return filepath.Join(root, kind.subdir())
}
