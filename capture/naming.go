package capture

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// stampLayout has microsecond resolution. Go only accepts '.' or ',' before fractional seconds,
// so the separator is swapped for '_' after formatting.
const stampLayout = "20060102_150405.000000"

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]+`)

// Kind is a type of failure artifact.
type Kind int

const (
	KindScreenshot Kind = iota
	KindTrace
	KindConsoleLog
)

func (k Kind) String() string {
	switch k {
	case KindScreenshot:
		return "screenshot"
	case KindTrace:
		return "trace"
	case KindConsoleLog:
		return "console log"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

func (k Kind) subdir() string {
	switch k {
	case KindScreenshot:
		return "screenshots"
	case KindTrace:
		return "traces"
	default:
		return "logs"
	}
}

// Extension is the file extension used for this kind, without the dot.
func (k Kind) Extension() string {
	switch k {
	case KindScreenshot:
		return "png"
	case KindTrace:
		return "zip"
	default:
		return "txt"
	}
}

// ContentType is the MIME type reported to attachment tools.
func (k Kind) ContentType() string {
	switch k {
	case KindScreenshot:
		return "image/png"
	case KindTrace:
		return "application/zip"
	default:
		return "text/plain"
	}
}

// AttachmentName is the human-readable name used for the artifact in reports.
func (k Kind) AttachmentName() string {
	switch k {
	case KindScreenshot:
		return "failure_screenshot"
	case KindTrace:
		return "playwright_trace.zip"
	default:
		return "browser_console_log"
	}
}

// SafeName turns a test identifier into something usable as a file name: every run of
// characters outside [A-Za-z0-9_.-] becomes a single underscore, and underscores at either end
// are removed.
func SafeName(id string) string {
	return strings.Trim(unsafeChars.ReplaceAllString(id, "_"), "_")
}

// Stamp formats t as a fixed-width timestamp with microsecond resolution.
func Stamp(t time.Time) string {
	return strings.Replace(t.Format(stampLayout), ".", "_", 1)
}

// ArtifactPath returns {dir}/{SafeName(id)}_{Stamp(t)}.{ext}.
func ArtifactPath(dir, id string, kind Kind, t time.Time) string {
	return artifactPath(dir, id, kind, Stamp(t))
}

func artifactPath(dir, id string, kind Kind, stamp string) string {
	return filepath.Join(dir, fmt.Sprintf("%s_%s.%s", SafeName(id), stamp, kind.Extension()))
}
