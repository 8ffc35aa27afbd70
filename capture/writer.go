package capture

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

type WriteStatus int

const (
	WriteSkipped WriteStatus = iota
	Written
	WriteFailed
)

func (s WriteStatus) String() string {
	switch s {
	case WriteSkipped:
		return "skipped"
	case Written:
		return "written"
	case WriteFailed:
		return "failed"
	default:
		return fmt.Sprintf("WriteStatus(%d)", int(s))
	}
}

// WriteResult describes one artifact write. Attached is true if the artifact was also handed to
// the report tool.
type WriteResult struct {
	Kind     Kind
	Status   WriteStatus
	Path     string
	Err      error
	Attached bool
}

// Writer persists artifacts and forwards them to an optional Attacher. Every method isolates its
// own failures, including panics from the page or the attacher, and reports them in the result.
type Writer struct {
	attacher Attacher
	logger   *zap.Logger
}

func NewWriter(attacher Attacher, logger *zap.Logger) *Writer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Writer{attacher: attacher, logger: logger}
}

// EnsureDir creates dir and any parents. An existing directory is not an error.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}

// WriteConsoleLog writes one line per entry. Nothing is written for an empty buffer.
func (w *Writer) WriteConsoleLog(key, path string, lines []string) WriteResult {
	if len(lines) == 0 {
		return WriteResult{Kind: KindConsoleLog, Status: WriteSkipped}
	}
	text := strings.Join(lines, "\n") + "\n"
	return w.write(KindConsoleLog, key, path, func() ([]byte, error) {
		return []byte(text), nil
	})
}

// WriteScreenshot captures the page and writes the image. Nothing is written if there is no page.
func (w *Writer) WriteScreenshot(key, path string, page Page, fullPage bool) WriteResult {
	if page == nil {
		return WriteResult{Kind: KindScreenshot, Status: WriteSkipped}
	}
	return w.write(KindScreenshot, key, path, func() ([]byte, error) {
		return page.Screenshot(fullPage)
	})
}

// AttachFile forwards a file that something else already wrote, such as a saved trace archive.
func (w *Writer) AttachFile(kind Kind, key, path string) bool {
	if w.attacher == nil {
		return false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		w.logger.Warn("Could not read artifact for attachment",
			zap.Stringer("kind", kind), zap.String("path", path), zap.Error(err))
		return false
	}
	return w.attach(kind, key, data)
}

func (w *Writer) write(kind Kind, key, path string, produce func() ([]byte, error)) WriteResult {
	result := WriteResult{Kind: kind, Path: path}
	var data []byte
	err := safely(func() error {
		if err := EnsureDir(filepath.Dir(path)); err != nil {
			return err
		}
		var err error
		if data, err = produce(); err != nil {
			return err
		}
		return os.WriteFile(path, data, 0o644)
	})
	if err != nil {
		result.Status = WriteFailed
		result.Err = err
		w.logger.Warn("Failed to save artifact",
			zap.Stringer("kind", kind), zap.String("session", key), zap.String("path", path), zap.Error(err))
		return result
	}
	result.Status = Written
	w.logger.Debug("Saved artifact", zap.Stringer("kind", kind), zap.String("path", path))
	result.Attached = w.attach(kind, key, data)
	return result
}

func (w *Writer) attach(kind Kind, key string, data []byte) bool {
	if w.attacher == nil {
		return false
	}
	err := safely(func() error {
		return w.attacher.Attach(key, Attachment{
			Name:        kind.AttachmentName(),
			ContentType: kind.ContentType(),
			Extension:   kind.Extension(),
			Data:        data,
		})
	})
	if err != nil {
		w.logger.Warn("Could not attach artifact to report",
			zap.Stringer("kind", kind), zap.String("session", key), zap.Error(err))
		return false
	}
	return true
}
