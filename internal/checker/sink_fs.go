package checker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// FileStatusSink writes the verdict token to the status file read by
// the external LED controller.
type FileStatusSink struct {
	path   string
	logger *zap.Logger
}

// NewFileStatusSink returns a sink targeting path. The parent
// directory is created up front so a bad path fails at startup, not
// mid-run.
func NewFileStatusSink(path string, logger *zap.Logger) (*FileStatusSink, error) {
	if path == "" {
		return nil, fmt.Errorf("status path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("create status dir for %s: %w", path, err)
	}
	return &FileStatusSink{path: path, logger: logger}, nil
}

// Write replaces the sink content with the verdict's token. The write
// goes to a temp file in the same directory followed by a rename, so
// the external reader never observes partial or interleaved content.
func (s *FileStatusSink) Write(ctx context.Context, verdict Verdict) error {
	if err := ctx.Err(); err != nil {
		return &WriteError{Path: s.path, Err: err}
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".status-*")
	if err != nil {
		return &WriteError{Path: s.path, Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(verdict.SinkToken() + "\n"); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return &WriteError{Path: s.path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return &WriteError{Path: s.path, Err: err}
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return &WriteError{Path: s.path, Err: err}
	}

	s.logger.Info("Status sink updated",
		zap.String("path", s.path),
		zap.String("token", verdict.SinkToken()),
	)
	return nil
}
