package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalProvider writes artifacts to a directory on the local
// filesystem.
type LocalProvider struct {
	baseDir string
}

// NewLocalProvider creates the base directory if needed and verifies
// it is writable, so a misconfigured path fails at startup.
func NewLocalProvider(baseDir string) (*LocalProvider, error) {
	if strings.TrimSpace(baseDir) == "" {
		return nil, fmt.Errorf("screenshot directory is required")
	}

	info, err := os.Stat(baseDir)
	switch {
	case err != nil && os.IsNotExist(err):
		if mkErr := os.MkdirAll(baseDir, 0o750); mkErr != nil {
			return nil, fmt.Errorf("create screenshot directory: %w", mkErr)
		}
	case err != nil:
		return nil, fmt.Errorf("stat screenshot directory: %w", err)
	case !info.IsDir():
		return nil, fmt.Errorf("screenshot path %s is not a directory", baseDir)
	}

	probe := filepath.Join(baseDir, ".writable_test")
	if err := os.WriteFile(probe, []byte("test"), 0o600); err != nil {
		return nil, fmt.Errorf("screenshot directory is not writable: %w", err)
	}
	if err := os.Remove(probe); err != nil {
		return nil, fmt.Errorf("clean up probe file: %w", err)
	}

	return &LocalProvider{baseDir: baseDir}, nil
}

// Save writes the artifact and returns a file:// URI.
func (s *LocalProvider) Save(ctx context.Context, objectName string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if strings.TrimSpace(objectName) == "" {
		return "", fmt.Errorf("object name is required")
	}

	fullPath := filepath.Join(s.baseDir, objectName)

	// Reject names that escape the base directory.
	cleanBase := filepath.Clean(s.baseDir)
	if !strings.HasPrefix(filepath.Clean(fullPath), cleanBase+string(filepath.Separator)) {
		return "", fmt.Errorf("object name %q escapes base directory", objectName)
	}

	if err := os.WriteFile(fullPath, data, 0o600); err != nil {
		return "", fmt.Errorf("write screenshot %s: %w", fullPath, err)
	}
	return fmt.Sprintf("file://%s", fullPath), nil
}
