// Package logging captures per-test subprocess output into files so a
// failing run can be inspected after the fact.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/acarl005/stripansi"
)

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// FileLogger writes each test's captured stdout/stderr under
// <baseDir>/<runID>/<test>.log. Output is ANSI-stripped so the files stay
// readable in plain editors.
type FileLogger struct {
	baseDir string
}

// NewFileLogger creates a file logger rooted at baseDir. The directory is
// created on demand.
func NewFileLogger(baseDir string) (*FileLogger, error) {
	if baseDir == "" {
		return nil, fmt.Errorf("log directory is required")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory %q: %w", baseDir, err)
	}
	return &FileLogger{baseDir: baseDir}, nil
}

// BaseDir returns the root of the log tree.
func (l *FileLogger) BaseDir() string {
	return l.baseDir
}

// RunDir returns the directory holding one run's logs.
func (l *FileLogger) RunDir(runID string) string {
	return filepath.Join(l.baseDir, SanitizeFilename(runID))
}

// WriteTestLog stores one test's captured output.
func (l *FileLogger) WriteTestLog(runID, testName string, stdout, stderr []byte) error {
	dir := l.RunDir(runID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create run log directory %q: %w", dir, err)
	}

	var b strings.Builder
	b.WriteString(stripansi.Strip(string(stdout)))
	if len(stderr) > 0 {
		b.WriteString("\n--- stderr ---\n")
		b.WriteString(stripansi.Strip(string(stderr)))
	}

	path := filepath.Join(dir, SanitizeFilename(testName)+".log")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write test log %q: %w", path, err)
	}
	return nil
}

// SanitizeFilename makes a test or run name safe to use as a file name.
func SanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	if name == "" {
		name = "unnamed"
	}
	return name
}
