// Package reporting turns engine events and suite results into log lines,
// console trees and result artifacts. Everything here is downstream of the
// engine: a reporter failure never fails a run.
package reporting

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bench-labs/rig-acceptor/types"
)

// WriteSuiteResult writes the suite result artifact as JSON. The parent
// directory is created on demand.
func WriteSuiteResult(path string, result *types.SuiteResult) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create result directory: %w", err)
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal suite result: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write suite result %q: %w", path, err)
	}
	return nil
}

// LoadSuiteResult reads a previously-written suite result artifact.
func LoadSuiteResult(path string) (*types.SuiteResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read suite result %q: %w", path, err)
	}
	var result types.SuiteResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("invalid suite result %q: %w", path, err)
	}
	return &result, nil
}
