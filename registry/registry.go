// Package registry loads and validates suite specifications. The YAML and
// JSON serializations are accepted with identical semantics.
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/bench-labs/rig-acceptor/types"
)

// Registry holds a loaded suite specification.
type Registry struct {
	config Config
	suite  *types.SuiteSpec
}

// Config contains registry configuration.
type Config struct {
	Log           *log.Logger
	SuiteSpecFile string
}

// NewRegistry loads the suite spec file and validates it. Any problem here
// is a configuration error that must abort the run before any test
// executes.
func NewRegistry(cfg Config) (*Registry, error) {
	if cfg.SuiteSpecFile == "" {
		return nil, fmt.Errorf("suite spec file is required")
	}
	if cfg.Log == nil {
		cfg.Log = log.Default()
	}

	suite, err := LoadSuiteSpec(cfg.SuiteSpecFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load suite spec: %w", err)
	}

	cfg.Log.Debug("registry loaded", "suite", suite.Name, "tests", len(suite.Tests))

	return &Registry{config: cfg, suite: suite}, nil
}

// Suite returns the loaded specification.
func (r *Registry) Suite() *types.SuiteSpec {
	return r.suite
}

// EnabledCount returns how many entries will actually execute.
func (r *Registry) EnabledCount() int {
	n := 0
	for i := range r.suite.Tests {
		if r.suite.Tests[i].IsEnabled() {
			n++
		}
	}
	return n
}

// LoadSuiteSpec reads a suite specification from a YAML or JSON file,
// dispatching on the file extension.
func LoadSuiteSpec(path string) (*types.SuiteSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read suite spec %q: %w", path, err)
	}

	var suite types.SuiteSpec
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &suite); err != nil {
			return nil, fmt.Errorf("invalid YAML in suite spec %q: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(data, &suite); err != nil {
			return nil, fmt.Errorf("invalid JSON in suite spec %q: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported suite spec format %q (use .yaml, .yml or .json)", filepath.Ext(path))
	}

	if err := suite.Validate(); err != nil {
		return nil, fmt.Errorf("invalid suite spec %q: %w", path, err)
	}
	return &suite, nil
}
