package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// ScenarioNotFoundError is returned when a directory holds no scenario files.
type ScenarioNotFoundError struct {
	Dir string
}

func (e *ScenarioNotFoundError) Error() string {
	return fmt.Sprintf("no scenario files (.yaml, .yml, .cue) found in %s", e.Dir)
}

// IsScenarioFile reports whether path has a scenario file extension.
func IsScenarioFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".cue":
		return true
	}
	return false
}

// FindScenarios returns the scenario files under dir, recursively, in
// lexical order.
func FindScenarios(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && IsScenarioFile(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}

	if len(paths) == 0 {
		return nil, &ScenarioNotFoundError{Dir: dir}
	}
	slices.Sort(paths)
	return paths, nil
}

// LoadScenarios loads every scenario under dir. Scenario names must be
// unique since they name golden files.
func LoadScenarios(dir string) ([]*Scenario, error) {
	paths, err := FindScenarios(dir)
	if err != nil {
		return nil, err
	}

	scenarios := make([]*Scenario, 0, len(paths))
	seen := make(map[string]string, len(paths))
	for _, path := range paths {
		s, err := LoadScenario(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if prev, ok := seen[s.Name]; ok {
			return nil, fmt.Errorf("%s: scenario name %q already used by %s", path, s.Name, prev)
		}
		seen[s.Name] = path
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}
