package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveScenarioFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.yaml", personScenario)
	b := writeFile(t, dir, "nested/b.cue", "")
	writeFile(t, dir, "notes.txt", "ignored")
	single := writeFile(t, t.TempDir(), "single.yml", personScenario)

	files, err := ResolveScenarioFiles([]string{dir, single}, "")
	require.NoError(t, err)
	assert.Equal(t, []string{a, b, single}, files)

	files, err = ResolveScenarioFiles([]string{dir}, "a*")
	require.NoError(t, err)
	assert.Equal(t, []string{a}, files)
}

func TestResolveScenarioFiles_Errors(t *testing.T) {
	tests := []struct {
		name     string
		paths    []string
		filter   string
		wantCode string
	}{
		{"missing path", []string{filepath.Join(t.TempDir(), "nope")}, "", ErrCodeNotFound},
		{"empty dir", []string{t.TempDir()}, "", ErrCodeNoFiles},
		{"bad filter", []string{t.TempDir()}, "[", ErrCodeGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveScenarioFiles(tt.paths, tt.filter)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, loadErrorCode(err))
		})
	}
}

func TestLoadScenarioFiles(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.yaml", personScenario)
	bad := writeFile(t, dir, "bad.yaml", "name: [")
	alsoGood := writeFile(t, dir, "failing.yaml", failingScenario)

	loaded, errs := LoadScenarioFiles([]string{good, bad, alsoGood}, LoadModeCollectAll)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrCodeLoadFailed, loadErrorCode(errs[0]))
	assert.Contains(t, errs[0].Error(), bad)
	require.Len(t, loaded, 2)
	assert.Equal(t, "person", loaded[0].Scenario.Name)
	assert.Equal(t, alsoGood, loaded[1].Path)

	loaded, errs = LoadScenarioFiles([]string{bad, good}, LoadModeFailFast)
	assert.Len(t, errs, 1)
	assert.Empty(t, loaded)
}
