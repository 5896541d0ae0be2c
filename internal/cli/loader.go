package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/roach88/stmtir/internal/harness"
	"github.com/roach88/stmtir/internal/querysql"
)

// LoadMode controls how errors are handled during scenario loading.
type LoadMode int

const (
	// LoadModeFailFast stops on the first error encountered.
	LoadModeFailFast LoadMode = iota
	// LoadModeCollectAll collects all errors before returning.
	LoadModeCollectAll
)

// LoadedScenario pairs a scenario with the file it came from.
type LoadedScenario struct {
	Path     string
	Scenario *harness.Scenario
}

// LoadError represents an error that occurred during scenario loading.
type LoadError struct {
	Code    string
	Path    string // file or directory, if known
	Message string
}

func (e *LoadError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Path, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeScanError   = "E002" // Directory scan error
	ErrCodeNoFiles     = "E003" // No scenario files found
	ErrCodeLoadFailed  = "E004" // Scenario parse or validation failed
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeBuildFailed = "E006" // Statement build or compile failed
	ErrCodeWriteFailed = "E007" // File write error
	ErrCodeExecFailed  = "E008" // Statement execution failed
	ErrCodeTestFailed  = "E009" // One or more scenarios failed
	ErrCodeUnsupported = "E010" // Statement has no SQLite rendering
)

// ResolveScenarioFiles expands paths into scenario files. Directories are
// searched recursively; files are taken as given. filter, when set, is a
// glob matched against each file's base name without extension.
func ResolveScenarioFiles(paths []string, filter string) ([]string, error) {
	if filter != "" {
		if _, err := filepath.Match(filter, ""); err != nil {
			return nil, &LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("invalid filter pattern: %v", err)}
		}
	}

	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if os.IsNotExist(err) {
			return nil, &LoadError{Code: ErrCodeNotFound, Path: path, Message: "path not found"}
		}
		if err != nil {
			return nil, &LoadError{Code: ErrCodeNotFound, Path: path, Message: fmt.Sprintf("error accessing path: %v", err)}
		}

		if !info.IsDir() {
			files = append(files, path)
			continue
		}

		found, err := harness.FindScenarios(path)
		var notFound *harness.ScenarioNotFoundError
		if errors.As(err, &notFound) {
			return nil, &LoadError{Code: ErrCodeNoFiles, Path: path, Message: err.Error()}
		}
		if err != nil {
			return nil, &LoadError{Code: ErrCodeScanError, Path: path, Message: err.Error()}
		}
		files = append(files, found...)
	}

	if filter == "" {
		return files, nil
	}

	matched := files[:0:0]
	for _, file := range files {
		base := filepath.Base(file)
		name := strings.TrimSuffix(base, filepath.Ext(base))
		if ok, _ := filepath.Match(filter, name); ok {
			matched = append(matched, file)
		}
	}
	return matched, nil
}

// LoadScenarioFiles loads the given scenario files.
// If mode is LoadModeFailFast, returns on first error.
// If mode is LoadModeCollectAll, loads every file and collects all errors.
func LoadScenarioFiles(files []string, mode LoadMode) ([]LoadedScenario, []error) {
	var (
		loaded []LoadedScenario
		errs   []error
	)

	for _, file := range files {
		scenario, err := harness.LoadScenario(file)
		if err != nil {
			errs = append(errs, &LoadError{Code: ErrCodeLoadFailed, Path: file, Message: err.Error()})
			if mode == LoadModeFailFast {
				return loaded, errs
			}
			continue
		}
		loaded = append(loaded, LoadedScenario{Path: file, Scenario: scenario})
	}

	return loaded, errs
}

// buildErrorCode classifies a statement build error: ErrCodeUnsupported
// when SQLite cannot express the statement, ErrCodeBuildFailed otherwise.
func buildErrorCode(err error) string {
	if querysql.IsUnsupportedNode(err) {
		return ErrCodeUnsupported
	}
	return ErrCodeBuildFailed
}

// loadErrorCode returns the code of a *LoadError, or ErrCodeGeneric.
func loadErrorCode(err error) string {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Code
	}
	return ErrCodeGeneric
}
