package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/stmtir/internal/harness"
)

// ValidationError is one problem found in a scenario file.
type ValidationError struct {
	File    string `json:"file"`
	Step    string `json:"step,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Files  int               `json:"files"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <path>...",
		Short: "Validate scenario files without executing them",
		Long: `Validate scenario files and directories without touching a database.

Checks syntax, unknown fields, clause support for each statement kind,
and that every statement builds. Steps that declare an expected error
must fail with that error. Faster than test for development feedback.

Examples:
  stmtir validate ./scenarios
  stmtir validate person.yaml filters.cue --format json`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, paths []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	files, err := ResolveScenarioFiles(paths, "")
	if err != nil {
		if ferr := formatter.Error(loadErrorCode(err), err.Error(), nil); ferr != nil {
			return ferr
		}
		return WrapExitError(ExitCommandError, "failed to find scenarios", err)
	}

	formatter.VerboseLog("Found %d scenario file(s)", len(files))

	loaded, loadErrors := LoadScenarioFiles(files, LoadModeCollectAll)

	result := ValidationResult{Files: len(files)}
	for _, err := range loadErrors {
		var file string
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			file = loadErr.Path
		}
		result.Errors = append(result.Errors, ValidationError{
			File:    file,
			Code:    loadErrorCode(err),
			Message: err.Error(),
		})
	}
	for _, ls := range loaded {
		formatter.VerboseLog("Validating scenario: %s", ls.Scenario.Name)
		result.Errors = append(result.Errors, validateStatements(ls.Path, ls.Scenario)...)
	}
	result.Valid = len(result.Errors) == 0

	if !result.Valid {
		return outputValidationErrors(formatter, result)
	}
	return outputValidateSuccess(formatter, result)
}

// validateStatements builds every step. A step with an expected error must
// fail to build with a matching message or build successfully (the error
// may come from execution).
func validateStatements(path string, scenario *harness.Scenario) []ValidationError {
	var errs []ValidationError
	for _, step := range scenario.Steps {
		_, err := step.Statement.Build()
		if err == nil {
			continue
		}

		if step.Expect != nil && step.Expect.Error != "" {
			if strings.Contains(err.Error(), step.Expect.Error) {
				continue
			}
		}
		errs = append(errs, ValidationError{
			File:    path,
			Step:    step.Name,
			Code:    buildErrorCode(err),
			Message: err.Error(),
		})
	}
	return errs
}

// outputValidateSuccess outputs successful validation.
func outputValidateSuccess(formatter *OutputFormatter, result ValidationResult) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "✓ %d scenario file(s) valid\n", result.Files)
	return nil
}

// outputValidationErrors outputs validation errors.
func outputValidationErrors(formatter *OutputFormatter, result ValidationResult) error {
	message := fmt.Sprintf("%d validation error(s)", len(result.Errors))

	if formatter.Format == "json" {
		if err := formatter.Respond(CLIResponse{
			Status: "error",
			Data:   result,
			Error: &CLIError{
				Code:    ErrCodeLoadFailed,
				Message: message,
			},
		}); err != nil {
			return err
		}
		return NewExitError(ExitFailure, message)
	}

	w := formatter.Writer
	fmt.Fprintf(w, "✗ Validation failed (%s)\n\n", message)
	for _, e := range result.Errors {
		location := e.File
		if e.Step != "" {
			location += " step " + e.Step
		}
		fmt.Fprintf(w, "  [%s] %s\n", e.Code, location)
		fmt.Fprintf(w, "    %s\n", e.Message)
	}

	return NewExitError(ExitFailure, message)
}
