package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/stmtir/internal/harness"
	"github.com/roach88/stmtir/internal/value"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	Output string // output file path
}

// CompiledStatement is one compiled scenario step.
type CompiledStatement struct {
	Step        string `json:"step"`
	Kind        string `json:"kind"`
	SQL         string `json:"sql,omitempty"`
	Params      []any  `json:"params,omitempty"`
	QueryID     string `json:"query_id,omitempty"`
	ReturnsRows bool   `json:"returns_rows,omitempty"`
	Error       string `json:"error,omitempty"`
	ErrorCode   string `json:"error_code,omitempty"`
}

// CompilationResult holds the compiled statements of one scenario.
type CompilationResult struct {
	Scenario   string              `json:"scenario"`
	Statements []CompiledStatement `json:"statements"`
	Failed     int                 `json:"failed"`
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile <scenario-file>",
		Short: "Compile scenario statements to SQL",
		Long: `Build every statement in a scenario and render it to SQLite SQL.

Nothing is executed. Each step prints its SQL, bound parameters and
content-addressed query ID. With --output the compiled statements are
also written as canonical JSON.

Examples:
  stmtir compile ./scenarios/person.yaml
  stmtir compile ./scenarios/person.cue -o person.json --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")

	return cmd
}

func runCompile(opts *CompileOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	loaded, errs := LoadScenarioFiles([]string{path}, LoadModeFailFast)
	if len(errs) > 0 {
		if err := formatter.Error(loadErrorCode(errs[0]), errs[0].Error(), nil); err != nil {
			return err
		}
		return WrapExitError(ExitCommandError, "failed to load scenario", errs[0])
	}
	scenario := loaded[0].Scenario

	result := compileScenario(scenario, formatter)

	if opts.Output != "" {
		if err := writeCompiled(result, opts.Output); err != nil {
			if ferr := formatter.Error(ErrCodeWriteFailed, fmt.Sprintf("writing output file: %v", err), nil); ferr != nil {
				return ferr
			}
			return WrapExitError(ExitCommandError, "failed to write output", err)
		}
		formatter.VerboseLog("Wrote %s", opts.Output)
	}

	if err := outputCompileResult(formatter, result); err != nil {
		return err
	}
	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d statement(s) failed to compile", result.Failed))
	}
	return nil
}

// compileScenario builds each step. Build errors are recorded per step.
func compileScenario(scenario *harness.Scenario, formatter *OutputFormatter) CompilationResult {
	result := CompilationResult{
		Scenario:   scenario.Name,
		Statements: make([]CompiledStatement, 0, len(scenario.Steps)),
	}

	for _, step := range scenario.Steps {
		formatter.VerboseLog("Compiling step: %s", step.Name)

		stmt := CompiledStatement{
			Step: step.Name,
			Kind: strings.ToLower(step.Statement.Kind),
		}

		compiled, err := step.Statement.Build()
		if err == nil {
			stmt.QueryID, err = compiled.ID()
		}
		if err != nil {
			stmt.Error = err.Error()
			stmt.ErrorCode = buildErrorCode(err)
			result.Failed++
			result.Statements = append(result.Statements, stmt)
			continue
		}

		stmt.SQL = compiled.SQL
		stmt.Params = compiled.Args()
		stmt.ReturnsRows = compiled.ReturnsRows
		result.Statements = append(result.Statements, stmt)
	}

	return result
}

// writeCompiled writes the compiled statements as canonical JSON.
func writeCompiled(result CompilationResult, path string) error {
	statements := make([]any, len(result.Statements))
	for i, s := range result.Statements {
		params := make([]any, len(s.Params))
		for j, p := range s.Params {
			v, err := value.FromAny(p)
			if err != nil {
				return fmt.Errorf("step %s: %w", s.Step, err)
			}
			params[j] = v
		}
		entry := map[string]any{
			"step":   s.Step,
			"kind":   s.Kind,
			"params": params,
		}
		if s.Error != "" {
			entry["error"] = s.Error
			entry["error_code"] = s.ErrorCode
		} else {
			entry["sql"] = s.SQL
			entry["query_id"] = s.QueryID
			entry["returns_rows"] = s.ReturnsRows
		}
		statements[i] = entry
	}

	data, err := value.MarshalCanonical(map[string]any{
		"scenario":   result.Scenario,
		"statements": statements,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal compiled statements: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// outputCompileResult outputs the compiled statements.
func outputCompileResult(formatter *OutputFormatter, result CompilationResult) error {
	if formatter.Format == "json" {
		resp := CLIResponse{Status: "ok", Data: result}
		if result.Failed > 0 {
			resp.Status = "error"
			resp.Error = &CLIError{
				Code:    ErrCodeBuildFailed,
				Message: fmt.Sprintf("%d statement(s) failed to compile", result.Failed),
			}
		}
		return formatter.Respond(resp)
	}

	// Human-readable text output
	w := formatter.Writer
	for _, s := range result.Statements {
		if s.Error != "" {
			fmt.Fprintf(w, "✗ %s (%s)\n", s.Step, s.Kind)
			fmt.Fprintf(w, "  [%s] %s\n", s.ErrorCode, s.Error)
			continue
		}
		fmt.Fprintf(w, "✓ %s (%s)\n", s.Step, s.Kind)
		fmt.Fprintf(w, "  %s\n", s.SQL)
		if len(s.Params) > 0 {
			fmt.Fprintf(w, "  params: %s\n", formatArgs(s.Params))
		}
		if formatter.Verbose {
			fmt.Fprintf(w, "  query_id: %s\n", s.QueryID)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Compiled %d statement(s), %d failed\n", len(result.Statements)-result.Failed, result.Failed)
	return nil
}

// formatArgs renders driver arguments for text output.
func formatArgs(args []any) string {
	parts := make([]string, len(args))
	for i, a := range args {
		v, err := value.FromAny(a)
		if err != nil {
			parts[i] = fmt.Sprintf("%v", a)
			continue
		}
		parts[i] = value.Format(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
