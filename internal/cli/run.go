package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/stmtir/internal/harness"
	"github.com/roach88/stmtir/internal/store"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Database string
}

// RunResult is the outcome of running one scenario against a database.
type RunResult struct {
	Scenario   string               `json:"scenario"`
	Database   string               `json:"database"`
	Pass       bool                 `json:"pass"`
	JournalSeq int64                `json:"journal_seq"`
	Trace      []harness.TraceEvent `json:"trace"`
	Errors     []string             `json:"errors,omitempty"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <scenario-file>",
		Short: "Run a scenario against a database",
		Long: `Run a scenario's statements against a SQLite database file.

The database is created if it doesn't exist. The scenario's setup SQL runs
first, so it should be idempotent (CREATE TABLE IF NOT EXISTS, ...) when the
database is reused. Every executed statement is recorded in the database
journal; see the journal command.

Example:
  stmtir run --db ./stmtir.db ./scenarios/person.yaml
  stmtir run --db /tmp/test.db ./scenarios/person.cue --verbose`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenarioFile(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runScenarioFile(opts *RunOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	loaded, errs := LoadScenarioFiles([]string{path}, LoadModeFailFast)
	if len(errs) > 0 {
		return WrapExitError(ExitCommandError, "failed to load scenario", errs[0])
	}
	scenario := loaded[0].Scenario
	if scenario.CompileOnly {
		return NewExitError(ExitCommandError, fmt.Sprintf("scenario %s is compile_only; use the compile command", scenario.Name))
	}

	slog.Debug("opening database", "path", opts.Database)
	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	ctx, cancel := context.WithCancel(commandContext(cmd))
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan) // Prevent signal handler leak

	go func() {
		select {
		case sig := <-sigChan:
			slog.Info("received signal, stopping", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	result, err := harness.RunWithStore(ctx, st, scenario)
	if err != nil {
		return WrapExitError(ExitFailure, "scenario error", err)
	}

	seq, err := st.LastSeq(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read journal", err)
	}

	return outputRunResult(formatter, RunResult{
		Scenario:   scenario.Name,
		Database:   opts.Database,
		Pass:       result.Pass,
		JournalSeq: seq,
		Trace:      result.Trace,
		Errors:     result.Errors,
	})
}

// outputRunResult prints the trace and returns ExitFailure when the
// scenario failed.
func outputRunResult(formatter *OutputFormatter, result RunResult) error {
	failure := fmt.Sprintf("scenario %s failed with %d error(s)", result.Scenario, len(result.Errors))

	if formatter.Format == "json" {
		resp := CLIResponse{Status: "ok", Data: result}
		if !result.Pass {
			resp.Status = "error"
			resp.Error = &CLIError{Code: ErrCodeExecFailed, Message: failure}
		}
		if err := formatter.Respond(resp); err != nil {
			return err
		}
	} else {
		w := formatter.Writer
		for _, event := range result.Trace {
			switch event.Type {
			case harness.EventStatement:
				fmt.Fprintf(w, "[%d] %s: %s\n", event.Seq, event.Step, event.SQL)
			case harness.EventResult:
				fmt.Fprintf(w, "[%d] %s: %d row(s) returned, %d affected\n",
					event.Seq, event.Step, len(event.Rows), event.RowsAffected)
			case harness.EventError:
				fmt.Fprintf(w, "[%d] %s: error: %s\n", event.Seq, event.Step, event.Message)
			}
		}
		for _, e := range result.Errors {
			fmt.Fprintf(w, "  %s\n", e)
		}
		fmt.Fprintln(w)
		if result.Pass {
			fmt.Fprintf(w, "✓ %s (journal at seq %d)\n", result.Scenario, result.JournalSeq)
		} else {
			fmt.Fprintf(w, "✗ %s\n", failure)
		}
	}

	if !result.Pass {
		return NewExitError(ExitFailure, failure)
	}
	return nil
}
