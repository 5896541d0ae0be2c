package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/stmtir/internal/store"
	"github.com/roach88/stmtir/internal/value"
)

// JournalOptions holds flags for the journal command.
type JournalOptions struct {
	*RootOptions
	Database string
	QueryID  string // optional - filter to one compiled query
}

// JournalEvent is one journaled statement in command output.
type JournalEvent struct {
	Seq          int64         `json:"seq"`
	QueryID      string        `json:"query_id"`
	Kind         string        `json:"kind"`
	SQL          string        `json:"sql"`
	Params       []value.Value `json:"params"`
	RowsAffected int64         `json:"rows_affected"`
	RowsReturned int64         `json:"rows_returned"`
}

// JournalStats holds summary statistics for the journal.
type JournalStats struct {
	Statements   int            `json:"statements"`
	ByKind       map[string]int `json:"by_kind"`
	RowsAffected int64          `json:"rows_affected"`
	RowsReturned int64          `json:"rows_returned"`
}

// JournalResult holds the complete journal output.
type JournalResult struct {
	Entries []JournalEvent `json:"entries"`
	Stats   JournalStats   `json:"stats"`
}

// NewJournalCommand creates the journal command.
func NewJournalCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &JournalOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Show statements executed against a database",
		Long: `List the statement journal of a database written by the run command.

Entries are shown in execution order with their SQL, parameters and row
counts. Use --query-id to show every execution of one compiled query.

Examples:
  stmtir journal --db ./stmtir.db
  stmtir journal --db ./stmtir.db --query-id 6626170f...
  stmtir journal --db ./stmtir.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJournal(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.QueryID, "query-id", "", "filter to one query ID")

	return cmd
}

func runJournal(opts *JournalOptions, cmd *cobra.Command) error {
	ctx := commandContext(cmd)
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	// Opening would create an empty database; a missing file is a usage error.
	if _, err := os.Stat(opts.Database); err != nil {
		return WrapExitError(ExitCommandError, "database not found", err)
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	var entries []store.JournalEntry
	if opts.QueryID != "" {
		entries, err = st.History(ctx, opts.QueryID)
	} else {
		entries, err = st.Journal(ctx)
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read journal", err)
	}

	result := buildJournalResult(entries)
	formatter.VerboseLog("Read %d journal entries from %s", len(entries), opts.Database)

	if opts.Format == "json" {
		return formatter.Success(result)
	}
	return outputJournalText(formatter, opts, result)
}

// buildJournalResult converts store entries and computes stats.
func buildJournalResult(entries []store.JournalEntry) JournalResult {
	result := JournalResult{
		Entries: make([]JournalEvent, 0, len(entries)),
		Stats:   JournalStats{ByKind: make(map[string]int)},
	}

	for _, e := range entries {
		params := e.Parameters
		if params == nil {
			params = []value.Value{}
		}
		result.Entries = append(result.Entries, JournalEvent{
			Seq:          e.Seq,
			QueryID:      e.QueryID,
			Kind:         e.Kind,
			SQL:          e.SQL,
			Params:       params,
			RowsAffected: e.RowsAffected,
			RowsReturned: e.RowsReturned,
		})
		result.Stats.Statements++
		result.Stats.ByKind[e.Kind]++
		result.Stats.RowsAffected += e.RowsAffected
		result.Stats.RowsReturned += e.RowsReturned
	}

	return result
}

func outputJournalText(formatter *OutputFormatter, opts *JournalOptions, result JournalResult) error {
	w := formatter.Writer

	if len(result.Entries) == 0 {
		if opts.QueryID != "" {
			fmt.Fprintf(w, "No journal entries for query %s\n", opts.QueryID)
		} else {
			fmt.Fprintln(w, "Journal is empty.")
		}
		return nil
	}

	for _, e := range result.Entries {
		fmt.Fprintf(w, "[%d] %s %s\n", e.Seq, e.Kind, e.SQL)
		if len(e.Params) > 0 {
			args := make([]any, len(e.Params))
			for i, p := range e.Params {
				args[i] = value.ToAny(p)
			}
			fmt.Fprintf(w, "     params: %s\n", formatArgs(args))
		}
		fmt.Fprintf(w, "     %d row(s) returned, %d affected\n", e.RowsReturned, e.RowsAffected)
		if formatter.Verbose {
			fmt.Fprintf(w, "     query_id: %s\n", e.QueryID)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%d statement(s), %d row(s) affected, %d row(s) returned\n",
		result.Stats.Statements, result.Stats.RowsAffected, result.Stats.RowsReturned)
	return nil
}
