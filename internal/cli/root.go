package cli

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"

	// IDs generates JSON trace IDs. Nil means UUIDv7.
	IDs IDGenerator
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the stmtir CLI.
func NewRootCommand() *cobra.Command {
	return NewRootCommandWithIDs(UUIDv7Generator{})
}

// NewRootCommandWithIDs creates the root command with a custom trace ID
// generator, typically testutil.FixedIDGenerator.
func NewRootCommandWithIDs(ids IDGenerator) *cobra.Command {
	opts := &RootOptions{IDs: ids}

	cmd := &cobra.Command{
		Use:   "stmtir",
		Short: "stmtir - immutable SQL statement IR",
		Long: `Build, compile and run SQL statements described in scenario files.

Statements are assembled from an immutable IR, rendered to parameterized
SQLite SQL, and optionally executed against a journaled database.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			configureLogging(opts, cmd)
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewCompileCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))
	cmd.AddCommand(NewJournalCommand(opts))

	return cmd
}

// configureLogging installs a text slog handler on stderr, at debug level
// when --verbose is set.
func configureLogging(opts *RootOptions, cmd *cobra.Command) {
	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

// commandContext returns the command's context, or Background when the
// command was run without one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
