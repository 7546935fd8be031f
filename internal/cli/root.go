package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/varigen/internal/config"
	"github.com/roach88/varigen/internal/ir"
	"github.com/roach88/varigen/internal/state"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	DB         string
	ConfigPath string

	// Key names the store slot; set from the config file.
	Key string

	// Logger is built from Verbose before any command runs.
	Logger *slog.Logger

	// Prompter asks for missing names and confirmations.
	Prompter Prompter

	// IDs generates ids for new lists, fields and schemas.
	IDs state.IDGenerator

	// Getenv reads the environment; os.Getenv when nil.
	Getenv func(string) string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the varigen CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "varigen",
		Short:   "varigen - randomized text variant generator",
		Version: ir.ToolVersion,
		Long: `Generate randomized text variants from field schemas.

Each field of the active schema produces one line per variant: a random
integer, a random list entry, both, or the sub-value joined to an earlier
field's pick. Lists are imported from .txt files, one "value;sub" per line.
State is kept in a local SQLite database.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.prepare(cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.DB, "db", "", "state database path (default from config)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default $"+config.EnvConfig+" or user config dir)")

	// Add subcommands
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewFieldCommand(opts))
	cmd.AddCommand(NewSchemaCommand(opts))
	cmd.AddCommand(NewGenerateCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewResetCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// prepare merges the config file under the flags and builds the logger.
// Flags given on the command line win over the file.
func (o *RootOptions) prepare(cmd *cobra.Command) error {
	getenv := o.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	cfg, err := config.Resolve(o.ConfigPath, getenv)
	if err != nil {
		return o.formatter(cmd).Fail(ExitCommandError, ErrCodeConfig, err, nil)
	}

	flags := cmd.Flags()
	if !flags.Changed("db") {
		o.DB = cfg.DB
	}
	if !flags.Changed("format") {
		o.Format = cfg.Format
	}
	o.Verbose = o.Verbose || cfg.Verbose
	o.Key = cfg.Key

	if !isValidFormat(o.Format) {
		o.Format = "text"
		return o.formatter(cmd).Fail(ExitCommandError, ErrCodeInvalidInput,
			fmt.Errorf("invalid format %q: must be one of %v", flags.Lookup("format").Value, ValidFormats), nil)
	}

	o.Logger = newLogger(cmd.ErrOrStderr(), o.Verbose)
	if o.Prompter == nil {
		o.Prompter = NewSurveyPrompter()
	}
	if o.IDs == nil {
		o.IDs = state.UUIDv7Generator{}
	}
	return nil
}

// newLogger logs text to w, at debug level when verbose.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// formatter returns the output formatter for a command.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   o.Verbose,
	}
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
