package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/varigen/internal/engine"
	"github.com/roach88/varigen/internal/state"
)

// StateSummary counts what a state blob holds.
type StateSummary struct {
	Lists          int    `json:"lists"`
	Schemas        int    `json:"schemas"`
	Fields         int    `json:"fields"`
	ActiveSchema   string `json:"activeSchema"`
	VariantCount   int    `json:"variantCount"`
	SingleLine     bool   `json:"singleLine"`
	Ready          bool   `json:"ready"`
	ConfiguredOnes int    `json:"configuredFields"`
}

func summarizeState(st *state.State) StateSummary {
	sum := StateSummary{
		Lists:        len(st.Lists),
		Schemas:      len(st.Instances),
		ActiveSchema: st.Active().Name,
		VariantCount: st.VariantCount,
		SingleLine:   st.SingleLine,
	}
	for _, schema := range st.Instances {
		sum.Fields += len(schema.Fields)
	}
	fields := st.Fields()
	sum.Ready = engine.Ready(fields)
	for _, f := range fields {
		if engine.Configured(f) {
			sum.ConfiguredOnes++
		}
	}
	return sum
}

func (s StateSummary) writeText(w io.Writer) {
	fmt.Fprintf(w, "Lists: %d\n", s.Lists)
	fmt.Fprintf(w, "Schemas: %d (%d fields)\n", s.Schemas, s.Fields)
	fmt.Fprintf(w, "Active schema: %s (%d configured fields)\n", s.ActiveSchema, s.ConfiguredOnes)
	fmt.Fprintf(w, "Variants: %d, single line: %t\n", s.VariantCount, s.SingleLine)
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the state as JSON",
		Long: `Write lists, schemas and settings as JSON, to stdout or to a file.
The file can be loaded again with import.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(rootOpts, output, cmd)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	return cmd
}

func runExport(opts *RootOptions, output string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	var data []byte
	err := withSession(cmd.Context(), opts, f, func(s *session) (bool, error) {
		var err error
		data, err = state.Encode(s.state)
		if err != nil {
			return false, f.Fail(ExitCommandError, ErrCodeGeneric, err, nil)
		}
		return false, nil
	})
	if err != nil {
		return err
	}

	if output == "" {
		if f.Format == "json" {
			return f.Success(json.RawMessage(data))
		}
		_, err := fmt.Fprintln(f.Writer, string(data))
		return err
	}

	if err := os.WriteFile(output, data, 0644); err != nil {
		return f.Fail(ExitCommandError, ErrCodeWriteFailed, fmt.Errorf("write %s: %w", output, err), nil)
	}
	f.VerboseLog("Wrote %d bytes to %s", len(data), output)
	return f.Result(map[string]any{"path": output, "bytes": len(data)}, func(w io.Writer) {
		fmt.Fprintf(w, "Exported to %s\n", output)
	})
}

// decodeFile reads and decodes a state file, reporting failures.
func decodeFile(opts *RootOptions, f *OutputFormatter, path string) (*state.State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, f.Fail(ExitCommandError, ErrCodeNotFound, fmt.Errorf("read %s: %w", path, err), nil)
	}

	st, err := state.Decode(data, opts.IDs)
	if err != nil {
		var importErr *state.ImportError
		if errors.As(err, &importErr) {
			details := map[string]string{"file": path}
			if importErr.Path != "" {
				details["path"] = importErr.Path
			}
			if importErr.Err != nil {
				details["cause"] = importErr.Err.Error()
			}
			_ = f.Error(ErrCodeImport, importErr.Message, details)
			return nil, WrapExitError(ExitFailure, ErrCodeImport, err)
		}
		return nil, f.Fail(ExitFailure, ErrCodeImport, err, nil)
	}
	return st, nil
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.json>",
		Short: "Replace the state with an exported JSON file",
		Long: `Replace lists, schemas and settings with the contents of a JSON file
written by export. A file that is not a valid export is rejected as a whole
and the stored state is left unchanged.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := rootOpts.formatter(cmd)
			imported, err := decodeFile(rootOpts, f, args[0])
			if err != nil {
				return err
			}

			err = withSession(cmd.Context(), rootOpts, f, func(s *session) (bool, error) {
				s.state = imported
				return true, nil
			})
			if err != nil {
				return err
			}

			summary := summarizeState(imported)
			return f.Result(summary, func(w io.Writer) {
				fmt.Fprintf(w, "Imported %s\n", args[0])
				summary.writeText(w)
			})
		},
	}
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file.json>",
		Short: "Check that a JSON file can be imported",
		Long: `Check that a JSON file can be imported, without touching the stored
state. Exit code 1 when the file would be rejected.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := rootOpts.formatter(cmd)
			st, err := decodeFile(rootOpts, f, args[0])
			if err != nil {
				return err
			}
			summary := summarizeState(st)
			return f.Result(summary, func(w io.Writer) {
				fmt.Fprintf(w, "✓ %s is valid\n", args[0])
				summary.writeText(w)
			})
		},
	}
}

// NewResetCommand creates the reset command.
func NewResetCommand(rootOpts *RootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:           "reset",
		Short:         "Delete all lists and schemas",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := rootOpts.formatter(cmd)
			ok, err := confirm(rootOpts, f, yes, "Видалити всі списки та схеми?")
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(f.GetErrWriter(), "Cancelled.")
				return nil
			}

			var summary StateSummary
			err = withSession(cmd.Context(), rootOpts, f, func(s *session) (bool, error) {
				s.state.Reset()
				summary = summarizeState(s.state)
				return true, nil
			})
			if err != nil {
				return err
			}
			return f.Result(summary, func(w io.Writer) {
				fmt.Fprintln(w, "State reset.")
				summary.writeText(w)
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")

	return cmd
}
