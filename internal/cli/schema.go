package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/varigen/internal/ir"
	"github.com/roach88/varigen/internal/state"
)

// SchemaSummary describes a schema in listings.
type SchemaSummary struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Fields int    `json:"fields"`
	Active bool   `json:"active"`
}

func summarizeSchema(s ir.Schema, activeID string) SchemaSummary {
	return SchemaSummary{ID: s.ID, Name: s.Name, Fields: len(s.Fields), Active: s.ID == activeID}
}

func (s SchemaSummary) String() string {
	marker := " "
	if s.Active {
		marker = "*"
	}
	return fmt.Sprintf("%s %s  %s (%d fields)", marker, s.ID, s.Name, s.Fields)
}

// NewSchemaCommand creates the schema command group.
func NewSchemaCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Manage schemas",
		Long: `Manage schemas. A schema is an ordered set of fields; exactly one
schema is active and the field and generate commands act on it.`,
	}

	cmd.AddCommand(newSchemaAddCommand(rootOpts))
	cmd.AddCommand(newSchemaCloneCommand(rootOpts))
	cmd.AddCommand(newSchemaRenameCommand(rootOpts))
	cmd.AddCommand(newSchemaRmCommand(rootOpts))
	cmd.AddCommand(newSchemaUseCommand(rootOpts))
	cmd.AddCommand(newSchemaLsCommand(rootOpts))

	return cmd
}

// askName returns args[0] or prompts for a name. ok is false when the
// user cancelled the prompt.
func askName(opts *RootOptions, f *OutputFormatter, args []string, message, def string) (name string, ok bool, err error) {
	if len(args) > 0 {
		return args[0], true, nil
	}
	name, err = opts.Prompter.Input(message, def)
	switch {
	case errors.Is(err, ErrCancelled):
		fmt.Fprintln(f.GetErrWriter(), "Cancelled.")
		return "", false, nil
	case errors.Is(err, ErrNotInteractive):
		return "", false, f.Fail(ExitCommandError, ErrCodeInvalidInput, errors.New("schema name required"), nil)
	case err != nil:
		return "", false, f.Fail(ExitCommandError, ErrCodeGeneric, err, nil)
	}
	return name, true, nil
}

// confirm returns true when yes is set or the user agrees.
func confirm(opts *RootOptions, f *OutputFormatter, yes bool, message string) (bool, error) {
	if yes {
		return true, nil
	}
	ok, err := opts.Prompter.Confirm(message, false)
	switch {
	case errors.Is(err, ErrCancelled):
		return false, nil
	case errors.Is(err, ErrNotInteractive):
		return false, f.Fail(ExitCommandError, ErrCodeInvalidInput, errors.New("confirmation required: pass --yes"), nil)
	case err != nil:
		return false, f.Fail(ExitCommandError, ErrCodeGeneric, err, nil)
	}
	return ok, nil
}

func newSchemaAddCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "add [name]",
		Short:         "Create an empty schema and make it active",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := opts.formatter(cmd)
			name, ok, err := askName(opts, f, args, "Назва нової схеми", "")
			if err != nil || !ok {
				return err
			}

			var summary SchemaSummary
			err = withSession(cmd.Context(), opts, f, func(s *session) (bool, error) {
				schema, err := s.state.AddSchema(name)
				if err != nil {
					return false, failState(f, err)
				}
				summary = summarizeSchema(schema, schema.ID)
				return true, nil
			})
			if err != nil {
				return err
			}
			return f.Result(summary, func(w io.Writer) { fmt.Fprintln(w, summary) })
		},
	}
}

func newSchemaCloneCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "clone",
		Short:         "Copy the active schema and make the copy active",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := opts.formatter(cmd)
			var summary SchemaSummary
			err := withSession(cmd.Context(), opts, f, func(s *session) (bool, error) {
				clone := s.state.CloneSchema()
				summary = summarizeSchema(clone, clone.ID)
				return true, nil
			})
			if err != nil {
				return err
			}
			return f.Result(summary, func(w io.Writer) { fmt.Fprintln(w, summary) })
		},
	}
}

func newSchemaRenameCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "rename [name]",
		Short:         "Rename the active schema",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := opts.formatter(cmd)
			var summary SchemaSummary
			cancelled := false
			err := withSession(cmd.Context(), opts, f, func(s *session) (bool, error) {
				active := s.state.Active()
				name, ok, err := askName(opts, f, args, "Нова назва схеми", active.Name)
				if err != nil || !ok {
					cancelled = !ok
					return false, err
				}
				if err := s.state.RenameSchema(name); err != nil {
					return false, failState(f, err)
				}
				summary = summarizeSchema(*s.state.Active(), s.state.ActiveInstanceID)
				return true, nil
			})
			if err != nil || cancelled {
				return err
			}
			return f.Result(summary, func(w io.Writer) { fmt.Fprintln(w, summary) })
		},
	}
}

func newSchemaRmCommand(opts *RootOptions) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "rm",
		Short: "Delete the active schema",
		Long: `Delete the active schema and activate the first remaining one.
The last schema cannot be deleted.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := opts.formatter(cmd)
			var removed, active SchemaSummary
			kept := false
			err := withSession(cmd.Context(), opts, f, func(s *session) (bool, error) {
				if len(s.state.Instances) <= 1 {
					return false, failState(f, fmt.Errorf("delete schema: %w", state.ErrLastSchema))
				}
				current := *s.state.Active()
				ok, err := confirm(opts, f, yes, fmt.Sprintf("Видалити схему %q?", current.Name))
				if err != nil {
					return false, err
				}
				if !ok {
					kept = true
					return false, nil
				}
				if err := s.state.DeleteSchema(); err != nil {
					return false, failState(f, err)
				}
				removed = summarizeSchema(current, "")
				active = summarizeSchema(*s.state.Active(), s.state.ActiveInstanceID)
				return true, nil
			})
			if err != nil {
				return err
			}
			if kept {
				fmt.Fprintln(f.GetErrWriter(), "Cancelled.")
				return nil
			}
			data := map[string]SchemaSummary{"removed": removed, "active": active}
			return f.Result(data, func(w io.Writer) {
				fmt.Fprintf(w, "Removed schema %s\n", removed.Name)
				fmt.Fprintln(w, active)
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func newSchemaUseCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "use [id|name]",
		Short:         "Make a schema active",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := opts.formatter(cmd)
			var summary SchemaSummary
			err := withSession(cmd.Context(), opts, f, func(s *session) (bool, error) {
				id, err := chooseSchema(opts, f, s, args)
				if err != nil {
					return false, err
				}
				if err := s.state.SelectSchema(id); err != nil {
					return false, failState(f, err)
				}
				summary = summarizeSchema(*s.state.Active(), s.state.ActiveInstanceID)
				return true, nil
			})
			if err != nil {
				return err
			}
			return f.Result(summary, func(w io.Writer) { fmt.Fprintln(w, summary) })
		},
	}
}

// chooseSchema resolves a schema reference by id, then by name, or asks.
func chooseSchema(opts *RootOptions, f *OutputFormatter, s *session, args []string) (string, error) {
	if len(args) > 0 {
		ref := strings.TrimSpace(args[0])
		if _, ok := s.state.Schema(ref); ok {
			return ref, nil
		}
		for _, schema := range s.state.Instances {
			if schema.Name == ref {
				return schema.ID, nil
			}
		}
		return ref, nil
	}

	names := make([]string, len(s.state.Instances))
	for i, schema := range s.state.Instances {
		names[i] = schema.Name
	}
	i, err := opts.Prompter.Select("Схема", names)
	if errors.Is(err, ErrNotInteractive) {
		return "", f.Fail(ExitCommandError, ErrCodeInvalidInput, errors.New("schema id or name required"), nil)
	}
	if err != nil {
		return "", f.Fail(ExitCommandError, ErrCodeGeneric, err, nil)
	}
	return s.state.Instances[i].ID, nil
}

func newSchemaLsCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "ls",
		Short:         "Show schemas; the active one is marked with *",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := opts.formatter(cmd)
			schemas := []SchemaSummary{}
			err := withSession(cmd.Context(), opts, f, func(s *session) (bool, error) {
				for _, schema := range s.state.Instances {
					schemas = append(schemas, summarizeSchema(schema, s.state.ActiveInstanceID))
				}
				return false, nil
			})
			if err != nil {
				return err
			}
			return f.Result(schemas, func(w io.Writer) {
				for _, s := range schemas {
					fmt.Fprintln(w, s)
				}
			})
		},
	}
}
