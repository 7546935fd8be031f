package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/varigen/internal/engine"
	"github.com/roach88/varigen/internal/ir"
	"github.com/roach88/varigen/internal/state"
)

// FieldView is the listing form of a field.
type FieldView struct {
	ID         string       `json:"id"`
	Label      string       `json:"label"`
	Type       ir.FieldType `json:"type"`
	Min        *float64     `json:"min,omitempty"`
	Max        *float64     `json:"max,omitempty"`
	ListID     string       `json:"listId,omitempty"`
	SubFieldID string       `json:"subFieldId,omitempty"`
	Format     string       `json:"format"`
	Configured bool         `json:"configured"`
	Reason     string       `json:"reason,omitempty"`
}

func viewField(f ir.Field) FieldView {
	v := FieldView{
		ID:     f.ID,
		Label:  f.Label,
		Type:   f.Type(),
		Format: f.Format,
	}
	if lo, hi, ok := f.Range(); ok {
		if x, set := lo.Float(); set {
			v.Min = &x
		}
		if x, set := hi.Float(); set {
			v.Max = &x
		}
	}
	v.ListID, _ = f.ListRef()
	v.SubFieldID, _ = f.ParentRef()

	report := engine.Readiness([]ir.Field{f})[0]
	v.Configured, v.Reason = report.Configured, report.Reason
	return v
}

// describe renders a field's attributes on one line.
func (v FieldView) describe() string {
	label := v.Label
	if label == "" {
		label = "(" + ir.DefaultLabel + ")"
	}
	out := fmt.Sprintf("%s  %-14s %s", v.ID, v.Type, label)
	bound := func(p *float64) string {
		if p == nil {
			return "?"
		}
		return ir.NewBound(*p).String()
	}
	switch v.Type {
	case ir.FieldNumber:
		out += fmt.Sprintf("  [%s..%s]", bound(v.Min), bound(v.Max))
	case ir.FieldString:
		out += "  list=" + v.ListID
	case ir.FieldNumberString:
		out += fmt.Sprintf("  [%s..%s] list=%s", bound(v.Min), bound(v.Max), v.ListID)
	case ir.FieldSub:
		out += "  parent=" + v.SubFieldID
	}
	if v.Format != ir.DefaultFormat {
		out += fmt.Sprintf("  format=%q", v.Format)
	}
	if !v.Configured {
		out += "  (" + v.Reason + ")"
	}
	return out
}

// NewFieldCommand creates the field command group. Field commands act on
// the active schema.
func NewFieldCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "field",
		Short: "Manage the fields of the active schema",
	}

	cmd.AddCommand(newFieldAddCommand(rootOpts))
	cmd.AddCommand(newFieldSetCommand(rootOpts))
	cmd.AddCommand(newFieldRmCommand(rootOpts))
	cmd.AddCommand(newFieldLsCommand(rootOpts))
	cmd.AddCommand(newFieldParentsCommand(rootOpts))

	return cmd
}

func newFieldAddCommand(opts *RootOptions) *cobra.Command {
	ff := &fieldFlags{}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Append a field",
		Long: `Append a field to the active schema. Without flags the field draws
an integer from 1 to 10 and prints "{label}: {value}".

Examples:
  varigen field add --label Room --min 1 --max 300
  varigen field add --type string --label City --list <list-id>
  varigen field add --type sub --label Country --sub <field-id>`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFieldSave(opts, ff, "", cmd)
		},
	}
	ff.register(cmd.Flags())
	return cmd
}

func newFieldSetCommand(opts *RootOptions) *cobra.Command {
	ff := &fieldFlags{}
	cmd := &cobra.Command{
		Use:   "set <id>",
		Short: "Change a field",
		Long: `Change attributes of a field. Attributes shared by the old and new
type survive a type change. An empty --min, --max, --list or --sub clears it.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFieldSave(opts, ff, args[0], cmd)
		},
	}
	ff.register(cmd.Flags())
	return cmd
}

// runFieldSave adds a field when id is empty, then applies the flags.
func runFieldSave(opts *RootOptions, ff *fieldFlags, id string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	patch, changed := ff.patch(cmd.Flags())
	if id != "" && !changed {
		return f.Fail(ExitCommandError, ErrCodeInvalidInput, errors.New("nothing to change: pass at least one attribute flag"), nil)
	}

	var saved ir.Field
	err := withSession(cmd.Context(), opts, f, func(s *session) (bool, error) {
		if id == "" {
			id = s.state.AddField().ID
		} else if _, ok := s.state.Field(id); !ok {
			return false, failState(f, fmt.Errorf("%w: %s", state.ErrFieldNotFound, id))
		}

		if err := checkRefs(s.state, id, patch); err != nil {
			return false, failState(f, err)
		}
		field, err := s.state.UpdateField(id, patch)
		if err != nil {
			return false, failState(f, err)
		}

		if parent, ok := field.ParentRef(); ok && parent == "" && patch.SubFieldID == nil {
			field = pickParent(opts, s, field)
		}
		saved = field
		return true, nil
	})
	if err != nil {
		return err
	}

	view := viewField(saved)
	return f.Result(view, func(w io.Writer) {
		fmt.Fprintln(w, view.describe())
	})
}

// checkRefs rejects list and parent ids the field cannot use. Empty ids
// clear the reference and are always accepted.
func checkRefs(st *state.State, id string, patch state.FieldPatch) error {
	if patch.ListID != nil && *patch.ListID != "" {
		if _, ok := st.List(*patch.ListID); !ok {
			return fmt.Errorf("%w: %s", state.ErrListNotFound, *patch.ListID)
		}
	}
	if patch.SubFieldID != nil && *patch.SubFieldID != "" {
		for _, c := range st.SubCandidates(id) {
			if c.ID == *patch.SubFieldID {
				return nil
			}
		}
		return fmt.Errorf("%w: %s is not a string or number_string field placed before %s",
			state.ErrFieldNotFound, *patch.SubFieldID, id)
	}
	return nil
}

// pickParent asks which earlier field a sub field joins on. The field is
// left without a parent when there is nothing to choose or nobody to ask.
func pickParent(opts *RootOptions, s *session, field ir.Field) ir.Field {
	candidates := s.state.SubCandidates(field.ID)
	if len(candidates) == 0 {
		return field
	}
	labels := make([]string, len(candidates))
	for i, c := range candidates {
		labels[i] = fmt.Sprintf("%s (%s)", c.DisplayLabel(), c.ID)
	}

	i, err := opts.Prompter.Select("Поле для підпункту", labels)
	if err != nil {
		s.logger.Debug("sub field left without parent", "field", field.ID, "reason", err)
		return field
	}
	parent := candidates[i].ID
	updated, err := s.state.UpdateField(field.ID, state.FieldPatch{SubFieldID: &parent})
	if err != nil {
		return field
	}
	return updated
}

func newFieldRmCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "rm <id>",
		Short:         "Delete a field",
		Long:          `Delete a field. Sub fields that joined on it are left without a parent.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := opts.formatter(cmd)
			err := withSession(cmd.Context(), opts, f, func(s *session) (bool, error) {
				if err := s.state.RemoveField(args[0]); err != nil {
					return false, failState(f, err)
				}
				return true, nil
			})
			if err != nil {
				return err
			}
			return f.Result(map[string]string{"removed": args[0]}, func(w io.Writer) {
				fmt.Fprintf(w, "Removed field %s\n", args[0])
			})
		},
	}
}

func newFieldLsCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "ls",
		Short:         "Show the fields of the active schema",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := opts.formatter(cmd)
			views := []FieldView{}
			var schemaName string
			err := withSession(cmd.Context(), opts, f, func(s *session) (bool, error) {
				schemaName = s.state.Active().Name
				for _, field := range s.state.Fields() {
					views = append(views, viewField(field))
				}
				return false, nil
			})
			if err != nil {
				return err
			}
			return f.Result(views, func(w io.Writer) {
				fmt.Fprintf(w, "Schema: %s\n", schemaName)
				if len(views) == 0 {
					fmt.Fprintln(w, "No fields.")
					return
				}
				for _, v := range views {
					fmt.Fprintln(w, v.describe())
				}
			})
		},
	}
}

func newFieldParentsCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "parents <id>",
		Short:         "Show the fields a sub field may join on",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := opts.formatter(cmd)
			views := []FieldView{}
			err := withSession(cmd.Context(), opts, f, func(s *session) (bool, error) {
				if _, ok := s.state.Field(args[0]); !ok {
					return false, failState(f, fmt.Errorf("%w: %s", state.ErrFieldNotFound, args[0]))
				}
				for _, c := range s.state.SubCandidates(args[0]) {
					views = append(views, viewField(c))
				}
				return false, nil
			})
			if err != nil {
				return err
			}
			return f.Result(views, func(w io.Writer) {
				for _, v := range views {
					fmt.Fprintln(w, v.describe())
				}
			})
		},
	}
}
