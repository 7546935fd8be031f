package cli

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roach88/varigen/internal/importer"
	"github.com/roach88/varigen/internal/ir"
)

// ListSummary describes a stored list.
type ListSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Items int    `json:"items"`
}

// ImportFailure reports a list file that was not imported.
type ImportFailure struct {
	File    string `json:"file"`
	Message string `json:"message"`
}

// ListImportResult holds the outcome of list import.
type ListImportResult struct {
	Imported []ListSummary  `json:"imported"`
	Failed   []ImportFailure `json:"failed,omitempty"`
}

func summarize(l ir.List) ListSummary {
	return ListSummary{ID: l.ID, Name: l.Name, Items: len(l.Items)}
}

// NewListCommand creates the list command group.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Manage value lists",
	}

	cmd.AddCommand(newListImportCommand(rootOpts))
	cmd.AddCommand(newListLsCommand(rootOpts))
	cmd.AddCommand(newListShowCommand(rootOpts))
	cmd.AddCommand(newListRmCommand(rootOpts))

	return cmd
}

func newListImportCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.txt>...",
		Short: "Import lists from text files",
		Long: `Import one list per .txt file. Each non-blank line is an item;
"value;sub" attaches a sub-value that sub fields can pick up. The list is
named after the file.

Files that are empty or not .txt are reported and skipped; the others are
still imported. Exit code 1 when any file was skipped.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runListImport(opts, args, cmd)
		},
	}
}

func runListImport(opts *RootOptions, paths []string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	result := ListImportResult{Imported: []ListSummary{}}

	err := withSession(cmd.Context(), opts, f, func(s *session) (bool, error) {
		for _, path := range paths {
			list, err := importer.ImportFile(path, opts.IDs)
			if err != nil {
				s.logger.Warn("list file skipped", "file", path, "error", err)
				result.Failed = append(result.Failed, ImportFailure{File: filepath.Base(path), Message: importMessage(err)})
				continue
			}
			list = s.state.AddList(list)
			f.VerboseLog("Imported %s: %d items", path, len(list.Items))
			result.Imported = append(result.Imported, summarize(list))
		}
		return len(result.Imported) > 0, nil
	})
	if err != nil {
		return err
	}

	if err := f.Result(result, func(w io.Writer) {
		for _, l := range result.Imported {
			fmt.Fprintf(w, "✓ %s (%d items) %s\n", l.Name, l.Items, l.ID)
		}
		for _, fail := range result.Failed {
			fmt.Fprintf(w, "✗ %s\n", fail.File)
			fmt.Fprintf(w, "  %s\n", fail.Message)
		}
	}); err != nil {
		return err
	}

	if len(result.Failed) > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d file(s) not imported", len(result.Failed)))
	}
	return nil
}

// importMessage returns the user-facing reason a list file was skipped.
func importMessage(err error) string {
	var empty *importer.EmptyListError
	if errors.As(err, &empty) {
		return empty.Error()
	}
	return err.Error()
}

func newListLsCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "ls",
		Short:         "Show imported lists",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := opts.formatter(cmd)
			lists := []ListSummary{}
			err := withSession(cmd.Context(), opts, f, func(s *session) (bool, error) {
				for _, l := range s.state.Lists {
					lists = append(lists, summarize(l))
				}
				return false, nil
			})
			if err != nil {
				return err
			}
			return f.Result(lists, func(w io.Writer) {
				if len(lists) == 0 {
					fmt.Fprintln(w, "No lists imported.")
					return
				}
				for _, l := range lists {
					fmt.Fprintf(w, "%s  %s (%d items)\n", l.ID, l.Name, l.Items)
				}
			})
		},
	}
}

func newListShowCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "show <id>",
		Short:         "Print the items of a list",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := opts.formatter(cmd)
			var list ir.List
			err := withSession(cmd.Context(), opts, f, func(s *session) (bool, error) {
				l, ok := s.state.List(args[0])
				if !ok {
					return false, f.Fail(ExitCommandError, ErrCodeNotFound, fmt.Errorf("list %q not found", args[0]), nil)
				}
				list = *l
				return false, nil
			})
			if err != nil {
				return err
			}
			return f.Result(list, func(w io.Writer) {
				for _, it := range list.Items {
					if it.Sub != nil {
						fmt.Fprintf(w, "%s;%s\n", it.Value, *it.Sub)
					} else {
						fmt.Fprintln(w, it.Value)
					}
				}
			})
		},
	}
}

func newListRmCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a list",
		Long: `Delete a list. Fields of every schema that drew from it are left
without a list until another one is selected.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := opts.formatter(cmd)
			err := withSession(cmd.Context(), opts, f, func(s *session) (bool, error) {
				if err := s.state.RemoveList(args[0]); err != nil {
					return false, failState(f, fmt.Errorf("%w: %s", err, args[0]))
				}
				return true, nil
			})
			if err != nil {
				return err
			}
			return f.Result(map[string]string{"removed": args[0]}, func(w io.Writer) {
				fmt.Fprintf(w, "Removed list %s\n", args[0])
			})
		},
	}
}
