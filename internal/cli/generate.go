package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/varigen/internal/engine"
	"github.com/roach88/varigen/internal/ir"
	"github.com/roach88/varigen/internal/render"
)

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	*RootOptions
	Count      int
	SingleLine bool
	Seed       uint64
	Force      bool
}

// GenerateResult holds the generated variants and how they were rendered.
type GenerateResult struct {
	Schema     string       `json:"schema"`
	Count      int          `json:"count"`
	SingleLine bool         `json:"singleLine"`
	Seed       *uint64      `json:"seed,omitempty"`
	Variants   []ir.Variant `json:"variants"`
	Text       string       `json:"text"`
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate variants from the active schema",
		Long: `Generate variants from the active schema.

-n and --single-line are remembered for later runs. --seed makes the draws
reproducible. Generation is refused while no field is configured unless
--force is given.

Exit codes:
  0 - Variants generated
  1 - No configured field
  2 - Command error

Examples:
  varigen generate
  varigen generate -n 5 --single-line
  varigen generate --seed 42 --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(opts, cmd)
		},
	}

	cmd.Flags().IntVarP(&opts.Count, "count", "n", 1, "number of variants (1-50)")
	cmd.Flags().BoolVar(&opts.SingleLine, "single-line", false, "print each variant on one line")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "seed for reproducible draws")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "generate even when no field is configured")

	return cmd
}

func runGenerate(opts *GenerateOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	flags := cmd.Flags()

	var out GenerateResult
	err := withSession(cmd.Context(), opts.RootOptions, f, func(s *session) (bool, error) {
		changed := false
		if flags.Changed("count") {
			s.state.SetVariantCount(float64(opts.Count))
			changed = true
		}
		if flags.Changed("single-line") {
			s.state.SetSingleLine(opts.SingleLine)
			changed = true
		}

		fields := s.state.Fields()
		if !engine.Ready(fields) && !opts.Force {
			return changed, notReady(f, fields)
		}

		src := engine.Source(engine.NewRandomSource())
		if flags.Changed("seed") {
			src = engine.NewSource(opts.Seed)
			seed := opts.Seed
			out.Seed = &seed
		}

		eng := engine.New(s.state.ListSnapshot(), src, engine.WithLogger(s.logger))
		result := eng.Generate(fields, s.state.VariantCount)

		out.Schema = s.state.Active().Name
		out.Count = len(result.Variants)
		out.SingleLine = s.state.SingleLine
		out.Variants = result.Variants
		out.Text = render.Text(result, s.state.SingleLine)
		return changed, nil
	})
	if err != nil {
		return err
	}

	return f.Result(out, func(w io.Writer) {
		fmt.Fprintln(w, out.Text)
	})
}

// notReady reports the per-field readiness of a schema that cannot
// generate anything useful.
func notReady(f *OutputFormatter, fields []ir.Field) error {
	report := engine.Readiness(fields)
	msg := "no configured field in the active schema (use --force to generate anyway)"
	if len(fields) == 0 {
		msg = "the active schema has no fields"
	}
	_ = f.Error(ErrCodeNotReady, msg, report)
	if f.Format != "json" {
		for _, r := range report {
			fmt.Fprintf(f.Writer, "  %s %s: %s\n", r.FieldID, r.Label, r.Reason)
		}
	}
	return WrapExitError(ExitFailure, ErrCodeNotReady, errors.New(msg))
}
