package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/roach88/varigen/internal/ir"
	"github.com/roach88/varigen/internal/state"
)

// fieldTypeValue is a pflag.Value restricted to the known field types.
type fieldTypeValue ir.FieldType

var _ pflag.Value = (*fieldTypeValue)(nil)

func (v *fieldTypeValue) String() string { return string(*v) }

func (v *fieldTypeValue) Set(s string) error {
	t := ir.FieldType(strings.TrimSpace(s))
	if !ir.ValidFieldTypes[t] {
		return fmt.Errorf("must be one of %v", ir.FieldTypes)
	}
	*v = fieldTypeValue(t)
	return nil
}

func (v *fieldTypeValue) Type() string { return "type" }

// boundValue is a pflag.Value for a range bound. An empty string clears
// the bound, like emptying a number input.
type boundValue ir.Bound

var _ pflag.Value = (*boundValue)(nil)

func (v *boundValue) String() string { return ir.Bound(*v).String() }

func (v *boundValue) Set(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		*v = boundValue(ir.Bound{})
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("not a number: %q", s)
	}
	*v = boundValue(ir.NewBound(f))
	return nil
}

func (v *boundValue) Type() string { return "number" }

// fieldFlags are the attribute flags shared by field add and field set.
type fieldFlags struct {
	typ    fieldTypeValue
	label  string
	format string
	min    boundValue
	max    boundValue
	list   string
	sub    string
}

func (ff *fieldFlags) register(flags *pflag.FlagSet) {
	flags.Var(&ff.typ, "type", "field type (number|string|number_string|sub)")
	flags.StringVar(&ff.label, "label", "", "field label")
	flags.StringVar(&ff.format, "template", "", "line template with {label}, {value} and {index}")
	flags.Var(&ff.min, "min", "lower bound of the integer range")
	flags.Var(&ff.max, "max", "upper bound of the integer range")
	flags.StringVar(&ff.list, "list", "", "list id for string and number_string fields")
	flags.StringVar(&ff.sub, "sub", "", "parent field id for sub fields")
}

// patch builds a FieldPatch from the flags that were given.
func (ff *fieldFlags) patch(flags *pflag.FlagSet) (patch state.FieldPatch, changed bool) {
	if flags.Changed("label") {
		patch.Label = &ff.label
	}
	if flags.Changed("template") {
		patch.Format = &ff.format
	}
	if flags.Changed("type") {
		t := ir.FieldType(ff.typ)
		patch.Type = &t
	}
	if flags.Changed("min") {
		b := ir.Bound(ff.min)
		patch.Min = &b
	}
	if flags.Changed("max") {
		b := ir.Bound(ff.max)
		patch.Max = &b
	}
	if flags.Changed("list") {
		patch.ListID = &ff.list
	}
	if flags.Changed("sub") {
		patch.SubFieldID = &ff.sub
	}
	changed = patch != (state.FieldPatch{})
	return patch, changed
}
