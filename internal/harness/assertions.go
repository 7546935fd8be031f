package harness

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/roach88/varigen/internal/ir"
)

// AssertionContext provides the schema and lists a result was generated
// from, so assertions can refer to fields by label and lists by name.
type AssertionContext struct {
	Fields []ir.Field
	Lists  []ir.List
}

// field finds a field by id, then by label.
func (c *AssertionContext) field(ref string) (ir.Field, bool) {
	for _, f := range c.Fields {
		if f.ID == ref {
			return f, true
		}
	}
	for _, f := range c.Fields {
		if f.Label == ref || f.DisplayLabel() == ref {
			return f, true
		}
	}
	return ir.Field{}, false
}

// list finds a list by id, then by name.
func (c *AssertionContext) list(ref string) (ir.List, bool) {
	for _, l := range c.Lists {
		if l.ID == ref {
			return l, true
		}
	}
	for _, l := range c.Lists {
		if l.Name == ref {
			return l, true
		}
	}
	return ir.List{}, false
}

// AssertionError is returned when an assertion fails.
// It includes the generated output to help debug the failure.
type AssertionError struct {
	Type     string     // Assertion type for categorization
	Expected string     // Human-readable expected outcome
	Actual   string     // Human-readable actual outcome
	Output   [][]string // Output lines of every variant
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Output) > 0 {
		fmt.Fprintf(&buf, "\nOutput:\n")
		for i, lines := range e.Output {
			fmt.Fprintf(&buf, "  [%d] %s\n", i+1, strings.Join(lines, " | "))
		}
	}

	return buf.String()
}

func outputOf(variants []ir.Variant) [][]string {
	out := make([][]string, len(variants))
	for i, v := range variants {
		out[i] = v.OutputLines
	}
	return out
}

// variantAt returns the 1-based variant, treating 0 as the first.
func variantAt(variants []ir.Variant, n int) (ir.Variant, error) {
	if n == 0 {
		n = 1
	}
	if n > len(variants) {
		return ir.Variant{}, fmt.Errorf("variant %d requested but only %d generated", n, len(variants))
	}
	return variants[n-1], nil
}

// assertOutputEquals checks a variant's output lines.
func assertOutputEquals(variants []ir.Variant, assertion Assertion) error {
	v, err := variantAt(variants, assertion.Variant)
	if err != nil {
		return err
	}
	if slices.Equal(v.OutputLines, assertion.Lines) {
		return nil
	}
	return &AssertionError{
		Type:     AssertOutputEquals,
		Expected: fmt.Sprintf("variant %d lines %q", v.Index, assertion.Lines),
		Actual:   fmt.Sprintf("%q", v.OutputLines),
		Output:   outputOf(variants),
	}
}

// assertVariantCount checks the number of variants.
func assertVariantCount(variants []ir.Variant, assertion Assertion) error {
	if len(variants) == assertion.Count {
		return nil
	}
	return &AssertionError{
		Type:     AssertVariantCount,
		Expected: fmt.Sprintf("%d variants", assertion.Count),
		Actual:   fmt.Sprintf("%d variants", len(variants)),
		Output:   outputOf(variants),
	}
}

// listPart extracts the list-drawn part of a raw value.
// number_string values carry "<n> <value>".
func listPart(f ir.Field, raw string) string {
	if f.Type() == ir.FieldNumberString {
		_, rest, _ := strings.Cut(raw, " ")
		return rest
	}
	return raw
}

// numberPart extracts the drawn integer of a raw value.
func numberPart(f ir.Field, raw string) (int64, error) {
	if f.Type() == ir.FieldNumberString {
		raw, _, _ = strings.Cut(raw, " ")
	}
	return strconv.ParseInt(raw, 10, 64)
}

// assertValueInList checks every variant's value for a field against a
// list. Sub fields are checked against the list's sub-values.
func assertValueInList(variants []ir.Variant, assertion Assertion, actx *AssertionContext) error {
	f, ok := actx.field(assertion.Field)
	if !ok {
		return fmt.Errorf("value_in_list: field %q not found", assertion.Field)
	}
	list, ok := actx.list(assertion.List)
	if !ok {
		return fmt.Errorf("value_in_list: list %q not found", assertion.List)
	}

	var allowed []string
	switch f.Type() {
	case ir.FieldString, ir.FieldNumberString:
		for _, it := range list.Items {
			allowed = append(allowed, it.Value)
		}
	case ir.FieldSub:
		for _, it := range list.Items {
			if it.Sub != nil {
				allowed = append(allowed, *it.Sub)
			}
		}
	default:
		return fmt.Errorf("value_in_list: field %q of type %s draws no list value", assertion.Field, f.Type())
	}

	for _, v := range variants {
		entry, ok := v.Lookup(f.ID)
		if !ok {
			return fmt.Errorf("value_in_list: variant %d has no entry for field %q", v.Index, f.ID)
		}
		got := listPart(f, entry.RawValue)
		if !slices.Contains(allowed, got) {
			return &AssertionError{
				Type:     AssertValueInList,
				Expected: fmt.Sprintf("%s value from list %s %q", f.DisplayLabel(), list.Name, allowed),
				Actual:   fmt.Sprintf("variant %d value %q", v.Index, got),
				Output:   outputOf(variants),
			}
		}
	}
	return nil
}

// assertValueRange checks every variant's number for a field.
func assertValueRange(variants []ir.Variant, assertion Assertion, actx *AssertionContext) error {
	f, ok := actx.field(assertion.Field)
	if !ok {
		return fmt.Errorf("value_range: field %q not found", assertion.Field)
	}
	if _, _, ok := f.Range(); !ok {
		return fmt.Errorf("value_range: field %q of type %s has no range", assertion.Field, f.Type())
	}

	if assertion.Min == nil || assertion.Max == nil {
		return fmt.Errorf("value_range: min and max are required")
	}
	lo, hi := *assertion.Min, *assertion.Max
	for _, v := range variants {
		entry, ok := v.Lookup(f.ID)
		if !ok {
			return fmt.Errorf("value_range: variant %d has no entry for field %q", v.Index, f.ID)
		}
		n, err := numberPart(f, entry.RawValue)
		if err != nil || n < lo || n > hi {
			return &AssertionError{
				Type:     AssertValueRange,
				Expected: fmt.Sprintf("%s in [%d, %d]", f.DisplayLabel(), lo, hi),
				Actual:   fmt.Sprintf("variant %d value %q", v.Index, entry.RawValue),
				Output:   outputOf(variants),
			}
		}
	}
	return nil
}

// assertValueEquals checks one variant's raw value for a field.
func assertValueEquals(variants []ir.Variant, assertion Assertion, actx *AssertionContext) error {
	f, ok := actx.field(assertion.Field)
	if !ok {
		return fmt.Errorf("value_equals: field %q not found", assertion.Field)
	}
	v, err := variantAt(variants, assertion.Variant)
	if err != nil {
		return err
	}
	entry, ok := v.Lookup(f.ID)
	if !ok {
		return fmt.Errorf("value_equals: variant %d has no entry for field %q", v.Index, f.ID)
	}
	if entry.RawValue == assertion.Value {
		return nil
	}
	return &AssertionError{
		Type:     AssertValueEquals,
		Expected: fmt.Sprintf("variant %d %s = %q", v.Index, f.DisplayLabel(), assertion.Value),
		Actual:   fmt.Sprintf("%q", entry.RawValue),
		Output:   outputOf(variants),
	}
}

// EvaluateAssertions runs all assertions and returns error messages.
// Returns empty slice if all assertions pass.
func EvaluateAssertions(result *Result, assertions []Assertion, actx *AssertionContext) []string {
	var errors []string
	if actx == nil {
		actx = &AssertionContext{}
	}

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertOutputEquals:
			err = assertOutputEquals(result.Variants, assertion)
		case AssertVariantCount:
			err = assertVariantCount(result.Variants, assertion)
		case AssertValueInList:
			err = assertValueInList(result.Variants, assertion, actx)
		case AssertValueRange:
			err = assertValueRange(result.Variants, assertion, actx)
		case AssertValueEquals:
			err = assertValueEquals(result.Variants, assertion, actx)
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}
