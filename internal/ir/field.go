package ir

import (
	"math"
	"strconv"
	"strings"
)

// FieldType is the closed set of field behaviors.
type FieldType string

const (
	FieldNumber       FieldType = "number"
	FieldString       FieldType = "string"
	FieldNumberString FieldType = "number_string"
	FieldSub          FieldType = "sub"
)

// ValidFieldTypes defines the allowed field types.
var ValidFieldTypes = map[FieldType]bool{
	FieldNumber:       true,
	FieldString:       true,
	FieldNumberString: true,
	FieldSub:          true,
}

// FieldTypes lists the field types in presentation order.
var FieldTypes = []FieldType{FieldNumber, FieldString, FieldNumberString, FieldSub}

// Display labels shown in field listings.
var fieldTypeLabels = map[FieldType]string{
	FieldNumber:       "Число",
	FieldString:       "Строка",
	FieldNumberString: "Число + Строка",
	FieldSub:          "Підпункт",
}

// Label returns the human label of the type.
func (t FieldType) Label() string {
	return fieldTypeLabels[t]
}

const (
	// DefaultLabel replaces a blank field label.
	DefaultLabel = "Назва поля"

	// DefaultFormat is applied to fields created or imported without a format.
	DefaultFormat = "{label}: {value}"

	// InvalidRangeValue is the raw value of a number field with an unusable range.
	InvalidRangeValue = "[Некоректний діапазон]"

	// MaxSafeInteger bounds the integers a range may produce (2^53 - 1).
	MaxSafeInteger = 1<<53 - 1
)

// Bound is an optional finite number.
// The zero value is unset, which stands for "not a finite number".
type Bound struct {
	value float64
	set   bool
}

// NewBound returns a set Bound, or an unset one for NaN and infinities.
func NewBound(v float64) Bound {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Bound{}
	}
	return Bound{value: v, set: true}
}

// Float returns the bound and whether it is set.
func (b Bound) Float() (float64, bool) {
	return b.value, b.set
}

// IsSet reports whether the bound holds a finite number.
func (b Bound) IsSet() bool {
	return b.set
}

// String formats the bound like a form input would, "" when unset.
func (b Bound) String() string {
	if !b.set {
		return ""
	}
	return strconv.FormatFloat(b.value, 'f', -1, 64)
}

// FieldSpec is a sealed interface holding the type-specific attributes of a field.
// Only NumberSpec, StringSpec, NumberStringSpec and SubSpec implement it.
type FieldSpec interface {
	Type() FieldType
	fieldSpec() // Sealed
}

// NumberSpec draws a random integer from [Min, Max].
type NumberSpec struct {
	Min Bound
	Max Bound
}

// StringSpec draws a random item value from a list.
type StringSpec struct {
	ListID string
}

// NumberStringSpec draws an integer and a list value and joins them with a space.
type NumberStringSpec struct {
	Min    Bound
	Max    Bound
	ListID string
}

// SubSpec joins on the value already resolved for an earlier field.
type SubSpec struct {
	ParentID string
}

func (NumberSpec) Type() FieldType       { return FieldNumber }
func (StringSpec) Type() FieldType       { return FieldString }
func (NumberStringSpec) Type() FieldType { return FieldNumberString }
func (SubSpec) Type() FieldType          { return FieldSub }

func (NumberSpec) fieldSpec()       {}
func (StringSpec) fieldSpec()       {}
func (NumberStringSpec) fieldSpec() {}
func (SubSpec) fieldSpec()          {}

// Field describes how to produce one line of output.
type Field struct {
	ID     string
	Label  string
	Format string
	Spec   FieldSpec
}

// Type returns the field's type tag. A field without a spec reports "".
func (f Field) Type() FieldType {
	if f.Spec == nil {
		return ""
	}
	return f.Spec.Type()
}

// Range returns the numeric bounds for number and number_string fields.
func (f Field) Range() (min, max Bound, ok bool) {
	switch s := f.Spec.(type) {
	case NumberSpec:
		return s.Min, s.Max, true
	case NumberStringSpec:
		return s.Min, s.Max, true
	}
	return Bound{}, Bound{}, false
}

// ListRef returns the referenced list id for string and number_string fields.
func (f Field) ListRef() (string, bool) {
	switch s := f.Spec.(type) {
	case StringSpec:
		return s.ListID, true
	case NumberStringSpec:
		return s.ListID, true
	}
	return "", false
}

// ParentRef returns the referenced parent field id for sub fields.
func (f Field) ParentRef() (string, bool) {
	if s, ok := f.Spec.(SubSpec); ok {
		return s.ParentID, true
	}
	return "", false
}

// DisplayLabel returns the trimmed label, or DefaultLabel when blank.
func (f Field) DisplayLabel() string {
	if label := strings.TrimSpace(f.Label); label != "" {
		return label
	}
	return DefaultLabel
}
