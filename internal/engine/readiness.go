package engine

import "github.com/roach88/varigen/internal/ir"

// Reasons reported for fields that are not configured.
const (
	ReasonInvalidRange = "invalid range"
	ReasonNoList       = "no list selected"
	ReasonNoParent     = "no parent field selected"
	ReasonUnknownType  = "unknown field type"
)

// FieldReadiness describes whether one field is independently configured.
type FieldReadiness struct {
	FieldID    string       `json:"fieldId"`
	Label      string       `json:"label"`
	Type       ir.FieldType `json:"type"`
	Configured bool         `json:"configured"`
	Reason     string       `json:"reason,omitempty"`
}

// Configured reports whether a field is configured on its own.
// References are only checked for presence, not for existence.
func Configured(field ir.Field) bool {
	return configuredReason(field) == ""
}

func configuredReason(field ir.Field) string {
	switch spec := field.Spec.(type) {
	case ir.NumberSpec:
		if !ValidRange(spec.Min, spec.Max) {
			return ReasonInvalidRange
		}
	case ir.StringSpec:
		if spec.ListID == "" {
			return ReasonNoList
		}
	case ir.NumberStringSpec:
		if !ValidRange(spec.Min, spec.Max) {
			return ReasonInvalidRange
		}
		if spec.ListID == "" {
			return ReasonNoList
		}
	case ir.SubSpec:
		if spec.ParentID == "" {
			return ReasonNoParent
		}
	default:
		return ReasonUnknownType
	}
	return ""
}

// Ready reports whether generation should be offered for the fields:
// at least one field exists and at least one is configured.
//
// The predicate is advisory. Generate runs correctly either way.
func Ready(fields []ir.Field) bool {
	for _, f := range fields {
		if Configured(f) {
			return true
		}
	}
	return false
}

// Readiness returns a per-field report in field order.
func Readiness(fields []ir.Field) []FieldReadiness {
	report := make([]FieldReadiness, 0, len(fields))
	for _, f := range fields {
		reason := configuredReason(f)
		report = append(report, FieldReadiness{
			FieldID:    f.ID,
			Label:      f.DisplayLabel(),
			Type:       f.Type(),
			Configured: reason == "",
			Reason:     reason,
		})
	}
	return report
}
