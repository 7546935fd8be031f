package engine

import (
	"strconv"
	"strings"
)

// Template placeholders.
const (
	PlaceholderLabel = "{label}"
	PlaceholderValue = "{value}"
	PlaceholderIndex = "{index}"
)

// ApplyTemplate substitutes every placeholder occurrence in template.
//
// Replacement is sequential: all {label} first, then {value}, then {index}.
// A label that itself contains "{value}" is therefore expanded too.
// Values are inserted verbatim. A blank template yields fallback.
func ApplyTemplate(template, fallback, label, value string, index int) string {
	if strings.TrimSpace(template) == "" {
		return fallback
	}
	out := strings.ReplaceAll(template, PlaceholderLabel, label)
	out = strings.ReplaceAll(out, PlaceholderValue, value)
	return strings.ReplaceAll(out, PlaceholderIndex, strconv.Itoa(index))
}
