package engine

import (
	"strings"

	"github.com/roach88/varigen/internal/ir"
)

// GenerateVariant resolves every field once, strictly in the given order.
//
// Each resolved entry is visible to the fields after it, which is how sub
// fields find their parent's value. There is no lookahead, retry or
// backtracking: a sentinel or empty value never blocks later fields.
func GenerateVariant(fields []ir.Field, lists ir.Lists, index int, src Source) ir.Variant {
	resolved := make(map[string]ir.Resolved, len(fields))
	variant := ir.Variant{
		Index:       index,
		Entries:     make([]ir.Resolved, 0, len(fields)),
		OutputLines: make([]string, 0, len(fields)),
	}

	for _, field := range fields {
		entry := Resolve(field, fields, resolved, lists, index, src)
		resolved[field.ID] = entry
		variant.Entries = append(variant.Entries, entry)
		variant.OutputLines = append(variant.OutputLines, strings.TrimSpace(entry.FormattedLine))
	}

	return variant
}
