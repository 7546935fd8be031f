// Package render formats generation results as plain text.
package render

import (
	"fmt"
	"strings"

	"github.com/roach88/varigen/internal/ir"
)

const (
	// LineSeparator joins a variant's lines in single-line mode.
	LineSeparator = " | "

	// VariantPrefix labels each variant when several share one line each.
	VariantPrefix = "Варіант %d: "
)

// Text renders result in single-line or multi-line mode.
// An empty result renders as "".
func Text(result ir.Result, singleLine bool) string {
	if singleLine {
		return SingleLine(result)
	}
	return MultiLine(result)
}

// SingleLine joins each variant's lines with LineSeparator. Several
// variants are printed one per line, each behind a numbered prefix.
func SingleLine(result ir.Result) string {
	switch len(result.Variants) {
	case 0:
		return ""
	case 1:
		return strings.Join(result.Variants[0].OutputLines, LineSeparator)
	}

	rows := make([]string, len(result.Variants))
	for i, v := range result.Variants {
		rows[i] = fmt.Sprintf(VariantPrefix, i+1) + strings.Join(v.OutputLines, LineSeparator)
	}
	return strings.Join(rows, "\n")
}

// MultiLine prints one output line per row, with a blank row between
// variants.
func MultiLine(result ir.Result) string {
	blocks := make([]string, len(result.Variants))
	for i, v := range result.Variants {
		blocks[i] = strings.Join(v.OutputLines, "\n")
	}
	return strings.Join(blocks, "\n\n")
}
