package engine

import (
	"math"

	"github.com/roach88/varigen/internal/ir"
)

// ValidRange reports whether min and max describe a usable integer range.
//
// Both bounds must be set and min <= max. The rounded range [ceil(min),
// floor(max)] must also be non-empty and within ±ir.MaxSafeInteger, so a
// draw always satisfies ceil(min) <= n <= floor(max).
func ValidRange(min, max ir.Bound) bool {
	_, _, ok := intRange(min, max)
	return ok
}

func intRange(min, max ir.Bound) (lo, hi int64, ok bool) {
	minV, minSet := min.Float()
	maxV, maxSet := max.Float()
	if !minSet || !maxSet || minV > maxV {
		return 0, 0, false
	}

	loF := math.Ceil(minV)
	hiF := math.Floor(maxV)
	if loF > hiF || loF < -ir.MaxSafeInteger || hiF > ir.MaxSafeInteger {
		return 0, 0, false
	}
	return int64(loF), int64(hiF), true
}

// RandomInt draws a uniformly distributed integer from [ceil(min), floor(max)].
// Returns false without drawing when the range is not valid.
func RandomInt(src Source, min, max ir.Bound) (int64, bool) {
	lo, hi, ok := intRange(min, max)
	if !ok {
		return 0, false
	}
	return lo + src.Int64N(hi-lo+1), true
}

// RandomItem draws one item uniformly from the list.
// Returns false without drawing for a nil or empty list.
func RandomItem(src Source, list *ir.List) (ir.ListItem, bool) {
	if list == nil || len(list.Items) == 0 {
		return ir.ListItem{}, false
	}
	return list.Items[src.Int64N(int64(len(list.Items)))], true
}

// FindSub returns the sub-value of the first item whose value equals value,
// or "" when there is no such item or it has no sub-value.
func FindSub(list *ir.List, value string) string {
	if list == nil {
		return ""
	}
	for _, item := range list.Items {
		if item.Value == value {
			return item.SubValue()
		}
	}
	return ""
}
