package engine

import (
	"log/slog"
	"math"

	"github.com/roach88/varigen/internal/ir"
)

// Engine generates variants over a fixed snapshot of lists.
//
// The engine holds no mutable state besides its Source. Generation is a
// pure function of the fields passed in, the list snapshot and the draws.
//
// Thread-safety model:
//   - Generate(): safe for concurrent use only if the Source is; *rand.Rand
//     and testutil.SequenceSource are not, so give each goroutine its own
//     Engine.
type Engine struct {
	lists  []ir.List
	index  ir.Lists
	src    Source
	logger *slog.Logger
}

// Option allows configuration of engine parameters.
type Option func(*Engine)

// WithLogger sets the logger used for generation diagnostics.
// Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New creates an Engine over the given lists and entropy source.
//
// The lists slice is copied so later changes by the caller cannot affect
// a generation in progress. A nil src falls back to NewRandomSource().
func New(lists []ir.List, src Source, opts ...Option) *Engine {
	listsCopy := make([]ir.List, len(lists))
	copy(listsCopy, lists)

	if src == nil {
		src = NewRandomSource()
	}

	e := &Engine{
		lists:  listsCopy,
		index:  ir.IndexLists(listsCopy),
		src:    src,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Generate produces count independent variants numbered 1..count.
// count below 1 is treated as 1. There is no upper bound here; callers
// that take user input cap it themselves.
func (e *Engine) Generate(fields []ir.Field, count int) ir.Result {
	if count < 1 {
		count = 1
	}

	e.logger.Debug("generating variants",
		"fields", len(fields),
		"lists", len(e.lists),
		"count", count,
	)

	result := ir.Result{Variants: make([]ir.Variant, 0, count)}
	for i := 1; i <= count; i++ {
		result.Variants = append(result.Variants, GenerateVariant(fields, e.index, i, e.src))
	}

	e.logger.Debug("generation complete", "variants", len(result.Variants))
	return result
}

// Variant produces a single variant with the given 1-based index.
func (e *Engine) Variant(fields []ir.Field, index int) ir.Variant {
	return GenerateVariant(fields, e.index, index, e.src)
}

// Resolve resolves one field against the engine's lists.
func (e *Engine) Resolve(field ir.Field, fields []ir.Field, resolved map[string]ir.Resolved, index int) ir.Resolved {
	return Resolve(field, fields, resolved, e.index, index, e.src)
}

// Generate is the functional form of Engine.Generate.
func Generate(fields []ir.Field, lists []ir.List, count int, src Source) ir.Result {
	return New(lists, src).Generate(fields, count)
}

// CoerceCount turns a loosely typed variant count into a usable one.
// NaN, infinities and values below 1 become 1. Fractions round up, matching
// a loop that runs while i < count.
func CoerceCount(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 1 {
		return 1
	}
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(math.Ceil(v))
}
