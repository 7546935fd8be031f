package harness

import "github.com/roach88/varigen/internal/ir"

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall success: all assertions held and the draw
	// sequence, when given, was consumed exactly.
	Pass bool `json:"pass"`

	// Variants holds the generated variants.
	Variants []ir.Variant `json:"variants"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Draws is the number of random draws the generation made.
	// Only tracked for scenarios with an explicit draw sequence.
	Draws int `json:"draws,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:     true,
		Variants: []ir.Variant{},
		Errors:   []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
