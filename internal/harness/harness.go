package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/roach88/varigen/internal/engine"
	"github.com/roach88/varigen/internal/ir"
	"github.com/roach88/varigen/internal/state"
	"github.com/roach88/varigen/internal/store"
	"github.com/roach88/varigen/internal/testutil"
)

// Harness is the scenario execution environment.
type Harness struct {
	store  *store.Store
	logger *slog.Logger
}

// Run executes a scenario and returns the result.
//
// Each scenario runs against a fresh in-memory database for isolation.
//
// Execution flow:
// 1. Store the scenario's state blob and load it back
// 2. Select the schema
// 3. Generate with the scenario's draws or seed
// 4. Evaluate assertions
//
// Setup problems (missing state file, unknown schema) are returned as
// errors. Generation and assertion failures are reported in the Result.
func Run(scenario *Scenario) (*Result, error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	h := &Harness{
		store:  st,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)), // Suppress logs in tests
	}
	return h.run(context.Background(), scenario)
}

func (h *Harness) run(ctx context.Context, scenario *Scenario) (*Result, error) {
	s, err := h.loadState(ctx, scenario.State)
	if err != nil {
		return nil, err
	}

	schema, err := selectSchema(s, scenario.Schema)
	if err != nil {
		return nil, err
	}

	var (
		src engine.Source
		seq *testutil.SequenceSource
	)
	if len(scenario.Draws) > 0 {
		seq = testutil.NewSequenceSource(scenario.Draws...)
		src = seq
	} else {
		src = engine.NewSource(*scenario.Seed)
	}

	lists := s.ListSnapshot()
	eng := engine.New(lists, src, engine.WithLogger(h.logger))

	result := NewResult()
	generated, err := generate(eng, schema.Fields, scenario.Count)
	if err != nil {
		result.AddError(err.Error())
		return result, nil
	}
	result.Variants = generated.Variants

	if seq != nil {
		result.Draws = seq.Consumed()
		if unused := len(scenario.Draws) - result.Draws; unused > 0 {
			result.AddError(fmt.Sprintf("draw sequence: %d of %d draws left unused", unused, len(scenario.Draws)))
		}
	}

	actx := &AssertionContext{Fields: schema.Fields, Lists: lists}
	for _, msg := range EvaluateAssertions(result, scenario.Assertions, actx) {
		result.AddError(msg)
	}

	return result, nil
}

// loadState round-trips the blob through the store, then decodes it.
func (h *Harness) loadState(ctx context.Context, path string) (*state.State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	if _, err := h.store.Save(ctx, store.DefaultKey, data); err != nil {
		return nil, fmt.Errorf("failed to store state: %w", err)
	}
	stored, err := h.store.Load(ctx, store.DefaultKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load state: %w", err)
	}

	s, err := state.Decode(stored, state.NewSequentialGenerator("scenario"))
	if err != nil {
		return nil, fmt.Errorf("failed to decode state %s: %w", path, err)
	}
	return s, nil
}

// selectSchema finds a schema by id, then by name. Empty ref selects the
// active schema.
func selectSchema(s *state.State, ref string) (*ir.Schema, error) {
	if ref == "" {
		return s.Active(), nil
	}
	if schema, ok := s.Schema(ref); ok {
		return schema, nil
	}
	for i := range s.Instances {
		if s.Instances[i].Name == ref {
			return &s.Instances[i], nil
		}
	}
	return nil, fmt.Errorf("schema %q not found", ref)
}

// generate runs the engine, turning a draw sequence panic into an error.
func generate(eng *engine.Engine, fields []ir.Field, count int) (result ir.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("draw sequence: %v", r)
		}
	}()
	return eng.Generate(fields, count), nil
}
