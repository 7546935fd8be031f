// Package harness runs deterministic generation scenarios.
//
// A scenario names a state blob, a schema within it, a variant count and
// the randomness to use, then asserts on the generated variants. It is the
// executable form of "given these lists and fields, generation produces
// exactly this".
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: known_draws
//	description: "What this scenario validates"
//	state: ../states/cities.json   # relative to the scenario file
//	schema: Main                   # id or name; default is the active schema
//	count: 2
//	draws: [1, 1, 0, 0, 2, 0, 0, 1] # or: seed: 42
//	assertions:
//	  - type: output_equals
//	    variant: 1
//	    lines: ["Number: 2", "City: Berlin"]
//	  - type: value_in_list
//	    field: City
//	    list: Cities
//
// # Assertion Types
//
//   - output_equals: a variant's output lines match exactly
//   - variant_count: the result holds exactly N variants
//   - value_in_list: every variant's value for a field comes from a list
//   - value_range: every variant's number for a field lies in [min, max]
//   - value_equals: a variant's value for a field matches exactly
//
// Fields are referenced by id or label, lists by id or name.
//
// # Deterministic Testing
//
// draws feeds testutil.SequenceSource, so every random decision is spelled
// out; running out of draws or leaving some unused fails the scenario.
// seed feeds the engine's seeded PCG source instead. Either way the state
// passes through a fresh in-memory store before generation, the same path
// the CLI takes.
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/known_draws.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Pass {
//	    for _, msg := range result.Errors {
//	        log.Println(msg)
//	    }
//	}
package harness
