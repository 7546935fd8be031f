// Package engine implements the varigen generation engine.
//
// The engine turns an ordered set of field definitions plus the imported
// lists into one or more variants: a resolved value and a formatted output
// line for every field.
//
// ARCHITECTURE:
//
// Resolution is eager, incremental and single-threaded:
//  1. Generate() produces count variants numbered from 1.
//  2. GenerateVariant() walks the fields strictly in the given order.
//  3. Resolve() computes one field's value from the field, the values
//     already resolved in this variant, the lists and the entropy source.
//
// Field order is the only dependency mechanism. A sub field sees its
// parent's value only if the parent came earlier; forward references
// resolve to an empty value. The engine never reorders fields.
//
// CRITICAL PATTERNS:
//
// Non-fatal resolution:
// An unusable configuration never aborts generation. A number field with a
// bad range yields ir.InvalidRangeValue; every other gap (missing list,
// empty list, unresolved parent, bad number_string range) yields "".
//
// Injectable entropy:
// All randomness flows through a Source. Production uses NewRandomSource or
// a seeded NewSource; tests use testutil.SequenceSource so every draw is
// known in advance. Draw order per field is fixed: the integer first, then
// the list item.
//
// Purity:
// The engine reads fields and lists and never mutates them.
package engine
