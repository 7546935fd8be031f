// Package ir provides the data model shared by every varigen package.
//
// This package contains type definitions and small pure helpers only. All
// other internal packages import ir; ir imports nothing internal.
//
// Key design constraints:
//   - Field is a closed tagged variant: the Spec carries exactly the
//     attributes its type needs (NumberSpec, StringSpec, NumberStringSpec,
//     SubSpec). Loose records are normalized once at the state boundary.
//   - Bounds are optional finite floats. An unset Bound stands for any value
//     that is not a finite number.
//   - Variants are transient. They are never persisted and carry no identity
//     beyond the call that produced them.
//   - JSON tags use camelCase to match the exported state blob.
package ir
