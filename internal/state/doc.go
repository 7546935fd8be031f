// Package state holds the varigen application state and every mutation of it.
//
// State is an explicit object passed by reference: lists, schemas (called
// "instances" in the exported blob), the active schema id and the
// presentation settings. The generation engine only ever sees snapshots
// taken from it (Fields, Lists).
//
// # Invariants
//
//   - At least one schema exists and ActiveInstanceID names one of them.
//     EnsureInstances re-establishes this after any bulk change.
//   - Removing a list clears listId on every field that referenced it.
//   - Removing a field clears subFieldId on every field that referenced it.
//
// # Wire format
//
// The blob is camelCase JSON:
//
//	{
//	  "lists": [{"id": "...", "name": "...", "items": [{"value": "...", "sub": null}]}],
//	  "instances": [{"id": "...", "name": "...", "fields": [...]}],
//	  "activeInstanceId": "...",
//	  "singleLine": false,
//	  "variantCount": 1
//	}
//
// Decode checks the top-level shape against an embedded CUE definition and
// rejects malformed input as a whole. Individual records are then
// normalized field by field, never rejected. A legacy blob carrying a bare
// "fields" array instead of "instances" becomes a single default schema.
package state
