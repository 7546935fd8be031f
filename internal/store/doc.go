// Package store provides SQLite-backed durable storage for the varigen
// state blob.
//
// The store is a small key-value table of slots. Each slot holds one
// encoded state blob together with its content digest and a revision
// counter:
//
//   - key: slot name (the CLI uses DefaultKey)
//   - data: the blob exactly as written
//   - digest: ir.StateDigest of data
//   - revision: starts at 1, bumped only when the digest changes
//
// Rewriting an unchanged blob is a no-op for the revision, so callers can
// save after every command without inflating it.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// Schema changes are tracked with PRAGMA user_version.
package store
