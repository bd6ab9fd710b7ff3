// Package state provides the key-value state beneath the goACL engine: the
// per-(scope, account) role assignments and the per-scope assignee counter
// registers.
//
// # Design
//
// Two implementations are provided. [Memory] keeps both maps in process and
// is the default. [Redis] persists each bitmap as a 32-byte big-endian blob
// under a prefixed key, matching the rolebitmap codec, so an engine can be
// rebuilt over shared state.
//
// Stores are plain read/write primitives. Atomicity of compound operations
// (grant = assignment write + counter write + observer) is owned by the
// engine, which serializes operations and writes back prior values when a
// later step fails.
//
// # What this package must NOT do
//
//   - Import goACL (the engine imports state, never the reverse).
//   - Interpret bitmap contents or enforce role semantics.
//   - Retry transport failures; callers decide retry policy.
package state
