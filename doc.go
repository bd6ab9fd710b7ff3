// Package goACL provides a resource-scoped, bitmap role access-control
// engine with saturating assignee accounting, Root-scope inheritance, and a
// permanent-lock policy derived from the counters.
//
// Roles live in a 256-bit bitmap divided into 4-bit slots; the upper half
// mirrors the lower half and carries admin roles, so one value expresses
// both "can do X" and "can grant/revoke X". Each scope additionally keeps a
// packed register of saturating per-role assignee counts, which lock
// detection reads without ever touching account-level state.
//
// The package is designed for embedding: Engine methods are safe to call
// from multiple goroutines after initialization through [Builder.Build],
// and every public operation is all-or-nothing: assignment update, counter
// update, and observer callback commit together or not at all.
//
// # Architecture boundaries
//
// goACL is the public surface. It exposes [Engine], [Builder], [Config],
// and value types (Account, Scope, Identifier, AuditEvent). Bitmap and
// counter arithmetic lives in rolebitmap; persistence lives behind
// [state.Store].
//
// # What this package must NOT do
//
//   - Define what a capability does; it only tracks who may hold it, who
//     may grant or revoke it, and whether it can still ever be granted.
//   - Retry failed operations; retry is a caller policy decision.
//   - Expose store encodings or internal counter layout in its public API.
package goACL
