// Package token issues and verifies signed role assertions: compact proofs
// that an account held a set of roles at a scope at issue time. Cross-domain
// transfer workflows attach them when moving a record into a domain that
// cannot read the engine's state directly.
//
// Assertions are point-in-time claims, not capabilities: verifying one says
// nothing about the current role state, only about what the issuing engine
// observed. Keep TTLs short.
//
// # Architecture boundaries
//
// This package depends only on rolebitmap (for the roles encoding) and
// golang-jwt. It never reads engine state; the caller supplies the bitmap
// it wants asserted.
//
// # What this package must NOT do
//
//   - Accept unsigned or alg-negotiated tokens; HS256 is pinned.
//   - Import goACL or state.
package token
