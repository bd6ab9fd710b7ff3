// Package rolebitmap provides the 256-bit role bitmap, the packed saturating
// assignee-counter arithmetic, a binary codec, and a role-name registry used
// by goACL authorization checks.
//
// # Layout
//
// A [Bitmap] is divided into 4-bit slots. A role occupies the lowest bit of
// its slot; the remaining three bits of every slot must stay clear in a role
// bitmap ([Bitmap.Validate] rejects anything else). The upper 128 bits mirror
// the lower 128 bits and carry admin roles: admin(R) = R << 128. The same
// slot layout doubles as a counter register where each slot holds a
// saturating count in 0..15.
//
// # Architecture boundaries
//
// This package is a pure in-memory data structure with no I/O. It provides
// the codec (Encode/Decode) used by the state store and the assertion token
// claims.
//
// # What this package must NOT do
//
//   - Access Redis, databases, or the network.
//   - Import goACL or state.
//   - Let counter arithmetic carry across a slot boundary.
package rolebitmap
