package goACL

import (
	"encoding/binary"
	"encoding/hex"
)

// Identifier is a compound, partially mutable external identifier: a
// 256-bit big-endian value whose low 32 bits may encode auxiliary state
// (packed flags) that changes over an entity's lifetime. The canonical
// upper bits are what the engine keys state on, so role assignments are
// never orphaned when the mutable bits change.
type Identifier [32]byte

// Canonical zeroes the low 32 bits of id, leaving all higher bits intact.
// It is idempotent and is the identity on values whose low 32 bits are
// already zero.
func (id Identifier) Canonical() Identifier {
	out := id
	out[28], out[29], out[30], out[31] = 0, 0, 0, 0
	return out
}

// Scope returns the canonical form of id as the engine scope key.
func (id Identifier) Scope() Scope {
	return Scope(id.Canonical())
}

// Low32 returns the mutable low 32 bits of id.
func (id Identifier) Low32() uint32 {
	return binary.BigEndian.Uint32(id[28:])
}

// WithLow32 returns id with its low 32 bits replaced by v. The scope of
// the result is unchanged.
func (id Identifier) WithLow32(v uint32) Identifier {
	out := id
	binary.BigEndian.PutUint32(out[28:], v)
	return out
}

// String renders id as lowercase hex.
func (id Identifier) String() string {
	return hex.EncodeToString(id[:])
}
