package rolebitmap

import (
	"errors"
	"fmt"
)

const (
	// SlotWidth is the width of one role slot in bits.
	SlotWidth = 4
	// HalfWidth is the bit offset between a role and its admin mirror.
	HalfWidth = 128
	// MaxRoles is the number of role slots in the lower half.
	MaxRoles = HalfWidth / SlotWidth
	// MaxAssignees is the largest count a counter slot can hold.
	MaxAssignees = 15

	// slotsPerLimb is how many 4-bit slots fit in one uint64 limb.
	slotsPerLimb = 64 / SlotWidth

	// limbIllegal selects the three upper bits of every slot in a limb.
	// A role bitmap limb intersecting this mask is malformed.
	limbIllegal = 0xEEEEEEEEEEEEEEEE
)

// ErrMalformedBitmap is returned by [Bitmap.Validate] when any slot carries
// a bit other than its lowest.
var ErrMalformedBitmap = errors.New("malformed role bitmap")

// Bitmap is a 256-bit role bitmap split into four uint64 limbs. A holds
// bits 0-63, B 64-127, C 128-191, D 192-255. Role slots live in A and B;
// their admin mirrors live in C and D at the same slot offset.
type Bitmap struct {
	A uint64
	B uint64
	C uint64
	D uint64
}

// Role returns a bitmap with only the role bit of the given slot set.
// Out-of-range slots yield the zero bitmap.
func Role(slot int) Bitmap {
	if slot < 0 || slot >= MaxRoles {
		return Bitmap{}
	}
	if slot < slotsPerLimb {
		return Bitmap{A: 1 << (slot * SlotWidth)}
	}
	return Bitmap{B: 1 << ((slot - slotsPerLimb) * SlotWidth)}
}

// Admin returns a bitmap with only the admin bit of the given slot set.
func Admin(slot int) Bitmap {
	return Role(slot).AdminOf()
}

// Or returns the bitwise union of m and o.
func (m Bitmap) Or(o Bitmap) Bitmap {
	return Bitmap{m.A | o.A, m.B | o.B, m.C | o.C, m.D | o.D}
}

// And returns the bitwise intersection of m and o.
func (m Bitmap) And(o Bitmap) Bitmap {
	return Bitmap{m.A & o.A, m.B & o.B, m.C & o.C, m.D & o.D}
}

// AndNot returns the bits of m that are not set in o.
func (m Bitmap) AndNot(o Bitmap) Bitmap {
	return Bitmap{m.A &^ o.A, m.B &^ o.B, m.C &^ o.C, m.D &^ o.D}
}

// Eq reports whether m and o are identical.
func (m Bitmap) Eq(o Bitmap) bool {
	return m == o
}

// IsZero reports whether no bit of m is set.
func (m Bitmap) IsZero() bool {
	return m == Bitmap{}
}

// Contains reports whether every bit of o is also set in m.
func (m Bitmap) Contains(o Bitmap) bool {
	return m.And(o) == o
}

// AdminOf shifts the lower (direct-role) half of m into the admin half.
// Bits already in the admin half shift out and are discarded.
func (m Bitmap) AdminOf() Bitmap {
	return Bitmap{C: m.A, D: m.B}
}

// AdminClosure returns the authority set for m: the admin mirror of every
// direct-role bit, plus every admin bit m already carries. Holding the
// closure is what authorizes granting or revoking m; an admin bit governs
// itself.
func (m Bitmap) AdminClosure() Bitmap {
	return Bitmap{C: m.A | m.C, D: m.B | m.D}
}

// Lower returns only the direct-role half of m.
func (m Bitmap) Lower() Bitmap {
	return Bitmap{A: m.A, B: m.B}
}

// Upper returns only the admin half of m.
func (m Bitmap) Upper() Bitmap {
	return Bitmap{C: m.C, D: m.D}
}

// Validate rejects bitmaps that set any bit other than the lowest bit of a
// slot. Every goACL entry point that accepts a caller-supplied bitmap calls
// this, including read-only queries.
func (m Bitmap) Validate() error {
	if m.A&limbIllegal != 0 || m.B&limbIllegal != 0 ||
		m.C&limbIllegal != 0 || m.D&limbIllegal != 0 {
		return ErrMalformedBitmap
	}
	return nil
}

// String renders m as a 0x-prefixed big-endian hex literal.
func (m Bitmap) String() string {
	return fmt.Sprintf("0x%016x%016x%016x%016x", m.D, m.C, m.B, m.A)
}
