package rolebitmap

// Counter arithmetic treats a Bitmap as a register of 64 packed 4-bit
// saturating counters sharing the role slot layout. The delta bitmaps fed
// into Increment/Decrement must be valid role bitmaps (only slot-low bits
// set), which the engine guarantees by validating caller input first.
//
// The no-carry invariant: a slot at 15 must never be incremented, and a
// slot at 0 must never be decremented, because either would corrupt the
// neighboring slot. Increment therefore refuses saturated slots up front
// and Decrement silently skips empty ones.

// slotFill expands a valid delta limb so every selected slot has all four
// bits set. Safe because a valid delta carries only the low bit per slot,
// and 1*0xF fits inside the slot.
func slotFill(d uint64) uint64 {
	return d * 0xF
}

// saturatedSlots returns the role bits of delta whose counter slot in c is
// already at MaxAssignees.
func saturatedSlots(c, d uint64) uint64 {
	t := c & slotFill(d)
	return t & (t >> 1) & (t >> 2) & (t >> 3) & d
}

// occupiedSlots returns the role bits of delta whose counter slot in c is
// nonzero.
func occupiedSlots(c, d uint64) uint64 {
	t := c & slotFill(d)
	return (t | t>>1 | t>>2 | t>>3) & d
}

// IncrementCounters adds one to every counter slot selected by delta. On
// success it returns the updated register and a zero mask. If any selected
// slot already holds MaxAssignees, the register is returned unchanged
// together with the role mask of the saturated slots; the caller must treat
// that as an all-or-nothing failure.
func IncrementCounters(counters, delta Bitmap) (Bitmap, Bitmap) {
	sat := Bitmap{
		A: saturatedSlots(counters.A, delta.A),
		B: saturatedSlots(counters.B, delta.B),
		C: saturatedSlots(counters.C, delta.C),
		D: saturatedSlots(counters.D, delta.D),
	}
	if !sat.IsZero() {
		return counters, sat
	}
	// No selected slot can carry, and slots never straddle a limb, so
	// plain limb addition is exact.
	return Bitmap{
		A: counters.A + delta.A,
		B: counters.B + delta.B,
		C: counters.C + delta.C,
		D: counters.D + delta.D,
	}, Bitmap{}
}

// DecrementCounters subtracts one from every counter slot selected by
// delta, flooring each slot at zero. Selecting an empty slot is a silent
// per-slot no-op, never an underflow.
func DecrementCounters(counters, delta Bitmap) Bitmap {
	return Bitmap{
		A: counters.A - occupiedSlots(counters.A, delta.A),
		B: counters.B - occupiedSlots(counters.B, delta.B),
		C: counters.C - occupiedSlots(counters.C, delta.C),
		D: counters.D - occupiedSlots(counters.D, delta.D),
	}
}

// CounterSlotMask widens a role bitmap so every selected slot is fully set,
// yielding the mask that isolates those slots' counters.
func CounterSlotMask(roles Bitmap) Bitmap {
	return Bitmap{
		A: slotFill(roles.A),
		B: slotFill(roles.B),
		C: slotFill(roles.C),
		D: slotFill(roles.D),
	}
}

// MaskCounters returns the counter register restricted to the slots of the
// requested roles.
func MaskCounters(counters, roles Bitmap) Bitmap {
	return counters.And(CounterSlotMask(roles))
}

// AnyCounterSet reports whether at least one slot selected by roles holds a
// nonzero count.
func AnyCounterSet(counters, roles Bitmap) bool {
	return !MaskCounters(counters, roles).IsZero()
}

// AllCountersOne reports whether every slot selected by roles holds exactly
// one. A slot count of one is the role bit itself, so the masked register
// must equal the role bitmap. The zero bitmap is vacuously true.
func AllCountersOne(counters, roles Bitmap) bool {
	return MaskCounters(counters, roles) == roles
}

// CounterValue extracts the count held by a single slot. Out-of-range slots
// yield zero. Slot indexes 0..31 address direct-role counters and 32..63
// the admin mirrors.
func CounterValue(counters Bitmap, slot int) uint8 {
	if slot < 0 || slot >= 2*MaxRoles {
		return 0
	}
	limb := counters.A
	switch slot / slotsPerLimb {
	case 1:
		limb = counters.B
	case 2:
		limb = counters.C
	case 3:
		limb = counters.D
	}
	return uint8(limb >> ((slot % slotsPerLimb) * SlotWidth) & 0xF)
}
