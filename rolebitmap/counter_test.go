package rolebitmap

import (
	"math/rand"
	"testing"
)

func TestIncrementCounters(t *testing.T) {
	var counters Bitmap

	delta := Role(0).Or(Role(17)).Or(Admin(3))
	for i := 1; i <= MaxAssignees; i++ {
		next, sat := IncrementCounters(counters, delta)
		if !sat.IsZero() {
			t.Fatalf("increment %d reported saturation %s", i, sat)
		}
		counters = next

		for _, slot := range []int{0, 17} {
			if got := CounterValue(counters, slot); got != uint8(i) {
				t.Fatalf("slot %d after %d increments = %d", slot, i, got)
			}
		}
		if got := CounterValue(counters, MaxRoles+3); got != uint8(i) {
			t.Fatalf("admin slot 3 after %d increments = %d", i, got)
		}
	}

	// 16th increment must refuse and leave the register untouched.
	next, sat := IncrementCounters(counters, delta)
	if sat != delta {
		t.Fatalf("saturation mask = %s, want %s", sat, delta)
	}
	if next != counters {
		t.Fatalf("saturated increment mutated register: %s vs %s", next, counters)
	}
}

func TestIncrementPartialSaturationIsAllOrNothing(t *testing.T) {
	var counters Bitmap
	for i := 0; i < MaxAssignees; i++ {
		counters, _ = IncrementCounters(counters, Role(2))
	}

	// Role(1) has headroom, Role(2) is full: the whole batch must fail.
	next, sat := IncrementCounters(counters, Role(1).Or(Role(2)))
	if sat != Role(2) {
		t.Fatalf("saturation mask = %s, want %s", sat, Role(2))
	}
	if next != counters {
		t.Fatal("partial increment leaked into register")
	}
	if got := CounterValue(next, 1); got != 0 {
		t.Fatalf("slot 1 incremented despite failure: %d", got)
	}
}

func TestDecrementCountersFloorsAtZero(t *testing.T) {
	counters, _ := IncrementCounters(Bitmap{}, Role(1))

	// Slot 1 holds one, slot 2 holds zero. Decrementing both empties
	// slot 1 and leaves slot 2 alone.
	counters = DecrementCounters(counters, Role(1).Or(Role(2)))
	if !counters.IsZero() {
		t.Fatalf("register not zero after floor decrement: %s", counters)
	}

	// Decrementing an all-zero register never borrows from a neighbor.
	counters = DecrementCounters(counters, Role(0).Or(Role(31)).Or(Admin(15)))
	if !counters.IsZero() {
		t.Fatalf("underflow corrupted register: %s", counters)
	}
}

func TestNoCarryAcrossSlots(t *testing.T) {
	// Saturate slot 4, then hammer its neighbors; slot 4 must stay at 15
	// and slots 3/5 must count independently.
	var counters Bitmap
	for i := 0; i < MaxAssignees; i++ {
		counters, _ = IncrementCounters(counters, Role(4))
	}
	for i := 0; i < 7; i++ {
		var sat Bitmap
		counters, sat = IncrementCounters(counters, Role(3).Or(Role(5)))
		if !sat.IsZero() {
			t.Fatalf("neighbor increment saturated: %s", sat)
		}
	}
	if got := CounterValue(counters, 4); got != MaxAssignees {
		t.Fatalf("slot 4 = %d, want %d", got, MaxAssignees)
	}
	if got := CounterValue(counters, 3); got != 7 {
		t.Fatalf("slot 3 = %d, want 7", got)
	}
	if got := CounterValue(counters, 5); got != 7 {
		t.Fatalf("slot 5 = %d, want 7", got)
	}
}

func TestCounterMaskQueries(t *testing.T) {
	counters, _ := IncrementCounters(Bitmap{}, Role(0).Or(Role(8)))
	counters, _ = IncrementCounters(counters, Role(8))

	if !AnyCounterSet(counters, Role(0)) {
		t.Fatal("AnyCounterSet(slot 0) = false")
	}
	if AnyCounterSet(counters, Role(1)) {
		t.Fatal("AnyCounterSet(slot 1) = true")
	}
	if !AllCountersOne(counters, Role(0)) {
		t.Fatal("AllCountersOne(slot 0) = false, count is one")
	}
	if AllCountersOne(counters, Role(8)) {
		t.Fatal("AllCountersOne(slot 8) = true, count is two")
	}
	if AllCountersOne(counters, Role(0).Or(Role(8))) {
		t.Fatal("AllCountersOne over mixed counts = true")
	}
	if !AllCountersOne(counters, Bitmap{}) {
		t.Fatal("AllCountersOne(zero) should be vacuously true")
	}

	masked := MaskCounters(counters, Role(8))
	if got := CounterValue(masked, 8); got != 2 {
		t.Fatalf("masked slot 8 = %d, want 2", got)
	}
	if got := CounterValue(masked, 0); got != 0 {
		t.Fatalf("mask leaked slot 0: %d", got)
	}
}

// TestCounterRegisterMatchesModel drives the packed register and a plain
// per-slot model with the same random operation stream and requires them to
// agree after every step.
func TestCounterRegisterMatchesModel(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	var counters Bitmap
	model := make([]int, 2*MaxRoles)

	randomDelta := func() Bitmap {
		var d Bitmap
		for slot := 0; slot < MaxRoles; slot++ {
			if rng.Intn(8) == 0 {
				d = d.Or(Role(slot))
			}
			if rng.Intn(8) == 0 {
				d = d.Or(Admin(slot))
			}
		}
		return d
	}

	for step := 0; step < 5000; step++ {
		delta := randomDelta()
		if rng.Intn(2) == 0 {
			next, sat := IncrementCounters(counters, delta)
			if sat.IsZero() {
				counters = next
				for slot := 0; slot < 2*MaxRoles; slot++ {
					if deltaHasSlot(delta, slot) {
						model[slot]++
					}
				}
			} else {
				// Failure must be all-or-nothing and must name a
				// genuinely saturated slot.
				if next != counters {
					t.Fatalf("step %d: failed increment mutated register", step)
				}
				found := false
				for slot := 0; slot < 2*MaxRoles; slot++ {
					if deltaHasSlot(sat, slot) && model[slot] == MaxAssignees {
						found = true
					}
				}
				if !found {
					t.Fatalf("step %d: saturation mask %s names no full slot", step, sat)
				}
			}
		} else {
			counters = DecrementCounters(counters, delta)
			for slot := 0; slot < 2*MaxRoles; slot++ {
				if deltaHasSlot(delta, slot) && model[slot] > 0 {
					model[slot]--
				}
			}
		}

		for slot := 0; slot < 2*MaxRoles; slot++ {
			if got := int(CounterValue(counters, slot)); got != model[slot] {
				t.Fatalf("step %d: slot %d = %d, model %d", step, slot, got, model[slot])
			}
		}
	}
}

func deltaHasSlot(d Bitmap, slot int) bool {
	if slot < MaxRoles {
		return d.Contains(Role(slot))
	}
	return d.Contains(Admin(slot - MaxRoles))
}
