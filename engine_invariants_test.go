package goACL

import (
	"context"
	"math/rand"
	"testing"

	"github.com/MrEthical07/goACL/rolebitmap"
)

// TestCountersMatchCensus drives the engine with a random operation stream
// and checks after every step that the scope's counter register equals an
// independent census of the direct holders. The counters are the only
// durable record of "how many assignees", so any drift here silently breaks
// the lock policy.
func TestCountersMatchCensus(t *testing.T) {
	ctx := context.Background()
	e, super := newTestEngine(t)
	scope := testScope(9)
	rng := rand.New(rand.NewSource(7))

	pool := make([]Account, 20)
	for i := range pool {
		pool[i] = NewAccount()
	}
	model := make(map[Account]rolebitmap.Bitmap, len(pool))

	randomRoles := func() rolebitmap.Bitmap {
		var m rolebitmap.Bitmap
		for _, name := range testRoles {
			if rng.Intn(2) == 0 {
				continue
			}
			role := mustRoles(t, e, name)
			m = m.Or(role)
			if rng.Intn(3) == 0 {
				m = m.Or(role.AdminOf())
			}
		}
		return m
	}

	checkCensus := func(step int) {
		t.Helper()

		var all rolebitmap.Bitmap
		for _, name := range testRoles {
			role := mustRoles(t, e, name)
			all = all.Or(role).Or(role.AdminOf())
		}
		counters, _, err := e.AssigneeCount(ctx, scope, all)
		if err != nil {
			t.Fatal(err)
		}

		for slot := 0; slot < 2*len(testRoles); slot++ {
			var probe rolebitmap.Bitmap
			if slot < len(testRoles) {
				probe = rolebitmap.Role(slot)
			} else {
				probe = rolebitmap.Admin(slot - len(testRoles))
			}
			want := 0
			for _, held := range model {
				if held.Contains(probe) {
					want++
				}
			}
			counterSlot := slot
			if slot >= len(testRoles) {
				counterSlot = slot - len(testRoles) + rolebitmap.MaxRoles
			}
			if got := int(rolebitmap.CounterValue(counters, counterSlot)); got != want {
				t.Fatalf("step %d: slot %d counter = %d, census = %d", step, slot, got, want)
			}
		}
	}

	for step := 0; step < 2000; step++ {
		acct := pool[rng.Intn(len(pool))]
		roles := randomRoles()
		if roles.IsZero() {
			continue
		}

		switch rng.Intn(4) {
		case 0:
			changed, err := e.GrantRoles(ctx, super, scope, roles, acct)
			if err == nil && changed {
				model[acct] = model[acct].Or(roles)
			}
		case 1:
			changed, err := e.RevokeRoles(ctx, super, scope, roles, acct)
			if err == nil && changed {
				model[acct] = model[acct].AndNot(roles)
			}
		case 2:
			changed, err := e.RelinquishRoles(ctx, scope, roles, acct)
			if err == nil && changed {
				model[acct] = model[acct].AndNot(roles)
			}
		case 3:
			// dst may equal acct: a self transfer must leave both the
			// assignment and the census untouched.
			dst := pool[rng.Intn(len(pool))]
			if err := e.TransferRoles(ctx, scope, acct, dst); err == nil && dst != acct {
				model[dst] = model[dst].Or(model[acct])
				model[acct] = rolebitmap.Bitmap{}
			}
		}

		checkCensus(step)
	}

	// The model and the store must also agree on every assignment.
	for _, acct := range pool {
		held, err := e.directRoles(ctx, scope, acct)
		if err != nil {
			t.Fatal(err)
		}
		if !held.Eq(model[acct]) {
			t.Fatalf("assignment drift for %s: engine %s, model %s", acct, held, model[acct])
		}
	}
}
