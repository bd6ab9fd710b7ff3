package state

import (
	"context"
	"testing"

	"github.com/MrEthical07/goACL/rolebitmap"
	"github.com/google/uuid"
)

func TestMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	var scope [32]byte
	scope[0] = 0xAB
	account := uuid.New()

	got, err := s.Roles(ctx, scope, account)
	if err != nil {
		t.Fatal(err)
	}
	if !got.IsZero() {
		t.Fatalf("missing entry read as %s", got)
	}

	want := rolebitmap.Role(3).Or(rolebitmap.Admin(3))
	if err := s.SetRoles(ctx, scope, account, want); err != nil {
		t.Fatal(err)
	}
	got, err = s.Roles(ctx, scope, account)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Fatalf("Roles = %s, want %s", got, want)
	}

	// Other keys stay independent.
	other, err := s.Roles(ctx, scope, uuid.New())
	if err != nil {
		t.Fatal(err)
	}
	if !other.IsZero() {
		t.Fatalf("unrelated account read as %s", other)
	}
}

func TestMemoryZeroWriteDeletes(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	var scope [32]byte
	account := uuid.New()

	if err := s.SetRoles(ctx, scope, account, rolebitmap.Role(0)); err != nil {
		t.Fatal(err)
	}
	if err := s.SetRoles(ctx, scope, account, rolebitmap.Bitmap{}); err != nil {
		t.Fatal(err)
	}
	if len(s.assignments) != 0 {
		t.Fatalf("zero write left %d assignment entries", len(s.assignments))
	}

	counters, _ := rolebitmap.IncrementCounters(rolebitmap.Bitmap{}, rolebitmap.Role(0))
	if err := s.SetCounters(ctx, scope, counters); err != nil {
		t.Fatal(err)
	}
	if err := s.SetCounters(ctx, scope, rolebitmap.Bitmap{}); err != nil {
		t.Fatal(err)
	}
	if len(s.counters) != 0 {
		t.Fatalf("zero write left %d counter entries", len(s.counters))
	}
}
