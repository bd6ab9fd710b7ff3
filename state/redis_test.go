package state

import (
	"context"
	"testing"

	"github.com/MrEthical07/goACL/rolebitmap"
	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func newRedisStore(t *testing.T) *Redis {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return NewRedis(rdb, "acltest")
}

func TestRedisRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newRedisStore(t)

	var scope [32]byte
	scope[31] = 0x01
	account := uuid.New()

	got, err := s.Roles(ctx, scope, account)
	if err != nil {
		t.Fatal(err)
	}
	if !got.IsZero() {
		t.Fatalf("missing key read as %s", got)
	}

	want := rolebitmap.Role(7).Or(rolebitmap.Admin(1))
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

	counters, _ := rolebitmap.IncrementCounters(rolebitmap.Bitmap{}, want)
	if err := s.SetCounters(ctx, scope, counters); err != nil {
		t.Fatal(err)
	}
	gotCounters, err := s.Counters(ctx, scope)
	if err != nil {
		t.Fatal(err)
	}
	if gotCounters != counters {
		t.Fatalf("Counters = %s, want %s", gotCounters, counters)
	}
}

func TestRedisZeroWriteDeletesKey(t *testing.T) {
	ctx := context.Background()
	s := newRedisStore(t)

	var scope [32]byte
	account := uuid.New()

	if err := s.SetRoles(ctx, scope, account, rolebitmap.Role(0)); err != nil {
		t.Fatal(err)
	}
	if err := s.SetRoles(ctx, scope, account, rolebitmap.Bitmap{}); err != nil {
		t.Fatal(err)
	}

	exists, err := s.client.Exists(ctx, s.rolesKey(scope, account)).Result()
	if err != nil {
		t.Fatal(err)
	}
	if exists != 0 {
		t.Fatal("zero write left role key behind")
	}
}

func TestRedisCorruptValue(t *testing.T) {
	ctx := context.Background()
	s := newRedisStore(t)

	var scope [32]byte
	account := uuid.New()

	if err := s.client.Set(ctx, s.rolesKey(scope, account), "short", 0).Err(); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Roles(ctx, scope, account); err == nil {
		t.Fatal("corrupt value read succeeded")
	}
}
