package state

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/MrEthical07/goACL/rolebitmap"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Redis is a [Store] backed by a Redis instance. Each bitmap is persisted
// as a 32-byte big-endian blob (rolebitmap codec) under a prefixed key:
//
//	<prefix>:r:<scope-hex>:<account>   role assignment
//	<prefix>:c:<scope-hex>             counter register
//
// Keys carry no TTL; role state lives until explicitly zeroed.
type Redis struct {
	client *redis.Client
	prefix string
}

// NewRedis creates a Redis-backed store. An empty prefix defaults to "acl".
func NewRedis(client *redis.Client, prefix string) *Redis {
	if prefix == "" {
		prefix = "acl"
	}
	return &Redis{client: client, prefix: prefix}
}

func (r *Redis) rolesKey(scope [32]byte, account uuid.UUID) string {
	return r.prefix + ":r:" + hex.EncodeToString(scope[:]) + ":" + account.String()
}

func (r *Redis) countersKey(scope [32]byte) string {
	return r.prefix + ":c:" + hex.EncodeToString(scope[:])
}

func (r *Redis) get(ctx context.Context, key string) (rolebitmap.Bitmap, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return rolebitmap.Bitmap{}, nil
	}
	if err != nil {
		return rolebitmap.Bitmap{}, fmt.Errorf("%w: %v", ErrStateUnavailable, err)
	}
	m, err := rolebitmap.Decode(data)
	if err != nil {
		return rolebitmap.Bitmap{}, fmt.Errorf("%w: corrupt value at %s: %v", ErrStateUnavailable, key, err)
	}
	return m, nil
}

func (r *Redis) set(ctx context.Context, key string, m rolebitmap.Bitmap) error {
	var err error
	if m.IsZero() {
		err = r.client.Del(ctx, key).Err()
	} else {
		err = r.client.Set(ctx, key, rolebitmap.Encode(m), 0).Err()
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStateUnavailable, err)
	}
	return nil
}

// Roles implements [Store].
func (r *Redis) Roles(ctx context.Context, scope [32]byte, account uuid.UUID) (rolebitmap.Bitmap, error) {
	return r.get(ctx, r.rolesKey(scope, account))
}

// SetRoles implements [Store]. A zero bitmap deletes the key.
func (r *Redis) SetRoles(ctx context.Context, scope [32]byte, account uuid.UUID, roles rolebitmap.Bitmap) error {
	return r.set(ctx, r.rolesKey(scope, account), roles)
}

// Counters implements [Store].
func (r *Redis) Counters(ctx context.Context, scope [32]byte) (rolebitmap.Bitmap, error) {
	return r.get(ctx, r.countersKey(scope))
}

// SetCounters implements [Store]. A zero register deletes the key.
func (r *Redis) SetCounters(ctx context.Context, scope [32]byte, counters rolebitmap.Bitmap) error {
	return r.set(ctx, r.countersKey(scope), counters)
}
