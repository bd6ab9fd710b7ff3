//go:build integration
// +build integration

package test

import (
	"context"
	"testing"

	goACL "github.com/MrEthical07/goACL"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var integrationRoles = []string{"observer", "subregistry", "set-subregistry", "renew"}

func newIntegrationEngine(t *testing.T) (*goACL.Engine, goACL.Account, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	engine, err := goACL.New().
		WithRedis(rdb).
		WithRoles(integrationRoles...).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(engine.Close)

	super := goACL.NewAccount()
	admins, err := engine.Registry().Admins(integrationRoles...)
	if err != nil {
		t.Fatal(err)
	}
	if err := engine.Bootstrap(context.Background(), admins, super); err != nil {
		t.Fatalf("Bootstrap failed: %v", err)
	}
	return engine, super, mr
}
