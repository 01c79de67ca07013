//go:build integration
// +build integration

package test

import (
	"testing"

	goAccess "github.com/MrEthical07/goAccess"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newIntegrationStore(t *testing.T, capacity int) (*goAccess.Store, *miniredis.Miniredis, func()) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	cfg := goAccess.DefaultConfig()
	cfg.Capacity = capacity

	store, err := goAccess.New().
		WithConfig(cfg).
		WithRedis(rdb).
		WithBootstrapAdmin("root").
		Build()
	if err != nil {
		mr.Close()
		t.Fatalf("Build failed: %v", err)
	}

	return store, mr, func() {
		store.Close()
		_ = rdb.Close()
		mr.Close()
	}
}
