package store

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"github.com/pbaille/planner/internal/config"
	"github.com/pbaille/planner/internal/domain"
	"github.com/pbaille/planner/internal/logger"
)

func newMiniRedis(t *testing.T) (*miniredis.Miniredis, *Redis) {
	t.Helper()
	mr := miniredis.RunT(t)

	r, err := NewRedis(context.Background(), RedisOptions{Addr: mr.Addr()})
	if err != nil {
		t.Fatalf("connect redis: %v", err)
	}
	t.Cleanup(func() { _ = r.Close() })
	return mr, r
}

func TestRedis_GetMissingKey(t *testing.T) {
	_, r := newMiniRedis(t)

	if _, err := r.Get(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get missing = %v, want ErrNotFound", err)
	}
}

func TestRedis_SetAndGet(t *testing.T) {
	ctx := context.Background()
	mr, r := newMiniRedis(t)

	if err := r.Set(ctx, "k", []byte(`{"theme":"dark"}`)); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, err := r.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != `{"theme":"dark"}` {
		t.Fatalf("get = %s", got)
	}

	raw, err := mr.Get("k")
	if err != nil {
		t.Fatalf("miniredis get: %v", err)
	}
	if raw != `{"theme":"dark"}` {
		t.Fatalf("stored raw = %s", raw)
	}
	if ttl := mr.TTL("k"); ttl != 0 {
		t.Fatalf("ttl = %v, want no expiry", ttl)
	}
}

func TestNewRedis_Unreachable(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	addr := mr.Addr()
	mr.Close()

	if _, err := NewRedis(context.Background(), RedisOptions{Addr: addr}); err == nil {
		t.Fatalf("expected ping error for closed server")
	}
}

func TestOpen_RedisDocumentRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := config.Default()
	cfg.Storage = config.StorageRedis
	cfg.Redis.Addr = mr.Addr()
	cfg.StorageKey = "planner-test"

	ctx := context.Background()
	ds, err := Open(ctx, cfg, logger.Nop())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = ds.Close() })

	if got := ds.Load(ctx); !reflect.DeepEqual(got, domain.Default()) {
		t.Fatalf("load empty redis = %+v, want default", got)
	}

	doc := sampleDocument()
	if err := ds.Save(ctx, doc); err != nil {
		t.Fatalf("save: %v", err)
	}
	if !mr.Exists("planner-test") {
		t.Fatalf("document not stored under planner-test")
	}
	if got := ds.Load(ctx); !reflect.DeepEqual(got, doc) {
		t.Fatalf("load = %+v", got)
	}
}
