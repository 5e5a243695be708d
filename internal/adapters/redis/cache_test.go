package redisad_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	redisad "homelyhub/internal/adapters/redis"
	"homelyhub/internal/domain"
)

func newTestCache(t *testing.T) (*redisad.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := redisad.NewFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestCache_SetGet(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	in := domain.Property{ID: "64f1b2c3d4e5f60718293a01", Title: "Cedar cottage", Price: 3200}
	if err := c.Set(ctx, "property:"+in.ID, in, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	var out domain.Property
	ok, err := c.Get(ctx, "property:"+in.ID, &out)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if out.Title != in.Title || out.Price != in.Price {
		t.Fatalf("round trip mismatch: %+v", out)
	}
}

func TestCache_MissAndDel(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	var out domain.Property
	ok, err := c.Get(ctx, "property:none", &out)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatal("expected a miss")
	}

	if err := c.Set(ctx, "property:x", domain.Property{Title: "t"}, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := c.Del(ctx, "property:x"); err != nil {
		t.Fatalf("del: %v", err)
	}
	if ok, _ := c.Get(ctx, "property:x", &out); ok {
		t.Fatal("expected a miss after delete")
	}
}

func TestCache_TTLExpires(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "property:x", domain.Property{Title: "t"}, 30*time.Second); err != nil {
		t.Fatalf("set: %v", err)
	}
	mr.FastForward(31 * time.Second)

	var out domain.Property
	if ok, _ := c.Get(ctx, "property:x", &out); ok {
		t.Fatal("expected the entry to expire")
	}
}
