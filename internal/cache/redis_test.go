package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// unreachableRedis points at a closed port so calls fail fast.
func unreachableRedis() *Redis {
	return NewRedis(redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	}))
}

func TestNewRedisFromURLRejectsGarbage(t *testing.T) {
	if _, err := NewRedisFromURL("not a url"); err == nil {
		t.Fatal("expected parse error")
	}
	r, err := NewRedisFromURL("redis://localhost:6379/2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer r.Close()
	if got := r.client.Options().DB; got != 2 {
		t.Fatalf("expected db 2, got %d", got)
	}
}

func TestRedisErrorsWhenUnreachable(t *testing.T) {
	r := unreachableRedis()
	defer r.Close()
	ctx := context.Background()

	if _, ok, err := r.Get(ctx, "k"); err == nil || ok {
		t.Fatalf("expected error on unreachable redis, ok=%v err=%v", ok, err)
	}
	if err := r.Set(ctx, "k", []byte("v"), time.Minute); err == nil {
		t.Fatal("expected set error on unreachable redis")
	}
	if err := r.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("expected zero ttl to skip the round trip, got %v", err)
	}
	if err := r.Purge(ctx); err == nil {
		t.Fatal("expected purge error on unreachable redis")
	}
}

func TestRedisRoundTrip(t *testing.T) {
	url := os.Getenv("REDIS_TEST_URL")
	if url == "" {
		t.Skip("REDIS_TEST_URL not set")
	}
	r, err := NewRedisFromURL(url)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer r.Close()
	r.namespace = "esports-hub-test:"
	ctx := context.Background()
	if err := r.Ping(ctx); err != nil {
		t.Skipf("redis not reachable: %v", err)
	}

	if err := r.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("unexpected set error: %v", err)
	}
	got, ok, err := r.Get(ctx, "k")
	if err != nil || !ok || string(got) != "v" {
		t.Fatalf("expected hit, got %q ok=%v err=%v", got, ok, err)
	}
	if err := r.Purge(ctx); err != nil {
		t.Fatalf("unexpected purge error: %v", err)
	}
	if _, ok, _ := r.Get(ctx, "k"); ok {
		t.Fatal("expected miss after purge")
	}
}
