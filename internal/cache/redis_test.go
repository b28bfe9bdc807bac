package cache

import (
	"context"
	"net"
	"os"
	"testing"
	"time"

	"tourismd/internal/manager"
)

func TestNewRedis_InvalidURL(t *testing.T) {
	if _, err := NewRedis(Opts{URL: "http://localhost:6379"}); err == nil {
		t.Fatalf("expected error for non-redis scheme")
	}
}

func TestNewRedis_DefaultPrefix(t *testing.T) {
	r, err := NewRedis(Opts{URL: "redis://localhost:6379/2"})
	if err != nil {
		t.Fatalf("NewRedis: %v", err)
	}
	defer r.Close()
	if got := r.key("abc"); got != DefaultKeyPrefix+"abc" {
		t.Fatalf("key = %q", got)
	}
}

func TestDecode(t *testing.T) {
	c, err := decode([]byte(`{"sequence":"s","labels":["tourism","not_tourism"],"scores":[0.8,0.2]}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if c.Labels[0] != "tourism" || c.Scores[1] != 0.2 {
		t.Fatalf("unexpected: %+v", c)
	}
	if _, err := decode([]byte(`{"labels":["a"],"scores":[]}`)); err == nil {
		t.Fatalf("expected malformed entry to be rejected")
	}
	if _, err := decode([]byte(`not json`)); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestUnreachableServerReturnsError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	ln.Close()

	r, err := NewRedis(Opts{URL: "redis://" + addr, OpTimeout: 200 * time.Millisecond})
	if err != nil {
		t.Fatalf("NewRedis: %v", err)
	}
	defer r.Close()
	ctx := context.Background()
	if err := r.Ping(ctx); err == nil {
		t.Fatalf("expected ping error")
	}
	if _, _, err := r.Get(ctx, "k"); err == nil {
		t.Fatalf("expected get error")
	}
}

// TestRoundTrip runs against a real server when TOURISMD_TEST_REDIS_URL is set.
func TestRoundTrip(t *testing.T) {
	url := os.Getenv("TOURISMD_TEST_REDIS_URL")
	if url == "" {
		t.Skip("TOURISMD_TEST_REDIS_URL not set")
	}
	r, err := NewRedis(Opts{URL: url, KeyPrefix: "tourismd:test:", TTL: time.Minute})
	if err != nil {
		t.Fatalf("NewRedis: %v", err)
	}
	defer r.Close()
	ctx := context.Background()
	if err := r.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}
	key := manager.CacheKey("m", "Angkor Wat", []string{"tourism", "not_tourism"})
	if _, ok, err := r.Get(ctx, key+"-missing"); err != nil || ok {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}
	want := manager.Classification{Sequence: "Angkor Wat", Labels: []string{"tourism", "not_tourism"}, Scores: []float64{0.9, 0.1}}
	if err := r.Set(ctx, key, want); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, ok, err := r.Get(ctx, key)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got.Labels[0] != "tourism" || got.Scores[0] != 0.9 || got.Sequence != "Angkor Wat" {
		t.Fatalf("unexpected: %+v", got)
	}
}
