package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestLocal_SetGetDelete(t *testing.T) {
	l := NewLocal(time.Minute)
	l.Set("skill:go", "id-1")

	v, ok := l.Get("skill:go")
	if !ok || v.(string) != "id-1" {
		t.Fatalf("expected cached value, got %v %v", v, ok)
	}

	l.Delete("skill:go")
	if _, ok := l.Get("skill:go"); ok {
		t.Fatalf("expected miss after delete")
	}

	l.Set("a", 1)
	l.Flush()
	if _, ok := l.Get("a"); ok {
		t.Fatalf("expected miss after flush")
	}
}

func TestLocal_NilSafe(t *testing.T) {
	var l *Local
	l.Set("k", 1)
	if _, ok := l.Get("k"); ok {
		t.Fatalf("nil cache must always miss")
	}
}

func TestRedis_UnavailableIsNoop(t *testing.T) {
	r := NewRedisWithClient(nil, 0, nil)
	ctx := context.Background()

	var out map[string]any
	hit, err := r.GetJSON(ctx, "k", &out)
	if err != nil || hit {
		t.Fatalf("expected silent miss, got hit=%v err=%v", hit, err)
	}
	if err := r.SetJSON(ctx, "k", map[string]int{"a": 1}, 0); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := r.DeleteByPattern(ctx, "directory:*"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if ok, err := r.SetIfNotExists(ctx, "lock", "1", time.Second); ok || err != nil {
		t.Fatalf("expected no lock without redis, got %v %v", ok, err)
	}
	if ok, err := r.Exists(ctx, "k"); ok || err != nil {
		t.Fatalf("expected false, got %v %v", ok, err)
	}
	if err := r.Ping(ctx); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if r.Enabled() {
		t.Fatalf("expected disabled cache")
	}
}
