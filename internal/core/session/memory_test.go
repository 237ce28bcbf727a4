package session

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if err := s.Set(ctx, "sid-1", "uuid-1", time.Minute); err != nil {
		t.Fatal(err)
	}
	got, err := s.Get(ctx, "sid-1")
	if err != nil || got != "uuid-1" {
		t.Fatalf("Get = %q, %v", got, err)
	}

	if err := s.Delete(ctx, "sid-1"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Get(ctx, "sid-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("after delete err = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	_ = s.Set(ctx, "sid-2", "uuid-2", -time.Second)

	if _, err := s.Get(ctx, "sid-2"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expired session err = %v, want ErrNotFound", err)
	}
}
