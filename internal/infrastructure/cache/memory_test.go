package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/felixgeelhaar/ricemill/pkg/domain/ranking"
)

func TestMemoryStore_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if _, err := store.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
	}

	if err := store.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	got, err := store.Get(ctx, "k")
	if err != nil || string(got) != "v" {
		t.Errorf("Get(k) = %q, %v", got, err)
	}

	if err := store.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, err := store.Get(ctx, "k"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after delete error = %v, want ErrNotFound", err)
	}
}

func TestMemoryStore_TTLExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if err := store.Set(ctx, "k", []byte("v"), 10*time.Millisecond); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Get(ctx, "k"); err != nil {
		t.Fatalf("Get before expiry error: %v", err)
	}

	time.Sleep(20 * time.Millisecond)
	if _, err := store.Get(ctx, "k"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after expiry error = %v, want ErrNotFound", err)
	}
}

func TestSnapshot_RoundTrip(t *testing.T) {
	ctx := context.Background()
	snap := NewSnapshot(NewMemoryStore(), time.Minute)

	if _, err := snap.Get(ctx); !errors.Is(err, ErrNotFound) {
		t.Errorf("cold cache error = %v, want ErrNotFound", err)
	}

	records := []*ranking.ScoreRecord{
		{Feature: "Dark mode support", Composite: 42.5, Rank: 1},
		{Feature: "Export to PDF", Composite: 10.1, Rank: 2},
	}
	if err := snap.Put(ctx, records); err != nil {
		t.Fatalf("Put() error: %v", err)
	}

	got, err := snap.Get(ctx)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if len(got) != 2 || got[0].Feature != "Dark mode support" || got[0].Composite != 42.5 {
		t.Errorf("Get() = %+v", got)
	}

	if err := snap.Invalidate(ctx); err != nil {
		t.Fatalf("Invalidate() error: %v", err)
	}
	if _, err := snap.Get(ctx); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after invalidate error = %v, want ErrNotFound", err)
	}
}
