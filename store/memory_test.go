package store

import (
	"context"
	"runtime"
	"testing"
	"time"

	"github.com/rushteam/hotelrec/core"
)

func TestMemoryStoreGetSet(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close()

	if _, err := s.Get(ctx, "missing"); !core.IsStoreNotFound(err) {
		t.Errorf("Get(missing) error = %v, want store not found", err)
	}

	if err := s.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, err := s.Get(ctx, "k")
	if err != nil || string(got) != "v" {
		t.Errorf("Get(k) = %q, %v", got, err)
	}

	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.Get(ctx, "k"); !core.IsStoreNotFound(err) {
		t.Errorf("Get after Delete error = %v, want store not found", err)
	}
}

func TestMemoryStoreZSet(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close()

	// popularity board: score desc, ties broken by member asc
	entries := map[string]float64{
		"H3": 6.2,
		"H1": 7.5,
		"H4": 6.2,
		"H2": 9.1,
	}
	for member, score := range entries {
		if err := s.ZAdd(ctx, KeyPopularHotels, score, member); err != nil {
			t.Fatalf("ZAdd(%s) error = %v", member, err)
		}
	}

	got, err := s.ZRange(ctx, KeyPopularHotels, 0, -1)
	if err != nil {
		t.Fatalf("ZRange() error = %v", err)
	}
	want := []string{"H2", "H1", "H3", "H4"}
	if len(got) != len(want) {
		t.Fatalf("ZRange() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ZRange()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	top2, err := s.ZRange(ctx, KeyPopularHotels, 0, 1)
	if err != nil || len(top2) != 2 || top2[0] != "H2" || top2[1] != "H1" {
		t.Errorf("ZRange(0,1) = %v, %v", top2, err)
	}

	score, err := s.ZScore(ctx, KeyPopularHotels, "H1")
	if err != nil || score != 7.5 {
		t.Errorf("ZScore(H1) = %v, %v", score, err)
	}
	if _, err := s.ZScore(ctx, KeyPopularHotels, "H999"); !core.IsStoreNotFound(err) {
		t.Errorf("ZScore(H999) error = %v, want store not found", err)
	}
}

func TestMemoryStoreHash(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close()

	if err := s.HSet(ctx, "stats:H1", "mean", []byte("4.5")); err != nil {
		t.Fatalf("HSet() error = %v", err)
	}
	if err := s.HSet(ctx, "stats:H1", "count", []byte("3")); err != nil {
		t.Fatalf("HSet() error = %v", err)
	}

	v, err := s.HGet(ctx, "stats:H1", "mean")
	if err != nil || string(v) != "4.5" {
		t.Errorf("HGet(mean) = %q, %v", v, err)
	}

	all, err := s.HGetAll(ctx, "stats:H1")
	if err != nil || len(all) != 2 {
		t.Errorf("HGetAll() = %v, %v", all, err)
	}
}

func TestMemoryStoreCloseStopsSweeper(t *testing.T) {
	before := runtime.NumGoroutine()

	stores := make([]*MemoryStore, 10)
	for i := range stores {
		stores[i] = NewMemoryStore()
	}
	for _, s := range stores {
		if err := s.Close(); err != nil {
			t.Fatalf("Close() error = %v", err)
		}
		// double Close must be safe
		if err := s.Close(); err != nil {
			t.Fatalf("second Close() error = %v", err)
		}
	}

	// sweeper goroutines exit shortly after Close
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if runtime.NumGoroutine() <= before {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Errorf("goroutines = %d after closing stores, want <= %d", runtime.NumGoroutine(), before)
}
