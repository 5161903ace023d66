package repository

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/okian/hirelens/internal/domain/model"
)

func TestCache_LoadsOncePerPath(t *testing.T) {
	var calls atomic.Int32
	cache := NewCache(WithLoadFunc(func(_ context.Context, path string) (*Table, error) {
		calls.Add(1)
		return FromRecords([]model.Candidate{{Status: model.StatusPlaced}}), nil
	}))

	ctx := context.Background()
	first, err := cache.Get(ctx, "a.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := cache.Get(ctx, "a.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Error("expected the same table instance for repeated calls")
	}
	if calls.Load() != 1 {
		t.Errorf("expected 1 load, got %d", calls.Load())
	}

	if _, err := cache.Get(ctx, "b.csv"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls.Load() != 2 {
		t.Errorf("expected a second load for a new path, got %d", calls.Load())
	}
	if cache.Len() != 2 {
		t.Errorf("expected 2 cached paths, got %d", cache.Len())
	}
}

func TestCache_ConcurrentFirstAccess(t *testing.T) {
	var calls atomic.Int32
	cache := NewCache(WithLoadFunc(func(_ context.Context, _ string) (*Table, error) {
		calls.Add(1)
		return FromRecords(nil), nil
	}))

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := cache.Get(context.Background(), "shared.csv"); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if calls.Load() != 1 {
		t.Errorf("expected exactly 1 load, got %d", calls.Load())
	}
}

func TestCache_FailedLoadIsNotKept(t *testing.T) {
	var calls atomic.Int32
	boom := errors.New("boom")
	cache := NewCache(WithLoadFunc(func(_ context.Context, _ string) (*Table, error) {
		if calls.Add(1) == 1 {
			return nil, boom
		}
		return FromRecords(nil), nil
	}))

	ctx := context.Background()
	if _, err := cache.Get(ctx, "x.csv"); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if cache.Len() != 0 {
		t.Errorf("expected failed entry to be dropped, got %d entries", cache.Len())
	}
	if _, err := cache.Get(ctx, "x.csv"); err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
}

func TestCache_ReadsFile(t *testing.T) {
	path := writeCSV(t, sampleCSV)
	cache := NewCache()

	table, err := cache.Get(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if table.Path() != path {
		t.Errorf("expected path %q, got %q", path, table.Path())
	}
}
