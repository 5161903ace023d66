package repository

import (
	"context"
	"sync"
	"time"

	"github.com/okian/hirelens/pkg/logger"
	"github.com/okian/hirelens/pkg/metrics"
)

// Cache memoises loaded tables by path for the lifetime of the process.
// An entry is filled on first access and never invalidated; concurrent first
// callers share a single load. Failed loads are not kept.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry
	load    LoadFunc
	logger  logger.Logger
}

type entry struct {
	once  sync.Once
	table *Table
	err   error
}

// NewCache creates an empty Cache backed by Load.
func NewCache(opts ...Option) *Cache {
	c := &Cache{
		entries: make(map[string]*entry),
		load:    Load,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the table for path, loading it on first use.
func (c *Cache) Get(ctx context.Context, path string) (*Table, error) {
	c.mu.Lock()
	e, ok := c.entries[path]
	if !ok {
		e = &entry{}
		c.entries[path] = e
	}
	c.mu.Unlock()

	if ok {
		metrics.RecordCacheHit()
	} else {
		metrics.RecordCacheMiss()
	}

	e.once.Do(func() {
		start := time.Now()
		e.table, e.err = c.load(ctx, path)
		durationMs := float64(time.Since(start).Microseconds()) / 1000
		metrics.RecordTableLoadLatency(durationMs)
		if e.err != nil {
			metrics.RecordErrorByComponent("repository", "load")
			c.log(ctx, func(l logger.Logger) {
				l.Error(ctx, "table load failed", logger.String("path", path), logger.Error(e.err))
			})
			return
		}
		metrics.UpdateTableRows(e.table.Len())
		c.log(ctx, func(l logger.Logger) {
			l.Info(ctx, "table loaded",
				logger.String("path", path),
				logger.Int("rows", e.table.Len()),
				logger.Int("numericColumns", len(e.table.Numeric())),
				logger.Float64("durationMs", durationMs),
			)
		})
	})

	if e.err != nil {
		c.mu.Lock()
		if c.entries[path] == e {
			delete(c.entries, path)
		}
		c.mu.Unlock()
		return nil, e.err
	}
	return e.table, nil
}

// Len returns the number of memoised paths.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache) log(_ context.Context, fn func(logger.Logger)) {
	if c.logger != nil {
		fn(c.logger)
	}
}
