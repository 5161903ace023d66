package repository

import (
	"context"

	"github.com/okian/hirelens/pkg/logger"
)

// LoadFunc reads a table from path.
type LoadFunc func(ctx context.Context, path string) (*Table, error)

// Option applies a configuration option to the Cache.
type Option func(*Cache)

// WithLoadFunc replaces the CSV loader, mostly useful in tests.
func WithLoadFunc(fn LoadFunc) Option {
	return func(c *Cache) {
		if fn != nil {
			c.load = fn
		}
	}
}

// WithLogger sets the logger used to report loads.
func WithLogger(l logger.Logger) Option {
	return func(c *Cache) {
		if l != nil {
			c.logger = l
		}
	}
}
