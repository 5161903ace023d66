package snapshot

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/okian/hirelens/pkg/logger"
)

// Run checks the service health, fetches the dashboard for cfg.Selection and
// prints it to w.
func Run(ctx context.Context, cfg *Config, w io.Writer) error {
	start := time.Now()
	c := newClient(cfg.BaseURL, cfg.Timeout)

	logger.Get().Debug(ctx, "taking dashboard snapshot",
		logger.String("baseURL", cfg.BaseURL),
		logger.String("selection", cfg.Selection.String()),
		logger.Duration("timeout", cfg.Timeout))

	// Step 1: Check service health
	if err := c.health(ctx); err != nil {
		return err
	}

	// Step 2: Optional dropdown values
	if cfg.ShowFilters {
		f, err := c.filters(ctx)
		if err != nil {
			return fmt.Errorf("fetch filters: %w", err)
		}
		printFilters(w, f)
	}

	// Step 3: The dashboard itself
	d, err := c.dashboard(ctx, cfg.Selection)
	if err != nil {
		return fmt.Errorf("fetch dashboard: %w", err)
	}
	printDashboard(w, d, cfg.ShowPoints)

	logger.Get().Debug(ctx, "snapshot complete",
		logger.Int("points", len(d.Charts.Scatter)),
		logger.Duration("duration", time.Since(start)))
	return nil
}
