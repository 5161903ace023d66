package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/hirelens/internal/domain/filter"
	"github.com/okian/hirelens/internal/snapshot"
)

// Default configuration constants.
const (
	defaultBaseURL = "http://localhost:8501"
	defaultTimeout = 10 * time.Second
)

func main() {
	var (
		baseURL     = flag.String("url", defaultBaseURL, "Base URL of the service")
		companyTier = flag.String("company-tier", filter.All, "Company tier filter")
		experience  = flag.String("experience", filter.All, "Experience category filter")
		competition = flag.String("competition", filter.All, "Competition level filter")
		status      = flag.String("status", filter.All, "Placement status filter")
		showFilters = flag.Bool("filters", false, "Also print the values each filter accepts")
		showPoints  = flag.Bool("points", false, "Also print every scatter point")
		timeout     = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		verbose     = flag.Bool("verbose", false, "Enable debug logging")
		help        = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		snapshot.ShowHelp(os.Stdout)
		return
	}

	if err := snapshot.SetupLogging(os.Stderr, *verbose); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := &snapshot.Config{
		BaseURL: *baseURL,
		Timeout: *timeout,
		Selection: filter.Selection{
			CompanyTier:        *companyTier,
			ExperienceCategory: *experience,
			CompetitionLevel:   *competition,
			Status:             *status,
		},
		ShowFilters: *showFilters,
		ShowPoints:  *showPoints,
	}

	if err := snapshot.Run(ctx, cfg, os.Stdout); err != nil {
		os.Stderr.WriteString("Snapshot failed: " + err.Error() + "\n")
		stop()
		os.Exit(1)
	}
}
