// Package snapshot fetches the dashboard from a running service and prints it
// as terminal tables.
package snapshot

import (
	"errors"
	"time"

	"github.com/okian/hirelens/internal/domain/filter"
)

// Sentinel errors returned by Run.
var (
	ErrUnhealthy = errors.New("service unhealthy")
	ErrRequest   = errors.New("request failed")
	ErrDecode    = errors.New("decode response")
)

// Config holds configuration for one snapshot.
type Config struct {
	BaseURL     string           // Base URL of the service
	Timeout     time.Duration    // HTTP request timeout
	Selection   filter.Selection // Filters sent with the dashboard request
	ShowFilters bool             // Also print the dropdown values
	ShowPoints  bool             // Also print every scatter point
}

// APIError is the error body the service returns with non-2xx statuses.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return e.Code + ": " + e.Message
}
