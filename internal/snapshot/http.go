package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/okian/hirelens/internal/domain/filter"
	"github.com/okian/hirelens/internal/domain/types"
)

// maxErrorBody caps how much of a failed response is read.
const maxErrorBody = 64 << 10

// client wraps http.Client with the service base URL.
type client struct {
	http    *http.Client
	baseURL string
}

func newClient(baseURL string, timeout time.Duration) *client {
	return &client{
		http:    &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// get performs a GET request and returns the response when the status is 200.
func (c *client) get(ctx context.Context, path string, query url.Values) (*http.Response, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRequest, path, err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRequest, path, err)
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return nil, fmt.Errorf("%w: %s: %w", ErrRequest, path, readAPIError(resp))
	}
	return resp, nil
}

// getJSON decodes a 200 response into v.
func (c *client) getJSON(ctx context.Context, path string, query url.Values, v any) error {
	resp, err := c.get(ctx, path, query)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrDecode, path, err)
	}
	return nil
}

func readAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{Status: resp.StatusCode}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if json.Unmarshal(body, apiErr) != nil || apiErr.Message == "" {
		apiErr.Message = fmt.Sprintf("status %d", resp.StatusCode)
	}
	return apiErr
}

func (c *client) health(ctx context.Context) error {
	resp, err := c.get(ctx, "/healthz", nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.Body.Close()
}

func (c *client) dashboard(ctx context.Context, sel filter.Selection) (types.Dashboard, error) {
	var d types.Dashboard
	err := c.getJSON(ctx, "/api/dashboard", selectionQuery(sel), &d)
	return d, err
}

func (c *client) filters(ctx context.Context) (types.Filters, error) {
	var f types.Filters
	err := c.getJSON(ctx, "/api/filters", nil, &f)
	return f, err
}

// selectionQuery drops unconstrained filters so the URL stays short.
func selectionQuery(sel filter.Selection) url.Values {
	q := url.Values{}
	set := func(key, v string) {
		if v != "" && v != filter.All {
			q.Set(key, v)
		}
	}
	set("company_tier", sel.CompanyTier)
	set("experience_category", sel.ExperienceCategory)
	set("competition_level", sel.CompetitionLevel)
	set("status", sel.Status)
	return q
}
