// Package apiclient implements the HTTP client for the ghpulse analytics API.
package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/averykuo/ghpulse/internal/contract"
	"github.com/averykuo/ghpulse/schema"
)

// defaultTimeout bounds every request round-trip. The pipeline has no retry
// of its own; a hung request would otherwise block a load forever.
const defaultTimeout = 30 * time.Second

// Client talks to the ghpulse analytics backend with a bearer credential.
type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
}

var _ contract.AnalyticsClient = &Client{} // Compile-time check

// New creates a Client for the given API base URL and bearer token.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpc:   &http.Client{Timeout: defaultTimeout},
	}
}

// FetchSnapshots implements contract.AnalyticsClient. The returned slice is
// never nil; zero snapshots in range is a valid success.
func (c *Client) FetchSnapshots(ctx context.Context, start, end schema.CalDate) ([]schema.Snapshot, error) {
	query := url.Values{}
	query.Set("startDate", start.String())
	query.Set("endDate", end.String())

	body, err := c.get(ctx, "/analytics/snapshots", query, loadMapper)
	if err != nil {
		return nil, err
	}

	var envelope schema.SnapshotEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: malformed snapshot payload: %v", contract.ErrUnavailable, err)
	}
	if envelope.Snapshots == nil {
		envelope.Snapshots = []schema.Snapshot{}
	}
	return envelope.Snapshots, nil
}

// FetchProfile implements contract.AnalyticsClient.
func (c *Client) FetchProfile(ctx context.Context) (schema.Profile, error) {
	body, err := c.get(ctx, "/user/profile", nil, loadMapper)
	if err != nil {
		return schema.Profile{}, err
	}

	var profile schema.Profile
	if err := json.Unmarshal(body, &profile); err != nil {
		return schema.Profile{}, fmt.Errorf("%w: malformed profile payload: %v", contract.ErrUnavailable, err)
	}
	return profile, nil
}

// ExportRange implements contract.AnalyticsClient. Any non-success response
// or transport failure maps to ErrExportFailed so callers can report a
// retryable export failure without disturbing loaded state.
func (c *Client) ExportRange(ctx context.Context, format schema.ExportFormat, start, end schema.CalDate) ([]byte, error) {
	query := url.Values{}
	query.Set("format", string(format))
	query.Set("startDate", start.String())
	query.Set("endDate", end.String())

	return c.get(ctx, "/analytics/export", query, exportMapper)
}

// get performs an authenticated GET and maps failures through the per-path
// mapper. Connection-level and read failures take the mapper's transport
// sentinel, so export calls fail as exports rather than as loads.
func (c *Client) get(ctx context.Context, path string, query url.Values, mapper errorMapper) ([]byte, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", path, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", mapper.transport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := mapper.status(resp.StatusCode); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", mapper.transport, err)
	}
	return body, nil
}

// errorMapper pairs a status translator with the transport-failure sentinel
// for one API path.
type errorMapper struct {
	status    func(int) error
	transport error
}

var (
	loadMapper   = errorMapper{status: mapLoadStatus, transport: contract.ErrUnavailable}
	exportMapper = errorMapper{status: mapExportStatus, transport: contract.ErrExportFailed}
)

// mapLoadStatus translates load-path HTTP statuses into the failure taxonomy.
func mapLoadStatus(status int) error {
	switch {
	case status == http.StatusOK:
		return nil
	case status == http.StatusUnauthorized:
		return contract.ErrUnauthenticated
	case status == http.StatusForbidden:
		return contract.ErrUnauthorized
	default:
		return fmt.Errorf("%w: unexpected status %d", contract.ErrUnavailable, status)
	}
}

// mapExportStatus translates export-path HTTP statuses. Auth failures keep
// their identity; everything else is an export failure.
func mapExportStatus(status int) error {
	switch status {
	case http.StatusOK:
		return nil
	case http.StatusUnauthorized:
		return contract.ErrUnauthenticated
	case http.StatusForbidden:
		return contract.ErrUnauthorized
	default:
		return fmt.Errorf("%w: unexpected status %d", contract.ErrExportFailed, status)
	}
}
