// Package apiclient is the typed HTTP client for the university records API.
//
// The records server is an external collaborator: this package only speaks
// its documented REST contract. Every authenticated call attaches the
// caller's bearer token; 401/403 answers are normalized into the
// distinguished unauthorized error so a single boundary in the HTTP layer
// can force logout. The client itself never touches session state and never
// navigates.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/uniadmin/records-console/internal/errors"
)

// Config groups the settings for building a Client.
type Config struct {
	// BaseURL is the records API origin, e.g. "http://localhost:1123".
	BaseURL string
	// Timeout applies to the underlying http.Client when Client is nil.
	Timeout time.Duration
	// Client overrides the transport (tests).
	Client *http.Client
	// Logger for request failures (optional).
	Logger *slog.Logger
}

// Client calls the records API. Safe for concurrent use.
type Client struct {
	baseURL string
	hc      *http.Client
	logger  *slog.Logger
}

// New builds a records API client. Callers should pass a validated config.
func New(cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("records API base URL is required")
	}

	hc := cfg.Client
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{baseURL: baseURL, hc: hc, logger: logger}, nil
}

// request groups the parameters of a single API call.
type request struct {
	Method string
	Path   string // path plus optional query, starting with "/"
	Token  string // bearer token; empty for unauthenticated endpoints
	Body   any    // JSON-encoded when non-nil
}

// do executes a request and returns the raw response on 2xx. Non-2xx
// responses are drained and normalized into AppErrors: 401/403 become the
// unauthorized variant, everything else carries the status and body text.
func (c *Client) do(ctx context.Context, req request) (*http.Response, error) {
	var body io.Reader
	if req.Body != nil {
		encoded, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, c.baseURL+req.Path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if req.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.Token)
	}

	resp, err := c.hc.Do(httpReq)
	if err != nil {
		return nil, apperrors.Unavailable("records API unreachable", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.errorFromResponse(req, resp)
	}

	return resp, nil
}

// errorFromResponse reads and closes the body of a non-2xx response and maps
// it onto the error taxonomy.
func (c *Client) errorFromResponse(req request, resp *http.Response) error {
	bodyText := readBodyText(resp)

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		c.logger.Warn("records API rejected credentials",
			slog.String("method", req.Method),
			slog.String("path", req.Path),
			slog.Int("status", resp.StatusCode),
		)
		return apperrors.Unauthorized(resp.StatusCode, "Unauthorized")
	}

	return apperrors.Upstream(resp.StatusCode, bodyText)
}

// readBodyText returns the trimmed response body, best effort.
func readBodyText(resp *http.Response) string {
	defer resp.Body.Close()
	data, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// doJSON executes a request and decodes a 2xx body into dst.
func (c *Client) doJSON(ctx context.Context, req request, dst any) error {
	resp, err := c.do(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if dst == nil {
		_, copyErr := io.Copy(io.Discard, resp.Body)
		return copyErr
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode records API response: %w", err)
	}
	return nil
}

// doDiscard executes a request and drains the 2xx body (DELETE calls).
func (c *Client) doDiscard(ctx context.Context, req request) error {
	return c.doJSON(ctx, req, nil)
}

// getList fetches a JSON array of T from path.
func getList[T any](ctx context.Context, c *Client, token, path string) ([]T, error) {
	var out []T
	if err := c.doJSON(ctx, request{Method: http.MethodGet, Path: path, Token: token}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// getOne fetches a single T from path.
func getOne[T any](ctx context.Context, c *Client, token, path string) (*T, error) {
	out := new(T)
	if err := c.doJSON(ctx, request{Method: http.MethodGet, Path: path, Token: token}, out); err != nil {
		return nil, err
	}
	return out, nil
}

// writeOne sends body with the given method and decodes the returned record.
func writeOne[T any](ctx context.Context, c *Client, req request) (*T, error) {
	out := new(T)
	if err := c.doJSON(ctx, req, out); err != nil {
		return nil, err
	}
	return out, nil
}
