package blogapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/CrestNiraj12/blogcomments/domain"
	"github.com/CrestNiraj12/blogcomments/infra/auth"
)

// HTTPError is a non-2xx API response.
type HTTPError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("API %s %s returned %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// Is lets callers match status codes against the domain sentinels.
func (e *HTTPError) Is(target error) bool {
	switch target {
	case domain.ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case domain.ErrForbidden:
		return e.StatusCode == http.StatusForbidden
	case domain.ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

// Client is a thin HTTP wrapper for the blog REST API.
// It handles base URL construction, bearer token injection and a single
// retry after refreshing an expired session.
type Client struct {
	baseURL       string
	tokenProvider auth.TokenProvider
	http          *http.Client
	log           zerolog.Logger
}

// NewClient creates a blog API client. baseURL must not end with a slash.
func NewClient(baseURL string, tp auth.TokenProvider, log zerolog.Logger) *Client {
	return &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		tokenProvider: tp,
		http:          &http.Client{Timeout: 15 * time.Second},
		log:           log,
	}
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

// PostJSON performs a POST request with payload encoded as JSON.
func (c *Client) PostJSON(ctx context.Context, path string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding request body: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, body)
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodDelete, path, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	data, err := c.send(ctx, method, path, body)
	if !errors.Is(err, domain.ErrUnauthorized) {
		return data, err
	}
	refresher, ok := c.tokenProvider.(auth.Refresher)
	if !ok {
		return nil, err
	}
	if rerr := refresher.Refresh(ctx); rerr != nil {
		c.log.Debug().Err(rerr).Str("path", path).Msg("session refresh failed")
		return nil, err
	}
	return c.send(ctx, method, path, body)
}

func (c *Client) send(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	token, err := c.tokenProvider.AccessToken()
	if err != nil {
		return nil, fmt.Errorf("auth: %w", err)
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		herr := &HTTPError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(data)),
		}
		c.log.Warn().Str("method", method).Str("path", path).Int("status", resp.StatusCode).Msg("api request failed")
		return nil, herr
	}

	return data, nil
}
