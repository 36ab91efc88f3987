// Package client is the plain request/response client used for server
// communication. The engine never catches or reinterprets its errors;
// they surface to callers as *StatusError.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"
)

// StatusError is the uniform error for any non-success response. The
// message comes from the response body, or the status's standard reason
// phrase when the body is empty.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request failed with status %d: %s", e.Status, e.Message)
}

// Client issues requests against a fixed base path.
type Client struct {
	base string
	hc   *http.Client
}

// New creates a client for the given base URL.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		hc:   &http.Client{Timeout: timeout},
	}
}

// Get issues a GET request. A JSON response is decoded into out; any
// other content type is stored into out when out is a *string.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST request with an optional JSON body.
func (c *Client) Post(ctx context.Context, path string, body any, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// FetchBlob issues a POST request and returns the raw response bytes
// with their content type.
func (c *Client) FetchBlob(ctx context.Context, path string, body any) ([]byte, string, error) {
	resp, err := c.roundTrip(ctx, http.MethodPost, path, body)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read response body: %w", err)
	}
	if err := statusError(resp.StatusCode, data); err != nil {
		return nil, "", err
	}
	return data, resp.Header.Get("Content-Type"), nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	resp, err := c.roundTrip(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if err := statusError(resp.StatusCode, data); err != nil {
		return err
	}
	if out == nil {
		return nil
	}

	if isJSON(resp.Header.Get("Content-Type")) {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
		return nil
	}

	if s, ok := out.(*string); ok {
		*s = string(data)
		return nil
	}
	return fmt.Errorf("non-JSON response (content type %q) needs a *string target", resp.Header.Get("Content-Type"))
}

func (c *Client) roundTrip(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.hc.Do(req)
}

func statusError(status int, body []byte) error {
	if status >= 200 && status < 300 {
		return nil
	}
	message := strings.TrimSpace(string(body))
	if message == "" {
		message = http.StatusText(status)
	}
	return &StatusError{Status: status, Message: message}
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}
