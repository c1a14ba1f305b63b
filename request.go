package wit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/dialogkit/wit/internal/httpkit"
)

// maxResponseBytes caps how much of an API response we read. Wit
// payloads are small JSON documents; anything larger is malformed.
const maxResponseBytes = 4 << 20

// do builds and sends one authenticated API request and decodes the
// JSON response into result (which may be nil for calls whose body the
// caller does not need).
//
// Error ladder: transport failures come back wrapped; a non-200 status
// is an *HTTPError regardless of body; a 200 body that is a JSON
// object with an error field is an *APIError; everything else decodes
// into result.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, result any) error {
	u := c.apiHost + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/vnd.wit."+c.apiVersion+"+json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", method, path, err)
	}
	// Drain and close so the connection returns to the pool.
	defer httpkit.DrainAndClose(resp.Body, 4096)

	c.logger.Debug("wit API call",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
	)

	if resp.StatusCode != http.StatusOK {
		return &HTTPError{
			StatusCode: resp.StatusCode,
			Body:       httpkit.ReadErrorBody(resp.Body, 512),
		}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	// A 200 can still carry an application-level error in the body.
	// The probe only matches JSON objects; array responses (entity
	// listings) fail the unmarshal and fall through.
	var probe struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}
	if err := json.Unmarshal(data, &probe); err == nil && probe.Error != "" {
		return &APIError{Message: probe.Error, Code: probe.Code}
	}

	if result != nil {
		if err := json.Unmarshal(data, result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}

	return nil
}
