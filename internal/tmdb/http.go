package tmdb

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	merrors "github.com/lepinkainen/marquee/internal/errors"
)

// getJSON performs a single authenticated GET. There is no retry: a failed
// attempt is terminal and the caller decides when to ask again.
func (c *Client) getJSON(ctx context.Context, endpoint string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return merrors.NewTransportError(serviceName, err)
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return merrors.NewTransportError(serviceName, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return merrors.NewStatusError(serviceName, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return merrors.NewTransportError(serviceName, err)
	}
	return nil
}
