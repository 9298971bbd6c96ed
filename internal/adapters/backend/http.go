package backend

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"vendepass-client/internal/domain"
	"vendepass-client/internal/platform/obs"
)

func (c *Client) newRequest(
	ctx context.Context,
	method string,
	url string,
	body io.Reader,
	session *domain.Session,
) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	// The backend expects the raw token, not a Bearer scheme.
	if session != nil {
		req.Header.Set("Authorization", session.Token)
	}
	req.Header.Set("Accept", "application/json")
	if id := obs.RequestID(ctx); id != "" {
		req.Header.Set("X-Request-ID", id)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

// do sends req once. Failed attempts are terminal; the user retries by
// triggering the action again.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}
