package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
	"vendepass-client/internal/domain"
	"vendepass-client/internal/platform/obs"
	"vendepass-client/internal/ports"
)

var _ ports.Backend = (*Client)(nil)

// AuthFailureHandler is invoked once per call that fails with
// ErrUnauthorized, before the error is returned to the caller.
type AuthFailureHandler func(ctx context.Context, err error)

// Client implements ports.Backend over the booking HTTP API.
//
// Every response is an envelope {Error, Data}. A non-empty Error becomes a
// *DomainError, except session failures which become ErrUnauthorized and are
// reported to the AuthFailureHandler. Transport and decode failures are
// returned wrapped.
//
// The client is safe for concurrent use.
type Client struct {
	session       *http.Client
	baseURL       string
	timeout       time.Duration
	logger        *slog.Logger
	onAuthFailure AuthFailureHandler
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.session = hc }
}

// WithTimeout bounds every call, including body decoding.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func WithAuthFailureHandler(h AuthFailureHandler) Option {
	return func(c *Client) { c.onAuthFailure = h }
}

func NewClient(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("backend base url is empty")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("parse backend base url %q: %w", baseURL, err)
	}

	c := &Client{
		session: &http.Client{Timeout: 10 * time.Second},
		baseURL: baseURL,
		timeout: 10 * time.Second,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// SetAuthFailureHandler replaces the handler after construction. The
// composition root uses it to close the loop between the client and the
// session store that depends on it.
func (c *Client) SetAuthFailureHandler(h AuthFailureHandler) {
	c.onAuthFailure = h
}

type envelope struct {
	Error string          `json:"Error"`
	Data  json.RawMessage `json:"Data"`
}

type call struct {
	op      string
	method  string
	path    string
	query   url.Values
	session *domain.Session
	body    any
}

// exec runs one request and decodes the envelope's Data into out (if non-nil).
func (c *Client) exec(ctx context.Context, cl call, out any) (err error) {
	ctx, _ = obs.WithRequestID(ctx)
	defer obs.Time(ctx, c.logger, cl.op)(&err)

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	if cl.session != nil && !cl.session.Valid() {
		return c.authFailed(ctx, cl.op)
	}

	endpoint := c.baseURL + cl.path
	if len(cl.query) > 0 {
		endpoint += "?" + cl.query.Encode()
	}

	var body io.Reader
	if cl.body != nil {
		payload, err := json.Marshal(cl.body)
		if err != nil {
			return fmt.Errorf("%s: marshal request: %w", cl.op, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := c.newRequest(ctx, cl.method, endpoint, body, cl.session)
	if err != nil {
		return fmt.Errorf("%s: %w", cl.op, err)
	}

	resp, err := c.do(req)
	if err != nil {
		var he *httpStatusError
		if errors.As(err, &he) && he.Code == http.StatusUnauthorized {
			return c.authFailed(ctx, cl.op)
		}
		return fmt.Errorf("%s: execute request: %w", cl.op, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("%s: decode response: %w", cl.op, err)
	}

	if env.Error != "" {
		if _, ok := authFailureReasons[env.Error]; ok {
			return c.authFailed(ctx, cl.op)
		}
		return &DomainError{Op: cl.op, Reason: env.Error}
	}

	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%s: decode data: %w", cl.op, err)
	}

	return nil
}

func (c *Client) authFailed(ctx context.Context, op string) error {
	err := fmt.Errorf("%s: %w", op, ErrUnauthorized)
	if c.onAuthFailure != nil {
		c.onAuthFailure(ctx, err)
	}
	return err
}
