// Package contactclient posts the contact form to the backend.
package contactclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go-portfolio/internal/domain"
	"go-portfolio/internal/web/form"
)

const (
	DefaultEndpoint = "/contact"
	DefaultTimeout  = 15 * time.Second

	maxResponseBytes = 64 << 10
)

// ErrTransport wraps every failure that is not a server verdict.
var ErrTransport = errors.New("contact request failed")

type Client struct {
	endpoint   string
	httpClient *http.Client
	timeout    time.Duration
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

func New(endpoint string, opts ...Option) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	c := &Client{
		endpoint:   endpoint,
		httpClient: http.DefaultClient,
		timeout:    DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Submit posts req as JSON. A 2xx answer with a readable envelope is a
// success or a server failure according to its success flag; anything else
// is a transport failure.
func (c *Client) Submit(ctx context.Context, req domain.ContactRequest) form.Outcome {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	body, err := json.Marshal(req)
	if err != nil {
		return transportFailure(fmt.Errorf("encode request: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return transportFailure(fmt.Errorf("build request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return transportFailure(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return transportFailure(fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var result domain.ContactResult
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&result); err != nil {
		return transportFailure(fmt.Errorf("decode response: %w", err))
	}

	if result.Success {
		return form.Outcome{Kind: form.OutcomeSuccess, Message: result.Message}
	}
	return form.Outcome{Kind: form.OutcomeServerFailure, Message: result.Message}
}

func transportFailure(err error) form.Outcome {
	return form.Outcome{
		Kind: form.OutcomeTransportFailure,
		Err:  fmt.Errorf("%w: %w", ErrTransport, err),
	}
}
