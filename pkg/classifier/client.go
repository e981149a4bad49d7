// Package classifier posts validated payloads to the classification service.
package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/puneetripathi/bajaj-frontend/pkg/contract"
	"github.com/puneetripathi/bajaj-frontend/pkg/payload"
	"github.com/puneetripathi/bajaj-frontend/pkg/projection"
)

// DefaultTimeout bounds a single call when no other timeout is configured.
const DefaultTimeout = 10 * time.Second

// RequestIDHeader carries the per-call correlation id.
const RequestIDHeader = "X-Request-ID"

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 1 << 20

// Client performs the classification call.
type Client struct {
	endpoint   string
	httpClient *http.Client
	timeout    time.Duration
	logger     *log.Logger
	requestID  func() string
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint sets the absolute URL posted to.
func WithEndpoint(url string) Option {
	return func(c *Client) {
		if url = strings.TrimSpace(url); url != "" {
			c.endpoint = url
		}
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout bounds each call. Zero or negative disables the bound.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithLogger logs one line per call.
func WithLogger(logger *log.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRequestIDFunc replaces the request id generator.
func WithRequestIDFunc(fn func() string) Option {
	return func(c *Client) {
		if fn != nil {
			c.requestID = fn
		}
	}
}

// New builds a Client posting to the embedded contract's endpoint unless
// WithEndpoint says otherwise.
func New(options ...Option) (*Client, error) {
	c := &Client{
		httpClient: http.DefaultClient,
		timeout:    DefaultTimeout,
		requestID:  func() string { return uuid.NewString() },
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}

	if c.endpoint == "" {
		doc, err := contract.Default(context.Background())
		if err != nil {
			return nil, fmt.Errorf("classifier: %w", err)
		}
		ep, err := doc.Classify()
		if err != nil {
			return nil, fmt.Errorf("classifier: %w", err)
		}
		c.endpoint = ep.URL
	}
	if c.endpoint == "" {
		return nil, errMissingEndpointURL
	}
	return c, nil
}

// NewFromContract builds a Client for a resolved endpoint. Options applied
// after the endpoint may still override it.
func NewFromContract(ep contract.Endpoint, options ...Option) (*Client, error) {
	if ep.Method != "" && ep.Method != http.MethodPost {
		return nil, fmt.Errorf("classifier: endpoint %s uses %s, want POST", ep.OperationID, ep.Method)
	}
	if strings.TrimSpace(ep.URL) == "" {
		return nil, errMissingEndpointURL
	}
	return New(append([]Option{WithEndpoint(ep.URL)}, options...)...)
}

// Endpoint reports the URL posted to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Classify posts p and decodes the answer. Every failure is a *TransportError
// except context cancellation by the caller, which is returned as-is.
func (c *Client) Classify(ctx context.Context, p payload.RequestPayload) (projection.ServiceResponse, error) {
	if ctx == nil {
		return projection.ServiceResponse{}, errors.New("classifier: context is required")
	}

	body, err := json.Marshal(p)
	if err != nil {
		return projection.ServiceResponse{}, fmt.Errorf("classifier: encode payload: %w", err)
	}

	reqCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return projection.ServiceResponse{}, fmt.Errorf("classifier: request: %w", err)
	}
	requestID := c.requestID()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logf("classify %s %s id=%s failed after %s: %v", req.Method, c.endpoint, requestID, time.Since(started), err)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return projection.ServiceResponse{}, ctxErr
		}
		return projection.ServiceResponse{}, unreachable(err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	c.logf("classify %s %s id=%s status=%d in %s", req.Method, c.endpoint, requestID, resp.StatusCode, time.Since(started))

	if resp.StatusCode/100 != 2 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return projection.ServiceResponse{}, statusFailure(resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return projection.ServiceResponse{}, ctxErr
		}
		return projection.ServiceResponse{}, unreachable(err)
	}

	decoded, err := projection.DecodeServiceResponse(raw)
	if err != nil {
		return projection.ServiceResponse{}, malformedResponse(resp.StatusCode, err)
	}
	return decoded, nil
}

func (c *Client) logf(format string, args ...any) {
	if c.logger == nil {
		return
	}
	c.logger.Printf(format, args...)
}
