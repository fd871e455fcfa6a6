// Package transport is the HTTP boundary of the client. It wraps a resty
// client configured with the service base URL and timeout, carries the
// bearer token, and classifies every response instead of returning errors
// for HTTP-level failures.
package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/assettrack/internal/logging"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

// RequestIDHeaderName is set on every outbound request.
const RequestIDHeaderName = "X-Request-ID"

var ErrNoBaseURL = errors.New("transport: base URL is empty")

// Config is the transport's base configuration.
type Config struct {
	URL     string
	Timeout time.Duration
}

// Problem classifies why a request did not succeed.
type Problem int

const (
	ProblemNone Problem = iota
	ProblemNotFound
	ProblemClient
	ProblemServer
	ProblemTimeout
	ProblemConnection
	ProblemBadData
)

func (p Problem) String() string {
	switch p {
	case ProblemNone:
		return "none"
	case ProblemNotFound:
		return "not-found"
	case ProblemClient:
		return "client"
	case ProblemServer:
		return "server"
	case ProblemTimeout:
		return "timeout"
	case ProblemConnection:
		return "connection"
	case ProblemBadData:
		return "bad-data"
	default:
		return fmt.Sprintf("problem(%d)", int(p))
	}
}

// RawResponse is a classified response. Body is nil when the request never
// reached the server.
type RawResponse struct {
	OK      bool
	Status  int
	Problem Problem
	Body    []byte
	Err     error
}

// Client is safe to reconfigure between calls but, like the store on top of
// it, is meant to be driven by one caller at a time.
type Client struct {
	cfg   Config
	rc    *resty.Client
	token string
	log   logging.Logger
}

// New builds a Client for cfg.
func New(cfg Config, log logging.Logger) (*Client, error) {
	c := &Client{log: log}
	if err := c.Reconfigure(cfg); err != nil {
		return nil, err
	}
	return c, nil
}

// Reconfigure replaces the underlying HTTP client. The bearer token is not
// carried over.
func (c *Client) Reconfigure(cfg Config) error {
	if strings.TrimSpace(cfg.URL) == "" {
		return ErrNoBaseURL
	}
	rc := resty.New().
		SetBaseURL(strings.TrimRight(cfg.URL, "/")).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if cfg.Timeout > 0 {
		rc.SetTimeout(cfg.Timeout)
	}

	c.cfg = cfg
	c.rc = rc
	c.token = ""
	return nil
}

// Config returns the active configuration.
func (c *Client) Config() Config {
	return c.cfg
}

// SetAuthToken sets the bearer token sent with every request. An empty
// token means no Authorization header.
func (c *Client) SetAuthToken(token string) {
	c.token = token
}

// AuthToken returns the token currently attached to requests.
func (c *Client) AuthToken() string {
	return c.token
}

func (c *Client) Get(ctx context.Context, path string) *RawResponse {
	return c.do(ctx, http.MethodGet, path, nil)
}

func (c *Client) Post(ctx context.Context, path string, body any) *RawResponse {
	return c.do(ctx, http.MethodPost, path, body)
}

func (c *Client) Put(ctx context.Context, path string, body any) *RawResponse {
	return c.do(ctx, http.MethodPut, path, body)
}

func (c *Client) do(ctx context.Context, method, path string, body any) *RawResponse {
	requestID := uuid.NewString()
	req := c.rc.R().
		SetContext(ctx).
		SetHeader(RequestIDHeaderName, requestID)
	if c.token != "" {
		req.SetAuthToken(c.token)
	}
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		problem := classifyError(err)
		c.log.Debug(ctx, "request failed", "method", method, "path", path,
			"request_id", requestID, "problem", problem.String(), "error", err)
		return &RawResponse{Problem: problem, Err: err}
	}

	status := resp.StatusCode()
	problem := classifyStatus(status)
	c.log.Debug(ctx, "request finished", "method", method, "path", path,
		"request_id", requestID, "status", status, "problem", problem.String())
	return &RawResponse{
		OK:      problem == ProblemNone,
		Status:  status,
		Problem: problem,
		Body:    resp.Body(),
	}
}

func classifyStatus(status int) Problem {
	switch {
	case status >= 200 && status < 300:
		return ProblemNone
	case status == http.StatusNotFound:
		return ProblemNotFound
	case status >= 500:
		return ProblemServer
	default:
		return ProblemClient
	}
}

func classifyError(err error) Problem {
	if errors.Is(err, context.DeadlineExceeded) {
		return ProblemTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return ProblemTimeout
		}
		return ProblemConnection
	}
	return ProblemBadData
}
