// Package apiclient is a thin HTTP client for API tests. It centralizes the base URL, default
// headers, timeout, retries and request logging, and returns raw responses: checking them is
// up to the test.
package apiclient

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	DefaultTimeout    = 30 * time.Second
	DefaultRetryDelay = time.Second
)

type Options struct {
	BaseURL    string
	Headers    map[string]string
	Timeout    time.Duration
	RetryCount int
	RetryDelay time.Duration
	Logger     *zap.Logger
}

type Client struct {
	http    *resty.Client
	baseURL string
	logger  *zap.Logger
}

// RequestOption customizes a single request.
type RequestOption func(*resty.Request)

func WithQuery(key, value string) RequestOption {
	return func(r *resty.Request) { r.SetQueryParam(key, value) }
}

func WithHeader(key, value string) RequestOption {
	return func(r *resty.Request) { r.SetHeader(key, value) }
}

// WithResult decodes a successful JSON response body into v.
func WithResult(v interface{}) RequestOption {
	return func(r *resty.Request) { r.SetResult(v).ForceContentType("application/json") }
}

// WithError decodes an unsuccessful JSON response body into v.
func WithError(v interface{}) RequestOption {
	return func(r *resty.Request) { r.SetError(v).ForceContentType("application/json") }
}

func New(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = DefaultRetryDelay
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	logger = logger.Named("api").With(zap.String("base_url", baseURL))

	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(opts.Timeout).
		SetRetryCount(opts.RetryCount).
		SetRetryWaitTime(opts.RetryDelay).
		SetRetryMaxWaitTime(opts.RetryDelay*4).
		SetHeader("Accept", "application/json").
		AddRetryCondition(shouldRetry)
	for k, v := range opts.Headers {
		httpClient.SetHeader(k, v)
	}

	c := &Client{http: httpClient, baseURL: baseURL, logger: logger}
	httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		c.logger.Debug("Request", zap.String("method", req.Method), zap.String("path", req.URL),
			zap.Any("query", req.QueryParam), zap.Any("body", req.Body))
		return nil
	})
	httpClient.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		c.logger.Info("Response",
			zap.String("method", resp.Request.Method),
			zap.String("url", resp.Request.URL),
			zap.Int("status", resp.StatusCode()),
			zap.Duration("elapsed", resp.Time()))
		if ce := c.logger.Check(zap.DebugLevel, "Response body"); ce != nil {
			ce.Write(zap.ByteString("body", resp.Body()))
		}
		return nil
	})
	logger.Info("API client initialized", zap.Duration("timeout", opts.Timeout), zap.Int("retries", opts.RetryCount))
	return c
}

// shouldRetry retries transport errors, rate limiting and server errors. A request whose
// context was cancelled or timed out is not retried.
func shouldRetry(resp *resty.Response, err error) bool {
	if err != nil {
		return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
	}
	if resp == nil {
		return false
	}
	return resp.StatusCode() == http.StatusTooManyRequests || resp.StatusCode() >= 500
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// R starts a request with the client's defaults, for cases the helpers do not cover.
func (c *Client) R(ctx context.Context) *resty.Request {
	return c.http.R().SetContext(ctx)
}

func (c *Client) Get(ctx context.Context, path string, opts ...RequestOption) (*resty.Response, error) {
	return c.do(ctx, http.MethodGet, path, nil, opts)
}

// Post sends body as JSON.
func (c *Client) Post(ctx context.Context, path string, body interface{}, opts ...RequestOption) (*resty.Response, error) {
	return c.do(ctx, http.MethodPost, path, body, opts)
}

func (c *Client) Put(ctx context.Context, path string, body interface{}, opts ...RequestOption) (*resty.Response, error) {
	return c.do(ctx, http.MethodPut, path, body, opts)
}

func (c *Client) Patch(ctx context.Context, path string, body interface{}, opts ...RequestOption) (*resty.Response, error) {
	return c.do(ctx, http.MethodPatch, path, body, opts)
}

func (c *Client) Delete(ctx context.Context, path string, opts ...RequestOption) (*resty.Response, error) {
	return c.do(ctx, http.MethodDelete, path, nil, opts)
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, opts []RequestOption) (*resty.Response, error) {
	req := c.R(ctx)
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}
	for _, o := range opts {
		o(req)
	}
	resp, err := req.Execute(method, path)
	if err != nil {
		c.logger.Warn("Request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
	}
	return resp, err
}
