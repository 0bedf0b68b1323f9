package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/compozy/foodietour/pkg/logger"
)

const (
	defaultTimeout    = 30 * time.Second
	defaultRetryCount = 3
	defaultUserAgent  = "foodietour"
	requestIDHeader   = "X-Request-ID"
)

// Client talks to the hosted Julep REST API.
type Client struct {
	http    *resty.Client
	baseURL string
	apiKey  string
}

// Builder configures a Client.
type Builder struct {
	endpoint   string
	apiKey     string
	timeout    time.Duration
	retryCount int
	userAgent  string
	httpClient *http.Client
}

// New starts building a client for the API rooted at endpoint.
func New(endpoint string) *Builder {
	return &Builder{
		endpoint:   endpoint,
		timeout:    defaultTimeout,
		retryCount: defaultRetryCount,
		userAgent:  defaultUserAgent,
	}
}

func (b *Builder) WithAPIKey(key string) *Builder {
	b.apiKey = key
	return b
}

func (b *Builder) WithTimeout(timeout time.Duration) *Builder {
	b.timeout = timeout
	return b
}

// WithRetryCount sets how many times a transient failure is retried by the
// transport. Zero disables retries.
func (b *Builder) WithRetryCount(count int) *Builder {
	b.retryCount = count
	return b
}

func (b *Builder) WithUserAgent(userAgent string) *Builder {
	b.userAgent = userAgent
	return b
}

// WithHTTPClient swaps the underlying *http.Client, mostly for tests.
func (b *Builder) WithHTTPClient(httpClient *http.Client) *Builder {
	b.httpClient = httpClient
	return b
}

// Build validates the configuration and returns a ready Client.
func (b *Builder) Build(ctx context.Context) (*Client, error) {
	if b == nil {
		return nil, fmt.Errorf("client builder is nil")
	}
	if ctx == nil {
		return nil, fmt.Errorf("context is required")
	}
	endpoint := strings.TrimSpace(b.endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("endpoint is required")
	}
	parsed, err := url.Parse(endpoint)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, fmt.Errorf("endpoint url must be valid http(s) url: %q", endpoint)
	}
	apiKey := strings.TrimSpace(b.apiKey)
	if apiKey == "" {
		return nil, fmt.Errorf("api key is required")
	}
	if b.timeout <= 0 {
		return nil, fmt.Errorf("timeout must be positive")
	}
	if b.retryCount < 0 {
		return nil, fmt.Errorf("retry count must not be negative")
	}
	baseURL := strings.TrimRight(parsed.String(), "/")
	rc := resty.New()
	if b.httpClient != nil {
		rc = resty.NewWithClient(b.httpClient)
	}
	rc.SetBaseURL(baseURL).
		SetTimeout(b.timeout).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json").
		SetHeader("User-Agent", b.userAgent).
		SetAuthToken(apiKey).
		SetRetryCount(b.retryCount).
		SetRetryWaitTime(200 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		AddRetryCondition(retryCondition)
	rc.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		if req.Header.Get(requestIDHeader) == "" {
			req.SetHeader(requestIDHeader, uuid.NewString())
		}
		return nil
	})
	logger.FromContext(ctx).Debug("julep client ready", "base_url", baseURL, "retries", b.retryCount)
	return &Client{http: rc, baseURL: baseURL, apiKey: apiKey}, nil
}

// BaseURL returns the API root the client sends requests to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// retryCondition retries reads on transport errors, timeouts, throttling and
// server errors. Writes are only retried when throttled, since a create call
// that reached the server may already have taken effect.
func retryCondition(r *resty.Response, err error) bool {
	idempotent := r == nil || r.Request == nil || r.Request.Method == http.MethodGet
	if err != nil {
		return idempotent
	}
	if r == nil {
		return false
	}
	code := r.StatusCode()
	if code == http.StatusTooManyRequests {
		return true
	}
	return idempotent && (code >= 500 || code == http.StatusRequestTimeout)
}

type request struct {
	operation  string
	method     string
	path       string
	pathParams map[string]string
	body       any
	expected   []int
}

func (c *Client) send(ctx context.Context, req request, out any) error {
	if c == nil || c.http == nil {
		return fmt.Errorf("client is not initialized")
	}
	if ctx == nil {
		return fmt.Errorf("context is required")
	}
	r := c.http.R().SetContext(ctx)
	if len(req.pathParams) > 0 {
		r.SetPathParams(req.pathParams)
	}
	if req.body != nil {
		r.SetBody(req.body)
	}
	resp, err := r.Execute(req.method, req.path)
	if err != nil {
		return &NetworkError{Operation: req.operation, Cause: err}
	}
	if !statusAllowed(resp.StatusCode(), req.expected) {
		return toAPIError(req.operation, resp)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("%s: decode response: %w", req.operation, err)
	}
	return nil
}

func statusAllowed(status int, allowed []int) bool {
	if len(allowed) == 0 {
		return status >= 200 && status < 300
	}
	for _, code := range allowed {
		if status == code {
			return true
		}
	}
	return false
}

func requireID(label, id string) (string, error) {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return "", fmt.Errorf("%s id is required", label)
	}
	return trimmed, nil
}
