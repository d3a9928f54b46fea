package http

import (
	"context"
	"crypto/tls"
	"io"
	"net/http"
	"net/http/cookiejar"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/publicsuffix"

	"github.com/artpar/reqscope/internal/core"
	"github.com/artpar/reqscope/internal/logging"
)

// Client sends core requests over net/http.
type Client struct {
	httpClient *http.Client
}

// Option is a function that configures the Client.
type Option func(*Client)

// NewClient creates a new HTTP client with the given options. Each client
// owns an in-memory cookie jar, so cookies live as long as the session.
func NewClient(opts ...Option) *Client {
	client := &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	jar, err := cookiejar.New(&cookiejar.Options{
		PublicSuffixList: publicsuffix.List,
	})
	if err != nil {
		logging.Warn("cookie jar unavailable, sending without cookies", zap.Error(err))
	} else {
		client.httpClient.Jar = jar
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// WithTimeout sets the request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithNoRedirects disables automatic redirect following.
func WithNoRedirects() Option {
	return func(c *Client) {
		c.httpClient.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}
}

// WithInsecureTLS skips server certificate verification.
func WithInsecureTLS() Option {
	return func(c *Client) {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
		c.httpClient.Transport = transport
	}
}

// Send executes an HTTP request and returns the response. Failures before
// a status is received are returned as-is; a failure while reading the body
// is returned as *core.BodyReadError.
func (c *Client) Send(ctx context.Context, req *core.Request) (*core.Response, error) {
	startTime := time.Now()

	httpReq, err := c.toHTTPRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	status := core.NewStatus(httpResp.StatusCode, httpResp.Status)

	bodyBytes, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &core.BodyReadError{Status: status, Err: err}
	}

	endTime := time.Now()

	return c.fromHTTPResponse(req, status, httpResp, bodyBytes, startTime, endTime), nil
}

// toHTTPRequest converts a core.Request to an http.Request.
func (c *Client) toHTTPRequest(ctx context.Context, req *core.Request) (*http.Request, error) {
	var bodyReader io.Reader
	if !req.Body().IsEmpty() {
		bodyReader = req.Body().Reader()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method(), req.Endpoint(), bodyReader)
	if err != nil {
		return nil, err
	}

	for _, f := range req.Headers().Fields() {
		httpReq.Header.Add(f.Name, f.Value)
	}

	if ct := req.Body().ContentType(); ct != "" && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", ct)
	}

	return httpReq, nil
}

// fromHTTPResponse converts an http.Response to a core.Response.
func (c *Client) fromHTTPResponse(req *core.Request, status *core.Status, httpResp *http.Response, bodyBytes []byte, startTime, endTime time.Time) *core.Response {
	headers := core.NewHeaders()
	for key, values := range httpResp.Header {
		for _, value := range values {
			headers.Add(key, value)
		}
	}

	var body core.Body
	if len(bodyBytes) > 0 {
		body = core.NewRawBody(bodyBytes, httpResp.Header.Get("Content-Type"))
	} else {
		body = core.NewEmptyBody()
	}

	timing := core.Timing{
		StartTime: startTime,
		EndTime:   endTime,
		Total:     endTime.Sub(startTime),
	}

	return core.NewResponse(req.ID(), status).
		WithHeaders(headers).
		WithBody(body).
		WithTiming(timing)
}
