package core

import (
	"fmt"
	"time"
)

// Timing holds when a request started and finished.
type Timing struct {
	StartTime time.Time
	EndTime   time.Time
	Total     time.Duration
}

// Response is the result of a completed request.
type Response struct {
	requestID string
	status    *Status
	headers   *Headers
	body      Body
	timing    Timing
}

// NewResponse creates a new response for the given request ID.
func NewResponse(requestID string, status *Status) *Response {
	return &Response{
		requestID: requestID,
		status:    status,
		headers:   NewHeaders(),
		body:      NewEmptyBody(),
	}
}

func (r *Response) RequestID() string {
	return r.requestID
}

func (r *Response) Status() *Status {
	return r.status
}

func (r *Response) Headers() *Headers {
	return r.headers
}

func (r *Response) Body() Body {
	return r.body
}

func (r *Response) Timing() Timing {
	return r.timing
}

// WithHeaders sets the response headers and returns the response for chaining.
func (r *Response) WithHeaders(h *Headers) *Response {
	r.headers = h
	return r
}

// WithBody sets the response body and returns the response for chaining.
func (r *Response) WithBody(b Body) *Response {
	r.body = b
	return r
}

// WithTiming sets the timing info and returns the response for chaining.
func (r *Response) WithTiming(t Timing) *Response {
	r.timing = t
	return r
}

// BodyReadError reports a failure to read a response body after the
// request itself was sent and a status was received.
type BodyReadError struct {
	Status *Status
	Err    error
}

func (e *BodyReadError) Error() string {
	if e.Status != nil {
		return fmt.Sprintf("reading body of %d response: %v", e.Status.Code(), e.Err)
	}
	return fmt.Sprintf("reading body: %v", e.Err)
}

func (e *BodyReadError) Unwrap() error {
	return e.Err
}
