package core

import (
	"io"
	"strings"

	"github.com/google/uuid"
)

// Request is a wire-level HTTP request description.
type Request struct {
	id       string
	method   string
	endpoint string
	headers  *Headers
	body     Body
}

// NewRequest creates a request with a fresh ID. The endpoint is not
// checked; an empty or malformed one fails when the request is sent.
func NewRequest(method, endpoint string) *Request {
	return &Request{
		id:       uuid.New().String(),
		method:   method,
		endpoint: endpoint,
		headers:  NewHeaders(),
		body:     NewEmptyBody(),
	}
}

func (r *Request) ID() string        { return r.id }
func (r *Request) Method() string    { return r.method }
func (r *Request) Endpoint() string  { return r.endpoint }
func (r *Request) Headers() *Headers { return r.headers }
func (r *Request) Body() Body        { return r.body }

// AddHeader appends a header line. Repeated names are all sent.
func (r *Request) AddHeader(name, value string) {
	r.headers.Add(name, value)
}

func (r *Request) SetBody(body Body) {
	r.body = body
}

// HeaderField is one header line as it goes on the wire.
type HeaderField struct {
	Name  string
	Value string
}

// Headers is an ordered list of header lines. Name lookups ignore case.
type Headers struct {
	fields []HeaderField
}

// NewHeaders creates an empty header list.
func NewHeaders() *Headers {
	return &Headers{}
}

func (h *Headers) Add(name, value string) {
	h.fields = append(h.fields, HeaderField{Name: name, Value: value})
}

// Get returns the first value for name, or "".
func (h *Headers) Get(name string) string {
	for _, f := range h.fields {
		if strings.EqualFold(f.Name, name) {
			return f.Value
		}
	}
	return ""
}

// Values returns every value for name in insertion order.
func (h *Headers) Values(name string) []string {
	var values []string
	for _, f := range h.fields {
		if strings.EqualFold(f.Name, name) {
			values = append(values, f.Value)
		}
	}
	return values
}

// Names returns each distinct name once, with the casing it was first added with.
func (h *Headers) Names() []string {
	var names []string
	for _, f := range h.fields {
		seen := false
		for _, n := range names {
			if strings.EqualFold(n, f.Name) {
				seen = true
				break
			}
		}
		if !seen {
			names = append(names, f.Name)
		}
	}
	return names
}

// Fields returns a copy of the header lines.
func (h *Headers) Fields() []HeaderField {
	return append([]HeaderField(nil), h.fields...)
}

// Body is a request or response payload.
type Body interface {
	ContentType() string
	IsEmpty() bool
	String() string
	Reader() io.Reader
}

type rawBody struct {
	content     []byte
	contentType string
}

// NewEmptyBody returns a body with no content and no content type.
func NewEmptyBody() Body {
	return rawBody{}
}

// NewRawBody wraps content. An empty content type means no Content-Type
// header is sent for it.
func NewRawBody(content []byte, contentType string) Body {
	return rawBody{content: content, contentType: contentType}
}

func (b rawBody) ContentType() string { return b.contentType }
func (b rawBody) IsEmpty() bool       { return len(b.content) == 0 }
func (b rawBody) String() string      { return string(b.content) }
func (b rawBody) Reader() io.Reader   { return strings.NewReader(string(b.content)) }

// Status is the status line of a response.
type Status struct {
	code int
	text string
}

// NewStatus creates a status from a code and its full status text, for
// example 200 and "200 OK".
func NewStatus(code int, text string) *Status {
	return &Status{code: code, text: text}
}

func (s *Status) Code() int    { return s.code }
func (s *Status) Text() string { return s.text }
