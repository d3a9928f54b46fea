package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/artpar/reqscope/internal/core"
	"github.com/artpar/reqscope/internal/logging"
	"go.uber.org/zap"
)

// Transport sends one request and returns its response.
type Transport interface {
	Send(ctx context.Context, req *core.Request) (*core.Response, error)
}

// Dispatcher runs requests in the background and hands formatted results
// back through a one-slot channel.
type Dispatcher struct {
	transport Transport
	timeout   time.Duration
	results   chan string
}

// NewDispatcher creates a dispatcher. A zero timeout means requests are
// bounded only by the transport.
func NewDispatcher(transport Transport, timeout time.Duration) *Dispatcher {
	return &Dispatcher{
		transport: transport,
		timeout:   timeout,
		results:   make(chan string, 1),
	}
}

// Dispatch starts one request for the snapshot. It returns immediately.
func (d *Dispatcher) Dispatch(s Snapshot) {
	go func() {
		d.results <- d.execute(s)
	}()
}

// TryReceive returns a completed result if one is waiting. It never blocks.
func (d *Dispatcher) TryReceive() (string, bool) {
	select {
	case text := <-d.results:
		return text, true
	default:
		return "", false
	}
}

func (d *Dispatcher) execute(s Snapshot) string {
	req := Build(s)

	ctx := context.Background()
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	logging.Info("dispatching request",
		zap.String("request_id", req.ID()),
		zap.String("method", req.Method()),
		zap.String("url", req.Endpoint()),
	)

	start := time.Now()
	resp, err := d.transport.Send(ctx, req)
	if err != nil {
		logging.Warn("request failed",
			zap.String("request_id", req.ID()),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
	} else {
		logging.Info("request completed",
			zap.String("request_id", resp.RequestID()),
			zap.String("status", resp.Status().Text()),
			zap.String("content_type", resp.Headers().Get("Content-Type")),
			zap.Duration("transfer", resp.Timing().Total),
			zap.Duration("elapsed", time.Since(start)),
		)
	}

	return FormatResult(resp, err)
}

// FormatResult renders a transport outcome as response text.
func FormatResult(resp *core.Response, err error) string {
	if err != nil {
		var readErr *core.BodyReadError
		if errors.As(err, &readErr) {
			return fmt.Sprintf("Error reading body: %v", readErr.Err)
		}
		return fmt.Sprintf("Request failed: %v", err)
	}

	return fmt.Sprintf("Status: %d\n\n%s", resp.Status().Code(), PrettyBody(resp.Body().String()))
}

// PrettyBody re-indents body when it is a single valid JSON value and
// returns it unchanged otherwise. Object keys come out sorted.
func PrettyBody(body string) string {
	if !json.Valid([]byte(body)) {
		return body
	}

	dec := json.NewDecoder(strings.NewReader(body))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return body
	}

	var out strings.Builder
	enc := json.NewEncoder(&out)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return body
	}
	return strings.TrimSuffix(out.String(), "\n")
}
