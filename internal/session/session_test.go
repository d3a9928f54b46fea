package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/artpar/reqscope/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeText(s *Session, text string) {
	for _, r := range text {
		s.Apply(Insert(r))
	}
}

func focusOn(s *Session, target Focus) {
	for s.Fields.Focus != target {
		s.Apply(Event{Kind: EventNextFocus})
	}
}

func drain(t *testing.T, s *Session) {
	t.Helper()
	require.Eventually(t, s.Drain, 2*time.Second, 5*time.Millisecond)
}

func TestNew(t *testing.T) {
	s := New(nil)
	assert.Equal(t, Placeholder, s.Response)
	assert.Equal(t, FocusURL, s.Fields.Focus)
	assert.Equal(t, ScrollState{}, s.Scroll)
	assert.False(t, s.Drain())
}

func TestSession_Editing(t *testing.T) {
	t.Run("typing goes to the focused field", func(t *testing.T) {
		s := New(nil)
		typeText(s, "http://x")
		focusOn(s, FocusParams)
		typeText(s, "a:1")
		focusOn(s, FocusAuthInput)
		typeText(s, "tok")
		focusOn(s, FocusHeaders)
		typeText(s, "H:v")
		focusOn(s, FocusBody)
		typeText(s, "{}")

		f := s.Fields
		assert.Equal(t, "http://x", f.URL.Value())
		assert.Equal(t, "a:1", f.Params.Value())
		assert.Equal(t, "tok", f.AuthInput.Value())
		assert.Equal(t, "H:v", f.Headers.Value())
		assert.Equal(t, "{}", f.Body.Value())
	})

	t.Run("typing on auth type and send is ignored", func(t *testing.T) {
		s := New(nil)
		focusOn(s, FocusAuthType)
		typeText(s, "xyz")
		s.Apply(Event{Kind: EventDeleteLast})
		focusOn(s, FocusSend)
		typeText(s, "xyz")
		s.Apply(Event{Kind: EventDeleteLast})

		f := s.Fields
		for _, v := range []string{f.URL.Value(), f.Params.Value(), f.AuthInput.Value(), f.Headers.Value(), f.Body.Value()} {
			assert.Equal(t, "", v)
		}
		assert.Equal(t, "None", f.AuthType.Value())
	})

	t.Run("backspace removes from focused field", func(t *testing.T) {
		s := New(nil)
		typeText(s, "abc")
		s.Apply(Event{Kind: EventDeleteLast})
		assert.Equal(t, "ab", s.Fields.URL.Value())
	})

	t.Run("enter in body inserts newline", func(t *testing.T) {
		s := New(nil)
		focusOn(s, FocusBody)
		typeText(s, "a")
		s.Apply(Event{Kind: EventActivate})
		typeText(s, "b")
		assert.Equal(t, "a\nb", s.Fields.Body.Value())
	})

	t.Run("enter elsewhere is a no-op", func(t *testing.T) {
		tr := &fakeTransport{sendFunc: respondWith(200, "")}
		s := New(NewDispatcher(tr, 0))
		s.Apply(Event{Kind: EventActivate})
		assert.Equal(t, "", s.Fields.URL.Value())
		time.Sleep(20 * time.Millisecond)
		assert.Empty(t, tr.sent())
	})
}

func TestSession_Selection(t *testing.T) {
	t.Run("left and right on url change method", func(t *testing.T) {
		s := New(nil)
		s.Apply(Event{Kind: EventStepRight})
		s.Apply(Event{Kind: EventStepRight})
		assert.Equal(t, "PUT", s.Fields.Method.Value())
		s.Apply(Event{Kind: EventStepLeft})
		assert.Equal(t, "POST", s.Fields.Method.Value())
		assert.Equal(t, "None", s.Fields.AuthType.Value())
	})

	t.Run("left and right on auth type change auth", func(t *testing.T) {
		s := New(nil)
		focusOn(s, FocusAuthType)
		for i := 0; i < 5; i++ {
			s.Apply(Event{Kind: EventStepRight})
		}
		assert.Equal(t, "Basic", s.Fields.AuthType.Value())
		assert.Equal(t, "GET", s.Fields.Method.Value())
	})

	t.Run("left and right elsewhere are no-ops", func(t *testing.T) {
		s := New(nil)
		for _, f := range []Focus{FocusParams, FocusAuthInput, FocusHeaders, FocusBody, FocusSend} {
			focusOn(s, f)
			s.Apply(Event{Kind: EventStepRight})
		}
		assert.Equal(t, "GET", s.Fields.Method.Value())
		assert.Equal(t, "None", s.Fields.AuthType.Value())
	})
}

func TestSession_Scroll(t *testing.T) {
	t.Run("scroll routes to response outside body", func(t *testing.T) {
		s := New(nil)
		s.Apply(Event{Kind: EventScrollDown})
		s.Apply(Event{Kind: EventScrollDown})
		assert.Equal(t, ScrollState{Response: 2}, s.Scroll)
	})

	t.Run("scroll routes to body on body", func(t *testing.T) {
		s := New(nil)
		focusOn(s, FocusBody)
		s.Apply(Event{Kind: EventScrollDown})
		assert.Equal(t, ScrollState{Body: 1}, s.Scroll)
	})

	t.Run("scroll up saturates at zero", func(t *testing.T) {
		s := New(nil)
		s.Apply(Event{Kind: EventScrollUp})
		focusOn(s, FocusBody)
		s.Apply(Event{Kind: EventScrollUp})
		assert.Equal(t, ScrollState{}, s.Scroll)
	})
}

func TestSession_Quit(t *testing.T) {
	s := New(nil)
	assert.False(t, s.Apply(Insert('a')))
	assert.True(t, s.Apply(Event{Kind: EventQuit}))
}

func TestSession_Dispatch(t *testing.T) {
	t.Run("successful send replaces response and resets scroll", func(t *testing.T) {
		tr := &fakeTransport{sendFunc: respondWith(200, `{"k":"v"}`)}
		s := New(NewDispatcher(tr, time.Second))
		typeText(s, "http://example/ok")
		s.Apply(Event{Kind: EventScrollDown})
		s.Apply(Event{Kind: EventScrollDown})

		focusOn(s, FocusSend)
		s.Apply(Event{Kind: EventActivate})
		drain(t, s)

		assert.Equal(t, "Status: 200\n\n{\n  \"k\": \"v\"\n}", s.Response)
		assert.Equal(t, 0, s.Scroll.Response)
		require.Len(t, tr.sent(), 1)
		assert.Equal(t, "GET", tr.sent()[0].Method())
	})

	t.Run("transport failure replaces previous text entirely", func(t *testing.T) {
		tr := &fakeTransport{sendFunc: respondWith(200, "first")}
		s := New(NewDispatcher(tr, time.Second))
		typeText(s, "http://example/ok")
		focusOn(s, FocusSend)
		s.Apply(Event{Kind: EventActivate})
		drain(t, s)
		require.Equal(t, "Status: 200\n\nfirst", s.Response)

		tr.sendFunc = failWith(errors.New("connection refused"))
		s.Apply(Event{Kind: EventActivate})
		drain(t, s)

		assert.Equal(t, "Request failed: connection refused", s.Response)
	})

	t.Run("empty url still dispatches", func(t *testing.T) {
		tr := &fakeTransport{sendFunc: failWith(errors.New("unsupported protocol scheme"))}
		s := New(NewDispatcher(tr, time.Second))
		focusOn(s, FocusSend)
		s.Apply(Event{Kind: EventActivate})
		drain(t, s)

		assert.Equal(t, "Request failed: unsupported protocol scheme", s.Response)
		require.Len(t, tr.sent(), 1)
		assert.Equal(t, "", tr.sent()[0].Endpoint())
	})

	t.Run("edits after send do not reach the request", func(t *testing.T) {
		release := make(chan struct{})
		tr := &fakeTransport{}
		tr.sendFunc = func(ctx context.Context, req *core.Request) (*core.Response, error) {
			<-release
			return respondWith(200, "")(ctx, req)
		}
		s := New(NewDispatcher(tr, 0))
		typeText(s, "http://a")
		focusOn(s, FocusSend)
		s.Apply(Event{Kind: EventActivate})

		focusOn(s, FocusURL)
		typeText(s, "/changed")
		close(release)
		drain(t, s)

		require.Len(t, tr.sent(), 1)
		assert.Equal(t, "http://a", tr.sent()[0].Endpoint())
	})

	t.Run("drain applies one response per call", func(t *testing.T) {
		tr := &fakeTransport{sendFunc: respondWith(200, "x")}
		s := New(NewDispatcher(tr, 0))
		focusOn(s, FocusSend)
		s.Apply(Event{Kind: EventActivate})
		s.Apply(Event{Kind: EventActivate})

		drain(t, s)
		drain(t, s)
		assert.False(t, s.Drain())
	})
}
