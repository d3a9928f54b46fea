// Package session holds the interactive request form: field editing, focus
// movement, scroll offsets and the background dispatch of requests.
//
// All state is owned by the goroutine that calls Apply and Drain. Requests
// run on their own goroutines and only ever see a Snapshot; their results
// come back through the Dispatcher.
package session

// Placeholder is the response text shown before the first request completes.
const Placeholder = "Enter a URL and press Send"

// EventKind is a logical input event.
type EventKind int

const (
	EventInsert EventKind = iota
	EventDeleteLast
	EventNextFocus
	EventPrevFocus
	EventStepLeft
	EventStepRight
	EventScrollUp
	EventScrollDown
	EventActivate
	EventQuit
)

// Event is one input event. Rune is set only for EventInsert.
type Event struct {
	Kind EventKind
	Rune rune
}

// Insert returns an EventInsert for r.
func Insert(r rune) Event {
	return Event{Kind: EventInsert, Rune: r}
}

// Session is the single owner of the form, scroll state and response text.
type Session struct {
	Fields   *FieldSet
	Scroll   ScrollState
	Response string

	dispatcher *Dispatcher
}

// New creates a session that sends requests through dispatcher.
func New(dispatcher *Dispatcher) *Session {
	return &Session{
		Fields:     NewFieldSet(),
		Response:   Placeholder,
		dispatcher: dispatcher,
	}
}

// Apply applies one input event. It reports whether the session should end.
func (s *Session) Apply(ev Event) (quit bool) {
	f := s.Fields

	switch ev.Kind {
	case EventInsert:
		if e := f.editable(); e != nil {
			e.Append(ev.Rune)
		}

	case EventDeleteLast:
		if e := f.editable(); e != nil {
			e.DeleteLast()
		}

	case EventNextFocus:
		f.Focus = f.Focus.Next()

	case EventPrevFocus:
		f.Focus = f.Focus.Prev()

	case EventStepLeft:
		if sel := f.selectable(); sel != nil {
			sel.StepLeft()
		}

	case EventStepRight:
		if sel := f.selectable(); sel != nil {
			sel.StepRight()
		}

	case EventScrollUp:
		scrollUp(s.scrollTarget())

	case EventScrollDown:
		scrollDown(s.scrollTarget())

	case EventActivate:
		switch f.Focus {
		case FocusBody:
			f.Body.Append('\n')
		case FocusSend:
			s.Send()
		}

	case EventQuit:
		return true
	}

	return false
}

// Send dispatches the current form regardless of its contents.
func (s *Session) Send() {
	if s.dispatcher == nil {
		return
	}
	s.dispatcher.Dispatch(s.Fields.Snapshot())
}

// Drain applies at most one completed response. It never blocks and
// reports whether the response text changed.
func (s *Session) Drain() bool {
	if s.dispatcher == nil {
		return false
	}
	text, ok := s.dispatcher.TryReceive()
	if !ok {
		return false
	}
	s.Response = text
	s.Scroll.Response = 0
	return true
}

func (s *Session) scrollTarget() *int {
	if s.Fields.Focus == FocusBody {
		return &s.Scroll.Body
	}
	return &s.Scroll.Response
}
