package session

import (
	"unicode/utf8"

	"github.com/artpar/reqscope/internal/core"
)

// Focus identifies the field that receives input. The cycle order is the
// declaration order; Method is not part of it.
type Focus int

const (
	FocusURL Focus = iota
	FocusParams
	FocusAuthType
	FocusAuthInput
	FocusHeaders
	FocusBody
	FocusSend

	focusCount = int(FocusSend) + 1
)

var focusNames = [...]string{
	FocusURL:       "URL",
	FocusParams:    "Params",
	FocusAuthType:  "Auth",
	FocusAuthInput: "Token/Username:Password",
	FocusHeaders:   "Headers",
	FocusBody:      "Body",
	FocusSend:      "Send",
}

func (f Focus) String() string {
	return focusNames[f.normalize()]
}

func (f Focus) normalize() Focus {
	n := int(f) % focusCount
	if n < 0 {
		n += focusCount
	}
	return Focus(n)
}

// Next returns the following focus target, wrapping Send back to URL.
func (f Focus) Next() Focus {
	return Focus(int(f)+1).normalize()
}

// Prev is the inverse of Next.
func (f Focus) Prev() Focus {
	return Focus(int(f)-1).normalize()
}

// EditableField is an append-only text buffer.
type EditableField struct {
	buf []rune
}

func (e *EditableField) Append(r rune) {
	e.buf = append(e.buf, r)
}

// DeleteLast removes the last rune. It is a no-op on an empty buffer.
func (e *EditableField) DeleteLast() {
	if len(e.buf) == 0 {
		return
	}
	e.buf = e.buf[:len(e.buf)-1]
}

// SetValue replaces the buffer contents.
func (e *EditableField) SetValue(s string) {
	e.buf = e.buf[:0]
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		e.buf = append(e.buf, r)
		s = s[size:]
	}
}

func (e *EditableField) Value() string {
	return string(e.buf)
}

func (e *EditableField) Len() int {
	return len(e.buf)
}

// SelectableField is a bounded index into a fixed option list.
type SelectableField struct {
	options []string
	index   int
}

// NewSelectableField creates a field positioned on the first option.
func NewSelectableField(options ...string) SelectableField {
	return SelectableField{options: options}
}

// StepLeft moves to the previous option; no-op at the first one.
func (s *SelectableField) StepLeft() {
	if s.index > 0 {
		s.index--
	}
}

// StepRight moves to the next option; no-op at the last one.
func (s *SelectableField) StepRight() {
	if s.index < len(s.options)-1 {
		s.index++
	}
}

// Select moves to the named option. It reports whether the option exists.
func (s *SelectableField) Select(option string) bool {
	for i, o := range s.options {
		if o == option {
			s.index = i
			return true
		}
	}
	return false
}

func (s *SelectableField) Index() int {
	return s.index
}

func (s *SelectableField) Value() string {
	if len(s.options) == 0 {
		return ""
	}
	return s.options[s.index]
}

func (s *SelectableField) Options() []string {
	out := make([]string, len(s.options))
	copy(out, s.options)
	return out
}

// ScrollState holds the response and body scroll offsets.
type ScrollState struct {
	Response int
	Body     int
}

func scrollUp(offset *int) {
	if *offset > 0 {
		*offset--
	}
}

func scrollDown(offset *int) {
	*offset++
}

// Methods lists the selectable HTTP methods in display order.
var Methods = []string{"GET", "POST", "PUT", "DELETE", "PATCH"}

// FieldSet is the full editable state of the request form.
type FieldSet struct {
	URL       EditableField
	Params    EditableField
	Headers   EditableField
	AuthInput EditableField
	Body      EditableField
	AuthType  SelectableField
	Method    SelectableField
	Focus     Focus
}

// NewFieldSet creates an empty form focused on URL with GET and no auth.
func NewFieldSet() *FieldSet {
	authTypes := core.AuthTypes()
	authOptions := make([]string, len(authTypes))
	for i, a := range authTypes {
		authOptions[i] = string(a)
	}

	return &FieldSet{
		AuthType: NewSelectableField(authOptions...),
		Method:   NewSelectableField(Methods...),
		Focus:    FocusURL,
	}
}

// editable returns the text buffer behind the current focus, or nil when
// the focus is AuthType or Send.
func (fs *FieldSet) editable() *EditableField {
	switch fs.Focus {
	case FocusURL:
		return &fs.URL
	case FocusParams:
		return &fs.Params
	case FocusAuthInput:
		return &fs.AuthInput
	case FocusHeaders:
		return &fs.Headers
	case FocusBody:
		return &fs.Body
	}
	return nil
}

// selectable returns the option field that left/right act on for the
// current focus: Method while on URL, AuthType while on AuthType.
func (fs *FieldSet) selectable() *SelectableField {
	switch fs.Focus {
	case FocusURL:
		return &fs.Method
	case FocusAuthType:
		return &fs.AuthType
	}
	return nil
}

// Snapshot copies every value the request builder needs.
func (fs *FieldSet) Snapshot() Snapshot {
	return Snapshot{
		Method:    fs.Method.Value(),
		URL:       fs.URL.Value(),
		Params:    fs.Params.Value(),
		Headers:   fs.Headers.Value(),
		Body:      fs.Body.Value(),
		AuthType:  core.AuthType(fs.AuthType.Value()),
		AuthInput: fs.AuthInput.Value(),
	}
}
