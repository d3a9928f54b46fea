package views

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/artpar/reqscope/internal/logging"
	"github.com/artpar/reqscope/internal/session"
	"github.com/artpar/reqscope/internal/tui"
	"github.com/artpar/reqscope/internal/tui/components"
)

const (
	pollInterval = 100 * time.Millisecond

	methodWidth = 14
	sendWidth   = 10
	rowHeight   = 3
	bodyHeight  = 7
)

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

// pollMsg wakes the loop so finished requests are picked up without input.
type pollMsg struct{}

// clearNotificationMsg is sent to clear the notification.
type clearNotificationMsg struct{}

type keyMap struct {
	Next     key.Binding
	Prev     key.Binding
	Left     key.Binding
	Right    key.Binding
	Up       key.Binding
	Down     key.Binding
	Activate key.Binding
	Delete   key.Binding
	Copy     key.Binding
	Quit     key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Left, k.Up, k.Activate, k.Copy, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Left, k.Right},
		{k.Up, k.Down, k.Activate, k.Delete},
		{k.Copy, k.Quit},
	}
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev field"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←/→", "change method/auth"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("←/→", "change method/auth"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑/↓", "scroll body/response"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↑/↓", "scroll body/response"),
		),
		Activate: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "send/newline"),
		),
		Delete: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("backspace", "delete"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "copy response"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
	}
}

// MainView renders the request form and drives the session from key input.
type MainView struct {
	session      *session.Session
	keys         keyMap
	help         help.Model
	styles       tui.Styles
	highlighter  *components.JSONHighlighter
	width        int
	height       int
	notification string
}

// NewMainView creates a view over s.
func NewMainView(s *session.Session) *MainView {
	return &MainView{
		session:     s,
		keys:        defaultKeyMap(),
		help:        help.New(),
		styles:      tui.DefaultStyles(),
		highlighter: components.NewJSONHighlighter(),
	}
}

func poll() tea.Cmd {
	return tea.Tick(pollInterval, func(time.Time) tea.Msg {
		return pollMsg{}
	})
}

// Init starts the poll tick.
func (v *MainView) Init() tea.Cmd {
	return poll()
}

// Update drains at most one finished request, then handles msg.
func (v *MainView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	v.session.Drain()

	switch msg := msg.(type) {
	case pollMsg:
		return v, poll()

	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.help.Width = msg.Width
		return v, nil

	case clearNotificationMsg:
		v.notification = ""
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

func (v *MainView) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var ev session.Event

	switch {
	case key.Matches(msg, v.keys.Quit):
		v.session.Apply(session.Event{Kind: session.EventQuit})
		return v, tea.Quit
	case key.Matches(msg, v.keys.Copy):
		return v.handleCopy(v.session.Response)
	case key.Matches(msg, v.keys.Next):
		ev.Kind = session.EventNextFocus
	case key.Matches(msg, v.keys.Prev):
		ev.Kind = session.EventPrevFocus
	case key.Matches(msg, v.keys.Left):
		ev.Kind = session.EventStepLeft
	case key.Matches(msg, v.keys.Right):
		ev.Kind = session.EventStepRight
	case key.Matches(msg, v.keys.Up):
		ev.Kind = session.EventScrollUp
	case key.Matches(msg, v.keys.Down):
		ev.Kind = session.EventScrollDown
	case key.Matches(msg, v.keys.Activate):
		ev.Kind = session.EventActivate
	case key.Matches(msg, v.keys.Delete):
		ev.Kind = session.EventDeleteLast
	case msg.Type == tea.KeySpace:
		v.session.Apply(session.Insert(' '))
		return v, nil
	case msg.Type == tea.KeyRunes && !msg.Alt:
		for _, r := range msg.Runes {
			v.session.Apply(session.Insert(r))
		}
		return v, nil
	default:
		return v, nil
	}

	if v.session.Apply(ev) {
		return v, tea.Quit
	}
	return v, nil
}

func (v *MainView) handleCopy(content string) (tea.Model, tea.Cmd) {
	if err := writeClipboard(content); err != nil {
		logging.Warn("clipboard copy failed", zap.Error(err))
		v.notification = "✗ Copy failed"
	} else {
		size := len(content)
		if size > 1024 {
			v.notification = fmt.Sprintf("✓ Copied %.1fKB", float64(size)/1024)
		} else {
			v.notification = fmt.Sprintf("✓ Copied %dB", size)
		}
	}

	return v, tea.Tick(2*time.Second, func(t time.Time) tea.Msg {
		return clearNotificationMsg{}
	})
}

// View renders the form.
func (v *MainView) View() string {
	if v.width == 0 || v.height == 0 {
		return ""
	}

	f := v.session.Fields
	half := v.width / 2
	responseHeight := max(v.height-3*rowHeight-bodyHeight-1, 0)

	top := lipgloss.JoinHorizontal(lipgloss.Top,
		tui.Block("Method", f.Method.Value(), methodWidth, rowHeight, v.styles.Method),
		tui.Block("URL", f.URL.Value(), max(v.width-methodWidth-sendWidth, 0), rowHeight, v.style(session.FocusURL)),
		tui.Block("", "Send", sendWidth, rowHeight, v.style(session.FocusSend)),
	)
	params := lipgloss.JoinHorizontal(lipgloss.Top,
		tui.Block("Params", f.Params.Value(), half, rowHeight, v.style(session.FocusParams)),
		tui.Block("Auth", f.AuthType.Value(), v.width-half, rowHeight, v.style(session.FocusAuthType)),
	)
	auth := lipgloss.JoinHorizontal(lipgloss.Top,
		tui.Block("Token/Username:Password", f.AuthInput.Value(), half, rowHeight, v.style(session.FocusAuthInput)),
		tui.Block("Headers", f.Headers.Value(), v.width-half, rowHeight, v.style(session.FocusHeaders)),
	)
	body := tui.Block("Body", v.bodyView(), v.width, bodyHeight, v.style(session.FocusBody))
	response := tui.Block("Response (↑/↓ to scroll)", v.responseView(responseHeight), v.width, responseHeight, v.styles.Response)

	return lipgloss.JoinVertical(lipgloss.Left, top, params, auth, body, response, v.renderHelpBar())
}

func (v *MainView) style(focus session.Focus) tui.BlockStyle {
	if v.session.Fields.Focus == focus {
		return tui.Uniform(v.styles.Focused)
	}
	return tui.Uniform(v.styles.Unfocused)
}

func (v *MainView) bodyView() string {
	vp := viewport.New(max(v.width-2, 0), bodyHeight-2)
	vp.SetContent(v.highlighter.Highlight(v.session.Fields.Body.Value()))
	vp.SetYOffset(v.session.Scroll.Body)
	return vp.View()
}

// responseView highlights and wraps the response before applying the
// scroll offset, so the offset counts wrapped lines.
func (v *MainView) responseView(height int) string {
	innerW := max(v.width-2, 0)
	wrapped := lipgloss.NewStyle().Width(innerW).Render(v.highlighter.Highlight(v.session.Response))

	vp := viewport.New(innerW, max(height-2, 0))
	vp.SetContent(wrapped)
	vp.SetYOffset(v.session.Scroll.Response)
	return vp.View()
}

func (v *MainView) renderHelpBar() string {
	bar := v.help.View(v.keys)
	if v.notification != "" {
		bar += "  " + v.styles.Notify.Render(v.notification)
	}
	return v.styles.HelpBar.Width(v.width).MaxHeight(1).Render(bar)
}

// Session returns the session driven by the view.
func (v *MainView) Session() *session.Session {
	return v.session
}

// Notification returns the current notification message.
func (v *MainView) Notification() string {
	return v.notification
}
