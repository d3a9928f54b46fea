package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Styles holds the block styles of the request form.
type Styles struct {
	Focused   lipgloss.Style
	Unfocused lipgloss.Style
	Method    BlockStyle
	Response  BlockStyle
	HelpBar   lipgloss.Style
	Notify    lipgloss.Style
}

// BlockStyle styles a block's frame and its content separately.
type BlockStyle struct {
	Frame   lipgloss.Style
	Content lipgloss.Style
}

// DefaultStyles returns default styling.
func DefaultStyles() Styles {
	focused := lipgloss.NewStyle().
		Foreground(lipgloss.Color("15")).
		Background(lipgloss.Color("8")).
		Bold(true)
	unfocused := lipgloss.NewStyle().
		Foreground(lipgloss.Color("7"))

	return Styles{
		Focused:   focused,
		Unfocused: unfocused,
		Method: BlockStyle{
			Frame: lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
			Content: lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("15")).
				Bold(true),
		},
		Response: BlockStyle{
			Frame:   lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
			Content: lipgloss.NewStyle(),
		},
		HelpBar: lipgloss.NewStyle().Padding(0, 1),
		Notify:  lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
	}
}

// Uniform returns a BlockStyle that paints the frame and the content alike.
func Uniform(s lipgloss.Style) BlockStyle {
	return BlockStyle{Frame: s, Content: s}
}

// Block renders content inside a rounded border of exactly width x height
// cells, with title set into the top edge. Content that does not fit is cut.
func Block(title, content string, width, height int, style BlockStyle) string {
	if width < 2 || height < 2 {
		return ""
	}

	border := lipgloss.RoundedBorder()
	innerW := width - 2
	innerH := height - 2

	label := Truncate(title, innerW)
	top := border.TopLeft + label +
		strings.Repeat(border.Top, innerW-lipgloss.Width(label)) +
		border.TopRight

	frame := lipgloss.NewStyle().
		Border(border, false, true, true, true).
		BorderForeground(style.Frame.GetForeground()).
		BorderBackground(style.Frame.GetBackground())

	inner := style.Content.
		Width(innerW).
		Height(innerH).
		MaxHeight(innerH).
		Render(clipLines(content, innerW))

	return lipgloss.JoinVertical(lipgloss.Left,
		style.Frame.Render(top),
		frame.Render(inner),
	)
}

// Truncate cuts s to at most width cells.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "")
}

func clipLines(s string, width int) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = Truncate(l, width)
	}
	return strings.Join(lines, "\n")
}
