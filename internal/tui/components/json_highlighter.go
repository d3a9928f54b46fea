package components

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
)

// TokenKind classifies a highlighted span.
type TokenKind int

const (
	TokenPlain TokenKind = iota
	TokenString
	TokenNumber
	TokenPunct
)

// Token is one styled span of a line.
type Token struct {
	Kind TokenKind
	Text string
}

// Line is the token sequence for a single line of text.
type Line []Token

// Text joins the token texts back into the original line.
func (l Line) Text() string {
	var sb strings.Builder
	for _, t := range l {
		sb.WriteString(t.Text)
	}
	return sb.String()
}

// Tokenize splits text into lines of JSON-ish tokens. It does not validate
// anything and accepts any input.
func Tokenize(text string) []Line {
	raw := splitLines(text)
	lines := make([]Line, 0, len(raw))
	for _, l := range raw {
		lines = append(lines, tokenizeLine(l))
	}
	return lines
}

// splitLines splits on '\n', strips one trailing '\r' per line and drops
// the empty line after a final newline.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

func tokenizeLine(line string) Line {
	chars := []rune(line)
	var tokens Line

	i := 0
	for i < len(chars) {
		ch := chars[i]

		switch {
		case ch == '"':
			end := i + 1
			for end < len(chars) {
				end++
				if chars[end-1] == '"' {
					break
				}
			}
			tokens = append(tokens, Token{Kind: TokenString, Text: string(chars[i:end])})
			i = end

		case ch == ':', ch == '{', ch == '}', ch == '[', ch == ']':
			tokens = append(tokens, Token{Kind: TokenPunct, Text: string(ch)})
			i++

		case unicode.IsNumber(ch):
			end := i + 1
			for end < len(chars) && (unicode.IsNumber(chars[end]) || chars[end] == '.') {
				end++
			}
			tokens = append(tokens, Token{Kind: TokenNumber, Text: string(chars[i:end])})
			i = end

		default:
			tokens = append(tokens, Token{Kind: TokenPlain, Text: string(ch)})
			i++
		}
	}

	return tokens
}

// JSONHighlighter renders token lines with terminal styles.
type JSONHighlighter struct {
	stringStyle  lipgloss.Style
	numberStyle  lipgloss.Style
	bracketStyle lipgloss.Style
	colonStyle   lipgloss.Style
}

// NewJSONHighlighter creates a new JSON highlighter with default styles.
func NewJSONHighlighter() *JSONHighlighter {
	return &JSONHighlighter{
		stringStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")), // Yellow
		numberStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("2")), // Green
		bracketStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("6")), // Cyan
		colonStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("7")), // Gray
	}
}

// Highlight tokenizes and styles text. It is recomputed on every call.
func (h *JSONHighlighter) Highlight(text string) string {
	return strings.Join(h.HighlightLines(text), "\n")
}

// HighlightLines tokenizes and styles text, one string per line.
func (h *JSONHighlighter) HighlightLines(text string) []string {
	lines := Tokenize(text)
	result := make([]string, 0, len(lines))
	for _, l := range lines {
		result = append(result, h.renderLine(l))
	}
	return result
}

func (h *JSONHighlighter) renderLine(line Line) string {
	var sb strings.Builder
	for _, t := range line {
		switch t.Kind {
		case TokenString:
			sb.WriteString(h.stringStyle.Render(t.Text))
		case TokenNumber:
			sb.WriteString(h.numberStyle.Render(t.Text))
		case TokenPunct:
			if t.Text == ":" {
				sb.WriteString(h.colonStyle.Render(t.Text))
			} else {
				sb.WriteString(h.bracketStyle.Render(t.Text))
			}
		default:
			sb.WriteString(t.Text)
		}
	}
	return sb.String()
}
