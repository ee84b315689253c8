// Package render turns highlight results into display text.
package render

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Segment is one grapheme of a dictionary word and whether it is marked.
type Segment struct {
	Text        string
	Highlighted bool
}

// Unit is one token of the output: either a literal pass-through string or a
// word split into segments.
type Unit struct {
	Literal  string
	Segments []Segment
}

// IsLiteral reports whether u is a pass-through token.
func (u Unit) IsLiteral() bool {
	return u.Segments == nil
}

// Highlighted reports whether any segment of u is marked.
func (u Unit) Highlighted() bool {
	for _, s := range u.Segments {
		if s.Highlighted {
			return true
		}
	}
	return false
}

// Text returns the unit's text without markup.
func (u Unit) Text() string {
	if u.IsLiteral() {
		return u.Literal
	}
	var sb strings.Builder
	for _, s := range u.Segments {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// Renderer wraps highlighted text in display markup.
type Renderer interface {
	Mark(text string) string
}

// Escaper is implemented by renderers whose output format needs plain text
// escaped. Word and Render apply it to unmarked text and literals.
type Escaper interface {
	Escape(text string) string
}

func escape(r Renderer, text string) string {
	if e, ok := r.(Escaper); ok {
		return e.Escape(text)
	}
	return text
}

// Word renders a word, wrapping each run of consecutive highlighted segments
// once.
func Word(segments []Segment, r Renderer) string {
	var sb, run strings.Builder
	flush := func() {
		if run.Len() > 0 {
			sb.WriteString(r.Mark(run.String()))
			run.Reset()
		}
	}
	for _, s := range segments {
		if s.Text == "" {
			continue
		}
		if s.Highlighted {
			run.WriteString(s.Text)
			continue
		}
		flush()
		sb.WriteString(escape(r, s.Text))
	}
	flush()
	return sb.String()
}

// Render renders every unit and reassembles them with Join.
func Render(units []Unit, r Renderer) string {
	parts := make([]string, len(units))
	for i, u := range units {
		if u.IsLiteral() {
			parts[i] = escape(r, u.Literal)
			continue
		}
		parts[i] = Word(u.Segments, r)
	}
	return Join(parts)
}

var spaceBeforePunct = regexp.MustCompile(` ([.,!?'])`)

// Join joins rendered parts with single spaces, then drops the space in front
// of . , ! ? and '.
func Join(parts []string) string {
	return spaceBeforePunct.ReplaceAllString(strings.Join(parts, " "), "$1")
}

// Plain marks text with bracket strings, "[" and "]" by default.
type Plain struct {
	Open  string
	Close string
}

// Mark implements Renderer.
func (p Plain) Mark(text string) string {
	open, closing := p.Open, p.Close
	if open == "" && closing == "" {
		open, closing = "[", "]"
	}
	return open + text + closing
}

// htmlText escapes element content. Quotes are left alone so apostrophes
// still join with the preceding word.
var htmlText = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// HTML marks text with an inline-styled span. All text it renders, marked or
// not, is HTML-escaped.
type HTML struct {
	Background string
	Foreground string
}

// Mark implements Renderer.
func (h HTML) Mark(text string) string {
	bg, fg := h.Background, h.Foreground
	if bg == "" {
		bg = "#FFFF00"
	}
	if fg == "" {
		fg = "black"
	}
	return fmt.Sprintf(
		"<span style='background-color: %s; font-weight: bold; color: %s; padding: 0 2px; border-radius: 3px;'>%s</span>",
		bg, fg, h.Escape(text),
	)
}

// Escape implements Escaper.
func (HTML) Escape(text string) string {
	return htmlText.Replace(text)
}

// Style marks text with a lipgloss style for terminal output.
type Style struct {
	lipgloss.Style
}

// Mark implements Renderer.
func (s Style) Mark(text string) string {
	return s.Render(text)
}

// NewStyle builds the terminal highlight style from colour strings.
func NewStyle(foreground, background string, bold bool) Style {
	st := lipgloss.NewStyle().Bold(bold)
	if foreground != "" {
		st = st.Foreground(lipgloss.Color(foreground))
	}
	if background != "" {
		st = st.Background(lipgloss.Color(background))
	}
	return Style{st}
}

// ForFormat picks a renderer by name: "ansi", "html" or "plain".
func ForFormat(format, foreground, background string, bold bool) (Renderer, error) {
	switch strings.ToLower(format) {
	case "", "ansi":
		return NewStyle(foreground, background, bold), nil
	case "html":
		return HTML{Background: background, Foreground: foreground}, nil
	case "plain":
		return Plain{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want ansi, html or plain)", format)
	}
}
