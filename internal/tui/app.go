package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/f3rmion/phonix/internal/align"
	"github.com/f3rmion/phonix/internal/clipboard"
	"github.com/f3rmion/phonix/internal/highlight"
	"github.com/f3rmion/phonix/internal/nlp"
	"github.com/f3rmion/phonix/internal/observe"
	"github.com/f3rmion/phonix/internal/phoneme"
	"github.com/f3rmion/phonix/internal/render"
)

// Focus is the pane receiving key presses.
type Focus int

const (
	FocusText Focus = iota
	FocusSelector
)

// LoadFunc builds the dictionary. A failed build still returns a usable
// (possibly empty) dictionary alongside the error.
type LoadFunc func(ctx context.Context) (*align.Dictionary, error)

// CopyFunc writes text to the clipboard.
type CopyFunc func(ctx context.Context, text string) error

// Options configures the application model.
type Options struct {
	Load     LoadFunc
	Tagger   nlp.Tagger
	Renderer render.Renderer // marks highlighted letters in the result pane
	Copy     CopyFunc        // default clipboard.Write
	Metrics  *observe.Metrics
	Logger   *slog.Logger
}

// dictLoadedMsg is sent when the dictionary build finishes.
type dictLoadedMsg struct {
	dict *align.Dictionary
	err  error
}

// highlightedMsg carries the outcome of one highlight request.
type highlightedMsg struct {
	target phoneme.Phoneme
	result highlight.Result
	err    error
}

type copiedMsg struct {
	err error
}

type clearCopiedMsg struct{}

func clearCopiedAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearCopiedMsg{}
	})
}

const selectorWidth = 30

// Model is the phonix TUI model.
type Model struct {
	opts Options

	spinner spinner.Model
	input   textarea.Model
	result  viewport.Model

	loading     bool
	loadErr     error
	highlighter *highlight.Highlighter

	focus    Focus
	category phoneme.Category
	cursor   int

	last    highlight.Result
	target  phoneme.Phoneme
	err     error
	notice  string
	copied  bool
	working bool

	width  int
	height int
}

// New creates the application model. The dictionary is built by Init.
func New(opts Options) Model {
	if opts.Copy == nil {
		opts.Copy = clipboard.Write
	}
	if opts.Renderer == nil {
		opts.Renderer = render.NewStyle("#000000", "#FFFF00", true)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Tagger == nil {
		opts.Tagger = nlp.NewProseTagger()
	}

	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(LoadingStyle),
	)

	ta := textarea.New()
	ta.Placeholder = "Type or paste English text..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetWidth(50)
	ta.SetHeight(8)
	ta.Focus()

	vp := viewport.New(50, 8)

	return Model{
		opts:     opts,
		spinner:  sp,
		input:    ta,
		result:   vp,
		loading:  true,
		category: phoneme.Vowel,
	}
}

// Init starts the dictionary build.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load(), textarea.Blink)
}

func (m Model) load() tea.Cmd {
	load := m.opts.Load
	return func() tea.Msg {
		if load == nil {
			return dictLoadedMsg{dict: align.NewDictionary()}
		}
		d, err := load(context.Background())
		return dictLoadedMsg{dict: d, err: err}
	}
}

// Selected returns the phoneme under the selector cursor.
func (m Model) Selected() phoneme.Phoneme {
	list := phoneme.ByCategory(m.category)
	if len(list) == 0 {
		return ""
	}
	return list[m.cursor].Symbol
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case dictLoadedMsg:
		m.loading = false
		m.loadErr = msg.err
		if msg.err != nil {
			m.opts.Logger.Error("building dictionary", "error", msg.err)
		}
		m.highlighter = highlight.New(msg.dict, m.opts.Tagger,
			highlight.WithMetrics(m.opts.Metrics),
			highlight.WithLogger(m.opts.Logger),
		)
		return m, nil

	case highlightedMsg:
		m.working = false
		if msg.err != nil {
			m.err = msg.err
			m.opts.Logger.Error("highlighting", "error", msg.err)
			return m, nil
		}
		m.err = nil
		m.last = msg.result
		m.target = msg.target
		m.result.SetContent(render.Render(msg.result.Units, m.opts.Renderer))
		m.result.GotoTop()
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.notice = "Copy failed: " + msg.err.Error()
			return m, nil
		}
		m.copied = true
		return m, clearCopiedAfter(2 * time.Second)

	case clearCopiedMsg:
		m.copied = false
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	if m.focus == FocusText {
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "tab":
		if m.focus == FocusText {
			m.focus = FocusSelector
			m.input.Blur()
			return m, nil
		}
		m.focus = FocusText
		return m, m.input.Focus()
	case "ctrl+r":
		return m.startHighlight()
	case "ctrl+y":
		return m.startCopy()
	}

	if m.focus == FocusText {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "left", "right", "h", "l":
		if m.category == phoneme.Vowel {
			m.category = phoneme.Consonant
		} else {
			m.category = phoneme.Vowel
		}
		m.cursor = 0
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(phoneme.ByCategory(m.category))-1 {
			m.cursor++
		}
	case "enter":
		return m.startHighlight()
	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.result, cmd = m.result.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) startHighlight() (tea.Model, tea.Cmd) {
	m.notice = ""
	if m.loading || m.highlighter == nil {
		m.notice = "Dictionary is still loading..."
		return m, nil
	}
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		m.notice = "Enter some text to highlight."
		return m, nil
	}

	m.working = true
	h := m.highlighter
	target := m.Selected()
	return m, func() tea.Msg {
		res, err := h.Highlight(context.Background(), text, target)
		return highlightedMsg{target: target, result: res, err: err}
	}
}

func (m Model) startCopy() (tea.Model, tea.Cmd) {
	if len(m.last.Units) == 0 {
		m.notice = "Nothing to copy yet."
		return m, nil
	}
	text := render.Render(m.last.Units, render.Plain{})
	copyFn := m.opts.Copy
	return m, func() tea.Msg {
		return copiedMsg{err: copyFn(context.Background(), text)}
	}
}

func (m *Model) setSize(width, height int) {
	m.width = width
	m.height = height

	inputWidth := width - selectorWidth - 8
	if inputWidth < 20 {
		inputWidth = 20
	}
	m.input.SetWidth(inputWidth)

	m.result.Width = width - 6
	if m.result.Width < 20 {
		m.result.Width = 20
	}
	m.result.Height = height - 22
	if m.result.Height < 3 {
		m.result.Height = 3
	}
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("phonix"))
	b.WriteString("  ")
	b.WriteString(SubtitleStyle.Render("phoneme highlighter"))
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(LoadingStyle.Render("Initializing linguistic engine..."))
		b.WriteString("\n")
		return b.String()
	}

	inputBox, selectorBox := BoxStyle, BoxStyle
	if m.focus == FocusText {
		inputBox = FocusedBoxStyle
	} else {
		selectorBox = FocusedBoxStyle
	}

	top := lipgloss.JoinHorizontal(lipgloss.Top,
		inputBox.Render(m.input.View()),
		selectorBox.Render(m.renderSelector()),
	)
	b.WriteString(top)
	b.WriteString("\n")

	b.WriteString(ResultBoxStyle.Render(m.result.View()))
	b.WriteString("\n")

	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(HelpStyle.Render(
		"tab: switch pane • ←/→: vowels/consonants • ↑/↓: phoneme • enter/ctrl+r: highlight • ctrl+y: copy • esc: quit",
	))

	return b.String()
}

func (m Model) renderSelector() string {
	var b strings.Builder

	tabs := []struct {
		label string
		cat   phoneme.Category
	}{
		{"Vowels", phoneme.Vowel},
		{"Consonants", phoneme.Consonant},
	}
	for _, t := range tabs {
		style := CategoryTabStyle
		if t.cat == m.category {
			style = CategoryTabActiveStyle
		}
		b.WriteString(style.Render(t.label))
	}
	b.WriteString("\n")

	list := phoneme.ByCategory(m.category)
	start, end := visibleRange(m.cursor, len(list), 8)
	for i := start; i < end; i++ {
		label := runewidth.Truncate(list[i].Label(), selectorWidth-2, "…")
		label = runewidth.FillRight(label, selectorWidth-2)
		if i == m.cursor {
			b.WriteString(PhonemeItemActiveStyle.Render("› " + label))
		} else {
			b.WriteString(PhonemeItemStyle.Render("  " + label))
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// visibleRange returns the window of n items, at most size long, that keeps
// cursor visible.
func visibleRange(cursor, n, size int) (int, int) {
	if n <= size {
		return 0, n
	}
	start := cursor - size/2
	if start < 0 {
		start = 0
	}
	if start+size > n {
		start = n - size
	}
	return start, start + size
}

func (m Model) renderStatus() string {
	var parts []string

	if m.loadErr != nil {
		parts = append(parts, ErrorStyle.Render("Dictionary unavailable: "+m.loadErr.Error()))
	}
	if m.err != nil {
		parts = append(parts, ErrorStyle.Render(m.err.Error()))
	}
	if m.working {
		parts = append(parts, LoadingStyle.Render("Highlighting..."))
	}
	if m.target != "" {
		parts = append(parts, StatusStyle.Render(fmt.Sprintf(
			"%s: %d of %d words highlighted, %d not in dictionary",
			m.target, m.last.Highlighted, m.last.Words, m.last.Misses,
		)))
	}
	if m.notice != "" {
		parts = append(parts, HelpStyle.Render(m.notice))
	}
	if m.copied {
		parts = append(parts, CopiedStyle.Render("Copied!"))
	}

	return strings.Join(parts, "  ")
}
