package highlight

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/f3rmion/phonix/internal/align"
	"github.com/f3rmion/phonix/internal/nlp"
	"github.com/f3rmion/phonix/internal/observe"
	"github.com/f3rmion/phonix/internal/phoneme"
	"github.com/f3rmion/phonix/internal/render"
)

// ErrTagging wraps tokenizer/tagger failures. No partial output is produced
// when it is returned.
var ErrTagging = errors.New("tagging text")

// Result is the outcome of one highlight request.
type Result struct {
	Units []render.Unit

	Words       int // alphanumeric tokens
	Misses      int // alphanumeric tokens absent from the dictionary
	Highlighted int // words with at least one marked letter
}

// Highlighter answers highlight requests against a shared dictionary. The
// dictionary is only read, so one Highlighter may serve concurrent requests.
type Highlighter struct {
	dict    *align.Dictionary
	tagger  nlp.Tagger
	metrics *observe.Metrics
	logger  *slog.Logger
}

// Option configures a Highlighter.
type Option func(*Highlighter)

// WithMetrics records request metrics on m.
func WithMetrics(m *observe.Metrics) Option {
	return func(h *Highlighter) {
		h.metrics = m
	}
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(h *Highlighter) {
		h.logger = l
	}
}

// New returns a Highlighter. A nil dictionary behaves like an empty one.
func New(dict *align.Dictionary, tagger nlp.Tagger, opts ...Option) *Highlighter {
	if dict == nil {
		dict = align.NewDictionary()
	}
	h := &Highlighter{
		dict:    dict,
		tagger:  tagger,
		metrics: observe.Default(),
		logger:  slog.Default(),
	}
	for _, o := range opts {
		o(h)
	}
	return h
}

// Dictionary returns the dictionary the Highlighter reads from.
func (h *Highlighter) Dictionary() *align.Dictionary {
	return h.dict
}

// Highlight tags text and marks every letter spelling target.
// Non-alphanumeric tokens and dictionary misses pass through as literals.
func (h *Highlighter) Highlight(ctx context.Context, text string, target phoneme.Phoneme) (Result, error) {
	if !target.Valid() {
		return Result{}, fmt.Errorf("%w: %q", phoneme.ErrUnknown, target)
	}

	tokens, err := h.tagger.Tag(ctx, text)
	if err != nil {
		h.metrics.RecordRequest(ctx, observe.StatusError, 0, 0)
		return Result{}, fmt.Errorf("%w: %w", ErrTagging, err)
	}

	res := Result{Units: make([]render.Unit, 0, len(tokens))}
	for _, tok := range tokens {
		if !isAlnum(tok.Text) {
			res.Units = append(res.Units, render.Unit{Literal: tok.Text})
			continue
		}
		res.Words++

		lower := strings.ToLower(tok.Text)
		a, ok := h.dict.Lookup(lower)
		if !ok {
			res.Misses++
			h.logger.Debug("word not in dictionary", "word", tok.Text)
			res.Units = append(res.Units, render.Unit{Literal: tok.Text})
			continue
		}

		a, mask := Resolve(lower, tok.Tag, a, target)
		if mask.Any() {
			res.Highlighted++
		}
		res.Units = append(res.Units, render.Unit{Segments: Segments(tok.Text, a, mask)})
	}

	h.metrics.RecordRequest(ctx, observe.StatusOK, res.Misses, res.Highlighted)
	return res, nil
}

// Segments pairs each grapheme with its mark. Graphemes take the casing of
// the original token when the letters line up, so "I" is not shown as "i".
func Segments(token string, a align.Alignment, mask Mask) []render.Segment {
	letters := []rune(token)
	recase := strings.EqualFold(a.Graphemes(), token) &&
		utf8.RuneCountInString(a.Graphemes()) == len(letters)

	out := make([]render.Segment, len(a))
	pos := 0
	for i, p := range a {
		text := p.Grapheme
		if recase && text != "" {
			n := utf8.RuneCountInString(text)
			text = string(letters[pos : pos+n])
			pos += n
		}
		out[i] = render.Segment{Text: text, Highlighted: mask[i]}
	}
	return out
}

func isAlnum(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
