// Package nlp tokenizes English text and assigns Penn Treebank
// part-of-speech tags.
package nlp

import (
	"context"
	"fmt"

	"github.com/jdkato/prose/v2"
	"golang.org/x/text/unicode/norm"
)

// Token is a word or punctuation token with its Penn Treebank tag
// ("VBD", "NN", ".", ...).
type Token struct {
	Text string
	Tag  string
}

// Tagger splits text into tokens, in order, and tags each one. Whitespace is
// not emitted.
type Tagger interface {
	Tag(ctx context.Context, text string) ([]Token, error)
}

// TaggerFunc adapts a function to the Tagger interface.
type TaggerFunc func(ctx context.Context, text string) ([]Token, error)

// Tag implements Tagger.
func (f TaggerFunc) Tag(ctx context.Context, text string) ([]Token, error) {
	return f(ctx, text)
}

// ProseTagger tags text with prose's averaged perceptron model.
// It is safe for concurrent use; every call builds its own document.
type ProseTagger struct{}

// NewProseTagger returns a tagger backed by github.com/jdkato/prose.
func NewProseTagger() *ProseTagger {
	return &ProseTagger{}
}

// Tag implements Tagger. The text is NFC-normalised first so that letters
// with combining marks reach the dictionary lookup as single runes.
func (p *ProseTagger) Tag(ctx context.Context, text string) ([]Token, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := prose.NewDocument(norm.NFC.String(text),
		prose.WithSegmentation(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return nil, fmt.Errorf("tagging text: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	toks := doc.Tokens()
	out := make([]Token, 0, len(toks))
	for _, t := range toks {
		out = append(out, Token{Text: t.Text, Tag: t.Tag})
	}
	return out, nil
}
