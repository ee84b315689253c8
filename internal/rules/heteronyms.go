package rules

import (
	"slices"
	"strings"

	"github.com/f3rmion/phonix/internal/align"
)

// TagPredicate decides whether a Penn Treebank tag selects a heteronym reading.
type TagPredicate func(tag string) bool

// TagIn matches any of the given tags exactly.
func TagIn(tags ...string) TagPredicate {
	return func(tag string) bool {
		return slices.Contains(tags, tag)
	}
}

// TagPrefix matches tags starting with prefix, e.g. "VB" for any verb form.
func TagPrefix(prefix string) TagPredicate {
	return func(tag string) bool {
		return strings.HasPrefix(tag, prefix)
	}
}

// Heteronym replaces the dictionary alignment of Word when Match accepts the
// word's tag.
type Heteronym struct {
	Word      string
	Match     TagPredicate
	Alignment align.Alignment
}

var heteronyms = []Heteronym{
	{
		Word:      "read",
		Match:     TagIn("VBD", "VBN"),
		Alignment: align.Alignment{{Grapheme: "r", Phoneme: "R"}, {Grapheme: "e", Phoneme: "EH"}, {Grapheme: "a"}, {Grapheme: "d", Phoneme: "D"}},
	},
	{
		Word:  "record",
		Match: TagPrefix("VB"),
		Alignment: align.Alignment{
			{Grapheme: "r", Phoneme: "R"}, {Grapheme: "e", Phoneme: "IH"}, {Grapheme: "c", Phoneme: "K"},
			{Grapheme: "o", Phoneme: "AO"}, {Grapheme: "r", Phoneme: "R"}, {Grapheme: "d", Phoneme: "D"},
		},
	},
	{
		Word:  "object",
		Match: TagPrefix("VB"),
		Alignment: align.Alignment{
			{Grapheme: "o", Phoneme: "AH"}, {Grapheme: "b", Phoneme: "B"}, {Grapheme: "j", Phoneme: "JH"},
			{Grapheme: "e", Phoneme: "EH"}, {Grapheme: "c", Phoneme: "K"}, {Grapheme: "t", Phoneme: "T"},
		},
	},
	{
		Word:      "tear",
		Match:     TagPrefix("VB"),
		Alignment: align.Alignment{{Grapheme: "t", Phoneme: "T"}, {Grapheme: "e", Phoneme: "EH"}, {Grapheme: "a"}, {Grapheme: "r", Phoneme: "R"}},
	},
	{
		Word:      "live",
		Match:     TagPrefix("VB"),
		Alignment: align.Alignment{{Grapheme: "l", Phoneme: "L"}, {Grapheme: "i", Phoneme: "IH"}, {Grapheme: "v", Phoneme: "V"}, {Grapheme: "e"}},
	},
}

// Override returns the heteronym alignment for a lowercase word and its tag.
// The first matching rule wins and the result is a fresh copy.
func Override(word, tag string) (align.Alignment, bool) {
	for _, h := range heteronyms {
		if h.Word == word && h.Match(tag) {
			return h.Alignment.Clone(), true
		}
	}
	return nil, false
}

// Heteronyms returns a copy of the override table.
func Heteronyms() []Heteronym {
	out := make([]Heteronym, len(heteronyms))
	for i, h := range heteronyms {
		h.Alignment = h.Alignment.Clone()
		out[i] = h
	}
	return out
}
