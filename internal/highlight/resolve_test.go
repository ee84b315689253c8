package highlight

import (
	"testing"

	"github.com/f3rmion/phonix/internal/align"
	"github.com/f3rmion/phonix/internal/phoneme"
	"github.com/stretchr/testify/assert"
)

const resolveCorpus = `
i AY1
read R IY1 _ D
nation N EY1 SH _ AH0 N
letter L EH1 T _ ER0 _
the DH _ AH0
book B UH1 _ K
though DH _ OW1 _ _ _
bill B IH1 L _
sit S IH1 T
`

func lookup(t *testing.T, d *align.Dictionary, word string) align.Alignment {
	t.Helper()
	a, ok := d.Lookup(word)
	if !ok {
		t.Fatalf("%q not in test dictionary", word)
	}
	return a
}

func TestResolve(t *testing.T) {
	t.Parallel()

	d := align.ParseString(resolveCorpus)

	tests := []struct {
		name   string
		word   string
		tag    string
		target phoneme.Phoneme
		want   Mask
	}{
		{"stress digit stripped", "sit", "VB", phoneme.IH, Mask{false, true, false}},
		{"tetragraph expands", "nation", "NN", phoneme.SH, Mask{false, false, true, true, true, true}},
		{"tetragraph needs base match", "nation", "NN", phoneme.ZH, Mask{false, false, false, false, false, false}},
		{"doubled letters", "letter", "NN", phoneme.T, Mask{false, false, true, true, false, false}},
		{"doubled ll", "bill", "NN", phoneme.L, Mask{false, false, true, true}},
		{"digraph", "the", "DT", phoneme.DH, Mask{true, true, false}},
		{"vowel digraph", "book", "NN", phoneme.UH, Mask{false, true, true, false}},
		{"ough", "though", "IN", phoneme.OW, Mask{false, false, true, true, true, true}},
		{"pattern without base match", "though", "IN", phoneme.F, Mask{false, false, false, false, false, false}},
		{"present read", "read", "VBP", phoneme.IY, Mask{false, true, true, false}},
		{"present read has no EH", "read", "VBP", phoneme.EH, Mask{false, false, false, false}},
		{"past read extends over ea", "read", "VBD", phoneme.EH, Mask{false, true, true, false}},
		{"past read has no IY", "read", "VBN", phoneme.IY, Mask{false, false, false, false}},
		{"no match", "book", "NN", phoneme.EH, Mask{false, false, false, false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, got := Resolve(tt.word, tt.tag, lookup(t, d, tt.word), tt.target)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_HeteronymReplacesAlignment(t *testing.T) {
	t.Parallel()

	d := align.ParseString(resolveCorpus)
	original := lookup(t, d, "read")

	a, mask := Resolve("Read", "VBD", original, phoneme.EH)
	assert.Equal(t, "r/R e/EH a/_ d/D", a.String())
	assert.Len(t, mask, len(a))

	assert.Equal(t, "IY1", original[1].Phoneme, "input alignment must not change")
	again := lookup(t, d, "read")
	assert.Equal(t, "IY1", again[1].Phoneme, "dictionary must not change")
}

func TestResolve_LiveAsVerb(t *testing.T) {
	t.Parallel()

	a := align.Alignment{{Grapheme: "l", Phoneme: "L"}, {Grapheme: "i", Phoneme: "AY1"}, {Grapheme: "v", Phoneme: "V"}, {Grapheme: "e", Phoneme: ""}}
	_, mask := Resolve("live", "VBP", a, phoneme.IH)
	assert.Equal(t, Mask{false, true, false, false}, mask)

	_, mask = Resolve("live", "JJ", a, phoneme.IH)
	assert.Equal(t, Mask{false, false, false, false}, mask)
}

func TestResolve_EmptyAlignment(t *testing.T) {
	t.Parallel()

	a, mask := Resolve("x", "NN", nil, phoneme.K)
	assert.Empty(t, a)
	assert.Empty(t, mask)
}

func TestResolve_EmptyGraphemesDoNotShortenWindows(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a    align.Alignment
		want Mask
	}{
		{
			name: "three wide",
			a:    align.Alignment{{Grapheme: "t", Phoneme: "TH"}, {Grapheme: "", Phoneme: "AH0"}, {Grapheme: "h", Phoneme: ""}},
			want: Mask{true, false, false},
		},
		{
			name: "four wide",
			a:    align.Alignment{{Grapheme: "t", Phoneme: "TH"}, {Grapheme: "", Phoneme: "AH0"}, {Grapheme: "", Phoneme: "AH0"}, {Grapheme: "h", Phoneme: ""}},
			want: Mask{true, false, false, false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mask := Resolve("th", "NN", tt.a, phoneme.TH)
			assert.Equal(t, tt.want, mask)
		})
	}
}

func TestExpand_NeverStartsFromNothing(t *testing.T) {
	t.Parallel()

	d := align.ParseString(resolveCorpus)
	for _, word := range d.Words() {
		a := lookup(t, d, word)
		for _, info := range phoneme.All() {
			mask := make(Mask, len(a))
			for _, n := range []int{4, 3, 2} {
				expand(a, mask, n, info.Symbol)
			}
			assert.False(t, mask.Any(), "%s/%s", word, info.Symbol)
		}
	}
}

func TestExpand_DoublesChain(t *testing.T) {
	t.Parallel()

	a := align.Alignment{{Grapheme: "b", Phoneme: "B"}, {Grapheme: "z", Phoneme: "Z"}, {Grapheme: "z", Phoneme: ""}, {Grapheme: "z", Phoneme: ""}}
	mask := Mask{false, true, false, false}
	expand(a, mask, 2, phoneme.Z)
	assert.Equal(t, Mask{false, true, true, true}, mask)
}

func TestMaskAny(t *testing.T) {
	t.Parallel()

	assert.False(t, Mask{}.Any())
	assert.False(t, Mask{false, false}.Any())
	assert.True(t, Mask{false, true}.Any())
}
