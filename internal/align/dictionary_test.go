package align_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/f3rmion/phonix/internal/align"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCorpus = `;;; sample of cmudict.0.7a_SPHINX_40.align
read R IY1 _ D
read(2) R EH1 _ D
nation N EY1 SH _ AH0 N
letter L EH1 T _ ER0 _
book B UH1 _ K
knee _ N IY1 _
broken B R OW1
'tis T IH1 Z
1st F ER1 S T
lonely
`

func TestParse(t *testing.T) {
	t.Parallel()

	d, stats, err := align.Parse(strings.NewReader(testCorpus))
	require.NoError(t, err)

	assert.Equal(t, 5, d.Len())
	assert.Equal(t, 10, stats.Lines)
	assert.Equal(t, 5, stats.Inserted)
	assert.Equal(t, 1, stats.Duplicates)
	assert.Equal(t, 4, stats.Skipped)

	a, ok := d.Lookup("nation")
	require.True(t, ok)
	assert.Equal(t, align.Alignment{
		{"n", "N"}, {"a", "EY1"}, {"t", "SH"}, {"i", ""}, {"o", "AH0"}, {"n", "N"},
	}, a)
	assert.Equal(t, "nation", a.Graphemes())
}

func TestParse_FirstSeenWins(t *testing.T) {
	t.Parallel()

	d := align.ParseString(testCorpus)
	a, ok := d.Lookup("read")
	require.True(t, ok)
	assert.Equal(t, "IY1", a[1].Phoneme, "variant line must not replace the first alignment")
}

func TestParse_SkipsMalformedLines(t *testing.T) {
	t.Parallel()

	d := align.ParseString(testCorpus)

	for _, word := range []string{"broken", "'tis", "1st", "lonely"} {
		_, ok := d.Lookup(word)
		assert.False(t, ok, "malformed line for %q must be skipped", word)
	}
}

func TestParse_VariantOnlyWord(t *testing.T) {
	t.Parallel()

	d := align.ParseString("tear(2) T EH1 _ R\n")
	a, ok := d.Lookup("tear")
	require.True(t, ok)
	assert.Equal(t, "tear", a.Graphemes())
}

func TestParse_UppercaseKeysAreLowered(t *testing.T) {
	t.Parallel()

	d := align.ParseString("BOOK B UH1 _ K\n")
	a, ok := d.Lookup("book")
	require.True(t, ok)
	assert.Equal(t, "b", a[0].Grapheme)
}

func TestParse_DropsEmptyPairs(t *testing.T) {
	t.Parallel()

	d := align.ParseString("knee _ N IY1 _\n")
	a, ok := d.Lookup("knee")
	require.True(t, ok)
	require.Len(t, a, 4)
	assert.Equal(t, align.Pair{Grapheme: "k", Phoneme: ""}, a[0])
	assert.Equal(t, align.Pair{Grapheme: "e", Phoneme: ""}, a[3])
}

func TestParse_Idempotent(t *testing.T) {
	t.Parallel()

	first := align.ParseString(testCorpus)
	second := align.ParseString(testCorpus)

	require.Equal(t, first.Words(), second.Words())
	for _, w := range first.Words() {
		a, _ := first.Lookup(w)
		b, _ := second.Lookup(w)
		assert.Equal(t, a, b, w)
	}
}

func TestParse_Empty(t *testing.T) {
	t.Parallel()

	d, stats, err := align.Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, 0, d.Len())
	assert.Equal(t, align.ParseStats{}, stats)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestParse_ReadError(t *testing.T) {
	t.Parallel()

	d, _, err := align.Parse(failingReader{})
	require.Error(t, err)
	require.NotNil(t, d)
	assert.Equal(t, 0, d.Len())
}

func TestParse_InvalidUTF8(t *testing.T) {
	t.Parallel()

	d, stats, err := align.Parse(strings.NewReader("cat K AE1 T\nb\xffd B _ D\n"))
	require.ErrorIs(t, err, align.ErrInvalidUTF8)
	assert.Contains(t, err.Error(), "line 2")
	require.NotNil(t, d)
	assert.Equal(t, 0, d.Len())
	assert.Equal(t, 1, stats.Inserted)
}

func TestLookup_ReturnsCopy(t *testing.T) {
	t.Parallel()

	d := align.ParseString(testCorpus)
	a, ok := d.Lookup("book")
	require.True(t, ok)
	a[1].Phoneme = "XX"

	b, _ := d.Lookup("book")
	assert.Equal(t, "UH1", b[1].Phoneme)
}

func TestLookup_NilDictionary(t *testing.T) {
	t.Parallel()

	var d *align.Dictionary
	_, ok := d.Lookup("book")
	assert.False(t, ok)
	assert.Equal(t, 0, d.Len())
}

func TestAlignmentString(t *testing.T) {
	t.Parallel()

	a := align.Alignment{{"r", "R"}, {"e", "EH"}, {"a", ""}, {"d", "D"}}
	assert.Equal(t, "r/R e/EH a/_ d/D", a.String())
}

func TestSuggest(t *testing.T) {
	t.Parallel()

	d := align.ParseString(testCorpus)
	got := d.Suggest("nations", 3, 0.8)
	require.NotEmpty(t, got)
	assert.Equal(t, "nation", got[0])

	assert.Empty(t, d.Suggest("zzzzzz", 3, 0.9))
	assert.Nil(t, align.NewDictionary().Suggest("nation", 3, 0))
}

func TestRange(t *testing.T) {
	t.Parallel()

	d := align.ParseString(testCorpus)
	var seen []string
	d.Range(func(word string, _ align.Alignment) bool {
		seen = append(seen, word)
		return len(seen) < 2
	})
	assert.Equal(t, []string{"book", "knee"}, seen)
}
