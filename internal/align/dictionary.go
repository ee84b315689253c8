// Package align holds the grapheme-to-phoneme alignment dictionary built from
// the CMUdict SPHINX-40 alignment corpus.
package align

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/antzucaro/matchr"
)

// ErrInvalidUTF8 is returned by Parse when the corpus is not UTF-8 text.
var ErrInvalidUTF8 = errors.New("invalid UTF-8")

// placeholder marks an empty grapheme or phoneme slot in the corpus.
const placeholder = "_"

// Pair is a single grapheme/phoneme unit. Grapheme holds at most one letter
// and Phoneme may carry a stress digit ("IH1"). They are never both empty.
type Pair struct {
	Grapheme string
	Phoneme  string
}

// Alignment is one pronunciation of one written word.
type Alignment []Pair

// Clone returns an independent copy of a.
func (a Alignment) Clone() Alignment {
	if a == nil {
		return nil
	}
	out := make(Alignment, len(a))
	copy(out, a)
	return out
}

// Graphemes concatenates all graphemes in order.
func (a Alignment) Graphemes() string {
	var sb strings.Builder
	for _, p := range a {
		sb.WriteString(p.Grapheme)
	}
	return sb.String()
}

// String formats a as "r/R e/EH a/_ d/D".
func (a Alignment) String() string {
	parts := make([]string, len(a))
	for i, p := range a {
		g, ph := p.Grapheme, p.Phoneme
		if g == "" {
			g = placeholder
		}
		if ph == "" {
			ph = placeholder
		}
		parts[i] = g + "/" + ph
	}
	return strings.Join(parts, " ")
}

// Dictionary maps lowercase words to their first-seen alignment. It is not
// mutated after the build, so concurrent lookups are safe.
type Dictionary struct {
	entries map[string]Alignment
}

// NewDictionary creates an empty dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{
		entries: make(map[string]Alignment),
	}
}

// Insert adds an alignment for word unless word is already present. It
// reports whether the alignment was stored.
func (d *Dictionary) Insert(word string, a Alignment) bool {
	if _, ok := d.entries[word]; ok {
		return false
	}
	d.entries[word] = a.Clone()
	return true
}

// Lookup returns a copy of the alignment for word, so callers may modify it
// without touching the shared dictionary.
func (d *Dictionary) Lookup(word string) (Alignment, bool) {
	if d == nil {
		return nil, false
	}
	a, ok := d.entries[word]
	if !ok {
		return nil, false
	}
	return a.Clone(), true
}

// Len returns the number of entries in the dictionary.
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.entries)
}

// Range calls fn for every entry in sorted word order until fn returns false.
// The alignment passed to fn must not be modified.
func (d *Dictionary) Range(fn func(word string, a Alignment) bool) {
	if d == nil {
		return
	}
	for _, w := range d.Words() {
		if !fn(w, d.entries[w]) {
			return
		}
	}
}

// Words returns all dictionary keys sorted.
func (d *Dictionary) Words() []string {
	if d == nil {
		return nil
	}
	words := make([]string, 0, len(d.entries))
	for w := range d.entries {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// Suggest returns up to n dictionary words closest to word by Jaro-Winkler
// similarity, best first. Words scoring below minScore are ignored.
func (d *Dictionary) Suggest(word string, n int, minScore float64) []string {
	if d.Len() == 0 || n <= 0 {
		return nil
	}
	word = strings.ToLower(strings.TrimSpace(word))

	type scored struct {
		word  string
		score float64
	}
	var candidates []scored
	for w := range d.entries {
		if w == word {
			continue
		}
		if s := matchr.JaroWinkler(word, w, false); s >= minScore {
			candidates = append(candidates, scored{w, s})
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].word < candidates[j].word
	})
	if len(candidates) > n {
		candidates = candidates[:n]
	}
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.word
	}
	return out
}

// ParseStats counts what Parse did with the corpus lines.
type ParseStats struct {
	Lines      int // non-empty, non-comment lines
	Inserted   int
	Duplicates int // well-formed lines for a word already present
	Skipped    int // malformed lines
}

// Parse reads an alignment corpus. Each record line is
//
//	word[(variant)] slot slot ...
//
// with one phoneme slot per letter of the word and "_" for an empty slot.
// Lines starting with ";" are comments. Malformed lines are skipped. A read
// error or a line that is not valid UTF-8 (ErrInvalidUTF8) returns an empty
// dictionary with the error.
func Parse(r io.Reader) (*Dictionary, ParseStats, error) {
	d := NewDictionary()
	var stats ParseStats

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for n := 1; scanner.Scan(); n++ {
		if !utf8.Valid(scanner.Bytes()) {
			return NewDictionary(), stats, fmt.Errorf("decoding corpus line %d: %w", n, ErrInvalidUTF8)
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}
		stats.Lines++

		word, a, ok := parseLine(line)
		if !ok {
			stats.Skipped++
			continue
		}
		if d.Insert(word, a) {
			stats.Inserted++
		} else {
			stats.Duplicates++
		}
	}

	if err := scanner.Err(); err != nil {
		return NewDictionary(), stats, fmt.Errorf("reading corpus: %w", err)
	}

	return d, stats, nil
}

// ParseString is Parse over an in-memory corpus.
func ParseString(corpus string) *Dictionary {
	d, _, _ := Parse(strings.NewReader(corpus))
	return d
}

// parseLine turns one record line into a canonical word and its alignment.
func parseLine(line string) (string, Alignment, bool) {
	tokens := strings.Fields(line)
	if len(tokens) < 2 {
		return "", nil, false
	}

	raw := strings.ToLower(tokens[0])
	first := []rune(raw)[0]
	if !unicode.IsLetter(first) {
		return "", nil, false
	}

	word, _, _ := strings.Cut(raw, "(")
	letters := []rune(word)
	slots := tokens[1:]
	if len(letters) != len(slots) {
		return "", nil, false
	}

	a := make(Alignment, 0, len(letters))
	for i, letter := range letters {
		g := string(letter)
		if g == placeholder {
			g = ""
		}
		p := slots[i]
		if p == placeholder {
			p = ""
		}
		if g == "" && p == "" {
			continue
		}
		a = append(a, Pair{Grapheme: g, Phoneme: p})
	}

	return word, a, true
}
