// Package highlight marks the letters of a word that spell a target phoneme.
//
// Resolution runs in a fixed order and only ever turns marks on:
//
//  1. Heteronym override: the word's alignment is swapped for a fixed one
//     when its part-of-speech tag selects another reading ("read" as VBD).
//  2. Base match: a pair is marked when its phoneme, stress digits removed,
//     equals the target.
//  3. Pattern passes over 4-, 3- and 2-letter windows: a known spelling unit
//     that can represent the target is marked as a whole, but only when one
//     of its letters is already marked. Doubled letters ("tt", "ll") always
//     qualify in the 2-letter pass.
package highlight

import (
	"strings"

	"github.com/f3rmion/phonix/internal/align"
	"github.com/f3rmion/phonix/internal/phoneme"
	"github.com/f3rmion/phonix/internal/rules"
)

// Mask holds one flag per pair of an alignment.
type Mask []bool

// Any reports whether any entry is set.
func (m Mask) Any() bool {
	for _, v := range m {
		if v {
			return true
		}
	}
	return false
}

// Resolve computes the highlight mask of word for target. It returns the
// alignment the mask indexes, which differs from a when a heteronym rule
// fired. a itself is never modified.
func Resolve(word, tag string, a align.Alignment, target phoneme.Phoneme) (align.Alignment, Mask) {
	if override, ok := rules.Override(strings.ToLower(word), tag); ok {
		a = override
	}

	mask := make(Mask, len(a))
	for i, p := range a {
		if phoneme.Phoneme(phoneme.StripStress(p.Phoneme)) == target {
			mask[i] = true
		}
	}

	for _, n := range rules.PatternLengths {
		expand(a, mask, n, target)
	}

	return a, mask
}

// expand runs one pattern pass with window size n. Marks set by earlier
// windows are visible to later ones.
func expand(a align.Alignment, mask Mask, n int, target phoneme.Phoneme) {
	for i := 0; i+n <= len(a); i++ {
		window := a[i : i+n]

		var sb strings.Builder
		for _, p := range window {
			sb.WriteString(p.Grapheme)
		}
		eligible := rules.Allows(n, sb.String(), target)
		if !eligible && n == 2 {
			eligible = rules.IsDouble(window[0].Grapheme, window[1].Grapheme)
		}
		if !eligible || !mask[i:i+n].Any() {
			continue
		}
		for j := i; j < i+n; j++ {
			mask[j] = true
		}
	}
}
