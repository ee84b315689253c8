// Package rules holds the fixed spelling-pattern and heteronym tables used to
// widen and correct phoneme highlights.
package rules

import (
	"slices"
	"unicode"
	"unicode/utf8"

	"github.com/f3rmion/phonix/internal/phoneme"
)

type patternTable map[string][]phoneme.Phoneme

// Table contents are best-effort coverage; the phoneme lists are not meant
// to line up with the letter count.
var (
	tetragraphs = patternTable{
		"tion": {phoneme.SH, phoneme.AH, phoneme.N},
		"sion": {phoneme.SH, phoneme.ZH, phoneme.AH, phoneme.N},
		"eigh": {phoneme.EY},
		"augh": {phoneme.AO, phoneme.F},
		"ough": {phoneme.OW, phoneme.AW, phoneme.UW, phoneme.AO, phoneme.F, phoneme.AH},
	}

	trigraphs = patternTable{
		"igh": {phoneme.AY},
		"tch": {phoneme.CH},
		"dge": {phoneme.JH},
		"eau": {phoneme.OW, phoneme.UW},
		"ous": {phoneme.AH, phoneme.S},
		"que": {phoneme.K},
	}

	digraphs = patternTable{
		"sh": {phoneme.SH},
		"ch": {phoneme.CH, phoneme.K, phoneme.SH},
		"th": {phoneme.TH, phoneme.DH},
		"ph": {phoneme.F},
		"wh": {phoneme.W, phoneme.HH},
		"ng": {phoneme.NG},
		"gh": {phoneme.F, phoneme.G},
		"ck": {phoneme.K},
		"kn": {phoneme.N},
		"wr": {phoneme.R},
		"mb": {phoneme.M},
		"gn": {phoneme.N},
		"rh": {phoneme.R},
		"ti": {phoneme.SH},
		"ci": {phoneme.SH},
		"si": {phoneme.SH, phoneme.ZH},
		"ce": {phoneme.SH},
		"tu": {phoneme.CH},
		"su": {phoneme.SH, phoneme.ZH},
		"ea": {phoneme.IY, phoneme.EH, phoneme.EY},
		"ee": {phoneme.IY},
		"oa": {phoneme.OW},
		"oo": {phoneme.UW, phoneme.UH},
		"ou": {phoneme.AW, phoneme.AH, phoneme.UW, phoneme.OW},
		"ow": {phoneme.AW, phoneme.OW},
		"ai": {phoneme.EY, phoneme.EH},
		"ay": {phoneme.EY},
		"ei": {phoneme.EY, phoneme.IY},
		"ey": {phoneme.EY, phoneme.IY},
		"au": {phoneme.AO},
		"aw": {phoneme.AO},
		"ew": {phoneme.UW, phoneme.Y},
		"oe": {phoneme.OW, phoneme.UW},
		"ie": {phoneme.IY, phoneme.AY},
		"ui": {phoneme.UW, phoneme.IH},
		"ue": {phoneme.UW},
	}
)

// PatternLengths lists the window sizes the highlighter scans, longest first.
var PatternLengths = []int{4, 3, 2}

func tableFor(n int) patternTable {
	switch n {
	case 4:
		return tetragraphs
	case 3:
		return trigraphs
	case 2:
		return digraphs
	default:
		return nil
	}
}

// Allows reports whether pattern is a key of the n-letter table whose
// phoneme set contains p. Windows holding empty graphemes spell fewer than n
// letters and so never match.
func Allows(n int, pattern string, p phoneme.Phoneme) bool {
	set, ok := tableFor(n)[pattern]
	return ok && slices.Contains(set, p)
}

// Phonemes returns a copy of the phoneme set for a pattern.
func Phonemes(pattern string) ([]phoneme.Phoneme, bool) {
	set, ok := tableFor(utf8.RuneCountInString(pattern))[pattern]
	if !ok {
		return nil, false
	}
	return slices.Clone(set), true
}

// IsDouble reports whether a and b are the same single letter, as in the
// "tt" of "letter".
func IsDouble(a, b string) bool {
	if a == "" || a != b {
		return false
	}
	for _, r := range a {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
