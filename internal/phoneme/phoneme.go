// Package phoneme defines the fixed ARPAbet inventory the highlighter works with.
package phoneme

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknown is returned by Parse for symbols outside the inventory.
var ErrUnknown = errors.New("unknown phoneme")

// Phoneme is an ARPAbet symbol without stress digits.
type Phoneme string

// Category groups phonemes for selection in the UI.
type Category string

const (
	Vowel     Category = "vowel"
	Consonant Category = "consonant"
)

// Vowels.
const (
	AA Phoneme = "AA" // odd, father
	AE Phoneme = "AE" // at, fast
	AH Phoneme = "AH" // hut, up
	AO Phoneme = "AO" // ought, caught
	AW Phoneme = "AW" // cow, out
	AY Phoneme = "AY" // hide, my
	EH Phoneme = "EH" // red, bed
	ER Phoneme = "ER" // hurt, bird
	EY Phoneme = "EY" // ate, day
	IH Phoneme = "IH" // it, sit
	IY Phoneme = "IY" // eat, see
	OW Phoneme = "OW" // oat, go
	OY Phoneme = "OY" // toy, boy
	UH Phoneme = "UH" // hood, look
	UW Phoneme = "UW" // two, blue
)

// Consonants.
const (
	B  Phoneme = "B"
	CH Phoneme = "CH"
	D  Phoneme = "D"
	DH Phoneme = "DH"
	F  Phoneme = "F"
	G  Phoneme = "G"
	HH Phoneme = "HH"
	JH Phoneme = "JH"
	K  Phoneme = "K"
	L  Phoneme = "L"
	M  Phoneme = "M"
	N  Phoneme = "N"
	NG Phoneme = "NG"
	P  Phoneme = "P"
	R  Phoneme = "R"
	S  Phoneme = "S"
	SH Phoneme = "SH"
	T  Phoneme = "T"
	TH Phoneme = "TH"
	V  Phoneme = "V"
	W  Phoneme = "W"
	Y  Phoneme = "Y"
	Z  Phoneme = "Z"
	ZH Phoneme = "ZH"
)

// Info describes one inventory entry. Examples is only used for display.
type Info struct {
	Symbol   Phoneme
	Category Category
	Examples string
}

// Label returns the selection label, e.g. "EH - (e.g., red, bed)".
func (i Info) Label() string {
	return fmt.Sprintf("%s - (e.g., %s)", i.Symbol, i.Examples)
}

var inventory = []Info{
	{AA, Vowel, "odd, father"},
	{AE, Vowel, "at, fast"},
	{AH, Vowel, "hut, up"},
	{AO, Vowel, "ought, caught"},
	{AW, Vowel, "cow, out"},
	{AY, Vowel, "hide, my"},
	{EH, Vowel, "red, bed"},
	{ER, Vowel, "hurt, bird"},
	{EY, Vowel, "ate, day"},
	{IH, Vowel, "it, sit"},
	{IY, Vowel, "eat, see"},
	{OW, Vowel, "oat, go"},
	{OY, Vowel, "toy, boy"},
	{UH, Vowel, "hood, look"},
	{UW, Vowel, "two, blue"},

	{B, Consonant, "bat, be"},
	{CH, Consonant, "cheese, catch"},
	{D, Consonant, "dog, day"},
	{DH, Consonant, "the, father"},
	{F, Consonant, "fish, fee"},
	{G, Consonant, "green, go"},
	{HH, Consonant, "hat, he"},
	{JH, Consonant, "jump, judge"},
	{K, Consonant, "key, cat"},
	{L, Consonant, "lamp, lee"},
	{M, Consonant, "man, me"},
	{N, Consonant, "no, knee"},
	{NG, Consonant, "sing, running"},
	{P, Consonant, "pen, pee"},
	{R, Consonant, "run, read"},
	{S, Consonant, "sun, sea"},
	{SH, Consonant, "shoe, she"},
	{T, Consonant, "top, tea"},
	{TH, Consonant, "think, bath"},
	{V, Consonant, "van, vee"},
	{W, Consonant, "water, we"},
	{Y, Consonant, "yellow, yes"},
	{Z, Consonant, "zoo, zebra"},
	{ZH, Consonant, "measure, vision"},
}

var bySymbol = func() map[Phoneme]Info {
	m := make(map[Phoneme]Info, len(inventory))
	for _, info := range inventory {
		m[info.Symbol] = info
	}
	return m
}()

// All returns the full inventory, vowels first, in display order.
func All() []Info {
	out := make([]Info, len(inventory))
	copy(out, inventory)
	return out
}

// ByCategory returns the inventory entries of one category in display order.
func ByCategory(c Category) []Info {
	var out []Info
	for _, info := range inventory {
		if info.Category == c {
			out = append(out, info)
		}
	}
	return out
}

// Lookup returns the inventory entry for p.
func Lookup(p Phoneme) (Info, bool) {
	info, ok := bySymbol[p]
	return info, ok
}

// Valid reports whether p is part of the inventory.
func (p Phoneme) Valid() bool {
	_, ok := bySymbol[p]
	return ok
}

// Category returns the category of p, or "" for unknown symbols.
func (p Phoneme) Category() Category {
	return bySymbol[p].Category
}

// Label returns the display label of p, or the bare symbol if unknown.
func (p Phoneme) Label() string {
	info, ok := bySymbol[p]
	if !ok {
		return string(p)
	}
	return info.Label()
}

// Parse accepts a bare symbol ("eh", "EH1") or a selection label
// ("EH - (e.g., red, bed)") and returns the phoneme.
func Parse(s string) (Phoneme, error) {
	sym, _, _ := strings.Cut(s, " -")
	sym = StripStress(strings.ToUpper(strings.TrimSpace(sym)))
	p := Phoneme(sym)
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknown, s)
	}
	return p, nil
}

// StripStress removes every ASCII digit from a corpus phoneme, so "IH1"
// becomes "IH".
func StripStress(s string) string {
	if strings.IndexAny(s, "0123456789") < 0 {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			sb.WriteByte(s[i])
		}
	}
	return sb.String()
}
