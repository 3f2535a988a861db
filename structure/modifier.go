// Package structure is the language-neutral model of the classes read from C#
// and Java sources.
package structure

import "strings"

// Modifier is a set of declaration keywords.
type Modifier uint32

const (
	Public Modifier = 1 << iota
	Protected
	Internal
	Package
	Private
	Static
	Abstract
	Sealed
	Final
	Virtual
	New
	Override
	Readonly
	Const
	Volatile
	Event
	Async
	Extern
	Partial
	Unsafe
	Strictfp
	Transient
	Native
	Synchronized
	Default

	None Modifier = 0
)

// AllAccessLevels holds every access keyword.
const AllAccessLevels = Public | Protected | Internal | Package | Private

// modifierWords is in the order modifiers are written out.
var modifierWords = []struct {
	word string
	m    Modifier
}{
	{"public", Public},
	{"protected", Protected},
	{"internal", Internal},
	{"package", Package},
	{"private", Private},
	{"static", Static},
	{"sealed", Sealed},
	{"final", Final},
	{"virtual", Virtual},
	{"new", New},
	{"override", Override},
	{"abstract", Abstract},
	{"readonly", Readonly},
	{"const", Const},
	{"volatile", Volatile},
	{"event", Event},
	{"async", Async},
	{"extern", Extern},
	{"partial", Partial},
	{"unsafe", Unsafe},
	{"strictfp", Strictfp},
	{"transient", Transient},
	{"native", Native},
	{"synchronized", Synchronized},
	{"default", Default},
}

// ModifierWords lists every modifier keyword in canonical order.
func ModifierWords() []string {
	words := make([]string, len(modifierWords))
	for i, mw := range modifierWords {
		words[i] = mw.word
	}
	return words
}

// ParseModifier returns the modifier for a single keyword.
func ParseModifier(word string) (Modifier, bool) {
	for _, mw := range modifierWords {
		if mw.word == word {
			return mw.m, true
		}
	}
	return None, false
}

// IsModifierWord reports whether word is a modifier keyword.
func IsModifierWord(word string) bool {
	_, ok := ParseModifier(word)
	return ok
}

// ParseModifiers combines every keyword in text (separated by whitespace).
// Unknown words are ignored.
func ParseModifiers(text string) Modifier {
	m := None
	for _, w := range strings.Fields(text) {
		if mod, ok := ParseModifier(w); ok {
			m |= mod
		}
	}
	return m
}

func (m Modifier) Has(flag Modifier) bool {
	return m&flag == flag
}

// HasAny reports whether m shares at least one flag with flags.
func (m Modifier) HasAny(flags Modifier) bool {
	return m&flags != 0
}

func (m Modifier) AccessLevel() Modifier {
	return m & AllAccessLevels
}

// WithAccessLevel fills in def when m has no access keyword of its own.
func (m Modifier) WithAccessLevel(def Modifier) Modifier {
	if m.AccessLevel() == None {
		return m | def
	}
	return m
}

// Words returns the keywords of m in canonical order.
func (m Modifier) Words() []string {
	var words []string
	for _, mw := range modifierWords {
		if m.Has(mw.m) {
			words = append(words, mw.word)
		}
	}
	return words
}

func (m Modifier) String() string {
	return strings.Join(m.Words(), " ")
}
