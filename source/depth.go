// Package source turns C# and Java source text into a flat list of statements
// tagged with their brace depth.
//
// The statement list is what every parser consumes: a class header like
// "public class A" at depth 0 is followed by its members at depth 1, member
// bodies at depth 2, and so on.
package source

import (
	"fmt"
	"strings"
)

// DepthText is a piece of text and the nesting depth it was found at.
type DepthText struct {
	Text  string
	Depth int
}

func Text(depth int, text string) DepthText {
	return DepthText{Text: text, Depth: depth}
}

func (t DepthText) String() string {
	return fmt.Sprintf("[%d] %q", t.Depth, t.Text)
}

// SplitWithDepth splits text on nest and unnest and assigns each piece its
// depth: the depth starts at 0, each nest adds 1 and each unnest subtracts 1.
//
// Unbalanced text yields negative depths rather than an error.
func SplitWithDepth(text, nest, unnest string) []DepthText {
	words := strings.Split(text, nest)
	pieces := make([]DepthText, 0, len(words))
	depth := 0
	for i, w := range words {
		if i > 0 {
			depth++
		}
		for j, sub := range strings.Split(w, unnest) {
			if j > 0 {
				depth--
			}
			pieces = append(pieces, DepthText{Text: sub, Depth: depth})
		}
	}
	return pieces
}

// Merge joins pieces back into one string, re-inserting nest or unnest
// wherever the depth goes up or down.
func Merge(pieces []DepthText, nest, unnest string) string {
	if len(pieces) == 0 {
		return ""
	}
	var sb strings.Builder
	prev := pieces[0]
	sb.WriteString(prev.Text)
	for _, p := range pieces[1:] {
		if prev.Depth < p.Depth {
			sb.WriteString(nest)
		} else if prev.Depth > p.Depth {
			sb.WriteString(unnest)
		}
		sb.WriteString(p.Text)
		prev = p
	}
	return sb.String()
}

// Split splits text on sep, but only within pieces (delimited by nest and
// unnest) whose depth satisfies filter. A nil filter splits everywhere.
//
// For example, splitting "Map<K,V> m, int n" on "," at depth 0 of "<" and ">"
// gives "Map<K,V> m" and " int n".
func Split(text, sep, nest, unnest string, filter func(depth int) bool) []string {
	var words []string
	var pending []DepthText
	for _, dt := range SplitWithDepth(text, nest, unnest) {
		if filter != nil && !filter(dt.Depth) {
			pending = append(pending, dt)
			continue
		}
		parts := strings.Split(dt.Text, sep)
		if len(parts) <= 1 {
			pending = append(pending, dt)
			continue
		}
		pending = append(pending, DepthText{Text: parts[0], Depth: dt.Depth})
		words = append(words, Merge(pending, nest, unnest))
		words = append(words, parts[1:len(parts)-1]...)
		pending = []DepthText{{Text: parts[len(parts)-1], Depth: dt.Depth}}
	}
	if len(pending) > 0 {
		words = append(words, Merge(pending, nest, unnest))
	}
	return words
}

// AtDepth is a Split filter accepting exactly depth d.
func AtDepth(d int) func(int) bool {
	return func(depth int) bool { return depth == d }
}

// SplitEach splits every piece on sep; the parts keep the depth of their
// piece.
func SplitEach(pieces []DepthText, sep string) []DepthText {
	var out []DepthText
	for _, p := range pieces {
		for _, s := range strings.Split(p.Text, sep) {
			out = append(out, DepthText{Text: s, Depth: p.Depth})
		}
	}
	return out
}
