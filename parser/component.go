// Package parser reads classes out of C# and Java source.
//
// Parsing is statement based: a [source.Reader] yields the statements of a
// file with their brace depth, and each parser recognises one kind of
// statement (a class, method, field or enum constant list) with a regular
// expression. Parsers never fail on bad input; a statement they do not
// recognise is left for the next parser or skipped.
package parser

import (
	"strings"

	"github.com/umlkit/classdiagram/source"
	"github.com/umlkit/classdiagram/structure"
)

// escapeMultiDimensionalArray rewrites C# rectangular arrays as jagged ones,
// so that [,,] counts as three dimensions and its commas do not separate
// arguments.
func escapeMultiDimensionalArray(text string) string {
	return multiDimRegex.ReplaceAllStringFunc(text, func(m string) string {
		return "[" + strings.Repeat("][", strings.Count(m, ",")) + "]"
	})
}

// depthZero drops everything nested in angle brackets.
func depthZero(text string) string {
	var top []source.DepthText
	for _, p := range source.SplitWithDepth(text, "<", ">") {
		if p.Depth == 0 {
			top = append(top, p)
		}
	}
	return source.Merge(top, "<", ">")
}

func lastTypeAt(t *structure.TypeInfo, depth int) *structure.TypeInfo {
	for i := 0; i < depth && len(t.TypeArgs) > 0; i++ {
		t = t.TypeArgs[len(t.TypeArgs)-1]
	}
	return t
}

// ParseType parses a type reference such as "List<int[]>[]" or
// "Outer<string>.Inner<int>".
//
// Type arguments of outer classes are dropped: "Outer<string>.Inner<int>"
// becomes Outer.Inner<int>. Varargs count as one more array dimension. It
// returns nil if text holds no type.
func ParseType(text string) *structure.TypeInfo {
	text = escapeMultiDimensionalArray(varArgRegex.ReplaceAllString(text, "[]"))
	var segments []string
	for _, s := range source.Split(text, ".", "<", ">", source.AtDepth(0)) {
		if strings.TrimSpace(s) != "" {
			segments = append(segments, s)
		}
	}
	if len(segments) == 0 {
		return nil
	}

	var outer []string
	for _, s := range segments[:len(segments)-1] {
		outer = append(outer, strings.TrimSpace(depthZero(s)))
	}

	// '[' separates words and a lone ']' marks an array dimension
	pieces := source.SplitWithDepth(segments[len(segments)-1], "<", ">")
	pieces = source.SplitEach(source.SplitEach(pieces, ","), "[")
	var words []source.DepthText
	for _, p := range pieces {
		if t := strings.TrimSpace(p.Text); t != "" {
			words = append(words, source.Text(p.Depth, t))
		}
	}
	if len(words) == 0 {
		return nil
	}

	name := words[0].Text
	if len(outer) > 0 {
		name = strings.Join(outer, ".") + "." + name
	}
	root := structure.NewType(name)
	rootDepth := words[0].Depth
	for _, w := range words[1:] {
		if w.Text == "]" {
			lastTypeAt(root, w.Depth-rootDepth).ArrayDimension++
			continue
		}
		parent := lastTypeAt(root, w.Depth-rootDepth-1)
		parent.TypeArgs = append(parent.TypeArgs, structure.NewType(w.Text))
	}
	return root
}

// ParseArguments parses a comma-separated argument list. Arguments that do not
// parse are left out.
func ParseArguments(text string) []*structure.ArgumentInfo {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	text = escapeMultiDimensionalArray(text)
	var args []*structure.ArgumentInfo
	for _, a := range source.Split(text, ",", "<", ">", source.AtDepth(0)) {
		m := argumentRegex.FindStringSubmatch(a)
		if m == nil {
			continue
		}
		args = append(args, &structure.ArgumentInfo{
			Modifier: structure.ParseArgumentModifier(m[1]),
			Type:     ParseType(m[2]),
			Name:     m[3],
		})
	}
	return args
}

// parseModifiers parses modifier keywords, falling back to the access level
// of def when none is given.
func parseModifiers(text string, def structure.Modifier) structure.Modifier {
	return structure.ParseModifiers(text).WithAccessLevel(def.AccessLevel())
}
