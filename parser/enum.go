package parser

import (
	"strings"

	"github.com/umlkit/classdiagram/source"
	"github.com/umlkit/classdiagram/structure"
)

// EnumValuesParser parses a line of enum constants, such as "A = 1, B" in C#
// or "A(1), B(2)" in Java.
type EnumValuesParser struct {
	// DefinitionDepth is the depth of the enum's definition line; constants
	// are one level below.
	DefinitionDepth int
}

// TryParse reads one line of constants. Each becomes a public static int
// field whose Value is the constant's initializer or first constructor
// argument.
func (p *EnumValuesParser) TryParse(r *source.Reader) ([]*structure.FieldInfo, bool) {
	line, ok := r.Peek()
	if !ok || line.Depth != p.DefinitionDepth+1 {
		return nil, false
	}
	var values []*structure.FieldInfo
	for _, item := range source.Split(line.Text, ",", "(", ")", source.AtDepth(0)) {
		m := enumValueRegex.FindStringSubmatch(strings.TrimSpace(item))
		if m == nil {
			continue
		}
		value, ok := enumPayload(m[2])
		if !ok {
			continue
		}
		values = append(values, &structure.FieldInfo{
			Modifier: structure.Public | structure.Static,
			Name:     m[1],
			Type:     structure.NewType("int"),
			Value:    value,
		})
	}
	if len(values) == 0 {
		return nil, false
	}
	r.Position++
	return values, true
}

// enumPayload extracts the value from what follows a constant's name. Text
// that is neither an assignment nor an argument list means the item is not a
// constant at all.
func enumPayload(rest string) (string, bool) {
	rest = strings.TrimSpace(rest)
	switch {
	case rest == "":
		return "", true
	case strings.HasPrefix(rest, "="):
		return strings.TrimSpace(rest[1:]), true
	case strings.HasPrefix(rest, "("):
		end := strings.LastIndex(rest, ")")
		if end < 0 {
			end = len(rest)
		}
		args := source.Split(rest[1:end], ",", "(", ")", source.AtDepth(0))
		return strings.TrimSpace(args[0]), true
	default:
		return "", false
	}
}
