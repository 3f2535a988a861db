package parser

import (
	"strings"

	"github.com/umlkit/classdiagram/source"
	"github.com/umlkit/classdiagram/structure"
)

// FieldParser parses fields, properties and indexers.
//
// Whether a field is a property is decided from what follows the declarator:
// "=>" makes a read-only property, "=" an initialised plain field, and
// otherwise the accessors one level deeper ("get", "private set", ...) are
// collected.
type FieldParser struct {
	DefaultAccess structure.Modifier
}

func (p *FieldParser) TryParse(r *source.Reader) (*structure.FieldInfo, bool) {
	line, ok := r.Peek()
	if !ok {
		return nil, false
	}
	loc := fieldRegex.FindStringSubmatchIndex(line.Text)
	if loc == nil {
		return nil, false
	}
	group := func(i int) string {
		if loc[2*i] < 0 {
			return ""
		}
		return line.Text[loc[2*i]:loc[2*i+1]]
	}

	// "public int" matches with type "public" and name "int"
	typ := ParseType(group(2))
	if typ == nil || structure.IsModifierWord(typ.Name) {
		return nil, false
	}
	r.Position++

	info := &structure.FieldInfo{
		Modifier: parseModifiers(group(1), p.DefaultAccess),
		Name:     group(3),
		Type:     typ,
	}
	if idx := group(4); idx != "" {
		info.PropertyType |= structure.Indexer
		idx = strings.TrimSpace(idx)
		info.IndexerArguments = ParseArguments(idx[1 : len(idx)-1])
	}

	accessors := p.accessors(r, line.Depth)
	rest := strings.TrimSpace(line.Text[loc[1]:])
	switch {
	case strings.HasPrefix(rest, "=>"):
		info.PropertyType |= structure.Get
	case strings.HasPrefix(rest, "="):
		// initialised: a plain field
	default:
		info.PropertyType |= accessors
	}
	return info, true
}

// accessors consumes the lines below a property definition and returns the
// accessors declared there.
func (p *FieldParser) accessors(r *source.Reader, depth int) structure.PropertyType {
	var prop structure.PropertyType
	n := r.DeeperLineCount(depth)
	for i := 0; i < n; i++ {
		sub, _ := r.TryRead()
		if sub.Depth != depth+1 {
			continue
		}
		if getterRegex.MatchString(sub.Text) {
			prop |= structure.Get
		}
		if setterRegex.MatchString(sub.Text) {
			prop |= structure.Set
		}
	}
	return prop
}
