package parser

import (
	"github.com/umlkit/classdiagram/source"
	"github.com/umlkit/classdiagram/structure"
)

// MethodParser parses a method or constructor definition and skips its body.
type MethodParser struct {
	// Class is the class the method belongs to; may be nil.
	Class         *structure.ClassInfo
	DefaultAccess structure.Modifier
}

func (p *MethodParser) TryParse(r *source.Reader) (*structure.MethodInfo, bool) {
	line, ok := r.Peek()
	if !ok {
		return nil, false
	}
	m := methodRegex.FindStringSubmatch(line.Text)
	if m == nil {
		return nil, false
	}
	r.Position++

	info := &structure.MethodInfo{
		Modifier:  p.modifiers(m[1]),
		Name:      m[3],
		Arguments: ParseArguments(m[4]),
	}
	if m[2] != "" {
		info.ReturnType = ParseType(m[2])
	}
	r.Position += r.DeeperLineCount(line.Depth)
	return info, true
}

func (p *MethodParser) modifiers(text string) structure.Modifier {
	mod := parseModifiers(text, p.DefaultAccess)
	if p.Class == nil || p.Class.Category != structure.Interface {
		return mod
	}
	// interface members are always public, and abstract unless they have a
	// body (Java default and static methods)
	mod = mod&^structure.AllAccessLevels | structure.Public
	if !mod.HasAny(structure.Default | structure.Static) {
		mod |= structure.Abstract
	}
	return mod
}
