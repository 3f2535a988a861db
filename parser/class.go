package parser

import (
	"strings"

	"github.com/umlkit/classdiagram/source"
	"github.com/umlkit/classdiagram/structure"
)

// ClassParser parses a class definition together with all of its members and
// inner classes.
type ClassParser struct {
	Package string
	// TypeAccess is the access level of a top-level type without an access
	// keyword, MemberAccess that of members and inner types.
	TypeAccess   structure.Modifier
	MemberAccess structure.Modifier
}

// TryParse parses the class defined at the reader's position. On failure the
// position is unchanged.
func (p *ClassParser) TryParse(r *source.Reader) (*structure.ClassInfo, bool) {
	return p.parse(r, "", p.TypeAccess)
}

func (p *ClassParser) parse(r *source.Reader, outer string, access structure.Modifier) (*structure.ClassInfo, bool) {
	line, ok := r.Peek()
	if !ok {
		return nil, false
	}
	m := classRegex.FindStringSubmatch(line.Text)
	if m == nil {
		return nil, false
	}
	r.Position++

	name := m[3]
	if outer != "" {
		name = outer + "." + name
	}
	category, _ := structure.ParseClassCategory(m[2])
	info := &structure.ClassInfo{
		Modifier:         parseModifiers(m[1], access),
		Category:         category,
		Package:          p.Package,
		Type:             ParseType(name),
		InheritedClasses: parseInheritance(m[4]),
	}
	p.parseBody(r, info, line.Depth)
	return info, true
}

// parseBody reads the members of info, which are the statements exactly one
// level below the definition. Anything deeper belongs to a member and is
// consumed by that member's parser or skipped.
func (p *ClassParser) parseBody(r *source.Reader, info *structure.ClassInfo, depth int) {
	end := r.Position + r.DeeperLineCount(depth)
	methods := &MethodParser{Class: info, DefaultAccess: p.MemberAccess}
	fields := &FieldParser{DefaultAccess: p.MemberAccess}
	enums := &EnumValuesParser{DefinitionDepth: depth}
	isEnum := info.Category == structure.Enum
	first := true

	for r.Position < end {
		line, _ := r.Peek()
		if line.Depth != depth+1 {
			r.Position++
			continue
		}

		// A method or field is preferred over enum constants except on the
		// first line, where Java constants such as A(1) would otherwise be
		// read as constructor calls.
		if first && isEnum {
			if values, ok := enums.TryParse(r); ok {
				info.Fields = append(info.Fields, values...)
				first = false
				continue
			}
		}
		first = false

		if inner, ok := p.parse(r, info.Name(), p.MemberAccess); ok {
			info.InnerClasses = append(info.InnerClasses, inner)
		} else if method, ok := methods.TryParse(r); ok {
			info.Methods = append(info.Methods, method)
		} else if field, ok := fields.TryParse(r); ok {
			info.Fields = append(info.Fields, field)
		} else if values, ok := p.enumValues(enums, r, isEnum); ok {
			info.Fields = append(info.Fields, values...)
		} else {
			r.Position++
		}
	}
	r.Position = max(r.Position, end)
}

func (p *ClassParser) enumValues(enums *EnumValuesParser, r *source.Reader, isEnum bool) ([]*structure.FieldInfo, bool) {
	if !isEnum {
		return nil, false
	}
	return enums.TryParse(r)
}

// parseInheritance splits the text after the class name (": A, B" or
// "extends A implements B") into types.
func parseInheritance(text string) []*structure.TypeInfo {
	pieces := source.SplitWithDepth(text, "<", ">")
	for i := range pieces {
		if pieces[i].Depth == 0 {
			pieces[i].Text = inheritKeyword.ReplaceAllString(pieces[i].Text, ",")
		}
	}
	text = source.Merge(pieces, "<", ">")

	var types []*structure.TypeInfo
	for _, s := range source.Split(text, ",", "<", ">", source.AtDepth(0)) {
		if strings.TrimSpace(s) == "" {
			continue
		}
		if t := ParseType(s); t != nil {
			types = append(types, t)
		}
	}
	return types
}
