// Package diagram renders classes and their relations as a PlantUML class
// diagram.
package diagram

import (
	"sort"
	"strings"

	"github.com/umlkit/classdiagram/classfilter"
	"github.com/umlkit/classdiagram/relation"
	"github.com/umlkit/classdiagram/structure"
)

const commentPrefix = "'"

var arrows = map[relation.Kind]string{
	relation.Dependency:     ".down.>",
	relation.Association:    "-down->",
	relation.Aggregation:    "o-down->",
	relation.Composition:    "*-down->",
	relation.Generalization: "-up-|>",
	relation.Realization:    ".up.|>",
	// down, so that inner classes are placed below their outer class
	relation.Nested: "-down-+",
}

// Generator writes PlantUML diagrams.
//
// Classes the Filter excludes are still written, but commented out, as are
// their inner classes and the relations touching them. So are members whose
// access level the Filter does not include. A nil Filter includes everything.
type Generator struct {
	Title  string
	Filter classfilter.ClassFilter
}

type packageGroup struct {
	name    string
	classes []*structure.ClassInfo
}

func groupByPackage(classes []*structure.ClassInfo) []packageGroup {
	byName := make(map[string]*packageGroup)
	var groups []*packageGroup
	for _, c := range classes {
		g, ok := byName[c.Package]
		if !ok {
			g = &packageGroup{name: c.Package}
			byName[c.Package] = g
			groups = append(groups, g)
		}
		g.classes = append(g.classes, c)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].name < groups[j].name })

	sorted := make([]packageGroup, len(groups))
	for i, g := range groups {
		sort.SliceStable(g.classes, func(i, j int) bool {
			return g.classes[i].Name() < g.classes[j].Name()
		})
		sorted[i] = *g
	}
	return sorted
}

// Generate renders the top-level classes (inner classes are reached through
// them) and the relations.
func (g *Generator) Generate(classes []*structure.ClassInfo, relations []*relation.Relation) string {
	var pp buffer
	title := g.Title
	if title == "" {
		title = classfilter.DefaultTitle
	}
	pp.Add("@startuml %s", title)
	pp.AddLine("")
	pp.AddLine("skinparam classAttributeIconSize 0")
	pp.AddLine("")

	excluded := make(map[string]bool)
	for _, c := range classes {
		g.markExcluded(c, false, excluded)
	}

	for _, group := range groupByPackage(classes) {
		if group.name != "" {
			pp.Block("package %s", group.name)
			pp.AddLine("")
		}
		for _, c := range group.classes {
			g.writeClass(&pp, c, excluded)
		}
		if group.name != "" {
			pp.EndBlock()
			pp.AddLine("")
		}
	}

	for _, r := range relations {
		if r.From == r.To {
			continue
		}
		pp.Commented(excluded[r.From] || excluded[r.To], func() {
			pp.Add("%s %s %s", r.From, arrows[r.Kind], r.To)
		})
	}

	pp.AddLine("")
	pp.AddLine("@enduml")
	return pp.Build()
}

func (g *Generator) markExcluded(c *structure.ClassInfo, outer bool, excluded map[string]bool) {
	ex := outer || (g.Filter != nil && g.Filter.Excludes(c.Name()))
	if ex {
		excluded[c.Name()] = true
	}
	for _, inner := range c.InnerClasses {
		g.markExcluded(inner, ex, excluded)
	}
}

func (g *Generator) includesMember(m structure.Modifier) bool {
	return g.Filter == nil || g.Filter.IncludesMember(m)
}

func (g *Generator) writeClass(pp *buffer, c *structure.ClassInfo, excluded map[string]bool) {
	pp.Commented(excluded[c.Name()], func() {
		pp.Block("%s", classHeader(c))
		for _, f := range c.Fields {
			pp.Commented(!g.includesMember(f.Modifier), func() {
				pp.AddLine(fieldLine(f))
			})
		}
		for _, m := range c.Methods {
			pp.Commented(!g.includesMember(m.Modifier), func() {
				pp.AddLine(methodLine(m))
			})
		}
		pp.EndBlock()
		pp.AddLine("")

		for _, inner := range c.InnerClasses {
			g.writeClass(pp, inner, excluded)
		}
	})
}

func classHeader(c *structure.ClassInfo) string {
	var sb strings.Builder
	if c.Modifier.Has(structure.Abstract) {
		sb.WriteString("abstract ")
	}
	switch c.Category {
	case structure.Interface, structure.Enum:
		sb.WriteString(c.Category.String())
	default:
		// UML has no structs
		sb.WriteString("class")
	}
	sb.WriteString(" " + c.Type.String())
	if c.Category == structure.Struct {
		sb.WriteString(" <<struct>>")
	}
	return sb.String()
}

func accessSymbol(m structure.Modifier) string {
	switch {
	case m.Has(structure.Public):
		return "+"
	case m.Has(structure.Protected):
		return "#"
	case m.HasAny(structure.Internal | structure.Package):
		return "~"
	case m.Has(structure.Private):
		return "-"
	default:
		// the implicit package access
		return "~"
	}
}

func modifierText(m structure.Modifier) string {
	var sb strings.Builder
	if m.Has(structure.Abstract) {
		sb.WriteString("{abstract} ")
	}
	if m.HasAny(structure.Static | structure.Const) {
		sb.WriteString("{static} ")
	}
	return sb.String()
}

func fieldLine(f *structure.FieldInfo) string {
	var stereotypes []string
	if f.Modifier.Has(structure.Event) {
		stereotypes = append(stereotypes, "event")
	}
	if f.PropertyType.Has(structure.Get) {
		stereotypes = append(stereotypes, "get")
	}
	if f.PropertyType.Has(structure.Set) {
		stereotypes = append(stereotypes, "set")
	}

	var sb strings.Builder
	sb.WriteString(accessSymbol(f.Modifier) + " ")
	if len(stereotypes) > 0 {
		sb.WriteString("<<" + strings.Join(stereotypes, ",") + ">> ")
	}
	sb.WriteString(modifierText(f.Modifier))
	sb.WriteString(f.Name)
	if len(f.IndexerArguments) > 0 {
		sb.WriteString("[" + structure.JoinArguments(f.IndexerArguments) + "]")
	}
	sb.WriteString(" : " + f.Type.String())
	return sb.String()
}

func methodLine(m *structure.MethodInfo) string {
	var sb strings.Builder
	sb.WriteString(accessSymbol(m.Modifier) + " ")
	sb.WriteString(modifierText(m.Modifier))
	sb.WriteString(m.Name + "(" + structure.JoinArguments(m.Arguments) + ")")
	if m.ReturnType != nil {
		sb.WriteString(" : " + m.ReturnType.String())
	}
	return sb.String()
}
