// Package relation derives the relations drawn between classes: inheritance,
// nesting, and the associations and dependencies implied by member types.
package relation

import (
	"fmt"
	"sort"
	"strings"

	"bitbucket.org/creachadair/stringset"

	"github.com/umlkit/classdiagram/structure"
)

type Kind int

const (
	Dependency Kind = iota
	Association
	Aggregation
	Composition
	Generalization
	Realization
	Nested
)

var kindNames = [...]string{
	"dependency", "association", "aggregation", "composition",
	"generalization", "realization", "nested",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// strength orders the member relations; a stronger one hides weaker ones
// between the same pair of classes. Other kinds are never hidden.
func (k Kind) strength() int {
	switch k {
	case Dependency, Association, Aggregation, Composition:
		return int(k) + 1
	default:
		return 0
	}
}

// Relation points from the class that knows to the class it knows about.
type Relation struct {
	From string
	To   string
	Kind Kind
}

func (r *Relation) String() string {
	return fmt.Sprintf("%s -%s-> %s", r.From, r.Kind, r.To)
}

type pair struct{ from, to string }

type builder struct {
	classes map[string]*structure.ClassInfo
	names   stringset.Set
	// member relations, strongest per pair
	members map[pair]Kind
	others  map[Relation]bool
}

// Build returns every relation between classes (and their inner classes),
// de-duplicated and sorted by From, To and Kind. Types that do not name one
// of the classes are ignored.
func Build(classes []*structure.ClassInfo) []*Relation {
	b := &builder{
		classes: make(map[string]*structure.ClassInfo),
		names:   stringset.New(),
		members: make(map[pair]Kind),
		others:  make(map[Relation]bool),
	}
	for _, c := range structure.Flatten(classes) {
		if !b.names.Contains(c.Name()) {
			b.names.Add(c.Name())
			b.classes[c.Name()] = c
		}
	}
	for _, c := range classes {
		b.visit(c, nil)
	}
	return b.relations()
}

func (b *builder) visit(c, outer *structure.ClassInfo) {
	from := c.Name()
	if outer != nil {
		b.add(from, outer.Name(), Nested)
	}
	for _, t := range c.InheritedClasses {
		to, ok := b.resolve(c, t)
		if !ok {
			continue
		}
		kind := Generalization
		if b.classes[to].Category == structure.Interface && c.Category != structure.Interface {
			kind = Realization
		}
		b.add(from, to, kind)
	}
	for _, f := range c.Fields {
		b.addTypes(c, f.RelatedTypes(), Association)
	}
	for _, m := range c.Methods {
		b.addTypes(c, m.RelatedTypes(), Dependency)
	}
	for _, inner := range c.InnerClasses {
		b.visit(inner, c)
	}
}

func (b *builder) addTypes(c *structure.ClassInfo, types []*structure.TypeInfo, kind Kind) {
	for _, t := range types {
		if to, ok := b.resolve(c, t); ok {
			b.add(c.Name(), to, kind)
		}
	}
}

// resolve finds the class t names, as seen from inside c: "Inner" used in
// "Outer" may mean "Outer.Inner".
func (b *builder) resolve(c *structure.ClassInfo, t *structure.TypeInfo) (string, bool) {
	if t == nil {
		return "", false
	}
	scope := c.Name()
	for {
		name := t.Name
		if scope != "" {
			name = scope + "." + t.Name
		}
		if b.names.Contains(name) {
			return name, true
		}
		if scope == "" {
			return "", false
		}
		if i := strings.LastIndex(scope, "."); i >= 0 {
			scope = scope[:i]
		} else {
			scope = ""
		}
	}
}

func (b *builder) add(from, to string, kind Kind) {
	if from == to {
		return
	}
	if kind.strength() == 0 {
		b.others[Relation{From: from, To: to, Kind: kind}] = true
		return
	}
	p := pair{from, to}
	if old, ok := b.members[p]; !ok || kind.strength() > old.strength() {
		b.members[p] = kind
	}
}

func (b *builder) relations() []*Relation {
	var rels []*Relation
	for p, kind := range b.members {
		rels = append(rels, &Relation{From: p.from, To: p.to, Kind: kind})
	}
	for r := range b.others {
		rels = append(rels, &r)
	}
	sort.Slice(rels, func(i, j int) bool {
		a, b := rels[i], rels[j]
		if a.From != b.From {
			return a.From < b.From
		}
		if a.To != b.To {
			return a.To < b.To
		}
		return a.Kind < b.Kind
	})
	return rels
}
