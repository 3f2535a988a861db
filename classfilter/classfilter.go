// classfilter defines the configuration (using toml) for which classes and
// members appear in a diagram.
//
// See [Config] for the format of the toml file itself.
package classfilter

import (
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"

	"github.com/umlkit/classdiagram/structure"
)

// DefaultTitle is used when neither the config nor the command line sets one.
const DefaultTitle = "class-diagram"

// Config defines the format of the toml files.
//
// Exclude is a list of patterns, which are interpreted left to right to build
// a set of matching class names, starting with the empty set. Literal patterns
// like "Foo" match themselves, "!p" removes anything matching p from the set,
// and the wildcard "*" within a pattern matches any sequence of characters.
// Inner classes are matched by their full name, such as "Outer.Inner".
type Config struct {
	// Diagram title. Defaults to DefaultTitle.
	Title string `toml:"title"`
	// Source language, "csharp" or "java".
	Language string `toml:"language"`
	// Access levels of members to show, such as ["public", "protected"].
	// Defaults to all.
	Access []string `toml:"access"`
	// Classes drawn commented out. Defaults to the empty set.
	Exclude []string `toml:"exclude"`
}

type setOpType int

const (
	setUnion setOpType = iota
	setSubtract
)

type setOp struct {
	t setOpType
	r *regexp.Regexp
}

// A string set described by a sequence of glob patterns. The set is built up by
// starting from the empty set and then applying each operation left to right.
type stringSet []setOp

func (ss stringSet) contains(s string) bool {
	b := false
	for _, op := range ss {
		if op.r.MatchString(s) {
			b = op.t == setUnion
		}
	}
	return b
}

func newOp(pat string) setOp {
	var s setOp
	pattern, negated := strings.CutPrefix(pat, "!")
	if negated {
		s.t = setSubtract
	} else {
		s.t = setUnion
	}

	patternParts := strings.Split(pattern, "*")
	for i := range patternParts {
		patternParts[i] = regexp.QuoteMeta(patternParts[i])
	}
	s.r = regexp.MustCompile("^" + strings.Join(patternParts, ".*") + "$")
	return s
}

func newStringSet(patterns []string) stringSet {
	ss := make(stringSet, len(patterns))
	for i, p := range patterns {
		ss[i] = newOp(p)
	}
	return ss
}

// ClassFilter determines which classes and members are drawn normally and
// which are commented out.
type ClassFilter interface {
	Excludes(className string) bool
	IncludesMember(structure.Modifier) bool
	AccessLevels() structure.Modifier
}

type classFilter struct {
	exclude stringSet
	access  structure.Modifier
}

func (cf *classFilter) Excludes(className string) bool {
	return cf.exclude.contains(className)
}

// IncludesMember reports whether a member with modifiers m has one of the
// configured access levels. Members without an access level are only
// included when every level is.
func (cf *classFilter) IncludesMember(m structure.Modifier) bool {
	return cf.access == structure.AllAccessLevels || m.HasAny(cf.access)
}

func (cf *classFilter) AccessLevels() structure.Modifier {
	return cf.access
}

// ParseAccessLevels parses access keywords separated by commas, spaces or
// '|'. An empty text means all access levels.
func ParseAccessLevels(text string) (structure.Modifier, error) {
	words := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == '|' || r == ' ' || r == '\t'
	})
	levels := structure.None
	for _, w := range words {
		m, ok := structure.ParseModifier(strings.ToLower(w))
		if !ok || m.AccessLevel() == structure.None {
			return structure.None, errors.Errorf("unknown access level %q", w)
		}
		levels |= m
	}
	if levels == structure.None {
		return structure.AllAccessLevels, nil
	}
	return levels, nil
}

// New builds the filter described by c. Only the access levels can be
// invalid.
func New(c Config) (ClassFilter, error) {
	access, err := ParseAccessLevels(strings.Join(c.Access, ","))
	if err != nil {
		return nil, err
	}
	return &classFilter{
		exclude: newStringSet(c.Exclude),
		access:  access,
	}, nil
}

func ParseConfig(raw []byte) (c Config, err error) {
	err = toml.Unmarshal(raw, &c)
	return
}

func Load(raw []byte) (ClassFilter, error) {
	c, err := ParseConfig(raw)
	if err != nil {
		return nil, errors.Wrap(err, "could not parse config")
	}
	return New(c)
}
