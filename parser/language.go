package parser

import (
	"regexp"
	"sort"
	"strings"

	"github.com/umlkit/classdiagram/source"
	"github.com/umlkit/classdiagram/structure"
)

// Language describes how to parse one source language.
type Language struct {
	Name    string
	Aliases []string
	// Extension of source files, including the dot.
	Extension string
	// TypeAccess is the access of a top-level type without an access keyword;
	// MemberAccess that of members and nested types.
	TypeAccess   structure.Modifier
	MemberAccess structure.Modifier

	// packageRegex captures the package (namespace) name in group 1
	packageRegex *regexp.Regexp
	// nested namespace blocks are joined with their parent's name
	nestedPackages bool
}

var CSharp = &Language{
	Name:           "csharp",
	Aliases:        []string{"cs", "c#"},
	Extension:      ".cs",
	TypeAccess:     structure.Internal,
	MemberAccess:   structure.Private,
	packageRegex:   regexp.MustCompile(`^\s*namespace\s+(` + namePattern + `)\s*`),
	nestedPackages: true,
}

var Java = &Language{
	Name:         "java",
	Extension:    ".java",
	TypeAccess:   structure.Package,
	MemberAccess: structure.Package,
	packageRegex: regexp.MustCompile(`^\s*package\s+(` + namePattern + `)\s*`),
}

var languages = []*Language{CSharp, Java}

// Languages returns the supported languages, sorted by name.
func Languages() []*Language {
	langs := append([]*Language(nil), languages...)
	sort.Slice(langs, func(i, j int) bool { return langs[i].Name < langs[j].Name })
	return langs
}

// LookupLanguage finds a language by name or alias, ignoring case.
func LookupLanguage(name string) (*Language, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, l := range languages {
		if l.Name == name {
			return l, true
		}
		for _, a := range l.Aliases {
			if a == name {
				return l, true
			}
		}
	}
	return nil, false
}

func (l *Language) String() string {
	return l.Name
}

func (l *Language) classParser(pkg string) *ClassParser {
	return &ClassParser{
		Package:      pkg,
		TypeAccess:   l.TypeAccess,
		MemberAccess: l.MemberAccess,
	}
}

// Parse reads every top-level class from r, tracking the package (or
// namespace) each one is declared in.
//
// A C# namespace block applies to the lines nested in it and joins the name
// of the enclosing namespace; a file-scoped namespace ("namespace A;") and a
// Java package statement apply to the rest of the file.
func (l *Language) Parse(r *source.Reader) []*structure.ClassInfo {
	type scope struct {
		depth int
		name  string
	}
	var classes []*structure.ClassInfo
	var scopes []scope
	pkg := ""
	for !r.AtEnd() {
		line, _ := r.Peek()
		if l.nestedPackages {
			for len(scopes) > 0 && scopes[len(scopes)-1].depth >= line.Depth {
				scopes = scopes[:len(scopes)-1]
			}
			pkg = ""
			if len(scopes) > 0 {
				pkg = scopes[len(scopes)-1].name
			}
		}
		if m := l.packageRegex.FindStringSubmatch(line.Text); m != nil {
			r.Position++
			name := m[1]
			if l.nestedPackages {
				if pkg != "" {
					name = pkg + "." + name
				}
				depth := line.Depth
				if next, ok := r.Peek(); !ok || next.Depth <= line.Depth {
					// file scoped
					depth = -1
				}
				scopes = append(scopes, scope{depth: depth, name: name})
			}
			pkg = name
			continue
		}
		if c, ok := l.classParser(pkg).TryParse(r); ok {
			classes = append(classes, c)
			continue
		}
		r.Position++
	}
	return classes
}

func (l *Language) ParseText(code string) []*structure.ClassInfo {
	return l.Parse(source.NewReader(code))
}

func (l *Language) ParseFile(path string) ([]*structure.ClassInfo, error) {
	r, err := source.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return l.Parse(r), nil
}
