package structure

import "fmt"

type ClassCategory int

const (
	Class ClassCategory = iota
	Interface
	Enum
	Struct
)

var categoryNames = [...]string{"class", "interface", "enum", "struct"}

func (c ClassCategory) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return fmt.Sprintf("ClassCategory(%d)", int(c))
}

func ParseClassCategory(word string) (ClassCategory, bool) {
	for i, n := range categoryNames {
		if n == word {
			return ClassCategory(i), true
		}
	}
	return Class, false
}

// ClassInfo is a class, interface, enum or struct definition.
//
// Inner classes are named after their outer class ("Outer.Inner"), so Name is
// unique within one package.
type ClassInfo struct {
	Modifier         Modifier
	Category         ClassCategory
	Package          string
	Type             *TypeInfo
	InheritedClasses []*TypeInfo
	InnerClasses     []*ClassInfo
	Methods          []*MethodInfo
	Fields           []*FieldInfo
}

func (c *ClassInfo) Name() string {
	if c.Type == nil {
		return ""
	}
	return c.Type.Name
}

// AllClasses returns c followed by all of its inner classes, depth first.
func (c *ClassInfo) AllClasses() []*ClassInfo {
	all := []*ClassInfo{c}
	for _, inner := range c.InnerClasses {
		all = append(all, inner.AllClasses()...)
	}
	return all
}

func (c *ClassInfo) String() string {
	return fmt.Sprintf("%s %s", c.Category, c.Type)
}

// Flatten expands every class in classes with AllClasses.
func Flatten(classes []*ClassInfo) []*ClassInfo {
	var all []*ClassInfo
	for _, c := range classes {
		all = append(all, c.AllClasses()...)
	}
	return all
}
