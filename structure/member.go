package structure

import (
	"fmt"
	"strings"
)

type ArgumentModifier int

const (
	ArgNone ArgumentModifier = iota
	ArgThis
	ArgIn
	ArgOut
	ArgRef
)

// ParseArgumentModifier maps a parameter keyword. "params" carries no
// meaning in the model and maps to ArgNone.
func ParseArgumentModifier(word string) ArgumentModifier {
	switch word {
	case "this":
		return ArgThis
	case "in":
		return ArgIn
	case "out":
		return ArgOut
	case "ref":
		return ArgRef
	default:
		return ArgNone
	}
}

func (m ArgumentModifier) String() string {
	switch m {
	case ArgThis:
		return "this"
	case ArgIn:
		return "in"
	case ArgOut:
		return "out"
	case ArgRef:
		return "ref"
	default:
		return ""
	}
}

type ArgumentInfo struct {
	Modifier ArgumentModifier
	Type     *TypeInfo
	Name     string
}

func (a *ArgumentInfo) String() string {
	return fmt.Sprintf("%s : %s", a.Name, a.Type)
}

// PropertyType tells properties apart from plain fields.
type PropertyType uint8

const (
	Get PropertyType = 1 << iota
	Set
	Indexer

	NotProperty PropertyType = 0
)

func (p PropertyType) Has(flag PropertyType) bool {
	return p&flag == flag
}

type FieldInfo struct {
	Modifier         Modifier
	Name             string
	Type             *TypeInfo
	PropertyType     PropertyType
	IndexerArguments []*ArgumentInfo
	// Value is the payload of an enum constant, e.g. "1" for A(1) or A = 1.
	Value string
}

// RelatedTypes is every type the field refers to.
func (f *FieldInfo) RelatedTypes() []*TypeInfo {
	types := f.Type.ContainedTypes()
	for _, arg := range f.IndexerArguments {
		types = append(types, arg.Type.ContainedTypes()...)
	}
	return types
}

type MethodInfo struct {
	Modifier Modifier
	Name     string
	// ReturnType is nil for constructors.
	ReturnType *TypeInfo
	Arguments  []*ArgumentInfo
}

func (m *MethodInfo) IsConstructor() bool {
	return m.ReturnType == nil
}

// RelatedTypes is every type in the signature of m.
func (m *MethodInfo) RelatedTypes() []*TypeInfo {
	types := m.ReturnType.ContainedTypes()
	for _, arg := range m.Arguments {
		types = append(types, arg.Type.ContainedTypes()...)
	}
	return types
}

// JoinArguments renders arguments as "a : T, b : U".
func JoinArguments(args []*ArgumentInfo) string {
	strs := make([]string, len(args))
	for i, a := range args {
		strs[i] = a.String()
	}
	return strings.Join(strs, ", ")
}
