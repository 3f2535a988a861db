package structure

import "strings"

// TypeInfo is a (possibly generic, possibly array) type reference.
type TypeInfo struct {
	Name           string
	ArrayDimension int
	TypeArgs       []*TypeInfo
}

func NewType(name string, typeArgs ...*TypeInfo) *TypeInfo {
	return &TypeInfo{Name: name, TypeArgs: typeArgs}
}

// NewArrayType is NewType with an array dimension.
func NewArrayType(name string, dim int, typeArgs ...*TypeInfo) *TypeInfo {
	return &TypeInfo{Name: name, ArrayDimension: dim, TypeArgs: typeArgs}
}

// ContainedTypes returns t and every type argument below it, depth first.
func (t *TypeInfo) ContainedTypes() []*TypeInfo {
	if t == nil {
		return nil
	}
	types := []*TypeInfo{t}
	for _, arg := range t.TypeArgs {
		types = append(types, arg.ContainedTypes()...)
	}
	return types
}

func (t *TypeInfo) Equal(other *TypeInfo) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.Name != other.Name ||
		t.ArrayDimension != other.ArrayDimension ||
		len(t.TypeArgs) != len(other.TypeArgs) {
		return false
	}
	for i := range t.TypeArgs {
		if !t.TypeArgs[i].Equal(other.TypeArgs[i]) {
			return false
		}
	}
	return true
}

func (t *TypeInfo) String() string {
	if t == nil {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(t.Name)
	if len(t.TypeArgs) > 0 {
		sb.WriteString("<")
		for i, arg := range t.TypeArgs {
			if i > 0 {
				sb.WriteString(",")
			}
			sb.WriteString(arg.String())
		}
		sb.WriteString(">")
	}
	sb.WriteString(strings.Repeat("[]", t.ArrayDimension))
	return sb.String()
}
