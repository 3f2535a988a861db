package parser

import (
	"regexp"
	"strings"

	"github.com/umlkit/classdiagram/structure"
)

// Building blocks of the statement regexes. None of them capture, so they can
// be freely combined.
const (
	namePattern       = `[^\s,:\[\]\(\)<>=]+`
	typeParamPattern  = `[^:\[\]\(\)<>=]+`
	typeArgPattern    = `[^:\(\)=]+`
	attributePattern  = `(?:\s*\[[^\[\]]*\]\s*)*`
	annotationPattern = `(?:\s*@` + namePattern + `\s*(?:\([^\(\)]*\))?\s*)*`
	varArgPattern     = `\s*\.\.\.\s*`

	typePattern = namePattern + `(?:\s*<` + typeArgPattern + `>\s*)?` +
		`(?:\.` + namePattern + `(?:\s*<` + typeArgPattern + `>\s*)?)*` +
		`(?:\s*\[[\s,]*\]\s*)*`

	// type parameters of a class definition, allowing one level of nested
	// generics such as Map<List<K>, V>
	classTypeParamPattern = `(?:[^<>:\[\]\(\)=]|<[^<>]*>)+`
	classTypePattern      = namePattern + `(?:\s*<` + classTypeParamPattern + `>\s*)?`

	argModifierPattern = `this|in|out|ref|params`
)

var modifierPattern = "(?:" + strings.Join(structure.ModifierWords(), "|") + ")"

var categoryPattern = "(?:class|interface|enum|struct)"

// argument builds the pattern of one method or indexer argument. With capture
// set it has three groups: modifier, type, name.
func argument(capture bool) string {
	open := "(?:"
	if capture {
		open = "("
	}
	return `(?:` + attributePattern + annotationPattern +
		`(?:` + open + argModifierPattern + `)\s+)?` +
		open + typePattern + `(?:` + varArgPattern + `)?)\s+` +
		open + namePattern + `)(?:\s*=[^,]*)?)`
}

var argumentPattern = argument(false)

// arguments matches a whole (possibly empty) comma-separated argument list.
var argumentsPattern = argumentPattern + `?(?:\s*,\s*(?:` + argumentPattern + `))*`

var (
	argumentRegex = regexp.MustCompile(argument(true))

	// Groups: [1] modifiers, [2] category, [3] class type, [4] inheritance
	classRegex = regexp.MustCompile(`^\s*` + attributePattern + annotationPattern +
		`((?:` + modifierPattern + `\s+)*)(` + categoryPattern + `)\s+(` + classTypePattern + `)\s*` +
		`((?:\s*(?::|extends|implements)\s*(?:` + typePattern + `(?:\s*,\s*(?:` + typePattern + `))*))*)`)

	// Type parameters appear before the return type in Java and after the
	// name in C#, so both positions are accepted.
	//
	// Groups: [1] modifiers, [2] return type, [3] name, [4] arguments
	methodRegex = regexp.MustCompile(`^\s*` + attributePattern + annotationPattern +
		`((?:` + modifierPattern + `\s+)*)(?:<` + typeParamPattern + `>\s*)?` +
		`(?:(` + typePattern + `)\s+)?(` + namePattern + `)\s*(?:<` + typeParamPattern + `>\s*)?` +
		`\(\s*(` + argumentsPattern + `)\s*\)`)

	// Groups: [1] modifiers, [2] type, [3] name, [4] indexer arguments with
	// their brackets
	fieldRegex = regexp.MustCompile(`^\s*` + attributePattern + annotationPattern +
		`((?:` + modifierPattern + `\s+)*)(` + typePattern + `)\s+(` + namePattern + `)\s*` +
		`(\[\s*(?:` + argumentsPattern + `)\s*\])?`)

	getterRegex = regexp.MustCompile(`^\s*(?:` + modifierPattern + `\s+)*get\b`)
	setterRegex = regexp.MustCompile(`^\s*(?:` + modifierPattern + `\s+)*(?:set|init)\b`)

	// Groups: [1] name, [2] the rest (an assignment or constructor arguments)
	enumValueRegex = regexp.MustCompile(`^` + attributePattern + annotationPattern +
		`(` + namePattern + `)\s*(.*)$`)

	varArgRegex    = regexp.MustCompile(varArgPattern)
	multiDimRegex  = regexp.MustCompile(`\[\s*(?:\s*,\s*)*\s*\]`)
	inheritKeyword = regexp.MustCompile(`:|\bextends\b|\bimplements\b`)
)
