package diagram

import (
	"flag"
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umlkit/classdiagram/classfilter"
	"github.com/umlkit/classdiagram/parser"
	"github.com/umlkit/classdiagram/relation"
	. "github.com/umlkit/classdiagram/structure"
)

var updateGold = flag.Bool("update-gold",
	false,
	"update *.gold.puml files in testdata/ with current output")

const title = "test_title"

var (
	spaces    = regexp.MustCompile(`\s+`)
	onlyBlock = regexp.MustCompile(`^[{}]*$`)
	arrowDirs = []string{"up", "down", "left", "right", "u", "d", "l", "r"}
)

func stripSpaces(s string) string {
	return spaces.ReplaceAllString(s, "")
}

// linePatterns returns the spellings of an expected line: relation arrows
// may carry any direction, so "A --> B" also matches "A -down-> B".
func linePatterns(line string) []string {
	patterns := []string{line}
	for _, sep := range []string{"--", ".."} {
		if strings.Contains(line, sep) {
			for _, d := range arrowDirs {
				patterns = append(patterns, strings.Replace(line, sep, sep[:1]+d+sep[:1], 1))
			}
			break
		}
	}
	return patterns
}

type diagramCase struct {
	lang     *parser.Language
	file     string
	expected []string
	// expected to appear commented out
	ignored []string
	access  Modifier
	exclude []string
}

func filterLines(lines []string, keep func(string) bool) []string {
	var kept []string
	for _, l := range lines {
		if keep(l) {
			kept = append(kept, l)
		}
	}
	return kept
}

func startsWithAny(prefixes ...string) func(string) bool {
	return func(s string) bool {
		for _, p := range prefixes {
			if strings.HasPrefix(s, p) {
				return true
			}
		}
		return false
	}
}

func not(f func(string) bool) func(string) bool {
	return func(s string) bool { return !f(s) }
}

func concat(lists ...[]string) []string {
	var all []string
	for _, l := range lists {
		all = append(all, l...)
	}
	return all
}

func generate(t *testing.T, lang *parser.Language, file string, access Modifier, exclude []string) string {
	t.Helper()
	classes, err := lang.ParseFile("../testdata/fixtures/" + file)
	require.NoError(t, err)
	var accessWords []string
	if access != AllAccessLevels {
		accessWords = access.Words()
	}
	filter, err := classfilter.New(classfilter.Config{Access: accessWords, Exclude: exclude})
	require.NoError(t, err)
	g := &Generator{Title: title, Filter: filter}
	return g.Generate(classes, relation.Build(classes))
}

// checkDiagram asserts that the diagram holds every expected line (ignoring
// whitespace and order), every ignored line behind a comment prefix, and
// nothing else but braces.
func checkDiagram(t *testing.T, tc diagramCase) {
	t.Helper()
	access := tc.access
	if access == None {
		access = AllAccessLevels
	}
	diag := generate(t, tc.lang, tc.file, access, tc.exclude)
	rest := stripSpaces(diag)

	empty := (&Generator{Title: title}).Generate(nil, nil)
	var all []string
	all = append(all, tc.expected...)
	for _, l := range strings.Split(empty, "\n") {
		if l != "" {
			all = append(all, l)
		}
	}
	for _, l := range tc.ignored {
		all = append(all, commentPrefix+l)
	}

	for _, line := range all {
		found := false
		for _, p := range linePatterns(stripSpaces(line)) {
			if i := strings.Index(rest, p); i >= 0 {
				rest = rest[:i] + rest[i+len(p):]
				found = true
				break
			}
		}
		if !found {
			t.Errorf("%s: diagram does not contain %q:\n%s", tc.file, line, diag)
			return
		}
	}
	rest = strings.NewReplacer(commentPrefix+"{", "{", commentPrefix+"}", "}").Replace(rest)
	assert.Regexp(t, onlyBlock, rest, "%s: unexpected lines in\n%s", tc.file, diag)
}

func TestGenerateCSharpBase(t *testing.T) {
	base := []string{
		"package CSharp.Testcase1",

		"class Base<T>",
		"- value : T",
		"+ <<get>> Value : T",
		"# <<get,set>> {static} Y : int",
		"+ Base(value : T)",
		"+ Method1(x : T) : string",

		"class Derived",
		"+ Derived(value : X)",
		"+ Method2() : string",
		"~ Method3(x : int, y : int) : object",

		"enum EnumValues",
		"+ {static} A : int",
		"+ {static} B : int",
		"+ {static} C : int",
		"+ {static} D : int",

		"interface IInterface",
		"+ {abstract} Method2() : string",

		"Derived --|> Base",
		"Derived ..|> IInterface",
	}
	x := []string{
		"class X",
		"+ <<get,set>> Value : EnumValues",
		"Derived ..> X",
		"X --> EnumValues",
	}
	all := concat(base, x)
	isPrivate := startsWithAny("-")
	isPublic := startsWithAny("+")

	for _, tc := range []diagramCase{
		{expected: all},
		{expected: base, ignored: x, exclude: []string{"X"}},
		{expected: filterLines(all, not(isPrivate)), ignored: filterLines(all, isPrivate),
			access: Public | Protected | Internal},
		{expected: filterLines(base, not(isPublic)), ignored: concat(filterLines(base, isPublic), x),
			access: Protected | Internal | Private, exclude: []string{"X"}},
	} {
		tc.lang, tc.file = parser.CSharp, "csharp/Base.cs"
		checkDiagram(t, tc)
	}
}

func TestGenerateCSharpSampleClass(t *testing.T) {
	base := []string{
		"package CSharp.Testcase2",

		"class Inner <<struct>>",
		"~ value : SampleClass.Inner",
	}
	sample := []string{
		"abstract class SampleClass<T>",
		"- intArray2 : int[][]",
		"# strArray3 : string[][][]",
		"~ {static} Value : T",
		"# SampleClass(x : List<int[][]>, y : List<string[][][]>)",
		"# <<get,set>> X : int[][]",
		"~ <<get>> Y : string[][][]",
		"- <<get,set>> this[x : int, y : string] : object",
		"+ Func1(x : int, objects : List<object>[]) : List<Dictionary<string[][][], int[][]>>",

		"class SampleClass.Inner",
		"- x : double",
		"- y : double",
		"+ Inner(x : double, y : double)",
		"+ <<get>> X : double",
		"+ <<get,set>> Y : double",

		"SampleClass.Inner --+ SampleClass",
		"Inner --> SampleClass.Inner",
	}
	hidden := startsWithAny("-", "~")

	for _, tc := range []diagramCase{
		{expected: concat(base, sample)},
		{expected: base, ignored: sample, exclude: []string{"SampleClass"}},
		{expected: filterLines(base, not(hidden)), ignored: concat(filterLines(base, hidden), sample),
			access: Public | Protected, exclude: []string{"SampleClass"}},
	} {
		tc.lang, tc.file = parser.CSharp, "csharp/SampleClass.cs"
		checkDiagram(t, tc)
	}
}

func TestGenerateJavaBase(t *testing.T) {
	base := []string{
		"package java.testcase1",

		"class Base<T extends Object>",
		"- {static} Y : int",
		"- value : T",
		"+ Base(value : T)",
		"+ getValue() : T",
		"# {static} getY() : int",
		"# {static} setY(y : int) : void",
		"+ Method1(x : T) : String",

		"class Derived",
		"+ Derived(value : X)",
		"+ Method2() : String",

		"interface IInterface",
		"+ {abstract} Method2() : String",

		"enum EnumValues",
		"+ {static} A : int",
		"+ {static} B : int",
		"+ {static} C : int",
		"+ {static} D : int",
		"+ value : int",
		"- EnumValues(value : int)",

		"Derived --|> Base",
		"Derived ..|> IInterface",
	}
	x := []string{
		"class X",
		"- value : EnumValues",
		"+ getValue() : EnumValues",
		"+ setValue(value : EnumValues) : void",
		"Derived ..> X",
		"X --> EnumValues",
	}
	all := concat(base, x)
	packageOrProtected := startsWithAny("~", "#")
	protected := startsWithAny("#")

	for _, tc := range []diagramCase{
		{expected: all},
		{expected: base, ignored: x, exclude: []string{"X"}},
		{expected: filterLines(all, not(packageOrProtected)), ignored: filterLines(all, packageOrProtected),
			access: Public | Private},
		{expected: filterLines(base, not(protected)), ignored: concat(filterLines(base, protected), x),
			access: Public | Package | Private, exclude: []string{"X"}},
	} {
		tc.lang, tc.file = parser.Java, "java/Base.java"
		checkDiagram(t, tc)
	}
}

func TestGenerateGold(t *testing.T) {
	actual := generate(t, parser.Java, "java/Base.java", AllAccessLevels, nil)
	goldFile := "testdata/base_java.gold.puml"

	if *updateGold {
		require.NoError(t, os.WriteFile(goldFile, []byte(actual), 0644))
		_ = os.Remove("testdata/base_java.actual.puml")
		return
	}

	expected, err := os.ReadFile(goldFile)
	require.NoError(t, err, "could not load gold output")
	if actual != string(expected) {
		actualFile := "testdata/base_java.actual.puml"
		_ = os.WriteFile(actualFile, []byte(actual), 0644)
		t.Errorf("actual PlantUML output != gold output; see %s", actualFile)
	}
}

func TestGenerateEmpty(t *testing.T) {
	assert.Equal(t,
		"@startuml class-diagram\n\nskinparam classAttributeIconSize 0\n\n\n@enduml\n",
		(&Generator{}).Generate(nil, nil))
}

func TestGenerateNoPackage(t *testing.T) {
	classes := parser.CSharp.ParseText(`
public struct Point { public int X; }
public class Shape
{
	protected Point origin;
	public abstract double Area();
}`)
	g := &Generator{Title: "shapes", Filter: nil}
	assert.Equal(t, `@startuml shapes

skinparam classAttributeIconSize 0

class Point <<struct>> {
	+ X : int
}

class Shape {
	# origin : Point
	+ {abstract} Area() : double
}

Shape -down-> Point

@enduml
`, g.Generate(classes, relation.Build(classes)))
}

func TestCommentedInnerClasses(t *testing.T) {
	classes := parser.Java.ParseText(`
class Outer {
	private int x;
	static class Inner {
		Outer parent;
	}
}
class Other {
	Outer.Inner inner;
}`)
	filter, err := classfilter.New(classfilter.Config{Exclude: []string{"Outer"}})
	require.NoError(t, err)
	g := &Generator{Title: "t", Filter: filter}
	assert.Equal(t, `@startuml t

skinparam classAttributeIconSize 0

class Other {
	~ inner : Outer.Inner
}

'class Outer {
	'- x : int
'}

'class Outer.Inner {
	'~ parent : Outer
'}

'Other -down-> Outer.Inner
'Outer.Inner -down-> Outer
'Outer.Inner -down-+ Outer

@enduml
`, g.Generate(classes, relation.Build(classes)))
}

func TestBuffer(t *testing.T) {
	assert := assert.New(t)
	var pp buffer
	pp.Block("a")
	pp.Add("b %d", 1)
	pp.Commented(true, func() {
		pp.AddLine("c")
		pp.AddLine("")
		pp.Commented(false, func() { pp.AddLine("d") })
	})
	pp.EndBlock()
	assert.Equal("a {\n\tb 1\n\t'c\n\n\t'd\n}\n", pp.Build())
}

func TestGenerateJavaInterfaceMethods(t *testing.T) {
	classes := parser.Java.ParseText(`
interface Greeter {
	String name();
	default String hello() { return "hi " + name(); }
	static Greeter of(String n) { return null; }
}`)
	g := &Generator{Title: "greeting"}
	assert.Equal(t, `@startuml greeting

skinparam classAttributeIconSize 0

interface Greeter {
	+ {abstract} name() : String
	+ hello() : String
	+ {static} of(n : String) : Greeter
}


@enduml
`, g.Generate(classes, relation.Build(classes)))
}
