package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umlkit/classdiagram/source"
	. "github.com/umlkit/classdiagram/structure"
)

const sampleCode = `
using System;

public static class MainClass
{
	private static readonly string logText = "Output";

	public static void Main(string args)
	{
		for(var i = 0; i < 10; i++)
		{
			Output(i);
		}
	}

	public static string LogText { get => logText; }

	private static int Output ( int x )
	{
		Console.WriteLine(LogText + x);
		return x;
	}
}
`

func field(mod Modifier, t *TypeInfo, name string) *FieldInfo {
	return &FieldInfo{Modifier: mod, Type: t, Name: name}
}

func property(mod Modifier, t *TypeInfo, name string, prop PropertyType, idx ...*ArgumentInfo) *FieldInfo {
	return &FieldInfo{Modifier: mod, Type: t, Name: name, PropertyType: prop, IndexerArguments: idx}
}

func TestParseFieldDefinition(t *testing.T) {
	tests := []struct {
		code string
		want *FieldInfo
	}{
		{"public int X", field(Public, NewType("int"), "X")},
		{"public static string Y", field(Public|Static, NewType("string"), "Y")},
		{"internal string Str", field(Internal, NewType("string"), "Str")},
		{"string this[int i]", property(None, NewType("string"), "this", Indexer,
			arg(NewType("int"), "i"))},
		{"private protected abstract IEnumerable<string> this [ int i , string j ] ",
			property(Private|Protected|Abstract, NewType("IEnumerable", NewType("string")), "this", Indexer,
				arg(NewType("int"), "i"), arg(NewType("string"), "j"))},
		{"protected internal event Action EventHandler", field(Protected|Internal|Event, NewType("Action"), "EventHandler")},
		{"[Attribute] public int X", field(Public, NewType("int"), "X")},
		{"[Attribute1][Attribute2] [Attribute3] public int X", field(Public, NewType("int"), "X")},
		{"@Annotation public int X", field(Public, NewType("int"), "X")},
		{"@Annotation @Annotation(0) @Annotation( 1, 2 ) public int X", field(Public, NewType("int"), "X")},
		{"private int[,] intArray2 = new int[5, 5]", field(Private, NewArrayType("int", 2), "intArray2")},
		{"internal string[,,] Y => null", property(Internal, NewArrayType("string", 3), "Y", Get)},
		{"public int", nil},
		{"public static int", nil},
		{"Output(i)", nil},
		{"", nil},
	}
	for _, tt := range tests {
		r := source.NewReader(tt.code)
		got, ok := (&FieldParser{}).TryParse(r)
		if tt.want == nil {
			assert.False(t, ok, tt.code)
			assert.Equal(t, 0, r.Position, tt.code)
			continue
		}
		if !assert.True(t, ok, tt.code) {
			continue
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("%q mismatch (-want +got):\n%s", tt.code, diff)
		}
		assert.Equal(t, 1, r.Position, tt.code)
	}
}

func TestParseFieldInCode(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	p := &FieldParser{DefaultAccess: Private}

	r := source.NewReader(sampleCode)
	r.Position = 2
	f, ok := p.TryParse(r)
	require.True(ok)
	assert.Equal(field(Private|Static|Readonly, NewType("string"), "logText"), f)
	assert.Equal(3, r.Position)

	r.Position = 8
	f, ok = p.TryParse(r)
	require.True(ok)
	assert.Equal(property(Public|Static, NewType("string"), "LogText", Get), f)
	assert.Equal(10, r.Position)

	for _, pos := range []int{7, 11} {
		r.Position = pos
		_, ok = p.TryParse(r)
		assert.False(ok, "line %d", pos)
		assert.Equal(pos, r.Position)
	}
}

func TestParseProperties(t *testing.T) {
	p := &FieldParser{DefaultAccess: Private}
	tests := []struct {
		code string
		want *FieldInfo
	}{
		{"protected internal int[][] X { get;set; }",
			property(Protected|Internal, NewArrayType("int", 2), "X", Get|Set)},
		{"public double Y { get => this.y; private set => this.y = value; }",
			property(Public, NewType("double"), "Y", Get|Set)},
		{"public string Name { get; init; }",
			property(Public, NewType("string"), "Name", Get|Set)},
		{"double Z { set { z = value; } }",
			property(Private, NewType("double"), "Z", Set)},
		{"private object this[int x, string y] { get { return null; } set { } }",
			property(Private, NewType("object"), "this", Get|Set|Indexer,
				arg(NewType("int"), "x"), arg(NewType("string"), "y"))},
	}
	for _, tt := range tests {
		r := source.NewReader(tt.code)
		got, ok := p.TryParse(r)
		if !assert.True(t, ok, tt.code) {
			continue
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("%q mismatch (-want +got):\n%s", tt.code, diff)
		}
		assert.True(t, r.AtEnd(), tt.code)
	}
}
