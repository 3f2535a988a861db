// Package syntaxcheck reports whether a source file is syntactically valid,
// using the tree-sitter grammars for Java and C#.
//
// The class parser never rejects input, so this check is how callers learn
// that a diagram may be incomplete.
package syntaxcheck

import (
	"context"

	"github.com/pkg/errors"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/csharp"
	"github.com/smacker/go-tree-sitter/java"
)

// grammars is keyed by the parser package's language names.
var grammars = map[string]func() *sitter.Language{
	"csharp": csharp.GetLanguage,
	"java":   java.GetLanguage,
}

// Report is the result of one check. Line is 1-based and only set when
// HasError is.
type Report struct {
	HasError bool
	Line     int
}

func Supported(language string) bool {
	_, ok := grammars[language]
	return ok
}

// Check parses src as language and reports the first syntax error.
func Check(ctx context.Context, language string, src []byte) (Report, error) {
	grammar, ok := grammars[language]
	if !ok {
		return Report{}, errors.Errorf("no grammar for language %q", language)
	}
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(grammar())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return Report{}, errors.Wrap(err, "tree-sitter parse failed")
	}
	defer tree.Close()

	root := tree.RootNode()
	if !root.HasError() {
		return Report{}, nil
	}
	n := firstError(root)
	return Report{HasError: true, Line: int(n.StartPoint().Row) + 1}, nil
}

// firstError finds the first ERROR or MISSING node below n, falling back to
// the innermost node known to contain one.
func firstError(n *sitter.Node) *sitter.Node {
	if n.IsError() || n.IsMissing() {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c != nil && (c.HasError() || c.IsMissing()) {
			return firstError(c)
		}
	}
	return n
}
