package source

import (
	"os"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

var (
	escapedQuote = regexp.MustCompile(`([^\\]?)\\"`)
	charLiteral  = regexp.MustCompile(`'.'`)
	lineComment  = regexp.MustCompile(`//[^\r\n]*`)
	directive    = regexp.MustCompile(`#[^\r\n]*`)
	whitespace   = regexp.MustCompile(`\s+`)
)

// Reader holds the statements of one source file and a read position.
//
// Statements are produced by removing literals and comments, then splitting
// the code on braces (which set the depth) and semicolons. Every statement is
// trimmed; empty statements are dropped.
type Reader struct {
	lines []DepthText
	// Position is the index of the next line to read. Len() means the end of
	// the file.
	Position int
}

func NewReader(code string) *Reader {
	return &Reader{lines: convertCode(code)}
}

// ReadFile builds a Reader from the contents of path.
func ReadFile(path string) (*Reader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read %s", path)
	}
	return NewReader(string(data)), nil
}

func (r *Reader) Lines() []DepthText {
	return r.lines
}

func (r *Reader) Len() int {
	return len(r.lines)
}

func (r *Reader) At(i int) DepthText {
	return r.lines[i]
}

func (r *Reader) AtEnd() bool {
	return r.Position >= len(r.lines)
}

// TryRead returns the line at Position and advances past it.
func (r *Reader) TryRead() (DepthText, bool) {
	if r.AtEnd() {
		return DepthText{}, false
	}
	line := r.lines[r.Position]
	r.Position++
	return line, true
}

// Peek returns the line at Position without advancing.
func (r *Reader) Peek() (DepthText, bool) {
	if r.AtEnd() {
		return DepthText{}, false
	}
	return r.lines[r.Position], true
}

func (r *Reader) Reset() {
	r.Position = 0
}

// DeeperLineCount counts the lines from Position on that are nested deeper
// than depth, stopping at the first that is not. Position is not changed.
func (r *Reader) DeeperLineCount(depth int) int {
	n := 0
	for i := r.Position; i < len(r.lines) && r.lines[i].Depth > depth; i++ {
		n++
	}
	return n
}

func convertCode(code string) []DepthText {
	// quotes that do not delimit a string
	code = strings.ReplaceAll(code, `'"'`, "")
	code = escapedQuote.ReplaceAllString(code, "${1}")
	code = charLiteral.ReplaceAllString(code, "")

	code = removeEnclosed(code, `"`, `"`)
	code = removeEnclosed(code, "/*", "*/")
	code = lineComment.ReplaceAllString(code, "")
	code = directive.ReplaceAllString(code, "")

	code = whitespace.ReplaceAllString(code, " ")

	var lines []DepthText
	for _, dt := range SplitEach(SplitWithDepth(code, "{", "}"), ";") {
		text := strings.TrimSpace(dt.Text)
		if text == "" {
			continue
		}
		lines = append(lines, DepthText{Text: text, Depth: dt.Depth})
	}
	return lines
}

// removeEnclosed cuts every span from open up to and including the next
// close. An unterminated open is left alone.
func removeEnclosed(text, open, close string) string {
	for {
		start := strings.Index(text, open)
		if start < 0 {
			return text
		}
		end := strings.Index(text[start+len(open):], close)
		if end < 0 {
			return text
		}
		end += start + len(open) + len(close)
		text = text[:start] + text[end:]
	}
}
