package diagram

import (
	"fmt"
	"strings"
)

// buffer is a simple indenting pretty printer. While comment is set, every
// non-empty line gets the comment prefix after its indentation.
type buffer struct {
	lines       []string
	indentLevel int
	comment     bool
}

func (pp buffer) indentation() string {
	return strings.Repeat("\t", pp.indentLevel)
}

func (pp *buffer) appendLine(line string) {
	pp.lines = append(pp.lines, line)
}

func (pp *buffer) AddLine(line string) {
	if line == "" {
		pp.appendLine("")
		return
	}
	prefix := ""
	if pp.comment {
		prefix = commentPrefix
	}
	pp.appendLine(pp.indentation() + prefix + line)
}

// Add adds formatted to the buffer
func (pp *buffer) Add(format string, args ...interface{}) {
	pp.AddLine(fmt.Sprintf(format, args...))
}

func (pp *buffer) Indent(levels int) {
	pp.indentLevel += levels
}

// Block opens a brace block; close it with EndBlock.
func (pp *buffer) Block(format string, args ...interface{}) {
	pp.AddLine(fmt.Sprintf(format, args...) + " {")
	pp.Indent(1)
}

func (pp *buffer) EndBlock() {
	pp.Indent(-1)
	pp.AddLine("}")
}

// Commented runs f with comment mode on, restoring the previous mode after.
func (pp *buffer) Commented(on bool, f func()) {
	saved := pp.comment
	pp.comment = saved || on
	f()
	pp.comment = saved
}

func (pp buffer) Build() string {
	return strings.Join(pp.lines, "\n") + "\n"
}
