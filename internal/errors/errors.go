// Package errors formats the three error classes the front-end can
// produce (lexical, syntactic, semantic) into the diagnostic text the
// driver writes to standard error.
package errors

import (
	"fmt"
	"strings"

	"github.com/cwbudde/minicc/pkg/token"
)

// Kind names one of the three error classes.
type Kind string

const (
	Lexical  Kind = "lexical error"
	Syntax   Kind = "syntax error"
	Semantic Kind = "semantic error"
)

// Diagnostic is one reported error: its class, message, and position.
type Diagnostic struct {
	Kind    Kind
	Message string
	Pos     token.Position
}

// String renders the canonical single-line diagnostic format:
// "<kind>: <message> at line <N> column <M>". Every diagnostic the
// front-end writes to stderr begins with this line — no structured
// output, no color.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s at line %d column %d", d.Kind, d.Message, d.Pos.Line, d.Pos.Column)
}

// WithSourceContext renders d.String() followed by the offending source
// line and a caret pointing at the column, when src is available. This is
// a strictly additive debugging aid (used by compile's --verbose output)
// layered on top of, never replacing, the
// canonical one-line diagnostic.
func (d Diagnostic) WithSourceContext(src string) string {
	line := sourceLine(src, d.Pos.Line)
	if line == "" {
		return d.String()
	}
	caret := strings.Repeat(" ", max(0, d.Pos.Column-1)) + "^"
	return fmt.Sprintf("%s\n%s\n%s", d.String(), line, caret)
}

func sourceLine(src string, lineNum int) string {
	lines := strings.Split(src, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}
