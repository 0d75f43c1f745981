package parser

import (
	"github.com/cwbudde/minicc/internal/lexer"
	"github.com/cwbudde/minicc/pkg/token"
)

// cursor provides lookahead over a lexer's token stream. Every token
// pulled from the lexer stays in buf (next only advances pos), and peek(n)
// fills buf as far ahead as asked, with no fixed limit; the parser itself
// never looks more than two tokens ahead.
type cursor struct {
	l   *lexer.Lexer
	buf []token.Token
	pos int
}

func newCursor(l *lexer.Lexer) *cursor {
	return &cursor{l: l}
}

func (c *cursor) fill(n int) {
	for len(c.buf) <= n {
		c.buf = append(c.buf, c.l.Next())
	}
}

// peek returns the token n positions ahead of the cursor without consuming
// it; peek(0) is what next() would return.
func (c *cursor) peek(n int) token.Token {
	c.fill(c.pos + n)
	return c.buf[c.pos+n]
}

// next consumes and returns the current token.
func (c *cursor) next() token.Token {
	tok := c.peek(0)
	c.pos++
	return tok
}
