package lexer

import (
	"testing"

	"github.com/cwbudde/minicc/pkg/token"
)

func TestNextTokenBasic(t *testing.T) {
	src := `int add(int a, int b) {
  return a + b;
}`
	want := []token.Type{
		token.INT_KW, token.IDENT, token.LPAREN, token.INT_KW, token.IDENT, token.COMMA,
		token.INT_KW, token.IDENT, token.RPAREN, token.LBRACE,
		token.RETURN, token.IDENT, token.PLUS, token.IDENT, token.SEMI,
		token.RBRACE, token.EOF,
	}
	l := New(src)
	for i, wantType := range want {
		tok := l.Next()
		if tok.Type != wantType {
			t.Fatalf("token %d: got %s, want %s (literal %q)", i, tok.Type, wantType, tok.Literal)
		}
	}
}

func TestOperatorDisambiguation(t *testing.T) {
	cases := []struct {
		src  string
		want token.Type
	}{
		{"=", token.ASSIGN},
		{"==", token.EQ},
		{"!", token.NOT},
		{"!=", token.NEQ},
		{"<", token.LT},
		{"<=", token.LE},
		{">", token.GT},
		{">=", token.GE},
		{"&&", token.AND},
		{"||", token.OR},
	}
	for _, c := range cases {
		l := New(c.src)
		tok := l.Next()
		if tok.Type != c.want {
			t.Errorf("scanning %q: got %s, want %s", c.src, tok.Type, c.want)
		}
		if eof := l.Next(); eof.Type != token.EOF {
			t.Errorf("scanning %q: expected EOF after operator, got %s", c.src, eof.Type)
		}
	}
}

func TestIllegalSingleAmpersandAndPipe(t *testing.T) {
	for _, src := range []string{"&", "|"} {
		l := New(src)
		tok := l.Next()
		if tok.Type != token.ILLEGAL {
			t.Errorf("scanning %q: got %s, want ILLEGAL", src, tok.Type)
		}
	}
}

func TestNumberLiterals(t *testing.T) {
	cases := []struct {
		src      string
		wantType token.Type
		wantLit  string
	}{
		{"123", token.INT, "123"},
		{"1.5", token.FLOAT, "1.5"},
		{"0", token.INT, "0"},
		{"3.14159", token.FLOAT, "3.14159"},
	}
	for _, c := range cases {
		l := New(c.src)
		tok := l.Next()
		if tok.Type != c.wantType || tok.Literal != c.wantLit {
			t.Errorf("scanning %q: got %s(%q), want %s(%q)", c.src, tok.Type, tok.Literal, c.wantType, c.wantLit)
		}
	}
}

func TestDigitRunStopsAtIdentifierByte(t *testing.T) {
	// "3x" is two tokens, not a lexical error: INT("3") then IDENT("x").
	l := New("3x")
	first := l.Next()
	if first.Type != token.INT || first.Literal != "3" {
		t.Fatalf("got %s(%q), want INT(3)", first.Type, first.Literal)
	}
	second := l.Next()
	if second.Type != token.IDENT || second.Literal != "x" {
		t.Fatalf("got %s(%q), want IDENT(x)", second.Type, second.Literal)
	}
}

func TestKeywordsAndBooleans(t *testing.T) {
	src := "int float bool void extern if else while return true false"
	want := []token.Type{
		token.INT_KW, token.FLOAT_KW, token.BOOL_KW, token.VOID_KW, token.EXTERN,
		token.IF, token.ELSE, token.WHILE, token.RETURN, token.BOOLIT, token.BOOLIT,
	}
	l := New(src)
	for i, wantType := range want {
		tok := l.Next()
		if tok.Type != wantType {
			t.Fatalf("token %d: got %s, want %s", i, tok.Type, wantType)
		}
	}
}

func TestLineCommentSkipped(t *testing.T) {
	src := "int x; // trailing comment\nint y;"
	l := New(src)
	var types []token.Type
	for {
		tok := l.Next()
		types = append(types, tok.Type)
		if tok.Type == token.EOF {
			break
		}
	}
	want := []token.Type{token.INT_KW, token.IDENT, token.SEMI, token.INT_KW, token.IDENT, token.SEMI, token.EOF}
	if len(types) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(types), len(want))
	}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("token %d: got %s, want %s", i, types[i], want[i])
		}
	}
}

func TestPositionTracking(t *testing.T) {
	src := "int x;\nint y;"
	l := New(src)
	l.Next() // int
	tok := l.Next() // x
	if tok.Pos.Line != 1 || tok.Pos.Column != 5 {
		t.Errorf("got %s, want 1:5", tok.Pos)
	}
	l.Next() // ;
	tok = l.Next() // int (line 2)
	if tok.Pos.Line != 2 || tok.Pos.Column != 1 {
		t.Errorf("got %s, want 2:1", tok.Pos)
	}
}

func TestCarriageReturnAdvancesLine(t *testing.T) {
	l := New("int x;\rint y;")
	var tok token.Token
	for i := 0; i < 4; i++ {
		tok = l.Next()
	}
	if tok.Type != token.INT_KW || tok.Pos.Line != 2 || tok.Pos.Column != 1 {
		t.Errorf("after \\r: got %s, want int at 2:1", tok)
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	l := New("int x;")
	first := l.Peek(0)
	if first.Type != token.INT_KW {
		t.Fatalf("Peek(0) got %s, want int", first.Type)
	}
	second := l.Peek(1)
	if second.Type != token.IDENT {
		t.Fatalf("Peek(1) got %s, want IDENT", second.Type)
	}
	next := l.Next()
	if next.Type != token.INT_KW {
		t.Fatalf("Next() after Peek got %s, want int (peek must not consume)", next.Type)
	}
}

func TestAllTokensEndsWithEOF(t *testing.T) {
	toks := New("int x;").AllTokens()
	if len(toks) == 0 || toks[len(toks)-1].Type != token.EOF {
		t.Fatalf("AllTokens did not end with EOF: %v", toks)
	}
}
