package lexer

import (
	"testing"

	"grol.io/calc/token"
)

func TestNextToken(t *testing.T) {
	input := `x := 5;
y:=10.5
toDouble(x + y) // comment
-.3*2e3 ^ 1E-2 / 4e
repeat(3, x+1) # other comment
@ :
`
	tests := []struct {
		expectedType    token.Type
		expectedLiteral string
	}{
		{token.IDENT, "x"},
		{token.DEFINE, ":="},
		{token.NUMBER, "5"},
		{token.SEMICOLON, ";"},
		{token.IDENT, "y"},
		{token.DEFINE, ":="},
		{token.NUMBER, "10.5"},
		{token.IDENT, "toDouble"},
		{token.LPAREN, "("},
		{token.IDENT, "x"},
		{token.PLUS, "+"},
		{token.IDENT, "y"},
		{token.RPAREN, ")"},
		{token.LINECOMMENT, "// comment"},
		{token.MINUS, "-"},
		{token.NUMBER, ".3"},
		{token.ASTERISK, "*"},
		{token.NUMBER, "2e3"},
		{token.CARET, "^"},
		{token.NUMBER, "1E-2"},
		{token.SLASH, "/"},
		{token.NUMBER, "4"},
		{token.IDENT, "e"},
		{token.IDENT, "repeat"},
		{token.LPAREN, "("},
		{token.NUMBER, "3"},
		{token.COMMA, ","},
		{token.IDENT, "x"},
		{token.PLUS, "+"},
		{token.NUMBER, "1"},
		{token.RPAREN, ")"},
		{token.LINECOMMENT, "# other comment"},
		{token.ILLEGAL, "@"},
		{token.ILLEGAL, ":"},
		{token.EOF, ""},
	}

	l := New(input)

	for i, tt := range tests {
		tok := l.NextToken()

		if tok.Type() != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q (%s)",
				i, tt.expectedType, tok.Type(), tok.DebugString())
		}

		if tok.Literal() != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedLiteral, tok.Literal())
		}
	}
}

func TestNewlineTracking(t *testing.T) {
	l := New("a\n  b c")
	l.NextToken()
	if l.HadNewline() {
		t.Errorf("no newline expected before first token")
	}
	l.NextToken()
	if !l.HadNewline() {
		t.Errorf("newline expected before b")
	}
	line, pos, num := l.CurrentLine()
	if line != "  b c" || pos != 3 || num != 2 {
		t.Errorf("CurrentLine() got=%q,%d,%d want=%q,3,2", line, pos, num, "  b c")
	}
	l.NextToken()
	if l.HadNewline() || !l.HadWhitespace() {
		t.Errorf("c is preceded by a space only")
	}
}
