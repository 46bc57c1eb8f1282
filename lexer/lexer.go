package lexer

import (
	"bytes"
	"strings"

	"grol.io/calc/token"
)

type Lexer struct {
	input         []byte
	pos           int
	hadWhitespace bool
	hadNewline    bool // newline was seen before current token
	lastNewLine   int  // position just after most recent newline
	lineNumber    int
}

func New(input string) *Lexer {
	return NewBytes([]byte(input))
}

func NewBytes(input []byte) *Lexer {
	return &Lexer{input: input, lineNumber: 1}
}

func (l *Lexer) Pos() int {
	return l.pos
}

// For error handling, somewhat expensive.
// Returns the current line, the current position relative in that line
// and the current line number.
func (l *Lexer) CurrentLine() (string, int, int) {
	p := min(l.pos, len(l.input))
	nextNewline := bytes.IndexByte(l.input[p:], '\n')
	if nextNewline == -1 {
		nextNewline = len(l.input) - p
	}
	return string(l.input[l.lastNewLine : p+nextNewline]), p - l.lastNewLine, l.lineNumber
}

func (l *Lexer) NextToken() *token.Token {
	l.skipWhitespace()
	ch := l.readChar()
	nextChar := l.peekChar()
	switch ch {
	case ':':
		if nextChar == '=' {
			l.pos++
			return token.ConstantTokenStr(":=")
		}
		return token.Intern(token.ILLEGAL, string(ch))
	case '+', '-', '*', '^', ';', ',', '(', ')':
		return token.ConstantTokenChar(ch)
	case '/':
		if nextChar == '/' {
			return token.Intern(token.LINECOMMENT, l.readLineComment())
		}
		return token.ConstantTokenChar(ch)
	case '#':
		return token.Intern(token.LINECOMMENT, l.readLineComment())
	case 0:
		return token.EOFT
	case '.':
		if !isDigit(nextChar) {
			return token.Intern(token.ILLEGAL, string(ch))
		}
		// number can start with . eg .5
		return token.Intern(token.NUMBER, l.readNumber(ch))
	default:
		switch {
		case isLetter(ch):
			return token.LookupIdent(l.readIdentifier())
		case isDigit(ch):
			return token.Intern(token.NUMBER, l.readNumber(ch))
		default:
			return token.Intern(token.ILLEGAL, string(ch))
		}
	}
}

func isWhiteSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func (l *Lexer) HadWhitespace() bool {
	return l.hadWhitespace
}

// HadNewline is true when a newline separated the last token from the previous one.
func (l *Lexer) HadNewline() bool {
	return l.hadNewline
}

func (l *Lexer) skipWhitespace() {
	l.hadWhitespace = false
	l.hadNewline = false
	for {
		ch := l.peekChar()
		if !isWhiteSpace(ch) {
			break
		}
		if ch == '\n' {
			l.hadNewline = true
			l.lastNewLine = l.pos + 1
			l.lineNumber++
		}
		l.hadWhitespace = true
		l.pos++
	}
}

func (l *Lexer) readChar() byte {
	ch := l.peekChar()
	l.pos++
	return ch
}

func (l *Lexer) peekChar() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) readIdentifier() string {
	pos := l.pos - 1
	for IsAlphaNum(l.peekChar()) {
		l.pos++
	}
	return string(l.input[pos:l.pos])
}

func notEOL(ch byte) bool {
	return ch != '\n' && ch != 0
}

func (l *Lexer) readLineComment() string {
	pos := l.pos - 1
	for notEOL(l.peekChar()) {
		l.pos++
	}
	return strings.TrimSpace(string(l.input[pos:l.pos]))
}

func (l *Lexer) readNumber(ch byte) string {
	pos := l.pos - 1
	hasDigits := ch != '.'
	for isDigit(l.peekChar()) {
		hasDigits = true
		l.pos++
	}
	// Fractional part
	if ch != '.' && l.peekChar() == '.' {
		l.pos++
		for isDigit(l.peekChar()) {
			hasDigits = true
			l.pos++
		}
	}
	// Exponent part
	peek := l.peekChar()
	if !hasDigits || (peek != 'e' && peek != 'E') {
		return string(l.input[pos:l.pos])
	}
	errPos := l.pos
	l.pos++
	peek = l.peekChar()
	if peek == '+' || peek == '-' {
		l.pos++
	}
	if !isDigit(l.peekChar()) {
		// Not an exponent (e.g. 2e is 2 followed by identifier e), back off.
		l.pos = errPos
		return string(l.input[pos:l.pos])
	}
	for isDigit(l.peekChar()) {
		l.pos++
	}
	return string(l.input[pos:l.pos])
}

func isLetter(ch byte) bool {
	return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') || ch == '_'
}

func IsAlphaNum(ch byte) bool {
	return isLetter(ch) || isDigit(ch)
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
