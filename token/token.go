// Package token defines the tokens of the calculator surface syntax.
// Tokens are interned: the same type and literal always yield the same pointer.
package token

import (
	"strconv"
	"sync"

	"fortio.org/log"
	"fortio.org/sets"
)

type Type uint8

type Token struct {
	tokenType Type
	literal   string
}

const (
	ILLEGAL Type = iota
	EOF

	startValueTokens

	// Identifiers + literals.
	IDENT  // x, foo, sin, toDouble...
	NUMBER // 1343456, 1.5, .3, 2e-3
	LINECOMMENT

	endValueTokens

	startSingleCharTokens

	PLUS
	MINUS
	ASTERISK
	SLASH
	CARET
	COMMA
	SEMICOLON
	LPAREN
	RPAREN

	endSingleCharTokens

	startMultiCharTokens

	DEFINE // :=

	endMultiCharTokens
)

var names = map[Type]string{
	ILLEGAL:     "ILLEGAL",
	EOF:         "EOF",
	IDENT:       "IDENT",
	NUMBER:      "NUMBER",
	LINECOMMENT: "LINECOMMENT",
	PLUS:        "PLUS",
	MINUS:       "MINUS",
	ASTERISK:    "ASTERISK",
	SLASH:       "SLASH",
	CARET:       "CARET",
	COMMA:       "COMMA",
	SEMICOLON:   "SEMICOLON",
	LPAREN:      "LPAREN",
	RPAREN:      "RPAREN",
	DEFINE:      "DEFINE",
}

func (t Type) String() string {
	if n, ok := names[t]; ok {
		return n
	}
	return "Type(" + strconv.Itoa(int(t)) + ")"
}

var (
	// Single character tokens.
	tToChar = make(map[Type]byte)
	cToT    = make(map[byte]*Token)
	// Multi character tokens.
	mtToStr = make(map[Type]string)
	strToT  = make(map[string]*Token)
	// Interned value tokens.
	interned = make(map[Token]*Token)
	mu       sync.Mutex
	initDone bool
	// EOFT is the shared EOF token.
	EOFT = &Token{tokenType: EOF}
)

func assoc(t Type, c byte) {
	tToChar[t] = c
	tok := &Token{tokenType: t, literal: string(c)}
	cToT[c] = tok
	info.Tokens.Add(tok.literal)
}

func assocS(t Type, s string) {
	mtToStr[t] = s
	tok := &Token{tokenType: t, literal: s}
	strToT[s] = tok
	info.Tokens.Add(s)
}

// Init sets up the token tables, called once automatically (idempotent).
func Init() {
	mu.Lock()
	defer mu.Unlock()
	if initDone {
		return
	}
	info.Tokens = sets.New[string]()
	assoc(PLUS, '+')
	assoc(MINUS, '-')
	assoc(ASTERISK, '*')
	assoc(SLASH, '/')
	assoc(CARET, '^')
	assoc(COMMA, ',')
	assoc(SEMICOLON, ';')
	assoc(LPAREN, '(')
	assoc(RPAREN, ')')
	assocS(DEFINE, ":=")
	initInfo()
	initDone = true
}

func init() {
	Init()
}

func (t *Token) Type() Type {
	return t.tokenType
}

func (t *Token) Literal() string {
	return t.literal
}

func (t *Token) DebugString() string {
	return t.tokenType.String() + ":" + strconv.Quote(t.literal)
}

// InternToken returns the canonical pointer for the token's type and literal.
func InternToken(t *Token) *Token {
	mu.Lock()
	defer mu.Unlock()
	if tok, ok := interned[*t]; ok {
		return tok
	}
	interned[*t] = t
	return t
}

// Intern returns the canonical token for a value token (IDENT, NUMBER...).
func Intern(t Type, literal string) *Token {
	if t <= startValueTokens || t >= endValueTokens {
		if t != ILLEGAL {
			log.Warnf("Intern called on non value token %s %q", t, literal)
		}
	}
	return InternToken(&Token{tokenType: t, literal: literal})
}

// ConstantTokenChar returns the token for a single character operator or delimiter,
// an ILLEGAL token for anything else.
func ConstantTokenChar(c byte) *Token {
	if tok, ok := cToT[c]; ok {
		return tok
	}
	return Intern(ILLEGAL, string(c))
}

// ConstantTokenStr returns the token for a multi character operator.
func ConstantTokenStr(s string) *Token {
	if tok, ok := strToT[s]; ok {
		return tok
	}
	return Intern(ILLEGAL, s)
}

// ByType returns the constant token of the given type, nil for value tokens.
func ByType(t Type) *Token {
	if c, ok := tToChar[t]; ok {
		return cToT[c]
	}
	if s, ok := mtToStr[t]; ok {
		return strToT[s]
	}
	if t == EOF {
		return EOFT
	}
	return nil
}

func LookupIdent(ident string) *Token {
	return Intern(IDENT, ident)
}
