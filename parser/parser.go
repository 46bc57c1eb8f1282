// Package parser turns calculator source text into ast nodes.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"fortio.org/log"
	"github.com/rivo/uniseg"
	"grol.io/calc/ast"
	"grol.io/calc/lexer"
	"grol.io/calc/token"
)

type (
	prefixParseFn func() ast.Node
	infixParseFn  func(ast.Node) ast.Node
)

// Error is a parse error with enough context to point at the offending input.
type Error struct {
	Msg     string
	Line    string // source line where the error was detected
	LineNum int
	Pos     int // byte offset in Line
}

func (e Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.LineNum, uniseg.StringWidth(e.Line[:e.Pos])+1, e.Msg)
}

// Context returns the source line and a caret under the error position.
// The caret is aligned on display width so it works with non ASCII input.
func (e Error) Context() string {
	return e.Line + "\n" + strings.Repeat(" ", uniseg.StringWidth(e.Line[:e.Pos])) + "^"
}

type Parser struct {
	l *lexer.Lexer

	curToken  *token.Token
	peekToken *token.Token
	// newline seen before the corresponding token.
	curNewline  bool
	peekNewline bool
	// parentheses depth, newlines don't end expressions inside them.
	nesting int

	errors []Error

	prefixParseFns map[token.Type]prefixParseFn
	infixParseFns  map[token.Type]infixParseFn
}

var precedences = map[token.Type]ast.Priority{
	token.DEFINE:   ast.ASSIGNP,
	token.PLUS:     ast.SUM,
	token.MINUS:    ast.SUM,
	token.ASTERISK: ast.PRODUCT,
	token.SLASH:    ast.PRODUCT,
	token.CARET:    ast.POWERP,
}

func (p *Parser) registerPrefix(t token.Type, fn prefixParseFn) {
	p.prefixParseFns[t] = fn
}

func (p *Parser) registerInfix(t token.Type, fn infixParseFn) {
	p.infixParseFns[t] = fn
}

func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}

	p.prefixParseFns = make(map[token.Type]prefixParseFn)
	p.registerPrefix(token.IDENT, p.parseIdentifier)
	p.registerPrefix(token.NUMBER, p.parseNumber)
	p.registerPrefix(token.MINUS, p.parsePrefixMinus)
	p.registerPrefix(token.LPAREN, p.parseGroupedExpression)

	p.infixParseFns = make(map[token.Type]infixParseFn)
	for _, t := range []token.Type{token.PLUS, token.MINUS, token.ASTERISK, token.SLASH} {
		p.registerInfix(t, p.parseInfixExpression)
	}
	p.registerInfix(token.CARET, p.parseRightAssociative)
	p.registerInfix(token.DEFINE, p.parseAssign)

	// Read two tokens, so curToken and peekToken are both set
	p.nextToken()
	p.nextToken()

	return p
}

// Errors returns the errors as strings (line:column: message).
func (p *Parser) Errors() []string {
	res := make([]string, 0, len(p.errors))
	for _, e := range p.errors {
		res = append(res, e.Error())
	}
	return res
}

// ParseErrors returns the structured errors.
func (p *Parser) ParseErrors() []Error {
	return p.errors
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.curNewline = p.peekNewline
	p.peekToken = p.l.NextToken()
	p.peekNewline = p.l.HadNewline()
	for p.peekToken.Type() == token.LINECOMMENT {
		p.peekToken = p.l.NextToken()
		p.peekNewline = p.peekNewline || p.l.HadNewline()
	}
}

// ParseProgram parses all the top level expressions. Expressions are separated by
// newlines or semicolons.
func (p *Parser) ParseProgram() []ast.Node {
	program := []ast.Node{}
	for p.curToken.Type() != token.EOF {
		if p.curToken.Type() == token.SEMICOLON {
			p.nextToken()
			continue
		}
		numErrs := len(p.errors)
		expr := p.parseExpression(ast.LOWEST)
		switch {
		case len(p.errors) > numErrs:
			p.skipToEndOfExpression()
		case !p.atEndOfExpression():
			p.errorf("unexpected %s after expression", p.peekToken.DebugString())
			p.skipToEndOfExpression()
		case expr != nil:
			program = append(program, expr)
		}
		p.nextToken()
	}
	return program
}

func (p *Parser) atEndOfExpression() bool {
	t := p.peekToken.Type()
	return t == token.EOF || t == token.SEMICOLON || p.peekNewline
}

func (p *Parser) skipToEndOfExpression() {
	p.nesting = 0
	if p.curToken.Type() == token.SEMICOLON {
		return
	}
	for !p.atEndOfExpression() {
		p.nextToken()
	}
}

func (p *Parser) errorf(format string, args ...any) {
	line, pos, num := p.l.CurrentLine()
	e := Error{Msg: fmt.Sprintf(format, args...), Line: line, LineNum: num, Pos: min(pos, len(line))}
	log.LogVf("parse error: %v", e)
	p.errors = append(p.errors, e)
}

func (p *Parser) peekTokenIs(t token.Type) bool {
	return p.peekToken.Type() == t
}

func (p *Parser) expectPeek(t token.Type) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.errorf("expected next token to be %s, got %s instead", t, p.peekToken.DebugString())
	return false
}

func (p *Parser) peekPrecedence() ast.Priority {
	if p.peekNewline && p.nesting == 0 {
		return ast.LOWEST
	}
	if prec, ok := precedences[p.peekToken.Type()]; ok {
		return prec
	}
	return ast.LOWEST
}

func (p *Parser) parseExpression(precedence ast.Priority) ast.Node {
	log.Debugf("parseExpression: %s precedence %d", p.curToken.DebugString(), precedence)
	prefix := p.prefixParseFns[p.curToken.Type()]
	if prefix == nil {
		p.errorf("unexpected %s", p.curToken.DebugString())
		return nil
	}
	leftExp := prefix()
	for leftExp != nil && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type()]
		if infix == nil {
			return leftExp
		}
		p.nextToken()
		leftExp = infix(leftExp)
	}
	return leftExp
}

func (p *Parser) parseIdentifier() ast.Node {
	name := p.curToken.Literal()
	if !p.peekTokenIs(token.LPAREN) {
		return ast.NewVariable(name)
	}
	p.nextToken()
	args := p.parseList(token.RPAREN)
	if args == nil {
		return nil
	}
	return ast.NewOperation(name, args...)
}

// parseList parses comma separated expressions up to the end token,
// curToken being the opening token. Returns nil on error.
func (p *Parser) parseList(end token.Type) []ast.Node {
	p.nesting++
	defer func() { p.nesting-- }()
	list := []ast.Node{}
	if p.peekTokenIs(end) {
		p.nextToken()
		return list
	}
	p.nextToken()
	for {
		expr := p.parseExpression(ast.LOWEST)
		if expr == nil {
			return nil
		}
		list = append(list, expr)
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
		p.nextToken()
	}
	if !p.expectPeek(end) {
		return nil
	}
	return list
}

func (p *Parser) parseNumber() ast.Node {
	value, err := strconv.ParseFloat(p.curToken.Literal(), 64)
	if err != nil {
		p.errorf("could not parse %q as number", p.curToken.Literal())
		return nil
	}
	return ast.NewNumber(value)
}

// -NUMBER is folded into a negative number, anything else becomes negate().
func (p *Parser) parsePrefixMinus() ast.Node {
	p.nextToken()
	right := p.parseExpression(ast.PREFIX)
	if right == nil {
		return nil
	}
	if n, ok := right.(ast.Number); ok {
		return ast.NewNumber(-n.Value)
	}
	return ast.NewOperation("negate", right)
}

func (p *Parser) parseGroupedExpression() ast.Node {
	p.nesting++
	defer func() { p.nesting-- }()
	p.nextToken()
	exp := p.parseExpression(ast.LOWEST)
	if exp == nil {
		return nil
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return exp
}

func (p *Parser) parseInfixExpression(left ast.Node) ast.Node {
	operator := p.curToken.Literal()
	precedence := precedences[p.curToken.Type()]
	p.nextToken()
	right := p.parseExpression(precedence)
	if right == nil {
		return nil
	}
	return ast.NewOperation(operator, left, right)
}

// a ^ b ^ c is a ^ (b ^ c), and the right side of ^ can be a negation.
func (p *Parser) parseRightAssociative(left ast.Node) ast.Node {
	operator := p.curToken.Literal()
	p.nextToken()
	right := p.parseExpression(ast.PREFIX)
	if right == nil {
		return nil
	}
	return ast.NewOperation(operator, left, right)
}

func (p *Parser) parseAssign(left ast.Node) ast.Node {
	if !ast.IsVariable(left) {
		p.errorf("left side of := must be a variable, got %s", left.String())
		return nil
	}
	p.nextToken()
	right := p.parseExpression(ast.ASSIGNP - 1)
	if right == nil {
		return nil
	}
	return ast.NewOperation(":=", left, right)
}
