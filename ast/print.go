package ast

import (
	"io"
	"strings"
)

type Priority int8

const (
	_ Priority = iota
	LOWEST
	ASSIGNP // :=
	SUM     // + -
	PRODUCT // * /
	PREFIX  // -X
	POWERP  // ^
	CALL    // name(X) and literals
)

// Priority of a node when printed, used to decide where parentheses are needed.
func PriorityOf(n Node) Priority {
	switch n := n.(type) {
	case Number:
		if n.Value < 0 {
			return PREFIX
		}
		return CALL
	case Variable:
		return CALL
	case Operation:
		switch n.Op { //nolint:exhaustive // everything else prints in call form.
		case ASSIGN:
			return ASSIGNP
		case PLUS, MINUS:
			return SUM
		case MULTIPLY, DIVIDE:
			return PRODUCT
		case POWER:
			return POWERP
		case NEGATE:
			if len(n.Children) == 1 && !IsNumber(n.Children[0]) {
				return PREFIX
			}
		}
	}
	return CALL
}

type PrintState struct {
	Out     io.Writer
	Compact bool
}

func (ps *PrintState) Print(str ...string) *PrintState {
	for _, s := range str {
		_, _ = io.WriteString(ps.Out, s)
	}
	return ps
}

func (ps *PrintState) binaryOp(name string) {
	if ps.Compact {
		ps.Print(name)
		return
	}
	ps.Print(" ", name, " ")
}

// printChild prints n, wrapped in parentheses when its priority is below minimum.
func (ps *PrintState) printChild(n Node, minimum Priority) {
	if PriorityOf(n) < minimum {
		ps.Print("(")
		n.PrettyPrint(ps)
		ps.Print(")")
		return
	}
	n.PrettyPrint(ps)
}

// ComaList prints the nodes separated by commas.
func (ps *PrintState) ComaList(list []Node) {
	sep := ", "
	if ps.Compact {
		sep = ","
	}
	for i, p := range list {
		if i > 0 {
			ps.Print(sep)
		}
		p.PrettyPrint(ps)
	}
}

func (n Number) PrettyPrint(ps *PrintState) *PrintState {
	return ps.Print(n.String())
}

func (v Variable) PrettyPrint(ps *PrintState) *PrintState {
	return ps.Print(v.Name)
}

func (o Operation) PrettyPrint(ps *PrintState) *PrintState {
	p := PriorityOf(o)
	switch {
	case p == ASSIGNP && len(o.Children) == 2:
		ps.printChild(o.Children[0], CALL)
		ps.binaryOp(o.Name)
		ps.printChild(o.Children[1], ASSIGNP) // right associative.
	case p == POWERP && len(o.Children) == 2:
		// right associative: a ^ b ^ c is a ^ (b ^ c).
		ps.printChild(o.Children[0], CALL)
		ps.binaryOp(o.Name)
		ps.printChild(o.Children[1], PREFIX)
	case (p == SUM || p == PRODUCT) && len(o.Children) == 2:
		ps.printChild(o.Children[0], p)
		ps.binaryOp(o.Name)
		ps.printChild(o.Children[1], p+1)
	case p == PREFIX:
		ps.Print("-")
		ps.printChild(o.Children[0], PREFIX)
	default:
		ps.Print(o.Name, "(")
		ps.ComaList(o.Children)
		ps.Print(")")
	}
	return ps
}

// DebugString prints the node in compact form.
func DebugString(n Node) string {
	out := strings.Builder{}
	n.PrettyPrint(&PrintState{Out: &out, Compact: true})
	return out.String()
}
