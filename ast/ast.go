// Package ast defines the calculator expression tree: numbers, variables and
// named operations with ordered children.
package ast

import (
	"math"
	"strconv"
	"strings"
)

type Kind uint8

const (
	NUMBER Kind = iota + 1
	VARIABLE
	OPERATION
)

// Node is a closed variant: only Number, Variable and Operation implement it.
// Nodes are never mutated after construction, changes build new nodes.
type Node interface {
	Kind() Kind
	String() string
	PrettyPrint(ps *PrintState) *PrintState
	node()
}

type Number struct {
	Value float64
}

func (Number) Kind() Kind { return NUMBER }
func (Number) node()      {}

func (n Number) String() string {
	return FormatNumber(n.Value)
}

// FormatNumber prints integral values without a fractional part and very large
// or very small magnitudes in exponent form.
func FormatNumber(v float64) string {
	a := math.Abs(v)
	if a != 0 && (a >= 1e21 || a < 1e-6) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

type Variable struct {
	Name string
}

func (Variable) Kind() Kind       { return VARIABLE }
func (Variable) node()            {}
func (v Variable) String() string { return v.Name }

// Operation is a named operation. Op is resolved from Name at construction;
// names that aren't known operations keep Op == UNKNOWN.
type Operation struct {
	Op       Op
	Name     string
	Children []Node
}

func (Operation) Kind() Kind { return OPERATION }
func (Operation) node()      {}

func (o Operation) String() string {
	out := strings.Builder{}
	o.PrettyPrint(&PrintState{Out: &out})
	return out.String()
}

// Child returns the i-th child, nil when out of range.
func (o Operation) Child(i int) Node {
	if i < 0 || i >= len(o.Children) {
		return nil
	}
	return o.Children[i]
}

func NewNumber(v float64) Number {
	return Number{Value: v}
}

func NewVariable(name string) Variable {
	return Variable{Name: name}
}

// NewOperation builds an operation node, resolving the Op from the name.
// The children slice is copied so the caller keeps ownership of its own.
func NewOperation(name string, children ...Node) Operation {
	c := make([]Node, len(children))
	copy(c, children)
	return Operation{Op: LookupOp(name), Name: name, Children: c}
}

// WithChildren returns a copy of the operation with new children, same name.
func (o Operation) WithChildren(children ...Node) Operation {
	return NewOperation(o.Name, children...)
}

func IsNumber(n Node) bool {
	return n != nil && n.Kind() == NUMBER
}

func IsVariable(n Node) bool {
	return n != nil && n.Kind() == VARIABLE
}

func IsOperation(n Node) bool {
	return n != nil && n.Kind() == OPERATION
}

// Equal reports structural equality of two trees. Operation identity is by name.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	switch a := a.(type) {
	case Number:
		bn, ok := b.(Number)
		if !ok {
			return false
		}
		return a.Value == bn.Value || (math.IsNaN(a.Value) && math.IsNaN(bn.Value))
	case Variable:
		bv, ok := b.(Variable)
		return ok && a.Name == bv.Name
	case Operation:
		bo, ok := b.(Operation)
		if !ok || a.Name != bo.Name || len(a.Children) != len(bo.Children) {
			return false
		}
		for i, c := range a.Children {
			if !Equal(c, bo.Children[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// Size is the number of nodes in the tree.
func Size(n Node) int {
	o, ok := n.(Operation)
	if !ok {
		return 1
	}
	total := 1
	for _, c := range o.Children {
		total += Size(c)
	}
	return total
}
