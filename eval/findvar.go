package eval

import (
	"grol.io/calc/ast"
	"grol.io/calc/object"
)

// FindVar returns the loop variable of a repeat or while body: the leftmost
// variable, looking only at the first operand of unary forms and comparators.
// Bodies that update more than one variable only get the first one rebound.
func (s *State) FindVar(node ast.Node) (string, bool, error) {
	name, found, err := s.findVar(node)
	return name, found, s.withStack(err)
}

func (s *State) findVar(node ast.Node) (string, bool, error) {
	switch node := node.(type) {
	case ast.Variable:
		return node.Name, true, nil
	case ast.Number:
		return "", false, nil
	case ast.Operation:
		switch {
		case node.Op.IsBinaryArithmetic():
			if err := checkArity(s, node); err != nil {
				return "", false, err
			}
			name, found, err := s.findVar(node.Children[0])
			if err != nil || found {
				return name, found, err
			}
			return s.findVar(node.Children[1])
		case node.Op.IsUnaryArithmetic(), node.Op.IsComparator():
			first := node.Child(0)
			if first == nil {
				return "", false, s.errorf(object.MalformedNode, "%s without arguments", node.Name)
			}
			return s.findVar(first)
		}
		return "", false, s.errorf(object.InvalidOperation, "no loop variable in %s", node.Name)
	}
	return "", false, s.errorf(object.MalformedNode, "unexpected node %T", node)
}
