package eval

import (
	"math"

	"grol.io/calc/ast"
	"grol.io/calc/object"
)

func evalToDouble(s *State, node ast.Operation) (ast.Node, error) {
	v, err := s.toDouble(node.Children[0])
	if err != nil {
		return nil, err
	}
	return ast.NewNumber(v), nil
}

func evalSimplify(s *State, node ast.Operation) (ast.Node, error) {
	return s.simplify(node.Children[0])
}

func checkArity(s *State, o ast.Operation) error {
	if len(o.Children) != o.Op.Arity() {
		return s.errorf(object.MalformedNode, "%s expects %d arguments, got %d", o.Name, o.Op.Arity(), len(o.Children))
	}
	return nil
}

// ToDouble reduces node to a number, all variables in it must be bound.
func (s *State) ToDouble(node ast.Node) (float64, error) {
	v, err := s.toDouble(node)
	return v, s.withStack(err)
}

func (s *State) toDouble(node ast.Node) (float64, error) {
	switch node := node.(type) {
	case ast.Number:
		return node.Value, nil
	case ast.Variable:
		v, err := s.Env.Get(node.Name)
		if err != nil {
			return 0, err
		}
		if err = s.enter(); err != nil {
			return 0, err
		}
		defer s.leave()
		return s.toDouble(v)
	case ast.Operation:
		if !node.Op.IsArithmetic() {
			return 0, s.errorf(object.InvalidOperation, "%s can't be converted to a number", node.Name)
		}
		if err := checkArity(s, node); err != nil {
			return 0, err
		}
		l, err := s.toDouble(node.Children[0])
		if err != nil {
			return 0, err
		}
		if node.Op.IsUnaryArithmetic() {
			return applyUnary(node.Op, l), nil
		}
		r, err := s.toDouble(node.Children[1])
		if err != nil {
			return 0, err
		}
		return applyBinary(node.Op, l, r), nil
	}
	return 0, s.errorf(object.MalformedNode, "unexpected node %T", node)
}

func applyUnary(op ast.Op, v float64) float64 {
	switch op { //nolint:exhaustive // only called for unary arithmetic.
	case ast.SIN:
		return math.Sin(v)
	case ast.COS:
		return math.Cos(v)
	default: // NEGATE
		return -v
	}
}

func applyBinary(op ast.Op, l, r float64) float64 {
	switch op { //nolint:exhaustive // only called for binary arithmetic.
	case ast.PLUS:
		return l + r
	case ast.MINUS:
		return l - r
	case ast.MULTIPLY:
		return l * r
	case ast.DIVIDE:
		return l / r
	default: // POWER
		return math.Pow(l, r)
	}
}

// Simplify folds the constant parts of node. Unbound variables are left as is.
func (s *State) Simplify(node ast.Node) (ast.Node, error) {
	res, err := s.simplify(node)
	return res, s.withStack(err)
}

func (s *State) simplify(node ast.Node) (ast.Node, error) {
	return ast.Modify(node, s.simplifyOne)
}

// simplifyOne is applied bottom up, children are already simplified.
func (s *State) simplifyOne(node ast.Node) (ast.Node, error) {
	switch node := node.(type) {
	case ast.Variable:
		v, ok := s.Env.Lookup(node.Name)
		if !ok {
			return node, nil
		}
		if n, isNum := v.(ast.Number); isNum {
			return ast.NewNumber(n.Value), nil
		}
		if err := s.enter(); err != nil {
			return nil, err
		}
		defer s.leave()
		return s.simplify(v)
	case ast.Operation:
		return s.fold(node)
	}
	return node, nil
}

// fold computes binary arithmetic on two numbers, except division.
// Unary operations and anything with a symbolic operand are rebuilt as is.
func (s *State) fold(node ast.Operation) (ast.Node, error) {
	if !node.Op.IsArithmetic() {
		return nil, s.errorf(object.InvalidOperation, "%s can't be simplified", node.Name)
	}
	if err := checkArity(s, node); err != nil {
		return nil, err
	}
	if node.Op.IsUnaryArithmetic() || node.Op == ast.DIVIDE {
		return node, nil
	}
	l, lok := node.Children[0].(ast.Number)
	r, rok := node.Children[1].(ast.Number)
	if !lok || !rok {
		return node, nil
	}
	return ast.NewNumber(applyBinary(node.Op, l.Value, r.Value)), nil
}

// compare computes a comparator: gr is L-R when L>R, sm is R-L when L<R,
// eq is 1 when equal, each 0 otherwise. nq is always L-R.
func (s *State) compare(node ast.Operation) (float64, error) {
	if err := checkArity(s, node); err != nil {
		return 0, err
	}
	l, err := s.toDouble(node.Children[0])
	if err != nil {
		return 0, err
	}
	r, err := s.toDouble(node.Children[1])
	if err != nil {
		return 0, err
	}
	switch node.Op { //nolint:exhaustive // comparators only.
	case ast.GR:
		if l > r {
			return l - r, nil
		}
	case ast.SM:
		if l < r {
			return r - l, nil
		}
	case ast.EQ:
		if l == r {
			return 1, nil
		}
	case ast.NQ:
		return l - r, nil
	default:
		return 0, s.errorf(object.InvalidOperation, "%s is not a comparator", node.Name)
	}
	return 0, nil
}
