// Package eval is the tree walking evaluator: a registry of operation handlers
// and the dispatch between them.
package eval

import (
	"fortio.org/log"
	"grol.io/calc/ast"
	"grol.io/calc/object"
)

func (in *Interpreter) registerAll() {
	for _, op := range []ast.Op{ast.PLUS, ast.MINUS, ast.MULTIPLY, ast.DIVIDE, ast.POWER, ast.NEGATE, ast.SIN, ast.COS} {
		in.handlers[op] = evalArithmetic
	}
	for _, op := range []ast.Op{ast.GR, ast.SM, ast.EQ, ast.NQ} {
		in.handlers[op] = evalComparator
	}
	in.handlers[ast.TODOUBLE] = evalToDouble
	in.handlers[ast.SIMPLIFY] = evalSimplify
	in.handlers[ast.ASSIGN] = evalAssign
	in.handlers[ast.IF] = evalIf
	in.handlers[ast.REPEAT] = evalRepeat
	in.handlers[ast.WHILE] = evalWhile
	in.handlers[ast.RANDOMLYPICK] = evalRandomlyPick
	in.handlers[ast.PLOT] = evalPlot
}

// Eval evaluates node: numbers are themselves, bound variables evaluate to the
// evaluation of their value and unbound ones stay symbolic. Operations go to
// their registered handler.
func (s *State) Eval(node ast.Node) (ast.Node, error) {
	if err := s.enter(); err != nil {
		return nil, err
	}
	defer s.leave()
	switch node := node.(type) {
	case ast.Number:
		return node, nil
	case ast.Variable:
		v, ok := s.Env.Lookup(node.Name)
		if !ok {
			return node, nil
		}
		return s.Eval(v)
	case ast.Operation:
		return s.dispatch(node)
	case nil:
		return nil, s.errorf(object.MalformedNode, "nil node")
	}
	return nil, s.errorf(object.MalformedNode, "unexpected node %T", node)
}

func (s *State) dispatch(node ast.Operation) (ast.Node, error) {
	log.LogVf("eval %s", node.Name)
	if !s.Interp.Handles(node.Op) {
		return nil, s.errorf(object.UnknownOperation, "%s", node.Name)
	}
	if arity := node.Op.Arity(); len(node.Children) != arity {
		return nil, s.errorf(object.MalformedNode, "%s expects %d arguments, got %d", node.Name, arity, len(node.Children))
	}
	s.push(node.Name)
	defer s.pop()
	res, err := s.Interp.handlers[node.Op](s, node)
	if err != nil {
		return nil, s.withStack(err)
	}
	log.Debugf("eval %s -> %v", node.Name, res)
	return res, nil
}

// evalArithmetic evaluates the children then folds like simplify does.
func evalArithmetic(s *State, node ast.Operation) (ast.Node, error) {
	children := make([]ast.Node, len(node.Children))
	for i, c := range node.Children {
		v, err := s.Eval(c)
		if err != nil {
			return nil, err
		}
		children[i] = v
	}
	return s.fold(node.WithChildren(children...))
}

func evalComparator(s *State, node ast.Operation) (ast.Node, error) {
	v, err := s.compare(node)
	if err != nil {
		return nil, err
	}
	return ast.NewNumber(v), nil
}

func evalAssign(s *State, node ast.Operation) (ast.Node, error) {
	name, ok := node.Children[0].(ast.Variable)
	if !ok {
		return nil, s.errorf(object.MalformedNode, "can't assign to %s", node.Children[0].String())
	}
	v, err := s.Eval(node.Children[1])
	if err != nil {
		return nil, err
	}
	s.Env.Put(name.Name, v)
	return v, nil
}
