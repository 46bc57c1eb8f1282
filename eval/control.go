package eval

import (
	"math"
	"math/rand/v2"

	"fortio.org/log"
	"fortio.org/safecast"
	"grol.io/calc/ast"
	"grol.io/calc/object"
)

// condition computes the value of a loop or if condition: a comparator, a one
// child operation wrapping one, or else anything toDouble accepts.
func (s *State) condition(cond ast.Node) (float64, error) {
	if o, ok := cond.(ast.Operation); ok {
		if !o.Op.IsComparator() && len(o.Children) == 1 {
			if inner, isOp := o.Children[0].(ast.Operation); isOp && inner.Op.IsComparator() {
				o = inner
			}
		}
		if o.Op.IsComparator() {
			return s.compare(o)
		}
	}
	return s.toDouble(cond)
}

func evalIf(s *State, node ast.Operation) (ast.Node, error) {
	c, err := s.condition(node.Children[0])
	if err != nil {
		return nil, err
	}
	log.LogVf("if: condition %v", c)
	if c != 0 {
		return s.Eval(node.Children[1])
	}
	return s.Eval(node.Children[2])
}

func evalRandomlyPick(s *State, node ast.Operation) (ast.Node, error) {
	sample := rand.Float64 //nolint:gosec // not for crypto.
	if s.Interp.Rand != nil {
		sample = s.Interp.Rand.Float64
	}
	if sample() < 0.5 {
		return s.Eval(node.Children[0])
	}
	return s.Eval(node.Children[1])
}

func evalRepeat(s *State, node ast.Operation) (ast.Node, error) {
	times, err := s.Eval(node.Children[0])
	if err != nil {
		return nil, err
	}
	n, ok := times.(ast.Number)
	if !ok {
		return nil, s.errorf(object.MalformedNode, "repeat count %s is not a number", times.String())
	}
	if !(n.Value >= 1) { // also catches NaN.
		return nil, s.errorf(object.InvalidRepetition, "can't repeat %s times", n.String())
	}
	loopNum, err := safecast.Truncate[int](math.Floor(n.Value))
	if err != nil {
		return nil, s.errorf(object.InvalidRepetition, "can't repeat %s times: %v", n.String(), err)
	}
	body := node.Children[1]
	name, found, err := s.findVar(body)
	if err != nil {
		return nil, err
	}
	log.LogVf("repeat: %d times, variable %q", loopNum, name)
	var result ast.Node
	for range loopNum {
		result, err = s.Eval(body)
		if err != nil {
			return nil, err
		}
		if found {
			s.Env.Put(name, result)
		}
	}
	return s.Eval(result)
}

func evalWhile(s *State, node ast.Operation) (ast.Node, error) {
	cond, body := node.Children[0], node.Children[1]
	limNode, err := s.Eval(node.Children[2])
	if err != nil {
		return nil, err
	}
	lim, ok := limNode.(ast.Number)
	if !ok {
		return nil, s.errorf(object.MalformedNode, "while limit %s is not a number", limNode.String())
	}
	condVar, hasCondVar, err := s.findVar(cond)
	if err != nil {
		return nil, err
	}
	bodyVar, hasBodyVar, err := s.findVar(body)
	if err != nil {
		return nil, err
	}
	// When the body updates another variable than the condition's, the condition
	// variable gets the comparator's value after each iteration.
	syncCondVar := hasCondVar && (!hasBodyVar || condVar != bodyVar)
	c, err := s.condition(cond)
	if err != nil {
		return nil, err
	}
	result := body
	steps := 0
	for c != 0 {
		result, err = s.Eval(body)
		if err != nil {
			return nil, err
		}
		if hasBodyVar {
			s.Env.Put(bodyVar, result)
		}
		if float64(steps) > lim.Value {
			return nil, s.errorf(object.NonTerminatingLoop, "still running after more than %s iterations", ast.FormatNumber(lim.Value))
		}
		steps++
		c, err = s.condition(cond)
		if err != nil {
			return nil, err
		}
		if syncCondVar {
			s.Env.Put(condVar, ast.NewNumber(c))
		}
	}
	log.LogVf("while: %d iterations", steps)
	return s.Eval(result)
}
