package eval

import (
	"fmt"
	"math/rand/v2"

	"grol.io/calc/ast"
	"grol.io/calc/lexer"
	"grol.io/calc/object"
	"grol.io/calc/parser"
)

// Exported part of the eval package.

// DefaultMaxDepth is the default maximum nesting of evaluations and variable
// dereferences, hitting it is a MaxDepthExceeded error instead of a stack overflow.
const DefaultMaxDepth = 50_000

// RandomSource provides uniform samples in [0, 1) for randomlyPick.
type RandomSource interface {
	Float64() float64
}

// Plotter receives the points computed by plot(). Errors are the plotter's
// business (logged), evaluation doesn't wait on nor check them.
type Plotter interface {
	DrawScatterPlot(title, xLabel, yLabel string, xs, ys []float64)
}

// Handler evaluates one operation node. It gets the node with its children
// not yet evaluated and recurses through s.Eval as needed.
type Handler func(s *State, node ast.Operation) (ast.Node, error)

// Interpreter holds what is shared by evaluations: the operation registry
// and the collaborators. Don't change it while evaluations are running.
type Interpreter struct {
	Rand    RandomSource // nil uses the global math/rand/v2 source.
	Plotter Plotter // nil means plot() fails.
	// Max depth of nested evaluations, default DefaultMaxDepth.
	MaxDepth int
	handlers [ast.NumOps]Handler
}

// NewInterpreter returns an interpreter with all the operations registered and
// a PCG random source. A 0 seed picks a random one.
func NewInterpreter(seed uint64) *Interpreter {
	if seed == 0 {
		seed = rand.Uint64() //nolint:gosec // not for crypto.
	}
	in := &Interpreter{
		Rand:     rand.New(rand.NewPCG(seed, seed)), //nolint:gosec // not for crypto.
		MaxDepth: DefaultMaxDepth,
	}
	in.registerAll()
	return in
}

// Handles tells whether op has a registered handler.
func (in *Interpreter) Handles(op ast.Op) bool {
	return int(op) < len(in.handlers) && in.handlers[op] != nil
}

// State is the context of one evaluation: the environment it reads and
// writes and the current depth. Not safe for concurrent use.
type State struct {
	Interp *Interpreter
	Env    *object.Environment
	depth  int
	stack  []string
}

// NewState returns a state evaluating with in against env.
func (in *Interpreter) NewState(env *object.Environment) *State {
	return &State{Interp: in, Env: env}
}

// NewState is a convenience for a fresh interpreter and empty environment.
func NewState() *State {
	return NewInterpreter(0).NewState(object.NewEnvironment())
}

// Reset clears the depth and stack, to reuse the state after a recovered panic.
func (s *State) Reset() {
	s.depth = 0
	s.stack = s.stack[:0]
}

// EvalString parses code and evaluates each expression in turn against the
// state's environment. Returns the last result.
//
//nolint:revive // eval.EvalString is fine.
func EvalString(s *State, code string) (ast.Node, error) {
	l := lexer.New(code)
	p := parser.New(l)
	program := p.ParseProgram()
	if len(p.Errors()) != 0 {
		return nil, fmt.Errorf("parsing error: %v", p.Errors())
	}
	var res ast.Node
	for _, node := range program {
		var err error
		res, err = s.Eval(node)
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}
