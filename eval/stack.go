package eval

import (
	"errors"

	"fortio.org/log"
	"grol.io/calc/object"
)

// Stack returns the names of the operations being evaluated, innermost first.
func (s *State) Stack() []string {
	stack := make([]string, 0, len(s.stack))
	for i := len(s.stack) - 1; i >= 0; i-- {
		stack = append(stack, s.stack[i])
	}
	log.Debugf("Stack() len %d, depth %d returning %v", len(stack), s.depth, stack)
	return stack
}

func (s *State) push(name string) {
	s.stack = append(s.stack, name)
}

func (s *State) pop() {
	s.stack = s.stack[:len(s.stack)-1]
}

// enter counts one more level of nesting, failing past the interpreter's MaxDepth.
func (s *State) enter() error {
	if s.depth >= s.Interp.MaxDepth {
		log.LogVf("max depth %d reached", s.Interp.MaxDepth)
		return s.errorf(object.MaxDepthExceeded, "%d", s.Interp.MaxDepth)
	}
	s.depth++
	return nil
}

func (s *State) leave() {
	s.depth--
}

// errorf makes an evaluation error carrying the current stack.
func (s *State) errorf(kind object.ErrorKind, format string, args ...any) error {
	e := object.Errorf(kind, format, args...)
	e.Stack = s.Stack()
	return e
}

// withStack adds the current stack to errors that don't have one yet
// (e.g. the ones coming from the environment).
func (s *State) withStack(err error) error {
	var e *object.Error
	if errors.As(err, &e) && e.Stack == nil {
		e.Stack = s.Stack()
	}
	return err
}
