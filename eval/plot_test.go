package eval_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"grol.io/calc/ast"
	"grol.io/calc/eval"
	"grol.io/calc/object"
	"grol.io/calc/plot"
)

func plotState() (*eval.State, *plot.Recorder) {
	rec := &plot.Recorder{}
	in := eval.NewInterpreter(1)
	in.Plotter = rec
	return in.NewState(object.NewEnvironment()), rec
}

func TestPlot(t *testing.T) {
	s, rec := plotState()
	res := testEval(t, s, "a := 1; plot(3 * x + a, x, 2, 4, 0.5)")
	if !ast.Equal(res, ast.NewNumber(1)) {
		t.Errorf("plot should evaluate to 1, got %v", res)
	}
	expected := []plot.Call{{
		Title:  "3 * x + a",
		XLabel: "x",
		Xs:     []float64{2, 2.5, 3, 3.5, 4},
		Ys:     []float64{7, 8.5, 10, 11.5, 13},
	}}
	if diff := cmp.Diff(expected, rec.Calls()); diff != "" {
		t.Errorf("unexpected plot (-want +got):\n%s", diff)
	}
	if s.Env.ContainsKey("x") {
		t.Errorf("x should be unbound after plot")
	}
}

func TestPlotErrors(t *testing.T) {
	tests := []struct {
		input    string
		expected error
	}{
		{"plot(x * z, x, 0, 1, 0.5)", object.ErrUndefinedVariable},
		{"plot(if(gr(x, 0), 1, 0), x, 0, 1, 0.5)", object.ErrInvalidOperation},
		{"plot(x, 3, 0, 1, 0.5)", object.ErrMalformedNode},
		{"plot(x, x + 1, 0, 1, 0.5)", object.ErrMalformedNode},
		{"plot(x, x, 2, 1, 0.5)", object.ErrMalformedNode},
		{"plot(x, x, 0, 1, 0)", object.ErrMalformedNode},
		{"plot(x, x, 0, 1, -1)", object.ErrMalformedNode},
		{"plot(x, x, 0, m, 1)", object.ErrUndefinedVariable},
		{"plot(x, x, 0, 1)", object.ErrMalformedNode},
		{"plot(x, x, 0, 1e300, 1e-300)", object.ErrMalformedNode},
		{"plot(x, x, 0, 1e7, 1)", object.ErrMalformedNode},
		{"plot(x, x, 0, 1 / 0, 1)", object.ErrMalformedNode},
	}
	for _, tt := range tests {
		s, rec := plotState()
		testEvalErr(t, s, tt.input, tt.expected)
		if len(rec.Calls()) != 0 {
			t.Errorf("%q: nothing should be plotted", tt.input)
		}
	}
	s, _ := plotState()
	testEval(t, s, "x := 2")
	testEvalErr(t, s, "plot(x, x, 0, 1, 0.5)", object.ErrMalformedNode)
}

func TestPlotUnbindsOnError(t *testing.T) {
	s, rec := plotState()
	// y is bound, to something that can't be converted to a number.
	testEval(t, s, "y := z")
	testEvalErr(t, s, "plot(x + y, x, 0, 1, 0.5)", object.ErrUndefinedVariable)
	if s.Env.ContainsKey("x") {
		t.Errorf("x should be unbound after a failed plot")
	}
	if len(rec.Calls()) != 0 {
		t.Errorf("nothing should be plotted")
	}
}
