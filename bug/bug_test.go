package bug_test

import (
	"strings"
	"testing"

	"grol.io/calc/repl"
)

func TestSelfReferenceDepth(t *testing.T) {
	s := `
y := y
y`
	got, errs, _ := repl.EvalString(s)
	if len(errs) != 1 || !strings.HasPrefix(errs[0], "max depth exceeded: 50000") {
		t.Errorf("EvalString() got %q %v, expected max depth error", got, errs)
	}
}

func TestWhileSameVariable(t *testing.T) {
	s := `
n := 0
while(sm(n, 3), n + 1, 10)
n`
	expected := "0\n3\n3\n"
	if got, errs, _ := repl.EvalString(s); got != expected || len(errs) > 0 {
		t.Errorf("EvalString() got %v\n---\n%s\n---want---\n%s\n---", errs, got, expected)
	}
}

func TestRepeat10(t *testing.T) {
	s := `
x := 1
repeat(10, x * 2)`
	expected := "1\n1024\n"
	if got, errs, _ := repl.EvalString(s); got != expected || len(errs) > 0 {
		t.Errorf("EvalString() got %v\n---\n%s\n---want---\n%s\n---", errs, got, expected)
	}
}

func TestNegativeLiterals(t *testing.T) {
	s := `
2 - -3
x := -2
toDouble(-x * 4)`
	expected := "5\n-2\n8\n"
	got, errs, formatted := repl.EvalString(s)
	if got != expected || len(errs) > 0 {
		t.Errorf("EvalString() got %v\n---\n%s\n---want---\n%s\n---", errs, got, expected)
	}
	if !strings.HasPrefix(formatted, "2 - -3\nx := -2\n") {
		t.Errorf("EvalString() formatted %q", formatted)
	}
}

func TestDivisionByZeroIsInf(t *testing.T) {
	got, errs, _ := repl.EvalString("toDouble(1 / 0)\ntoDouble(-1 / 0)")
	if got != "+Inf\n-Inf\n" || len(errs) > 0 {
		t.Errorf("EvalString() got %q %v", got, errs)
	}
}
