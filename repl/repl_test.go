package repl_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"grol.io/calc/ast"
	"grol.io/calc/eval"
	"grol.io/calc/plot"
	"grol.io/calc/repl"
)

func TestEvalString(t *testing.T) {
	s := `
x := 0 // loop variable
repeat(3, x + 1)
while(sm(x, 10), x + 1, 100)
toDouble(sin(0) + x)`
	expected := "0\n3\n10\n10\n"
	got, errs, formatted := repl.EvalString(s)
	if got != expected || len(errs) > 0 {
		t.Errorf("EvalString() got %v\n---\n%s\n---want---\n%s\n---", errs, got, expected)
	}
	expected = `x := 0
repeat(3, x + 1)
while(sm(x, 10), x + 1, 100)
toDouble(sin(0) + x)
`
	if formatted != expected {
		t.Errorf("EvalString() formatted\n---\n%s\n---want---\n%s\n---", formatted, expected)
	}
}

func TestEvalStringLastOnly(t *testing.T) {
	opts := repl.EvalStringOptions()
	opts.All = false
	res, errs, _ := repl.EvalStringWithOption(opts, "a := 2; b := a ^ 3; b - 1")
	if res != "7\n" || len(errs) > 0 {
		t.Errorf("got %q %v", res, errs)
	}
}

func TestEvalStringParsingError(t *testing.T) {
	s := `	  x := (1 +`
	res, errs, formatted := repl.EvalString(s)
	if len(errs) == 0 {
		t.Errorf("EvalString() got no errors (res %q), expected some", res)
	}
	if res != "" {
		t.Errorf("EvalString() got (%v) %q, expected empty", errs, res)
	}
	if formatted != s {
		t.Errorf("EvalString() reformatted %q vs %q", formatted, s)
	}
}

func TestEvalStringEvalError(t *testing.T) {
	s := `	 y := 1


	 toDouble(z)
	 y`
	expected := "undefined variable: z (in toDouble)"
	res, errs, formatted := repl.EvalString(s)
	if len(errs) != 1 {
		t.Fatalf("EvalString() got %v errors (res %q), expected 1", errs, res)
	}
	if errs[0] != expected {
		t.Errorf("EvalString() errors\n---\n%s\n---want---\n%s\n---", errs[0], expected)
	}
	if res != "" {
		t.Errorf("EvalString() result %q, want empty on error", res)
	}
	if formatted != "y := 1\ntoDouble(z)\ny\n" {
		t.Errorf("EvalString() formatted %q", formatted)
	}
}

func TestFormatOnly(t *testing.T) {
	opts := repl.EvalStringOptions()
	opts.FormatOnly = true
	opts.Compact = true
	res, errs, formatted := repl.EvalStringWithOption(opts, "x:=1+2*y\nfoo( 1 ,2 )")
	expected := "x:=1+2*y\nfoo(1,2)\n"
	if res != expected || formatted != expected || len(errs) > 0 {
		t.Errorf("got %q %q %v", res, formatted, errs)
	}
}

func TestPreInputHook(t *testing.T) {
	opts := repl.EvalStringOptions()
	opts.PanicOk = true
	opts.PreInput = func(s *eval.State) {
		s.Env.Put("answer", ast.NewNumber(42))
	}
	res, errs, _ := repl.EvalStringWithOption(opts, "answer - 1")
	if res != "41\n" || len(errs) > 0 {
		t.Errorf("EvalString() got %v\n---\n%s\n---want 41---", errs, res)
	}
}

func TestOptionsNewState(t *testing.T) {
	rec := &plot.Recorder{}
	opts := repl.Options{Seed: 7, MaxDepth: 10, Plotter: rec, PlotDir: "ignored"}
	s := opts.NewState()
	if s.Interp.MaxDepth != 10 || s.Interp.Plotter != rec {
		t.Errorf("options not applied: %+v", s.Interp)
	}
	// same seed, same picks.
	s2 := opts.NewState()
	for range 20 {
		if s.Interp.Rand.Float64() != s2.Interp.Rand.Float64() {
			t.Fatalf("same seed should give the same sequence")
		}
	}
	opts.Plotter = nil
	if _, ok := opts.NewState().Interp.Plotter.(*plot.PNG); !ok {
		t.Errorf("PlotDir should give a PNG plotter")
	}
}

func TestEvalAll(t *testing.T) {
	s := repl.EvalStringOptions().NewState()
	out := &bytes.Buffer{}
	errs := repl.EvalAll(s, strings.NewReader("x := 1\nx + 1\n"), out, repl.Options{ShowEval: true, All: true})
	if len(errs) != 0 || out.String() != "1\n2\n" {
		t.Errorf("got %q %v", out.String(), errs)
	}
	// state is kept across calls.
	out.Reset()
	errs = repl.EvalAll(s, strings.NewReader("x * 5"), out, repl.Options{ShowEval: true})
	if len(errs) != 0 || out.String() != "5\n" {
		t.Errorf("got %q %v", out.String(), errs)
	}
}

func TestAutoLoadAndSave(t *testing.T) {
	t.Chdir(t.TempDir())
	s := repl.EvalStringOptions().NewState()
	_, errs := repl.EvalOne(s, "a := 2; b := c + a", &bytes.Buffer{}, repl.Options{})
	if len(errs) != 0 {
		t.Fatal(errs)
	}
	last := repl.AutoSave(s, 0)
	if last != s.Env.NumSet() {
		t.Errorf("AutoSave should return the current change count")
	}
	b, err := os.ReadFile(repl.AutoSaveFile)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "a := 2\nb := c + 2\n" {
		t.Errorf("unexpected save file %q", b)
	}
	// no change, no save.
	os.Remove(repl.AutoSaveFile)
	repl.AutoSave(s, last)
	if _, err = os.Stat(repl.AutoSaveFile); err == nil {
		t.Errorf("nothing changed, shouldn't have saved")
	}
	repl.AutoSave(s, 0)
	opts := repl.EvalStringOptions()
	opts.AutoLoad = true
	res, errs, _ := repl.EvalStringWithOption(opts, "b\nc := 1\nb")
	if res != "c + 2\n1\n3\n" || len(errs) > 0 {
		t.Errorf("got %q %v", res, errs)
	}
}

func TestPlotToDir(t *testing.T) {
	dir := t.TempDir()
	opts := repl.EvalStringOptions()
	opts.PlotDir = dir
	res, errs, _ := repl.EvalStringWithOption(opts, "plot(x ^ 2, x, -2, 2, 0.25)")
	if res != "1\n" || len(errs) > 0 {
		t.Fatalf("got %q %v", res, errs)
	}
	if _, err := os.Stat(filepath.Join(dir, "plot-1.png")); err != nil {
		t.Errorf("plot file not written: %v", err)
	}
}

func TestCompletion(t *testing.T) {
	a := repl.NewCompletion()
	a.Trie.Insert("xylophone")
	out := &bytes.Buffer{}
	line, pos, ok := a.Complete("1 + toD", 7, out)
	if !ok || line != "1 + toDouble(" || pos != 13 {
		t.Errorf("got %q %d %v", line, pos, ok)
	}
	if out.Len() != 0 {
		t.Errorf("single completion shouldn't list anything, got %q", out.String())
	}
	line, pos, ok = a.Complete("s", 1, out)
	if !ok || line != "s" || pos != 1 {
		t.Errorf("got %q %d %v", line, pos, ok)
	}
	if got := out.String(); got != "One of: simplify() sin() sm() \n" {
		t.Errorf("got listing %q", got)
	}
	line, _, ok = a.Complete("xy + 1", 2, out)
	if !ok || line != "xylophone + 1" {
		t.Errorf("got %q %v", line, ok)
	}
	if _, _, ok = a.Complete("zzz", 3, out); ok {
		t.Errorf("no completion expected")
	}
}
