package repl

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"grol.io/calc/ast"
	"grol.io/calc/plot"
)

func TestSplitCommand(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr bool
	}{
		{
			name:  "simple command",
			input: "save vars.calc",
			want:  []string{"save", "vars.calc"},
		},
		{
			name:  "command with multiple args",
			input: "unset x y z",
			want:  []string{"unset", "x", "y", "z"},
		},
		{
			name:  "double quoted string",
			input: `load "hello world"`,
			want:  []string{"load", "hello world"},
		},
		{
			name:  "single quoted string",
			input: `load 'hello world'`,
			want:  []string{"load", "hello world"},
		},
		{
			name:  "escaped space outside quotes",
			input: `load hello\ world`,
			want:  []string{"load", "hello world"},
		},
		{
			name:  "escaped quote in double quotes",
			input: `load "hello \"world\""`,
			want:  []string{"load", `hello "world"`},
		},
		{
			name:  "backslash literal in single quotes",
			input: `load 'hello\world'`,
			want:  []string{"load", `hello\world`},
		},
		{
			name:  "multiple spaces",
			input: "load   hello    world",
			want:  []string{"load", "hello", "world"},
		},
		{
			name:  "tabs and newlines",
			input: "load\thello\nworld",
			want:  []string{"load", "hello", "world"},
		},
		{
			name:  "empty string",
			input: "",
			want:  []string{},
		},
		{
			name:  "only whitespace",
			input: "   \t\n  ",
			want:  []string{},
		},
		{
			name:  "mixed quotes",
			input: `load "hello" 'world' foo`,
			want:  []string{"load", "hello", "world", "foo"},
		},
		{
			name:  "escaped backslash in double quotes",
			input: `load "hello\\world"`,
			want:  []string{"load", `hello\world`},
		},
		{
			name:  "escaped newline in double quotes",
			input: "load \"hello\\nworld\"",
			want:  []string{"load", "hellonworld"},
		},
		{
			name:    "unclosed double quote",
			input:   `load "hello world`,
			wantErr: true,
		},
		{
			name:    "unclosed single quote",
			input:   `load 'hello world`,
			wantErr: true,
		},
		{
			name:    "unterminated escape at end",
			input:   `load hello\`,
			wantErr: true,
		},
		{
			name:  "several quoted arguments",
			input: `unset "a" 'b' c`,
			want:  []string{"unset", "a", "b", "c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SplitCommand(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("SplitCommand() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}
			if len(got) != len(tt.want) {
				t.Errorf("SplitCommand() got %d parts, want %d parts\ngot:  %#v\nwant: %#v", len(got), len(tt.want), got, tt.want)
				return
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("SplitCommand() part[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestRunCommand(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "my vars.calc")
	s := EvalStringOptions().NewState()
	out := &bytes.Buffer{}
	if errs, _ := EvalOne(s, "x := 3; y := x * z", out, Options{}); len(errs) > 0 {
		t.Fatal(errs)
	}
	run := func(cmd string) string {
		t.Helper()
		out.Reset()
		if err := RunCommand(s, cmd, out); err != nil {
			t.Fatalf("%q: unexpected error %v", cmd, err)
		}
		return out.String()
	}
	if got := run(":vars"); got != "x := 3\ny := 3 * z\n" {
		t.Errorf(":vars got %q", got)
	}
	if got := run(`:save "` + file + `"`); got != "saved 2 variables to "+file+"\n" {
		t.Errorf(":save got %q", got)
	}
	run(":unset x")
	if s.Env.ContainsKey("x") || !s.Env.ContainsKey("y") {
		t.Errorf(":unset x didn't work: %v", s.Env.Names())
	}
	run(":reset")
	if s.Env.Len() != 0 {
		t.Errorf(":reset left %v", s.Env.Names())
	}
	run(":load '" + file + "'")
	v, _ := s.Env.Get("y")
	if !ast.Equal(v, ast.NewOperation("*", ast.NewNumber(3), ast.NewVariable("z"))) {
		t.Errorf("y not reloaded as is, got %v", v)
	}
	if got := run(":help"); !strings.Contains(got, ":vars") || !strings.Contains(got, "randomlyPick") {
		t.Errorf(":help got %q", got)
	}
	run(":plot " + dir)
	if _, ok := s.Interp.Plotter.(*plot.PNG); !ok {
		t.Errorf(":plot should set a PNG plotter")
	}
}

func TestRunCommandErrors(t *testing.T) {
	s := EvalStringOptions().NewState()
	bad := filepath.Join(t.TempDir(), "bad.calc")
	if err := os.WriteFile(bad, []byte("x + 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	for _, cmd := range []string{
		":",
		":nope",
		":load",
		":load /does/not/exist.calc",
		":load " + bad,
		":unset notset",
		":plot /does/not/exist",
		`:save "unclosed`,
	} {
		if err := RunCommand(s, cmd, &bytes.Buffer{}); err == nil {
			t.Errorf("%q: expected an error", cmd)
		}
	}
}

func TestNeedsMore(t *testing.T) {
	tests := []struct {
		input string
		more  bool
	}{
		{"1 + 2", false},
		{"repeat(3,", true},
		{"while(sm(x, 10),\n x + 1,", true},
		{"sin(1))", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := needsMore(tt.input); got != tt.more {
			t.Errorf("needsMore(%q) got %v, want %v", tt.input, got, tt.more)
		}
	}
}
