// Package repl hosts the calculator: evaluation of strings, files and streams
// and the interactive terminal session.
package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"runtime/debug"
	"strings"

	"fortio.org/log"
	"fortio.org/terminal"
	"fortio.org/version"
	"grol.io/calc/ast"
	"grol.io/calc/eval"
	"grol.io/calc/lexer"
	"grol.io/calc/object"
	"grol.io/calc/parser"
	"grol.io/calc/plot"
	"grol.io/calc/token"
)

const (
	PROMPT       = "$ "
	CONTINUATION = "> "
	// AutoSaveFile is where the variables are saved to and loaded from, in the current directory.
	AutoSaveFile = ".calc"
)

func logParserErrors(p *parser.Parser) bool {
	errs := p.ParseErrors()
	if len(errs) == 0 {
		return false
	}
	log.Critf("parser has %d error(s)", len(errs))
	for _, e := range errs {
		log.Errf("parser error: %v\n%s", e, e.Context())
	}
	return true
}

type Options struct {
	ShowParse  bool
	ShowEval   bool
	All        bool // print every top level result, not just the last one.
	FormatOnly bool
	Compact    bool
	Color      bool // errors in red and results in green.

	HistoryFile string
	MaxHistory  int
	AutoLoad    bool
	AutoSave    bool

	MaxDepth int    // 0 for eval.DefaultMaxDepth
	Seed     uint64 // 0 for random
	PlotDir  string
	Plotter  eval.Plotter // takes precedence over PlotDir.
	PanicOk  bool
	// Called with the state before evaluating anything, e.g. to predefine variables.
	PreInput func(*eval.State)
}

// EvalStringOptions are the default options of EvalString.
func EvalStringOptions() Options {
	return Options{ShowEval: true, All: true}
}

// NewState sets up an interpreter and an empty environment per the options.
func (o Options) NewState() *eval.State {
	in := eval.NewInterpreter(o.Seed)
	if o.MaxDepth > 0 {
		in.MaxDepth = o.MaxDepth
	}
	switch {
	case o.Plotter != nil:
		in.Plotter = o.Plotter
	case o.PlotDir != "":
		in.Plotter = plot.NewPNG(o.PlotDir)
	}
	return in.NewState(object.NewEnvironment())
}

// EvalString evaluates code in a new state and returns the results (one per line),
// the errors if any and the formatted code.
func EvalString(what string) (res string, errs []string, formatted string) {
	return EvalStringWithOption(EvalStringOptions(), what)
}

func EvalStringWithOption(o Options, what string) (res string, errs []string, formatted string) {
	s := o.NewState()
	if o.AutoLoad {
		if err := LoadFile(s, AutoSaveFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.Warnf("Auto load of %s: %v", AutoSaveFile, err)
		}
	}
	if o.PreInput != nil {
		o.PreInput(s)
	}
	out := &strings.Builder{}
	errs, formatted = EvalOne(s, what, out, o)
	if len(errs) > 0 {
		return "", errs, formatted
	}
	return out.String(), nil, formatted
}

// EvalAll evaluates the whole content of in.
func EvalAll(s *eval.State, in io.Reader, out io.Writer, options Options) []string {
	b, err := io.ReadAll(in)
	if err != nil {
		log.Errf("%v", err)
		return []string{err.Error()}
	}
	errs, _ := EvalOne(s, string(b), out, options)
	return errs
}

func format(program []ast.Node, compact bool) string {
	out := strings.Builder{}
	ps := &ast.PrintState{Out: &out, Compact: compact}
	for _, node := range program {
		node.PrettyPrint(ps)
		out.WriteString("\n")
	}
	return out.String()
}

// EvalOne parses and evaluates what, stopping at the first error.
// Returns the errors and the formatted code (what itself when it doesn't parse).
func EvalOne(s *eval.State, what string, out io.Writer, options Options) (errs []string, formatted string) {
	p := parser.New(lexer.New(what))
	program := p.ParseProgram()
	if logParserErrors(p) {
		return p.Errors(), what
	}
	formatted = format(program, options.Compact)
	if options.ShowParse {
		fmt.Fprint(out, "== Parse ==> ", formatted)
	}
	if options.FormatOnly {
		fmt.Fprint(out, formatted)
		return nil, formatted
	}
	if !options.PanicOk {
		defer func() {
			if r := recover(); r != nil {
				log.Critf("Caught panic: %v", r)
				log.Debugf("Stack: %s", debug.Stack())
				s.Reset()
				errs = append(errs, fmt.Sprintf("panic: %v", r))
			}
		}()
	}
	for i, node := range program {
		res, err := s.Eval(node)
		if err != nil {
			if options.Color {
				fmt.Fprint(out, log.Colors.Red, err.Error(), log.ANSIColors.Reset, "\n")
			}
			return append(errs, err.Error()), formatted
		}
		if !options.ShowEval || (!options.All && i != len(program)-1) {
			continue
		}
		if options.Color {
			fmt.Fprint(out, log.Colors.Green, res.String(), log.ANSIColors.Reset, "\n")
		} else {
			fmt.Fprintln(out, res.String())
		}
	}
	return nil, formatted
}

// needsMore is true when what has unclosed parentheses, the line continues.
func needsMore(what string) bool {
	l := lexer.New(what)
	depth := 0
	for {
		t := l.NextToken()
		switch t.Type() { //nolint:exhaustive // only parentheses matter.
		case token.EOF:
			return depth > 0
		case token.LPAREN:
			depth++
		case token.RPAREN:
			depth--
		}
	}
}

// AutoSave saves the variables to AutoSaveFile when they changed since lastNumSet.
// Returns the new change count.
func AutoSave(s *eval.State, lastNumSet int64) int64 {
	numSet := s.Env.NumSet()
	if numSet == lastNumSet {
		log.Debugf("No change, not saving")
		return lastNumSet
	}
	n, err := SaveFile(s, AutoSaveFile)
	if err != nil {
		log.Errf("Auto save: %v", err)
		return lastNumSet
	}
	log.Infof("Auto saved %d variables to %s", n, AutoSaveFile)
	return numSet
}

func Interactive(options Options) int {
	s := options.NewState()
	if options.AutoLoad {
		err := LoadFile(s, AutoSaveFile)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			log.Infof("No %s to auto load", AutoSaveFile)
		case err != nil:
			log.Warnf("Auto load of %s: %v", AutoSaveFile, err)
		default:
			log.Infof("Auto loaded %d variables from %s", s.Env.Len(), AutoSaveFile)
		}
	}
	if options.PreInput != nil {
		options.PreInput(s)
	}
	term, err := terminal.Open(context.Background())
	if err != nil {
		return log.FErrf("Error creating terminal: %v", err)
	}
	defer term.Close()
	term.SetPrompt(PROMPT)
	autoComplete := NewCompletion()
	s.Env.RegisterTrie(autoComplete.Trie)
	term.SetAutoCompleteCallback(autoComplete.AutoComplete())
	term.NewHistory(options.MaxHistory)
	term.SetAutoHistory(false)
	if options.MaxHistory > 0 && options.HistoryFile != "" {
		if err = term.SetHistoryFile(options.HistoryFile); err != nil {
			log.Warnf("History file %s: %v", options.HistoryFile, err)
		}
	}
	options.Color = true
	_, longVersion, _ := version.FromBuildInfoPath("grol.io/calc")
	fmt.Fprintf(term.Out, "calc %s - type :help for commands, ^D to exit\n", longVersion)
	lastNumSet := s.Env.NumSet()
	prev := ""
	for {
		line, err := term.ReadLine()
		if errors.Is(err, terminal.ErrUserInterrupt) {
			if prev != "" {
				prev = ""
				term.SetPrompt(PROMPT)
				continue
			}
			log.Infof("Interrupted, exiting")
			return 0
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				log.Infof("Exit requested")
				return 0
			}
			return log.FErrf("Error reading line: %v", err)
		}
		what := prev + line
		if prev == "" && strings.HasPrefix(strings.TrimSpace(what), ":") {
			term.AddToHistory(line)
			if err = RunCommand(s, what, term.Out); err != nil {
				fmt.Fprint(term.Out, log.Colors.Red, err.Error(), log.ANSIColors.Reset, "\n")
			}
			continue
		}
		if needsMore(what) {
			prev = what + "\n"
			term.SetPrompt(CONTINUATION)
			continue
		}
		prev = ""
		term.SetPrompt(PROMPT)
		if strings.TrimSpace(what) == "" {
			continue
		}
		_, formatted := EvalOne(s, what, term.Out, options)
		term.AddToHistory(strings.TrimSpace(formatted))
		if options.AutoSave {
			lastNumSet = AutoSave(s, lastNumSet)
		}
	}
}
