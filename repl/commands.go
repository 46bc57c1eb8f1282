package repl

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"fortio.org/log"
	"fortio.org/sets"
	"grol.io/calc/ast"
	"grol.io/calc/eval"
	"grol.io/calc/lexer"
	"grol.io/calc/parser"
	"grol.io/calc/plot"
	"grol.io/calc/token"
)

// SplitCommand splits a command line into arguments. Single quotes keep
// everything as is, double quotes allow backslash escapes.
// Unclosed quotes and a trailing backslash are errors.
func SplitCommand(cmd string) ([]string, error) {
	var parts []string
	var current strings.Builder
	inQuote := rune(0)
	escaped := false

	for _, r := range cmd {
		if escaped {
			current.WriteRune(r)
			escaped = false
			continue
		}
		if r == '\\' {
			if inQuote == '\'' {
				current.WriteRune(r)
			} else {
				escaped = true
			}
			continue
		}
		if inQuote != 0 {
			if r == inQuote {
				inQuote = 0
			} else {
				current.WriteRune(r)
			}
			continue
		}
		if r == '"' || r == '\'' {
			inQuote = r
			continue
		}
		if r == ' ' || r == '\t' || r == '\n' {
			if current.Len() > 0 {
				parts = append(parts, current.String())
				current.Reset()
			}
			continue
		}
		current.WriteRune(r)
	}
	if escaped {
		return nil, errors.New("unterminated escape sequence: command ends with backslash")
	}
	if inQuote != 0 {
		return nil, fmt.Errorf("unclosed quote: missing closing %c", inQuote)
	}
	if current.Len() > 0 {
		parts = append(parts, current.String())
	}
	return parts, nil
}

// LoadFile binds the `name := expr` lines of file without evaluating them,
// so symbolic values come back as they were saved.
func LoadFile(s *eval.State, file string) error {
	b, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	p := parser.New(lexer.NewBytes(b))
	program := p.ParseProgram()
	if logParserErrors(p) {
		return fmt.Errorf("%s: %d parse error(s): %v", file, len(p.Errors()), p.Errors())
	}
	for _, node := range program {
		o, ok := node.(ast.Operation)
		if !ok || o.Op != ast.ASSIGN || !ast.IsVariable(o.Children[0]) {
			return fmt.Errorf("%s: not an assignment: %s", file, node.String())
		}
		s.Env.Put(o.Children[0].(ast.Variable).Name, o.Children[1])
	}
	log.LogVf("Loaded %d variables from %s", len(program), file)
	return nil
}

// SaveFile writes the variables to file, returns how many.
func SaveFile(s *eval.State, file string) (int, error) {
	f, err := os.Create(file)
	if err != nil {
		return 0, err
	}
	n, err := s.Env.Save(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return n, err
}

const commandsHelp = `:help                 this help
:vars                 show the variables
:save [file]          save the variables (default ` + AutoSaveFile + `)
:load file            load variables saved with :save
:unset name...        remove variables
:reset                remove all the variables
:plot dir             write plot() images to dir
`

// RunCommand executes a REPL `:command`.
func RunCommand(s *eval.State, line string, out io.Writer) error {
	args, err := SplitCommand(strings.TrimPrefix(strings.TrimSpace(line), ":"))
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return errors.New("empty command, try :help")
	}
	cmd, args := args[0], args[1:]
	log.LogVf("command %q %v", cmd, args)
	switch cmd {
	case "help":
		fmt.Fprint(out, commandsHelp)
		fmt.Fprintln(out, "Operations:", strings.Join(sets.Sort(token.Info().Operations), ", "))
		fmt.Fprintln(out, "Operators:", strings.Join(sets.Sort(token.Info().Operators), " "))
	case "vars":
		_, err = s.Env.Save(out)
		return err
	case "save":
		file := AutoSaveFile
		if len(args) > 0 {
			file = args[0]
		}
		n, err := SaveFile(s, file)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "saved %d variables to %s\n", n, file)
	case "load":
		if len(args) != 1 {
			return errors.New("usage: :load file")
		}
		return LoadFile(s, args[0])
	case "unset":
		for _, name := range args {
			if !s.Env.ContainsKey(name) {
				return fmt.Errorf("%s is not set", name)
			}
			s.Env.Remove(name)
		}
	case "reset":
		for _, name := range s.Env.Names() {
			s.Env.Remove(name)
		}
	case "plot":
		if len(args) != 1 {
			return errors.New("usage: :plot dir")
		}
		st, err := os.Stat(args[0])
		if err != nil {
			return err
		}
		if !st.IsDir() {
			return fmt.Errorf("%s is not a directory", args[0])
		}
		s.Interp.Plotter = plot.NewPNG(args[0])
		fmt.Fprintf(out, "plots will be written to %s\n", args[0])
	default:
		return fmt.Errorf("unknown command %q, try :help", cmd)
	}
	return nil
}
