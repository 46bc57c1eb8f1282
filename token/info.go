package token

import (
	"fortio.org/sets"
	"grol.io/calc/ast"
)

// CalcInfo enables introspection of known operations and tokens.
type CalcInfo struct {
	// Operations callable as name(args...), e.g. sin, toDouble, repeat.
	Operations sets.Set[string]
	// Operators written infix or prefix, e.g. +, ^, :=.
	Operators sets.Set[string]
	// Tokens is the set of all constant tokens.
	Tokens sets.Set[string]
}

var info = CalcInfo{}

func initInfo() {
	info.Operations = sets.New[string]()
	info.Operators = sets.New[string]()
	for _, name := range ast.Names() {
		if ast.LookupOp(name).IsBinaryArithmetic() || name == ":=" {
			info.Operators.Add(name)
			continue
		}
		info.Operations.Add(name)
	}
}

func Info() CalcInfo {
	return info
}

// IsOperation is true for names callable in function form.
func IsOperation(name string) bool {
	return info.Operations.Has(name)
}
