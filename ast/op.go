package ast

import "strconv"

type Op uint8

const (
	UNKNOWN Op = iota
	PLUS
	MINUS
	MULTIPLY
	DIVIDE
	POWER
	NEGATE
	SIN
	COS
	TODOUBLE
	SIMPLIFY
	IF
	REPEAT
	WHILE
	RANDOMLYPICK
	GR
	SM
	EQ
	NQ
	ASSIGN
	PLOT
	LAST
)

// NumOps is the size of a table indexed by Op.
const NumOps = int(LAST)

type opInfo struct {
	name  string
	arity int
}

var ops = [...]opInfo{
	UNKNOWN:      {"", -1},
	PLUS:         {"+", 2},
	MINUS:        {"-", 2},
	MULTIPLY:     {"*", 2},
	DIVIDE:       {"/", 2},
	POWER:        {"^", 2},
	NEGATE:       {"negate", 1},
	SIN:          {"sin", 1},
	COS:          {"cos", 1},
	TODOUBLE:     {"toDouble", 1},
	SIMPLIFY:     {"simplify", 1},
	IF:           {"if", 3},
	REPEAT:       {"repeat", 2},
	WHILE:        {"while", 3},
	RANDOMLYPICK: {"randomlyPick", 2},
	GR:           {"gr", 2},
	SM:           {"sm", 2},
	EQ:           {"eq", 2},
	NQ:           {"nq", 2},
	ASSIGN:       {":=", 2},
	PLOT:         {"plot", 5},
	LAST:         {"", -1},
}

var byName map[string]Op

func init() {
	byName = make(map[string]Op, NumOps)
	for op := PLUS; op < LAST; op++ {
		byName[ops[op].name] = op
	}
}

// LookupOp returns the operation for a name, UNKNOWN if there is none.
func LookupOp(name string) Op {
	return byName[name] // zero value is UNKNOWN.
}

func (o Op) String() string {
	if o >= LAST {
		return "Op(" + strconv.Itoa(int(o)) + ")"
	}
	if o == UNKNOWN {
		return "UNKNOWN"
	}
	return ops[o].name
}

// Arity is the fixed number of children, -1 for UNKNOWN.
func (o Op) Arity() int {
	if o >= LAST {
		return -1
	}
	return ops[o].arity
}

// IsBinaryArithmetic is true for + - * / ^.
func (o Op) IsBinaryArithmetic() bool {
	return o >= PLUS && o <= POWER
}

// IsUnaryArithmetic is true for negate, sin and cos.
func (o Op) IsUnaryArithmetic() bool {
	return o >= NEGATE && o <= COS
}

func (o Op) IsArithmetic() bool {
	return o.IsBinaryArithmetic() || o.IsUnaryArithmetic()
}

// IsComparator is true for gr, sm, eq and nq.
func (o Op) IsComparator() bool {
	return o >= GR && o <= NQ
}

// Names returns all known operation names in enum order.
func Names() []string {
	res := make([]string, 0, NumOps-1)
	for op := PLUS; op < LAST; op++ {
		res = append(res, ops[op].name)
	}
	return res
}
