package object

import (
	"fmt"
	"io"
	"sort"

	"fortio.org/log"
	"grol.io/calc/ast"
	"grol.io/calc/trie"
)

// Environment binds variable names to nodes. Values aren't necessarily numbers,
// a name can be bound to an unevaluated expression.
// Not safe for concurrent use, give each concurrent evaluation its own.
type Environment struct {
	store  map[string]ast.Node
	numSet int64
	ids    *trie.Trie
}

func NewEnvironment() *Environment {
	return &Environment{store: make(map[string]ast.Node)}
}

func (e *Environment) Len() int {
	return len(e.store)
}

// Get returns the bound value, an UndefinedVariable error if there is none.
func (e *Environment) Get(name string) (ast.Node, error) {
	v, ok := e.store[name]
	if !ok {
		return nil, Errorf(UndefinedVariable, "%s", name)
	}
	return v, nil
}

func (e *Environment) Lookup(name string) (ast.Node, bool) {
	v, ok := e.store[name]
	return v, ok
}

func (e *Environment) ContainsKey(name string) bool {
	_, ok := e.store[name]
	return ok
}

func (e *Environment) Put(name string, value ast.Node) ast.Node {
	log.Debugf("Environment.Put(%s, %v)", name, value)
	if e.ids != nil {
		e.ids.Insert(name)
	}
	e.numSet++
	e.store[name] = value
	return value
}

func (e *Environment) Remove(name string) {
	if _, ok := e.store[name]; !ok {
		return
	}
	e.numSet++
	delete(e.store, name)
}

// NumSet is the cumulative number of changes, used to know when a save is needed.
func (e *Environment) NumSet() int64 {
	return e.numSet
}

// Names returns the bound names, sorted.
func (e *Environment) Names() []string {
	keys := make([]string, 0, len(e.store))
	for k := range e.store {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// RegisterTrie records current and future names into t (for auto completion).
func (e *Environment) RegisterTrie(t *trie.Trie) {
	e.ids = t
	for k := range e.store {
		t.Insert(k)
	}
}

// Save writes the bindings as `name := value` lines, sorted by name.
// Returns the number of bindings written.
func (e *Environment) Save(w io.Writer) (int, error) {
	n := 0
	for _, k := range e.Names() {
		_, err := fmt.Fprintf(w, "%s := %s\n", k, e.store[k].String())
		if err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
