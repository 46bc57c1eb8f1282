package repl

import (
	"fmt"
	"io"
	"strings"

	"fortio.org/terminal"
	"grol.io/calc/lexer"
	"grol.io/calc/token"
	"grol.io/calc/trie"
)

type AutoComplete struct {
	Trie *trie.Trie
}

// NewCompletion returns a completion seeded with the operations, as `name(`.
// Variables get added through Environment.RegisterTrie.
func NewCompletion() *AutoComplete {
	t := trie.NewTrie()
	for op := range token.Info().Operations {
		t.Insert(op + "(")
	}
	return &AutoComplete{t}
}

func (a *AutoComplete) AutoComplete() terminal.AutoCompleteCallback {
	return func(t *terminal.Terminal, line string, pos int, key rune) (newLine string, newPos int, ok bool) {
		if key != '\t' {
			return // only tab for now
		}
		return a.Complete(line, pos, t.Out)
	}
}

// Complete completes the word ending at pos to the longest common prefix of
// its completions, listing them on out when there are several.
func (a *AutoComplete) Complete(line string, pos int, out io.Writer) (string, int, bool) {
	start := pos
	for start > 0 && lexer.IsAlphaNum(line[start-1]) {
		start--
	}
	l, words := a.Trie.PrefixAll(line[start:pos])
	if len(words) == 0 {
		return "", 0, false
	}
	if len(words) > 1 {
		fmt.Fprint(out, "One of: ")
		for _, c := range words {
			if strings.HasSuffix(c, "(") {
				fmt.Fprint(out, c, ") ")
			} else {
				fmt.Fprint(out, c, " ")
			}
		}
		fmt.Fprintln(out)
	}
	return line[:start] + words[0][:l] + line[pos:], start + l, true
}
