// Trie implements a byte trie of identifiers, used for auto completion.
// It uses arrays instead of maps, trading memory for speed.
package trie // import "grol.io/calc/trie"

type Trie struct {
	children [256]*Trie
	// This node terminates a word (in addition to maybe having children).
	valid bool
	leaf  bool
}

// Shared end marker for leaves, the only node with "leaf" set.
var endMarker = &Trie{valid: true, leaf: true}

func NewTrie() *Trie {
	return &Trie{}
}

func (t *Trie) Insert(word string) {
	l := len(word)
	for i := range l {
		char := word[i]
		valid := false
		switch t.children[char] {
		case endMarker:
			// Was a complete word, now also a prefix: needs its own node.
			valid = true
			fallthrough
		case nil:
			if i == l-1 && !valid {
				t.children[char] = endMarker
			} else {
				t.children[char] = &Trie{valid: valid || i == l-1}
			}
		default:
			if i == l-1 {
				t.children[char].valid = true
			}
		}
		t = t.children[char]
	}
}

func (t *Trie) Contains(word string) bool {
	return t.Prefix(word).IsValid()
}

func (t *Trie) Prefix(word string) *Trie {
	for i := range len(word) {
		t = t.children[word[i]]
		if t == nil {
			return nil
		}
	}
	return t
}

func (t *Trie) IsLeaf() bool {
	return t != nil && t.leaf
}

func (t *Trie) IsValid() bool {
	return t != nil && t.valid
}

// All returns every word under t, prefixed by prefix, in byte order.
func (t *Trie) All(prefix string) []string {
	var res []string
	t.collect([]byte(prefix), &res)
	return res
}

func (t *Trie) collect(buf []byte, res *[]string) {
	if t == nil {
		return
	}
	if t.valid {
		*res = append(*res, string(buf))
	}
	if t.leaf {
		return
	}
	for c, child := range t.children {
		if child != nil {
			child.collect(append(buf, byte(c)), res)
		}
	}
}

// PrefixAll returns all completions of prefix and the length of their longest
// common prefix.
func (t *Trie) PrefixAll(prefix string) (int, []string) {
	words := t.Prefix(prefix).All(prefix)
	if len(words) == 0 {
		return 0, nil
	}
	l := len(words[0])
	for _, w := range words[1:] {
		l = min(l, len(w))
		for i := len(prefix); i < l; i++ {
			if w[i] != words[0][i] {
				l = i
				break
			}
		}
	}
	return l, words
}
