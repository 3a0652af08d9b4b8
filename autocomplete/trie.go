// Package autocomplete implements query-box completions: a prefix trie
// over the vocabulary and a frequency-ordered bigram trie over
// "word1 word2" pairs, combined by Autocompleter.Suggest the way the
// DAWG-backed completion/next-word dictionaries were meant to behave
// before being replaced by a simpler (and, per a stale comment in the
// code it was recovered from, less useful) lexicographic-only lookup.
package autocomplete

import "sort"

type trieNode struct {
	children map[rune]*trieNode
	terminal bool
	freq     int
}

func newTrieNode() *trieNode {
	return &trieNode{children: make(map[rune]*trieNode)}
}

// trie is a generic rune-keyed prefix trie. entries carry an optional
// frequency, used by NextWordTrie to rank bigram continuations.
type trie struct {
	root *trieNode
}

func newTrie() *trie {
	return &trie{root: newTrieNode()}
}

func (t *trie) insert(word string, freq int) {
	node := t.root
	for _, r := range word {
		child, ok := node.children[r]
		if !ok {
			child = newTrieNode()
			node.children[r] = child
		}
		node = child
	}
	node.terminal = true
	node.freq = freq
}

type trieEntry struct {
	word string
	freq int
}

// withPrefix returns every terminal entry in the subtree rooted at
// prefix's last node, in lexicographic order.
func (t *trie) withPrefix(prefix string) []trieEntry {
	node := t.root
	for _, r := range prefix {
		child, ok := node.children[r]
		if !ok {
			return nil
		}
		node = child
	}
	var out []trieEntry
	collect(node, prefix, &out)
	return out
}

func collect(node *trieNode, word string, out *[]trieEntry) {
	if node.terminal {
		*out = append(*out, trieEntry{word: word, freq: node.freq})
	}
	runes := make([]rune, 0, len(node.children))
	for r := range node.children {
		runes = append(runes, r)
	}
	sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })
	for _, r := range runes {
		collect(node.children[r], word+string(r), out)
	}
}

// CompletionTrie holds the vocabulary: one entry per unique lowercased
// surface word, enumerated lexicographically by prefix.
type CompletionTrie struct {
	t *trie
}

func NewCompletionTrie() *CompletionTrie {
	return &CompletionTrie{t: newTrie()}
}

func (c *CompletionTrie) Insert(word string) {
	c.t.insert(word, 0)
}

// Completions returns every vocabulary word starting with prefix, in
// lexicographic order.
func (c *CompletionTrie) Completions(prefix string) []string {
	entries := c.t.withPrefix(prefix)
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.word
	}
	return out
}

// NextWordTrie holds "w1 w2" bigrams keyed by corpus frequency, used
// to suggest a next word given the preceding context.
type NextWordTrie struct {
	t *trie
}

func NewNextWordTrie() *NextWordTrie {
	return &NextWordTrie{t: newTrie()}
}

func (n *NextWordTrie) Insert(bigram string, freq int) {
	n.t.insert(bigram, freq)
}

// Matches returns every bigram starting with prefix, ordered by
// descending frequency, ties broken lexicographically.
func (n *NextWordTrie) Matches(prefix string) []string {
	entries := n.t.withPrefix(prefix)
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].freq != entries[j].freq {
			return entries[i].freq > entries[j].freq
		}
		return entries[i].word < entries[j].word
	})
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.word
	}
	return out
}
