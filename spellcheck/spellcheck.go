// Package spellcheck implements dictionary-backed query correction:
// recognized tokens pass through unchanged, unrecognized ones are
// replaced by the closest dictionary entry ranked with Levenshtein
// edit distance.
package spellcheck

import (
	"sort"
	"strings"

	"github.com/DanielHalachev/WikiSearch/schema"
	"github.com/agnivade/levenshtein"
)

// SpellChecker corrects a whitespace-tokenized query against a known
// vocabulary, preserving token count and order.
type SpellChecker interface {
	Correct(query string) string
	Suggest(token string, k int) []string
}

// DictionarySpellChecker ranks candidates by edit distance against the
// lowercased token, breaking ties by descending corpus frequency and
// then lexicographically for determinism.
type DictionarySpellChecker struct {
	entries map[string]int // token -> frequency
}

func NewDictionarySpellChecker(entries []schema.DictionaryEntry) *DictionarySpellChecker {
	index := make(map[string]int, len(entries))
	for _, e := range entries {
		index[e.Token] = e.Freq
	}
	return &DictionarySpellChecker{entries: index}
}

// Correct splits query on spaces, replaces any unrecognized token with
// its top-ranked suggestion (if any), and rejoins with single spaces.
// Idempotent: an already-correct query is returned unchanged.
func (c *DictionarySpellChecker) Correct(query string) string {
	tokens := strings.Split(query, " ")
	for i, token := range tokens {
		lower := strings.ToLower(token)
		if _, known := c.entries[lower]; known {
			continue
		}
		suggestions := c.Suggest(lower, 1)
		if len(suggestions) > 0 {
			tokens[i] = suggestions[0]
		}
	}
	return strings.Join(tokens, " ")
}

type candidate struct {
	token    string
	distance int
	freq     int
}

// Suggest returns up to k ranked candidates for token, nearest edit
// distance first.
func (c *DictionarySpellChecker) Suggest(token string, k int) []string {
	if k <= 0 || len(c.entries) == 0 {
		return nil
	}

	candidates := make([]candidate, 0, len(c.entries))
	for word, freq := range c.entries {
		candidates = append(candidates, candidate{
			token:    word,
			distance: levenshtein.ComputeDistance(token, word),
			freq:     freq,
		})
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].distance != candidates[j].distance {
			return candidates[i].distance < candidates[j].distance
		}
		if candidates[i].freq != candidates[j].freq {
			return candidates[i].freq > candidates[j].freq
		}
		return candidates[i].token < candidates[j].token
	})

	if k > len(candidates) {
		k = len(candidates)
	}
	out := make([]string, k)
	for i := 0; i < k; i++ {
		out[i] = candidates[i].token
	}
	return out
}

var _ SpellChecker = (*DictionarySpellChecker)(nil)
