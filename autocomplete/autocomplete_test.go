package autocomplete

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func buildAutocompleter() *Autocompleter {
	completions := NewCompletionTrie()
	for _, w := range []string{"cat", "car", "cart", "dog"} {
		completions.Insert(w)
	}

	nextWords := NewNextWordTrie()
	nextWords.Insert("the cat", 5)
	nextWords.Insert("the car", 9)
	nextWords.Insert("the dog", 3)

	return New(completions, nextWords, 10)
}

func TestSuggestEmptyInputReturnsEmpty(t *testing.T) {
	a := buildAutocompleter()
	assert.Empty(t, a.Suggest(""))
}

func TestSuggestWordCompletionsOrderedLexicographically(t *testing.T) {
	a := buildAutocompleter()
	suggestions := a.Suggest("ca")
	assert.Equal(t, []string{"car", "cart", "cat"}, suggestions)
}

func TestSuggestNextWordsOrderedByFrequency(t *testing.T) {
	a := buildAutocompleter()
	suggestions := a.Suggest("the ")
	assert.Equal(t, []string{"car", "cat", "dog"}, suggestions)
}

// "the cat" is a whole bigram rather than the start of one ("the cat "
// or "cat "), so the next-word top-up finds no continuation.
func TestSuggestWordCompletionsTopUpFindsNoContinuation(t *testing.T) {
	completions := NewCompletionTrie()
	completions.Insert("cat")

	nextWords := NewNextWordTrie()
	nextWords.Insert("the cat", 5)
	nextWords.Insert("the car", 9)

	a := New(completions, nextWords, 3)
	suggestions := a.Suggest("the cat")
	assert.Equal(t, []string{"cat"}, suggestions)
}

func TestSuggestDeduplicatesPreservingFirstSeenOrder(t *testing.T) {
	completions := NewCompletionTrie()
	completions.Insert("cat")
	completions.Insert("cat")

	a := New(completions, NewNextWordTrie(), 10)
	assert.Equal(t, []string{"cat"}, a.Suggest("cat"))
}
