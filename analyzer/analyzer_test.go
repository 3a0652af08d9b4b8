package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAnalyzer(lowercase, preserveNER bool) *DefaultAnalyzer {
	return NewDefaultAnalyzer(Config{
		Lowercase:       lowercase,
		PreserveNERCase: preserveNER,
		Stopwords:       NewMapStopwordSet([]string{"the", "a", "is"}),
		Lemmatizer:      IdentityLemmatizer{},
	})
}

func TestTokenizeDropsStopwordsAndPunctuation(t *testing.T) {
	a := newTestAnalyzer(true, false)
	got := a.Tokenize("The cat, is running!")
	assert.Equal(t, []string{"cat", "running"}, got)
}

func TestTokenizeNoLowercaseKeepsSurface(t *testing.T) {
	a := newTestAnalyzer(false, false)
	got := a.Tokenize("Cats Running")
	assert.Equal(t, []string{"Cats", "Running"}, got)
}

func TestProcessReturnsSurfaceToLemmaMap(t *testing.T) {
	a := newTestAnalyzer(true, false)
	lemmas, surfaceToLemma := a.Process("The Cat runs")
	assert.Equal(t, []string{"cat", "runs"}, lemmas)
	require.Contains(t, surfaceToLemma, "Cat")
	assert.Equal(t, "cat", surfaceToLemma["Cat"])
}

func TestTokenizeWithPositionsKeepsSentenceTerminators(t *testing.T) {
	a := newTestAnalyzer(true, false)
	got := a.TokenizeWithPositions("The cat runs. It jumps!")
	assert.Equal(t, []string{"the", "cat", "runs", ".", "it", "jumps", "!"}, got)
}

func TestTokenizeWithPositionsDropsNonTerminatorPunctuation(t *testing.T) {
	a := newTestAnalyzer(true, false)
	got := a.TokenizeWithPositions("Wait, really?")
	assert.Equal(t, []string{"wait", "really", "?"}, got)
}

func TestSnowballLemmatizerPicksScriptByDominance(t *testing.T) {
	l := NewSnowballLemmatizer()
	assert.NotEmpty(t, l.Lemmatize("running"))
	assert.NotEmpty(t, l.Lemmatize("бегать"))
	assert.Equal(t, "123", l.Lemmatize("123"))
}
