package analyzer

// StopwordSet reports whether a lowercased token should be dropped
// during tokenization.
type StopwordSet interface {
	IsStopword(token string) bool
}

// defaultEnglishStopwords is a small, commonly-used English stopword
// list; callers needing another language provide their own StopwordSet.
var defaultEnglishStopwords = []string{
	"a", "an", "and", "are", "as", "at", "be", "but", "by",
	"for", "if", "in", "into", "is", "it", "no", "not", "of",
	"on", "or", "such", "that", "the", "their", "then", "there",
	"these", "they", "this", "to", "was", "will", "with",
}

// MapStopwordSet is a StopwordSet backed by a fixed set of tokens.
type MapStopwordSet struct {
	words map[string]struct{}
}

// NewMapStopwordSet builds a MapStopwordSet from the given words.
func NewMapStopwordSet(words []string) *MapStopwordSet {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return &MapStopwordSet{words: m}
}

// DefaultStopwordSet returns the built-in English stopword set.
func DefaultStopwordSet() *MapStopwordSet {
	return NewMapStopwordSet(defaultEnglishStopwords)
}

func (s *MapStopwordSet) IsStopword(token string) bool {
	_, ok := s.words[token]
	return ok
}
