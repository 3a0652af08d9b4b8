package analyzer

import (
	"github.com/kljensen/snowball/english"
	"github.com/kljensen/snowball/russian"
)

// Lemmatizer reduces a single lowercased token to its lemma. Morphology
// is language-specific, so it is pluggable rather than fixed to one
// stemmer.
type Lemmatizer interface {
	Lemmatize(token string) string
}

// SnowballLemmatizer picks an English or Russian snowball stemmer per
// token based on which script dominates its runes, the way
// covrom-bm25s's stemWord (bm25s.go) does for its own corpus-level
// BM25 index.
type SnowballLemmatizer struct{}

// NewSnowballLemmatizer returns the default dual-script lemmatizer.
func NewSnowballLemmatizer() *SnowballLemmatizer {
	return &SnowballLemmatizer{}
}

func (SnowballLemmatizer) Lemmatize(token string) string {
	var cyrCount, latCount, digitCount int
	for _, r := range token {
		switch {
		case r >= 'а' && r <= 'я' || r >= 'А' && r <= 'Я':
			cyrCount++
		case r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z':
			latCount++
		case r >= '0' && r <= '9':
			digitCount++
		}
	}

	switch {
	case digitCount > 0:
		return token
	case cyrCount > latCount:
		return russian.Stem(token, false)
	case latCount > cyrCount:
		return english.Stem(token, false)
	}

	if stemmed := russian.Stem(token, false); stemmed != "" && stemmed != token {
		return stemmed
	}
	if stemmed := english.Stem(token, false); stemmed != "" && stemmed != token {
		return stemmed
	}
	return token
}

// IdentityLemmatizer returns every token unchanged; useful for tests
// and for languages the default stemmer does not cover.
type IdentityLemmatizer struct{}

func (IdentityLemmatizer) Lemmatize(token string) string { return token }
