// Package snippet extracts the short summary shown alongside a search
// hit: the first n codepoints of a document's raw body, newlines
// flattened to spaces.
package snippet

import (
	"context"
	"fmt"
	"strings"

	"github.com/DanielHalachev/WikiSearch/wikierrors"
)

const defaultSummaryLen = 200

// BodyFetcher is the narrow read capability SnippetService needs from
// the byte store.
type BodyFetcher interface {
	Get(ctx context.Context, docID uint64) ([]byte, bool, error)
}

// Service extracts static and (reserved) dynamic summaries from a
// document's stored body.
type Service struct {
	bodies BodyFetcher
}

func New(bodies BodyFetcher) *Service {
	return &Service{bodies: bodies}
}

// SummarizeStatic fetches docID's raw body, replaces newlines with
// spaces, and returns the first n codepoints. n<=0 defaults to 200.
func (s *Service) SummarizeStatic(ctx context.Context, docID uint64, n int) (string, error) {
	if n <= 0 {
		n = defaultSummaryLen
	}

	body, ok, err := s.bodies.Get(ctx, docID)
	if err != nil {
		return "", fmt.Errorf("%w: fetching body for doc %d: %v", wikierrors.ErrStore, docID, err)
	}
	if !ok {
		return "", nil
	}

	flattened := strings.ReplaceAll(string(body), "\n", " ")
	runes := []rune(flattened)
	if len(runes) > n {
		runes = runes[:n]
	}
	return string(runes), nil
}

// SummarizeDynamic is reserved for a future query-aware summary and
// returns empty until implemented.
func (s *Service) SummarizeDynamic(ctx context.Context, docID uint64, query string) (string, error) {
	return "", nil
}
