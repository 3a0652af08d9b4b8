// Package query implements QueryOrchestrator: the composition root that
// turns a raw query string into an assembled SearchResponse by running
// it through spellcheck, one of the two search indices, and per-hit
// hydration from the relational store and snippet service.
package query

import (
	"context"
	"strings"

	"github.com/DanielHalachev/WikiSearch/schema"
)

// Index names the search index a request targets.
type Index string

const (
	IndexInverted Index = "inverted"
	IndexSemantic Index = "semantic"
)

// InvertedSearcher is the narrow InvertedIndex capability the
// orchestrator needs.
type InvertedSearcher interface {
	Search(ctx context.Context, query string, limit, offset int) ([]schema.ScoredDoc, error)
}

// SemanticSearcher is the narrow SemanticIndex capability the
// orchestrator needs.
type SemanticSearcher interface {
	Search(ctx context.Context, query string, limit, offset int, strategy schema.AggregationStrategy) []schema.ScoredDoc
}

// DocumentLookup is the narrow RelationalStore capability the
// orchestrator needs to hydrate a hit's title/url.
type DocumentLookup interface {
	GetDocument(ctx context.Context, docID uint64) (schema.Document, bool, error)
}

// Corrector is the narrow SpellChecker capability the orchestrator
// needs.
type Corrector interface {
	Correct(query string) string
}

// Summarizer is the narrow SnippetService capability the orchestrator
// needs.
type Summarizer interface {
	SummarizeStatic(ctx context.Context, docID uint64, n int) (string, error)
}

// Orchestrator composes the pieces named above into the single
// search(q, index, limit, offset, spellcheck) operation the HTTP
// surface calls.
type Orchestrator struct {
	inverted   InvertedSearcher
	semantic   SemanticSearcher
	documents  DocumentLookup
	corrector  Corrector
	summarizer Summarizer
	strategy   schema.AggregationStrategy
	snippetLen int
}

func New(inverted InvertedSearcher, semantic SemanticSearcher, documents DocumentLookup, corrector Corrector, summarizer Summarizer) *Orchestrator {
	return &Orchestrator{
		inverted:   inverted,
		semantic:   semantic,
		documents:  documents,
		corrector:  corrector,
		summarizer: summarizer,
		strategy:   schema.AggregateSum,
		snippetLen: 200,
	}
}

// Search runs the full query pipeline, honoring ctx cancellation
// between phases: spellcheck, index lookup, then per-hit hydration.
func (o *Orchestrator) Search(ctx context.Context, q string, index Index, limit, offset int, spellcheck bool) (schema.SearchResponse, error) {
	original := strings.ToLower(q)
	corrected := original

	if spellcheck && o.corrector != nil {
		corrected = o.corrector.Correct(original)
	}

	if err := ctx.Err(); err != nil {
		return schema.SearchResponse{}, err
	}

	hits, err := o.runIndex(ctx, corrected, index, limit, offset)
	if err != nil {
		return schema.SearchResponse{}, err
	}

	if err := ctx.Err(); err != nil {
		return schema.SearchResponse{}, err
	}

	results, err := o.hydrate(ctx, hits)
	if err != nil {
		return schema.SearchResponse{}, err
	}

	return schema.SearchResponse{
		Query:      corrected,
		Index:      string(index),
		Limit:      limit,
		Offset:     offset,
		Correction: corrected != original,
		Results:    results,
	}, nil
}

func (o *Orchestrator) runIndex(ctx context.Context, q string, index Index, limit, offset int) ([]schema.ScoredDoc, error) {
	if index == IndexSemantic {
		return o.semantic.Search(ctx, q, limit, offset, o.strategy), nil
	}
	return o.inverted.Search(ctx, q, limit, offset)
}

func (o *Orchestrator) hydrate(ctx context.Context, hits []schema.ScoredDoc) ([]schema.SearchResult, error) {
	results := make([]schema.SearchResult, 0, len(hits))
	for _, hit := range hits {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		doc, ok, err := o.documents.GetDocument(ctx, hit.DocID)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		summary, err := o.summarizer.SummarizeStatic(ctx, hit.DocID, o.snippetLen)
		if err != nil {
			return nil, err
		}

		results = append(results, schema.SearchResult{
			DocumentID: hit.DocID,
			Title:      doc.Title,
			URL:        doc.URL,
			Summary:    summary,
			Score:      hit.Score,
		})
	}
	return results, nil
}
