package query

import (
	"context"
	"testing"

	"github.com/DanielHalachev/WikiSearch/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInverted struct {
	hits []schema.ScoredDoc
}

func (f *fakeInverted) Search(ctx context.Context, query string, limit, offset int) ([]schema.ScoredDoc, error) {
	return f.hits, nil
}

type fakeSemantic struct {
	hits []schema.ScoredDoc
}

func (f *fakeSemantic) Search(ctx context.Context, query string, limit, offset int, strategy schema.AggregationStrategy) []schema.ScoredDoc {
	return f.hits
}

type fakeDocuments struct {
	docs map[uint64]schema.Document
}

func (f *fakeDocuments) GetDocument(ctx context.Context, docID uint64) (schema.Document, bool, error) {
	doc, ok := f.docs[docID]
	return doc, ok, nil
}

type fakeCorrector struct {
	out string
}

func (f *fakeCorrector) Correct(query string) string {
	if f.out != "" {
		return f.out
	}
	return query
}

type fakeSummarizer struct{}

func (fakeSummarizer) SummarizeStatic(ctx context.Context, docID uint64, n int) (string, error) {
	return "summary", nil
}

func TestSearchAssemblesResponseFromInvertedIndex(t *testing.T) {
	o := New(
		&fakeInverted{hits: []schema.ScoredDoc{{DocID: 1, Score: 2.5}}},
		&fakeSemantic{},
		&fakeDocuments{docs: map[uint64]schema.Document{1: {ID: 1, Title: "Cats", URL: "/cats"}}},
		&fakeCorrector{},
		fakeSummarizer{},
	)

	resp, err := o.Search(context.Background(), "CATS", IndexInverted, 10, 0, false)
	require.NoError(t, err)
	assert.Equal(t, "cats", resp.Query)
	assert.False(t, resp.Correction)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "Cats", resp.Results[0].Title)
	assert.Equal(t, "summary", resp.Results[0].Summary)
}

func TestSearchUsesSemanticIndexWhenRequested(t *testing.T) {
	o := New(
		&fakeInverted{},
		&fakeSemantic{hits: []schema.ScoredDoc{{DocID: 2, Score: 1.0}}},
		&fakeDocuments{docs: map[uint64]schema.Document{2: {ID: 2, Title: "Dogs", URL: "/dogs"}}},
		&fakeCorrector{},
		fakeSummarizer{},
	)

	resp, err := o.Search(context.Background(), "dogs", IndexSemantic, 10, 0, false)
	require.NoError(t, err)
	assert.Equal(t, "semantic", resp.Index)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, uint64(2), resp.Results[0].DocumentID)
}

func TestSearchReportsCorrectionWhenSpellcheckChangesQuery(t *testing.T) {
	o := New(
		&fakeInverted{},
		&fakeSemantic{},
		&fakeDocuments{docs: map[uint64]schema.Document{}},
		&fakeCorrector{out: "cats"},
		fakeSummarizer{},
	)

	resp, err := o.Search(context.Background(), "cta", IndexInverted, 10, 0, true)
	require.NoError(t, err)
	assert.True(t, resp.Correction)
	assert.Equal(t, "cats", resp.Query)
}

func TestSearchSkipsMissingDocuments(t *testing.T) {
	o := New(
		&fakeInverted{hits: []schema.ScoredDoc{{DocID: 99, Score: 1.0}}},
		&fakeSemantic{},
		&fakeDocuments{docs: map[uint64]schema.Document{}},
		&fakeCorrector{},
		fakeSummarizer{},
	)

	resp, err := o.Search(context.Background(), "ghost", IndexInverted, 10, 0, false)
	require.NoError(t, err)
	assert.Empty(t, resp.Results)
}

func TestSearchHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	o := New(&fakeInverted{}, &fakeSemantic{}, &fakeDocuments{}, &fakeCorrector{}, fakeSummarizer{})
	_, err := o.Search(ctx, "q", IndexInverted, 10, 0, false)
	assert.Error(t, err)
}
