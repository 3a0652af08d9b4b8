package invertedindex

import (
	"context"
	"testing"

	"github.com/DanielHalachev/WikiSearch/analyzer"
	"github.com/DanielHalachev/WikiSearch/schema"
	"github.com/DanielHalachev/WikiSearch/store/relational"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIndex() *InvertedIndex {
	a := analyzer.NewDefaultAnalyzer(analyzer.Config{Lowercase: true})
	store := relational.NewInMemoryRelationalStore()
	return New(a, store)
}

func TestSearchEmptyQueryReturnsEmpty(t *testing.T) {
	idx := newTestIndex()
	ctx := context.Background()
	require.NoError(t, idx.Store(ctx, schema.Document{ID: 1, Title: "Cats", URL: "/cats"}, "Cats are small animals."))

	results, err := idx.Search(ctx, "", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchNoMatchesReturnsEmpty(t *testing.T) {
	idx := newTestIndex()
	ctx := context.Background()
	require.NoError(t, idx.Store(ctx, schema.Document{ID: 1, Title: "Cats", URL: "/cats"}, "Cats are small animals."))

	results, err := idx.Search(ctx, "spacecraft", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchRanksTitleMatchHighly(t *testing.T) {
	idx := newTestIndex()
	ctx := context.Background()

	require.NoError(t, idx.Store(ctx, schema.Document{ID: 1, Title: "Dog", URL: "/dog"},
		"Dogs are loyal animals that live with humans."))
	require.NoError(t, idx.Store(ctx, schema.Document{ID: 2, Title: "Weather", URL: "/weather"},
		"Weather forecasts sometimes mention dogs staying indoors during storms."))
	// A third document without the query term keeps the title idf
	// positive: with N=2 and df=1, ln((N-df+0.5)/(df+0.5)) is 0.
	require.NoError(t, idx.Store(ctx, schema.Document{ID: 3, Title: "Fish", URL: "/fish"},
		"Fish swim in water."))

	results, err := idx.Search(ctx, "dog", 10, 0)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, uint64(1), results[0].DocID)
}

func TestSearchPaginatesWithOffsetAndLimit(t *testing.T) {
	idx := newTestIndex()
	ctx := context.Background()

	for i := uint64(1); i <= 5; i++ {
		require.NoError(t, idx.Store(ctx, schema.Document{ID: i, Title: "Bird", URL: "/bird"},
			"Birds fly in the sky above the trees."))
	}

	all, err := idx.Search(ctx, "bird", 10, 0)
	require.NoError(t, err)
	require.Len(t, all, 5)

	page, err := idx.Search(ctx, "bird", 2, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, all[2].DocID, page[0].DocID)
	assert.Equal(t, all[3].DocID, page[1].DocID)
}

func TestSearchOffsetBeyondResultsReturnsEmpty(t *testing.T) {
	idx := newTestIndex()
	ctx := context.Background()
	require.NoError(t, idx.Store(ctx, schema.Document{ID: 1, Title: "Fish", URL: "/fish"}, "Fish swim in water."))

	results, err := idx.Search(ctx, "fish", 10, 50)
	require.NoError(t, err)
	assert.Empty(t, results)
}
