package bootstrap

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/DanielHalachev/WikiSearch/config"
	"github.com/DanielHalachev/WikiSearch/query"
	"github.com/DanielHalachev/WikiSearch/schema"
	"github.com/stretchr/testify/require"
)

func TestBuildWiresDefaultRegistry(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.ByteStorePath = ""
	cfg.AnnPath = ""
	cfg.AutocompleteCompletionTriePath = ""
	cfg.AutocompleteNextWordTriePath = ""
	cfg.EmbeddingProvider = "mock"

	reg, err := Build(cfg, nil)
	require.NoError(t, err)
	defer reg.Close()

	ctx := context.Background()
	doc := schema.Document{ID: 1, Title: "Cats", URL: "/cats"}
	require.NoError(t, reg.Inverted.Store(ctx, doc, "Cats are small mammals."))
	require.NoError(t, reg.Semantic.Store(ctx, 1, "Cats are small mammals."))

	resp, err := reg.Orchestrator.Search(ctx, "cats", query.IndexInverted, 10, 0, false)
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	require.Equal(t, "Cats", resp.Results[0].Title)
}

func TestBuildRejectsUnknownEmbeddingProvider(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.EmbeddingProvider = "not-a-real-provider"

	_, err = Build(cfg, nil)
	require.Error(t, err)
}

func TestBuildPersistsRelationalStoreAcrossRestarts(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.ByteStorePath = ""
	cfg.AnnPath = ""
	cfg.AutocompleteCompletionTriePath = ""
	cfg.AutocompleteNextWordTriePath = ""
	cfg.EmbeddingProvider = "mock"
	cfg.RelationalPersistPath = filepath.Join(t.TempDir(), "relational.json")

	reg, err := Build(cfg, nil)
	require.NoError(t, err)

	ctx := context.Background()
	doc := schema.Document{ID: 1, Title: "Cats", URL: "/cats"}
	require.NoError(t, reg.Inverted.Store(ctx, doc, "Cats are small mammals."))
	require.NoError(t, reg.Close())

	reg2, err := Build(cfg, nil)
	require.NoError(t, err)
	defer reg2.Close()

	got, ok, err := reg2.Documents.GetDocument(ctx, 1)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "Cats", got.Title)
}
