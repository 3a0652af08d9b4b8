// Package bootstrap constructs the immutable service registry every
// entrypoint shares: one analyzer, one relational store, one byte
// store, one inverted index, one embedding provider, one semantic
// index, one spellchecker, one autocompleter, one snippet service, and
// the query orchestrator that composes them. Built once at startup and
// passed by shared borrow to every handler; no globals.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DanielHalachev/WikiSearch/analyzer"
	"github.com/DanielHalachev/WikiSearch/autocomplete"
	"github.com/DanielHalachev/WikiSearch/config"
	"github.com/DanielHalachev/WikiSearch/embedding"
	"github.com/DanielHalachev/WikiSearch/embedding/bedrock"
	"github.com/DanielHalachev/WikiSearch/invertedindex"
	"github.com/DanielHalachev/WikiSearch/query"
	"github.com/DanielHalachev/WikiSearch/schema"
	"github.com/DanielHalachev/WikiSearch/semanticindex"
	"github.com/DanielHalachev/WikiSearch/snippet"
	"github.com/DanielHalachev/WikiSearch/spellcheck"
	"github.com/DanielHalachev/WikiSearch/store/bytestore"
	"github.com/DanielHalachev/WikiSearch/store/relational"
	"github.com/DanielHalachev/WikiSearch/wikierrors"
)

// Registry is the fully-wired set of components a running process
// needs: both cmd/wikisearch-server and cmd/wikisearch-ingest build one
// of these, differing only in which pieces they exercise afterward.
type Registry struct {
	Config config.Config
	Logger *slog.Logger

	Analyzer  analyzer.Analyzer
	Documents relational.RelationalStore
	Bodies    bytestore.ByteStore

	Inverted *invertedindex.InvertedIndex
	Semantic *semanticindex.SemanticIndex

	SpellChecker  spellcheck.SpellChecker
	Autocompleter *autocomplete.Autocompleter
	Snippets      *snippet.Service

	Orchestrator *query.Orchestrator

	closers []func() error
}

// Close releases every resource opened during Build, in reverse
// acquisition order: the semantic index is flushed first, then the
// byte store is closed, and the relational store is persisted last.
func (r *Registry) Close() error {
	var first error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Build wires every component from cfg. Fatal startup conditions
// (an unopenable byte store, an unknown embedding provider, a
// dictionary/trie file that was named but can't be read) are returned
// as errors; callers funnel them through a single mustLoad-style
// exit path instead of panicking here.
func Build(cfg config.Config, logger *slog.Logger) (*Registry, error) {
	if logger == nil {
		logger = slog.Default()
	}
	reg := &Registry{Config: cfg, Logger: logger}

	reg.Analyzer = analyzer.NewDefaultAnalyzer(analyzer.Config{Lowercase: true})

	documents, err := buildRelationalStore(cfg)
	if err != nil {
		return nil, err
	}
	reg.Documents = documents
	reg.Inverted = invertedindex.New(reg.Analyzer, reg.Documents)
	if cfg.RelationalPersistPath != "" {
		path := cfg.RelationalPersistPath
		reg.closers = append(reg.closers, func() error { return documents.Persist(context.Background(), path) })
	}

	bodies, err := buildByteStore(cfg)
	if err != nil {
		return nil, err
	}
	reg.Bodies = bodies
	if closer, ok := bodies.(interface{ Close() error }); ok {
		reg.closers = append(reg.closers, closer.Close)
	}

	provider, err := buildEmbeddingProvider(cfg)
	if err != nil {
		return nil, err
	}

	semanticIdx, err := semanticindex.New(provider, "wikisearch", cfg.AnnPath,
		semanticindex.WithMaxSegmentLen(cfg.EmbeddingMaxSegmentLen),
		semanticindex.WithSaveThreshold(cfg.AnnSaveThreshold),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: building semantic index: %v", wikierrors.ErrResource, err)
	}
	reg.Semantic = semanticIdx
	reg.closers = append(reg.closers, semanticIdx.Close)

	spellChecker, err := buildSpellChecker(cfg)
	if err != nil {
		return nil, err
	}
	reg.SpellChecker = spellChecker

	completer, err := buildAutocompleter(cfg)
	if err != nil {
		return nil, err
	}
	reg.Autocompleter = completer

	reg.Snippets = snippet.New(reg.Bodies)
	reg.Orchestrator = query.New(reg.Inverted, reg.Semantic, reg.Documents, reg.SpellChecker, reg.Snippets)

	return reg, nil
}

// buildRelationalStore reloads the term/lemma/posting/tf tables from
// cfg.RelationalPersistPath when set, so a restart picks up where the
// previous run's Close left off; Registry.Close persists back to the
// same path. An empty path keeps the tables in memory only, which is
// fine for tests and for a server process that rebuilds its indices
// from a byte store or dump on every start.
func buildRelationalStore(cfg config.Config) (*relational.InMemoryRelationalStore, error) {
	documents, err := relational.OpenInMemoryRelationalStore(cfg.RelationalPersistPath)
	if err != nil {
		return nil, fmt.Errorf("%w: loading relational store at %s: %v", wikierrors.ErrResource, cfg.RelationalPersistPath, err)
	}
	return documents, nil
}

func buildByteStore(cfg config.Config) (bytestore.ByteStore, error) {
	if cfg.ByteStorePath == "" {
		return bytestore.NewInMemoryByteStore(), nil
	}
	store, err := bytestore.OpenBadgerByteStore(cfg.ByteStorePath)
	if err != nil {
		return nil, fmt.Errorf("%w: opening byte store at %s: %v", wikierrors.ErrResource, cfg.ByteStorePath, err)
	}
	return store, nil
}

// buildEmbeddingProvider selects a Provider by cfg.EmbeddingProvider:
// "openai", "bedrock", or the "mock" default used for local runs and
// tests that never call out to a real embedding API.
func buildEmbeddingProvider(cfg config.Config) (embedding.Provider, error) {
	switch cfg.EmbeddingProvider {
	case "openai":
		return embedding.NewOpenAIProvider("", ""), nil
	case "bedrock":
		return bedrock.NewProvider(), nil
	case "mock", "":
		return embedding.NewMockProvider(mockVector(cfg.AnnDimension)), nil
	default:
		return nil, fmt.Errorf("%w: unknown embedding provider %q", wikierrors.ErrInput, cfg.EmbeddingProvider)
	}
}

func mockVector(dimension int) []float64 {
	if dimension <= 0 {
		dimension = 1
	}
	vec := make([]float64, dimension)
	vec[0] = 1
	return vec
}

// buildSpellChecker loads cfg.SpellCustomDictPath when set; an empty
// path serves an empty dictionary rather than failing, since spell
// correction degrades gracefully to "no known tokens" without one.
func buildSpellChecker(cfg config.Config) (spellcheck.SpellChecker, error) {
	var entries []schema.DictionaryEntry
	if cfg.SpellCustomDictPath != "" {
		loaded, err := spellcheck.LoadDictionaryFile(cfg.SpellCustomDictPath)
		if err != nil {
			return nil, err
		}
		entries = loaded
	}
	return spellcheck.NewDictionarySpellChecker(entries), nil
}

// buildAutocompleter loads both tries when their paths are set. As with
// the spellchecker, an unset path serves an empty trie, while a
// named-but-missing trie file is fatal: the caller configured
// autocomplete and the files aren't there.
func buildAutocompleter(cfg config.Config) (*autocomplete.Autocompleter, error) {
	completions := autocomplete.NewCompletionTrie()
	if cfg.AutocompleteCompletionTriePath != "" {
		loaded, err := autocomplete.LoadCompletionTrieFile(cfg.AutocompleteCompletionTriePath)
		if err != nil {
			return nil, err
		}
		completions = loaded
	}

	nextWords := autocomplete.NewNextWordTrie()
	if cfg.AutocompleteNextWordTriePath != "" {
		loaded, err := autocomplete.LoadNextWordTrieFile(cfg.AutocompleteNextWordTriePath)
		if err != nil {
			return nil, err
		}
		nextWords = loaded
	}

	k := cfg.AutocompleteNumSuggestions
	if k <= 0 {
		k = 10
	}
	return autocomplete.New(completions, nextWords, k), nil
}
