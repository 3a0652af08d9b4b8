// Package config loads WikiSearch's enumerated configuration through
// spf13/viper: defaults, a TOML file, and environment overrides, in
// the same precedence a krait-based CLI scaffold built on top of viper
// (SetDefault, BindEnv/AutomaticEnv, ReadInConfig), used here directly
// instead of through that wrapper.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config keys, namespaced by concern: server, byte store, ANN index,
// spell dictionary, autocomplete, BM25, embedding, relational store.
const (
	KeyServerAddr = "server.addr"

	KeyByteStorePath = "bytestore.path"

	KeyAnnPath          = "ann.path"
	KeyAnnDimension     = "ann.dimension"
	KeyAnnSaveThreshold = "ann.save_threshold"

	KeySpellAffPath        = "spell.aff_path"
	KeySpellDicPath        = "spell.dic_path"
	KeySpellCustomDictPath = "spell.custom_dict_path"

	KeyAutocompleteCompletionTriePath = "autocomplete.completion_trie_path"
	KeyAutocompleteNextWordTriePath   = "autocomplete.next_word_trie_path"
	KeyAutocompleteNumSuggestions     = "autocomplete.num_suggestions"

	KeyBM25K1 = "bm25.k1"
	KeyBM25B  = "bm25.b"

	KeyEmbeddingMaxSegmentLen = "embedding.max_segment_len"
	KeyEmbeddingProvider      = "embedding.provider"

	KeyRelationalPoolSize    = "relational.pool_size"
	KeyRelationalPersistPath = "relational.persist_path"
)

// Config is the fully-resolved, typed view of the enumerated settings;
// server and ingest entrypoints read from this instead of calling
// viper.Get* scattered through the codebase.
type Config struct {
	ServerAddr string

	ByteStorePath string

	AnnPath          string
	AnnDimension     int
	AnnSaveThreshold int

	SpellAffPath        string
	SpellDicPath        string
	SpellCustomDictPath string

	AutocompleteCompletionTriePath string
	AutocompleteNextWordTriePath   string
	AutocompleteNumSuggestions     int

	BM25K1 float64
	BM25B  float64

	EmbeddingMaxSegmentLen int
	EmbeddingProvider      string

	RelationalPoolSize    int
	RelationalPersistPath string
}

// Load reads configFile (if non-empty) over a set of defaults, then
// applies environment overrides via viper's AutomaticEnv, mirroring a
// config.toml-plus-.env split over a single typed struct.
func Load(configFile string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("WIKISEARCH")
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file %s: %w", configFile, err)
		}
	}

	return Config{
		ServerAddr: v.GetString(KeyServerAddr),

		ByteStorePath: v.GetString(KeyByteStorePath),

		AnnPath:          v.GetString(KeyAnnPath),
		AnnDimension:     v.GetInt(KeyAnnDimension),
		AnnSaveThreshold: v.GetInt(KeyAnnSaveThreshold),

		SpellAffPath:        v.GetString(KeySpellAffPath),
		SpellDicPath:        v.GetString(KeySpellDicPath),
		SpellCustomDictPath: v.GetString(KeySpellCustomDictPath),

		AutocompleteCompletionTriePath: v.GetString(KeyAutocompleteCompletionTriePath),
		AutocompleteNextWordTriePath:   v.GetString(KeyAutocompleteNextWordTriePath),
		AutocompleteNumSuggestions:     v.GetInt(KeyAutocompleteNumSuggestions),

		BM25K1: v.GetFloat64(KeyBM25K1),
		BM25B:  v.GetFloat64(KeyBM25B),

		EmbeddingMaxSegmentLen: v.GetInt(KeyEmbeddingMaxSegmentLen),
		EmbeddingProvider:      v.GetString(KeyEmbeddingProvider),

		RelationalPoolSize:    v.GetInt(KeyRelationalPoolSize),
		RelationalPersistPath: v.GetString(KeyRelationalPersistPath),
	}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyServerAddr, ":8080")

	v.SetDefault(KeyByteStorePath, "./data/bytestore")

	v.SetDefault(KeyAnnPath, "./data/ann/index.gob")
	v.SetDefault(KeyAnnDimension, 768)
	v.SetDefault(KeyAnnSaveThreshold, 10)

	v.SetDefault(KeySpellAffPath, "")
	v.SetDefault(KeySpellDicPath, "")
	v.SetDefault(KeySpellCustomDictPath, "")

	v.SetDefault(KeyAutocompleteCompletionTriePath, "./data/autocomplete/completion.trie")
	v.SetDefault(KeyAutocompleteNextWordTriePath, "./data/autocomplete/next_word.trie")
	v.SetDefault(KeyAutocompleteNumSuggestions, 10)

	v.SetDefault(KeyBM25K1, 0.5)
	v.SetDefault(KeyBM25B, 0.75)

	v.SetDefault(KeyEmbeddingMaxSegmentLen, 512)
	v.SetDefault(KeyEmbeddingProvider, "mock")

	v.SetDefault(KeyRelationalPoolSize, 10)
	v.SetDefault(KeyRelationalPersistPath, "")
}
