package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppliesDefaultsWithoutConfigFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.ServerAddr)
	assert.Equal(t, 768, cfg.AnnDimension)
	assert.Equal(t, 0.5, cfg.BM25K1)
	assert.Equal(t, 0.75, cfg.BM25B)
	assert.Equal(t, 512, cfg.EmbeddingMaxSegmentLen)
}

func TestLoadOverridesFromTOMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[server]
addr = ":9090"

[bm25]
k1 = 1.2
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.ServerAddr)
	assert.Equal(t, 1.2, cfg.BM25K1)
	assert.Equal(t, 0.75, cfg.BM25B)
}

func TestLoadReturnsErrorForMissingConfigFile(t *testing.T) {
	_, err := Load("/nonexistent/config.toml")
	assert.Error(t, err)
}
