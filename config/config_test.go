package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DevSars24/ai-mentor/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8000", cfg.Addr)
	assert.Equal(t, "mock", cfg.Embedder)
	assert.Equal(t, 384, cfg.EmbedDims)
	assert.Equal(t, "data/memory.jsonl", cfg.HistoryPath)
	assert.Equal(t, 3, cfg.TopK)
	assert.Equal(t, 5, cfg.MaxHistory)
	assert.Equal(t, 500, cfg.SampleWindow)
	assert.Equal(t, 100, cfg.SampleSize)
	assert.Equal(t, 0.2, cfg.Threshold)
	assert.Equal(t, 1000, cfg.MaxRecords)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("MENTOR_ADDR", ":9999")
	t.Setenv("MENTOR_PROVIDER", "anthropic")
	t.Setenv("MENTOR_TOP_K", "7")
	t.Setenv("MENTOR_THRESHOLD", "0.35")
	t.Setenv("MENTOR_SAMPLE_SEED", "42")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, "anthropic", cfg.Provider)
	assert.Equal(t, 7, cfg.TopK)
	assert.Equal(t, 0.35, cfg.Threshold)
	assert.Equal(t, int64(42), cfg.SampleSeed)
}
