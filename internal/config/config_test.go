package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderintake/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, "content/product_catalog.csv", cfg.Catalog.Path)
	assert.Equal(t, 10000, cfg.Catalog.DefaultMaxQuantity)
	assert.InDelta(t, 0.60, cfg.Extract.SimilarityFloor, 1e-9)
	assert.InDelta(t, 0.95, cfg.Scoring.ExactSKU, 1e-9)
	assert.InDelta(t, 0.70, cfg.Scoring.FieldThreshold, 1e-9)
	assert.InDelta(t, 0.90, cfg.Scoring.FieldPenalty, 1e-9)
	assert.InDelta(t, 0.30, cfg.Validation.LowConfidenceFloor, 1e-9)
	assert.NotEmpty(t, cfg.CORS.AllowedOrigins)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("ORDERINTAKE_SERVER_PORT", ":9999")
	t.Setenv("ORDERINTAKE_CATALOG_PATH", "/data/catalog.csv")
	t.Setenv("ORDERINTAKE_SCORING_EXACT_SKU", "0.80")
	t.Setenv("ORDERINTAKE_CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.Server.Port)
	assert.Equal(t, "/data/catalog.csv", cfg.Catalog.Path)
	assert.InDelta(t, 0.80, cfg.Scoring.ExactSKU, 1e-9)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}
