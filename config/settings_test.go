package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPricingConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadPricingConfig(filepath.Join(t.TempDir(), "missing.yaml"))

	require.NoError(t, err)
	assert.Equal(t, DefaultPricingConfig(), cfg)
}

func TestLoadPricingConfig_ReadsYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pricing.yaml")
	content := []byte("max_price_variation: 150\nmin_confidence: 0.45\ninclude_generic_parts: false\nsearch_pages: 3\ncache_ttl_minutes: 30\n")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cfg, err := LoadPricingConfig(path)

	require.NoError(t, err)
	assert.Equal(t, 150.0, cfg.MaxPriceVariation)
	assert.Equal(t, 0.45, cfg.MinConfidence)
	assert.False(t, cfg.IncludeGenericParts)
	assert.Equal(t, 3, cfg.SearchPages)
	assert.Equal(t, 30*time.Minute, cfg.CacheTTL())
}

func TestLoadPricingConfig_PartialYAMLKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pricing.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_price_variation: 80\n"), 0o644))

	cfg, err := LoadPricingConfig(path)

	require.NoError(t, err)
	assert.Equal(t, 80.0, cfg.MaxPriceVariation)
	assert.Equal(t, 0.3, cfg.MinConfidence)
	assert.True(t, cfg.IncludeGenericParts)
	assert.Equal(t, 2, cfg.SearchPages)
}

func TestLoadPricingConfig_RejectsBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pricing.yaml")
	require.NoError(t, os.WriteFile(path, []byte("min_confidence: 1.5\n"), 0o644))

	_, err := LoadPricingConfig(path)

	assert.Error(t, err)
}

func TestLoadPricingConfig_EnvOverridesPages(t *testing.T) {
	t.Setenv("SCRAPER_PAGES", "4")

	cfg, err := LoadPricingConfig(filepath.Join(t.TempDir(), "missing.yaml"))

	require.NoError(t, err)
	assert.Equal(t, 4, cfg.SearchPages)
}

func TestLoadSettings_Defaults(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "http://a.com, http://b.com ,")
	t.Setenv("LLM_PROVIDER", "Gemini")
	t.Setenv("LLM_TIMEOUT", "5s")

	s := LoadSettings()

	assert.Equal(t, []string{"http://a.com", "http://b.com"}, s.AllowedOrigins)
	assert.Equal(t, "gemini", s.LLMProvider)
	assert.Equal(t, 5*time.Second, s.LLMTimeout)
	assert.Equal(t, "racaforte/parts", s.StorageFolder)
}
