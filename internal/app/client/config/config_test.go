package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper(values map[string]any) *viper.Viper {
	v := viper.New()
	setDefaults(v)
	for k, val := range values {
		v.Set(k, val)
	}
	return v
}

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(newViper(nil), "/tmp/lt")
	require.NoError(t, err)

	assert.False(t, cfg.Store.Configured())
	assert.Equal(t, "ru", cfg.Language)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, "gemini-2.5-flash", cfg.LLM.Model)
	assert.Equal(t, 150*time.Millisecond, cfg.RealtimeDebounce)
	assert.Equal(t, filepath.Join("/tmp/lt", "state.db"), cfg.DataPath)
	assert.Equal(t, filepath.Join("/tmp/lt", "device.key"), cfg.KeyPath)
	assert.Equal(t, filepath.Join("/tmp/lt", "client.log"), cfg.LogFile)
}

func TestFromViper_LegacyNames(t *testing.T) {
	cfg, err := fromViper(newViper(map[string]any{
		"supabase_url":      "https://store.example.com/",
		"supabase_anon_key": "anon",
		"api_key":           "gemini-key",
	}), "/tmp/lt")
	require.NoError(t, err)

	assert.True(t, cfg.Store.Configured())
	assert.Equal(t, "https://store.example.com", cfg.Store.URL)
	assert.Equal(t, "anon", cfg.Store.APIKey)
	assert.Equal(t, "gemini-key", cfg.LLM.APIKey)
}

func TestFromViper_PrimaryNamesWin(t *testing.T) {
	cfg, err := fromViper(newViper(map[string]any{
		"store_url":     "http://localhost:8080",
		"supabase_url":  "https://legacy.example.com",
		"store_api_key": "primary",
		"llm_provider":  "Anthropic",
		"llm_model":     "claude-sonnet-4-5",
		"language":      "EN",
	}), "/tmp/lt")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.Store.URL)
	assert.Equal(t, "primary", cfg.Store.APIKey)
	assert.True(t, cfg.Store.Configured())
	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.Equal(t, "claude-sonnet-4-5", cfg.LLM.Model)
	assert.Equal(t, "en", cfg.Language)
}

func TestFromViper_Invalid(t *testing.T) {
	_, err := fromViper(newViper(map[string]any{"language": "de"}), "/tmp/lt")
	assert.ErrorContains(t, err, "language")

	_, err = fromViper(newViper(map[string]any{"llm_provider": "openai"}), "/tmp/lt")
	assert.ErrorContains(t, err, "llm_provider")
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"),
		[]byte("store_url: http://file.example.com\nstore_api_key: from-file\nlanguage: en\n"), 0o600))
	t.Setenv("CONFIG_DIR", dir)
	t.Setenv("STORE_URL", "")
	t.Setenv("STORE_API_KEY", "")
	t.Setenv("LANGUAGE", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.ConfigDir)
	assert.Equal(t, "http://file.example.com", cfg.Store.URL)
	assert.Equal(t, "from-file", cfg.Store.APIKey)
}
