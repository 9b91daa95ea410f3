package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "gemini-2.5-flash", cfg.Gemini.Model)
	assert.Equal(t, 2, cfg.Gemini.MaxRetries)

	d, err := cfg.GeminiTimeout()
	require.NoError(t, err)
	assert.Equal(t, 2*time.Minute, d)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.5-flash", cfg.Gemini.Model)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "phishscope.yaml")
	data := []byte("gemini:\n  api_key: file-key\n  model: gemini-2.5-pro\n  timeout: 30s\nlogging:\n  verbose: true\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "file-key", cfg.Gemini.APIKey)
	assert.Equal(t, "gemini-2.5-pro", cfg.Gemini.Model)
	assert.True(t, cfg.Logging.Verbose)

	d, err := cfg.GeminiTimeout()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, d)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "phishscope.yaml")
	require.NoError(t, os.WriteFile(path, []byte("gemini: [not: a: mapping"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "phishscope.yaml")
	require.NoError(t, os.WriteFile(path, []byte("gemini:\n  api_key: file-key\n  model: from-file\n"), 0o644))

	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("PHISHSCOPE_MODEL", "from-env")
	t.Setenv("PHISHSCOPE_TIMEOUT", "45s")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.Gemini.APIKey)
	assert.Equal(t, "from-env", cfg.Gemini.Model)

	d, err := cfg.GeminiTimeout()
	require.NoError(t, err)
	assert.Equal(t, 45*time.Second, d)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	err := cfg.Validate()
	require.Error(t, err, "a config without an API key is unusable")
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")

	cfg.Gemini.APIKey = "key"
	require.NoError(t, cfg.Validate())

	cfg.Gemini.Timeout = "soon"
	require.Error(t, cfg.Validate())
}
