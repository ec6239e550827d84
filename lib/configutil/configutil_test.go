package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	BaseUrl    string `json:"base_url"`
	MaxRetries int    `json:"max_retries"`
}

func TestReadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.json5")
	require.NoError(t, os.WriteFile(path, []byte(`{
		// comments are allowed
		base_url: "https://example.com/faq",
		max_retries: 3,
	}`), 0644))

	cfg, err := ReadConfig[testConfig](path)
	require.NoError(t, err)
	require.Equal(t, "https://example.com/faq", cfg.BaseUrl)
	require.Equal(t, 3, cfg.MaxRetries)
}

func TestReadConfigLocalOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.json5"),
		[]byte(`{base_url: "https://example.com/faq", max_retries: 3}`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.local.json5"),
		[]byte(`{max_retries: 7}`), 0644))

	cfg, err := ReadConfig[testConfig](filepath.Join(dir, "app.json5"))
	require.NoError(t, err)
	require.Equal(t, "https://example.com/faq", cfg.BaseUrl)
	require.Equal(t, 7, cfg.MaxRetries)
}

func TestReadConfigMissingFiles(t *testing.T) {
	cfg, err := ReadConfig[testConfig](filepath.Join(t.TempDir(), "app.json5"))
	require.NoError(t, err)
	require.Zero(t, cfg)
}

func TestReadConfigParseError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.json5")
	require.NoError(t, os.WriteFile(path, []byte(`{base_url: `), 0644))

	_, err := ReadConfig[testConfig](path)
	require.Error(t, err)
}
