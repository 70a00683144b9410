package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cli.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestParseJson_Overlay(t *testing.T) {
	path := writeFile(t, `{"server_url":"https://wo.example","request_timeout":"2s"}`)

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, []string{"-c", path})

	assert.Equal(t, "https://wo.example", cfg.ServerURL)
	assert.Equal(t, 2*time.Second, cfg.RequestTimeout)
}

func TestParseJson_PartialKeepsDefaults(t *testing.T) {
	path := writeFile(t, `{"server_url":"https://wo.example"}`)

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, []string{"-config", path})

	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
}

func TestParseJson_Errors(t *testing.T) {
	bad := writeFile(t, `{ nope`)
	require.Panics(t, func() { parseJson(&Config{}, []string{"-c", bad}) })
	require.Panics(t, func() { parseJson(&Config{}, []string{"-c", filepath.Join(t.TempDir(), "none.json")}) })
}

func TestLoad_FlagsOverrideJSON(t *testing.T) {
	path := writeFile(t, `{"server_url":"https://from-json"}`)

	cfg := load([]string{"-c", path, "-a", "https://from-flag"})
	assert.Equal(t, "https://from-flag", cfg.ServerURL)
}
