package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_FileValues(t *testing.T) {
	path := writeConfig(t, `
port: "9090"
db:
  path: "/tmp/m.db"
backend:
  url: "https://abc.supabase.co"
  key: "anon"
scan:
  mock_latency: "10ms"
`)
	v, err := loadConfig(path)
	require.NoError(t, err)
	cfg := newAppConfig(v)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "/tmp/m.db", cfg.DBPath)
	assert.True(t, cfg.Backend.Configured())
	assert.Equal(t, 10*time.Millisecond, cfg.Scan.MockLatency)
	assert.Equal(t, 2*time.Second, cfg.Scan.NavigateDelay)
	assert.Equal(t, 15*time.Second, cfg.Backend.Timeout)
}

func TestLoadConfig_EnvAliases(t *testing.T) {
	path := writeConfig(t, "port: \"8080\"\n")
	t.Setenv("VITE_SUPABASE_URL", "https://vite.supabase.co")
	t.Setenv("SUPABASE_ANON_KEY", "anon-from-env")
	t.Setenv("MONTEUROS_LOG_LEVEL", "debug")

	v, err := loadConfig(path)
	require.NoError(t, err)
	cfg := newAppConfig(v)

	assert.Equal(t, "https://vite.supabase.co", cfg.Backend.URL)
	assert.Equal(t, "anon-from-env", cfg.Backend.Key)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadConfig_PrefixedEnvWinsOverAlias(t *testing.T) {
	path := writeConfig(t, "")
	t.Setenv("MONTEUROS_BACKEND_URL", "https://primary.supabase.co")
	t.Setenv("SUPABASE_URL", "https://alias.supabase.co")

	v, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "https://primary.supabase.co", newAppConfig(v).Backend.URL)
}

func TestLoadConfig_PlaceholdersMeanMockMode(t *testing.T) {
	path := writeConfig(t, `
backend:
  url: "your-project-url"
  key: "your-anon-key"
`)
	v, err := loadConfig(path)
	require.NoError(t, err)
	assert.False(t, newAppConfig(v).Backend.Configured())
}

func TestLoadConfig_ExplicitMissingFileFails(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "nope.yml"))
	require.Error(t, err)
}

func TestCheckConfigCommand(t *testing.T) {
	configPath = writeConfig(t, "port: \"7070\"\n")
	t.Cleanup(func() { configPath = "" })

	var out bytes.Buffer
	checkConfigCmd.SetOut(&out)
	require.NoError(t, checkConfigCmd.RunE(checkConfigCmd, nil))

	got := out.String()
	assert.Contains(t, got, "port:    7070")
	assert.True(t, strings.Contains(got, "backend: mock"), got)
}
