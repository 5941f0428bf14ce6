package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"EDUTALK_DB_DSN", "EDUTALK_LATENCY", "EDUTALK_LOG_LEVEL", "EDUTALK_LOG_FORMAT"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "edutalk.db", c.DatabaseDSN)
	assert.Equal(t, time.Second, c.SimulatedLatency)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, "text", c.LogFormat)
}

func TestLoadConfig_NoSources(t *testing.T) {
	clearEnv(t)

	cfg := LoadConfig(nil)

	require.NotNil(t, cfg)
	want := &Config{DatabaseDSN: "edutalk.db", SimulatedLatency: time.Second, LogLevel: "info", LogFormat: "text"}
	assert.Empty(t, cmp.Diff(want, cfg))
}

func TestLoadConfig_YAMLFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "edutalk.yaml", "database_dsn: data/x.db\nsimulated_latency: 250ms\nlog_format: json\n")

	cfg := LoadConfig([]string{"-c", path})

	assert.Equal(t, "data/x.db", cfg.DatabaseDSN)
	assert.Equal(t, 250*time.Millisecond, cfg.SimulatedLatency)
	assert.Equal(t, "info", cfg.LogLevel, "missing keys keep defaults")
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadConfig_JSONFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "edutalk.json", `{"database_dsn": "j.db", "log_level": "debug"}`)

	cfg := LoadConfig([]string{"-config", path})

	assert.Equal(t, "j.db", cfg.DatabaseDSN)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, time.Second, cfg.SimulatedLatency)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "edutalk.yaml", "database_dsn: file.db\n")
	t.Setenv("EDUTALK_DB_DSN", "env.db")
	t.Setenv("EDUTALK_LATENCY", "10ms")

	cfg := LoadConfig([]string{"-c", path})

	assert.Equal(t, "env.db", cfg.DatabaseDSN)
	assert.Equal(t, 10*time.Millisecond, cfg.SimulatedLatency)
}

func TestLoadConfig_FlagsOverrideEverything(t *testing.T) {
	clearEnv(t)
	t.Setenv("EDUTALK_DB_DSN", "env.db")

	cfg := LoadConfig([]string{"-d", "flag.db", "-l", "0", "-v", "warn", "-f", "json", "-unrelated", "x"})

	want := &Config{DatabaseDSN: "flag.db", SimulatedLatency: 0, LogLevel: "warn", LogFormat: "json"}
	assert.Empty(t, cmp.Diff(want, cfg))
}

func TestLoadConfig_PanicsOnMalformedInput(t *testing.T) {
	clearEnv(t)

	t.Run("bad latency flag", func(t *testing.T) {
		require.Panics(t, func() { LoadConfig([]string{"-l", "abc"}) })
	})

	t.Run("bad latency in env", func(t *testing.T) {
		t.Setenv("EDUTALK_LATENCY", "soon")
		require.Panics(t, func() { LoadConfig(nil) })
	})

	t.Run("missing file", func(t *testing.T) {
		require.Panics(t, func() { LoadConfig([]string{"-c", filepath.Join(t.TempDir(), "nope.yaml")}) })
	})

	t.Run("invalid JSON", func(t *testing.T) {
		path := writeFile(t, "bad.json", `{ this is not json`)
		require.Panics(t, func() { LoadConfig([]string{"-c", path}) })
	})
}
