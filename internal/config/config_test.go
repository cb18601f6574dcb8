package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonvc/ledgerdash/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000/api", cfg.APIURL)
	assert.Empty(t, cfg.APIToken)
	assert.Equal(t, "ledgerdash.db", cfg.DBPath)
	assert.Equal(t, ":5000", cfg.ListenAddr)
	assert.Equal(t, 0.9, cfg.PeriodFactor)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("LEDGERDASH_API_URL", "https://ledger.example.com/api/")
	t.Setenv("LEDGERDASH_API_TOKEN", "tok")
	t.Setenv("LEDGERDASH_PERIOD_FACTOR", "0.75")
	t.Setenv("LEDGERDASH_LOG_LEVEL", "DEBUG")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "https://ledger.example.com/api", cfg.APIURL)
	assert.Equal(t, "tok", cfg.APIToken)
	assert.Equal(t, 0.75, cfg.PeriodFactor)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("LEDGERDASH_DB_PATH=/tmp/from-file.db\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("LEDGERDASH_DB_PATH") })

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/from-file.db", cfg.DBPath)
}

func TestLoad_MissingEnvFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.env"))
	assert.Error(t, err)
}

func TestValidate_CollectsAllProblems(t *testing.T) {
	cfg := &config.Config{
		APIURL:       "ftp://x",
		DBPath:       "",
		ListenAddr:   "5000",
		WebAddr:      "localhost:8833",
		PeriodFactor: 0,
		LogLevel:     "loud",
	}
	err := cfg.Validate()
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "scheme must be http or https")
	assert.Contains(t, msg, "database path cannot be empty")
	assert.Contains(t, msg, "invalid listen address")
	assert.Contains(t, msg, "invalid period factor")
	assert.Contains(t, msg, "invalid log level 'loud'")
	assert.NotContains(t, msg, "invalid web address")
}

func TestParseLevel(t *testing.T) {
	lvl, err := config.ParseLevel("warn")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, lvl)

	_, err = config.ParseLevel("verbose")
	assert.Error(t, err)
}
