package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "es", cfg.Language)
	assert.Equal(t, "gpt-4o-mini", cfg.Model)
	assert.Equal(t, 30, cfg.SLAMinutes)
	assert.Equal(t, 60, cfg.PendingTTLSec)
	assert.Equal(t, "sqlite3", cfg.Database.Driver)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"language: en\nsla_minutes: 45\ndatabase:\n  driver: postgres\n  dsn: host=localhost\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "en", cfg.Language)
	assert.Equal(t, 45, cfg.SLAMinutes)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	// Untouched keys keep their defaults.
	assert.Equal(t, "gpt-4o-mini", cfg.Model)
}

func TestLoad_MalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("language: [unclosed"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_EnvironmentWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("language: en\n"), 0o644))
	t.Setenv("LANGUAGE", "es")
	t.Setenv("SLA_MINUTES", "10")
	t.Setenv("TEMPERATURE", "not-a-number")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "es", cfg.Language)
	assert.Equal(t, 10, cfg.SLAMinutes)
	// A bad numeric override is ignored.
	assert.Equal(t, 0.4, cfg.Temperature)
}
