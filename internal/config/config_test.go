package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "variant-generator-data", cfg.Key)
	assert.Equal(t, "text", cfg.Format)
	assert.False(t, cfg.Verbose)
	assert.Equal(t, "state.db", filepath.Base(cfg.DB))
}

func TestLoad_Full(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "full.yaml"))
	require.NoError(t, err)

	assert.Equal(t, Config{
		DB:      "/var/lib/varigen/state.db",
		Key:     "orders",
		Format:  "json",
		Verbose: true,
	}, cfg)
}

func TestLoad_PartialKeepsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "partial.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, Default().Key, cfg.Key)
	assert.Equal(t, Default().DB, cfg.DB)
}

func TestLoad_RejectsUnknownKeys(t *testing.T) {
	path := filepath.Join("testdata", "unknown.yaml")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "colour")
	assert.Contains(t, err.Error(), path)
}

func TestLoad_RejectsBadFormat(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "bad_format.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "format must be text or json")
}

func TestParse_EmptyDocument(t *testing.T) {
	cfg, err := Parse(nil, "empty.yaml")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParse_ExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	cfg, err := Parse([]byte("db: ~/data/state.db\n"), "home.yaml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "data", "state.db"), cfg.DB)
}

func TestResolve_MissingDefaultFileUsesDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Resolve("", env(nil))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestResolve_ExplicitMissingFileFails(t *testing.T) {
	_, err := Resolve(filepath.Join(t.TempDir(), "nope.yaml"), env(nil))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestResolve_EnvConfigPath(t *testing.T) {
	cfg, err := Resolve("", env(map[string]string{
		EnvConfig: filepath.Join("testdata", "full.yaml"),
	}))
	require.NoError(t, err)
	assert.Equal(t, "orders", cfg.Key)
}

func TestResolve_EnvDBOverridesFile(t *testing.T) {
	cfg, err := Resolve(filepath.Join("testdata", "full.yaml"), env(map[string]string{
		EnvDB: "/tmp/override.db",
	}))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/override.db", cfg.DB)
	assert.Equal(t, "orders", cfg.Key)
}
