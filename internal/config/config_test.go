package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func load(t *testing.T, args ...string) (*Config, error) {
	t.Helper()
	flags := Flags()
	require.NoError(t, flags.Parse(args))
	return Load(flags)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(t)
	require.NoError(t, err)

	require.Equal(t, ":8080", cfg.Addr)
	require.Equal(t, "dev-insecure-secret", cfg.Secret)
	require.Equal(t, 48000, cfg.PBKDF2Iterations)
	require.Equal(t, 7*24*time.Hour, cfg.TokenTTL())
	require.Equal(t, filepath.Join("./data", "words.json"), cfg.WordsFile)
	require.Equal(t, filepath.Join("./data", "verbs.json"), cfg.VerbsFile)
	require.Equal(t, filepath.Join("./data", "users.json"), cfg.UsersFile)
	require.Equal(t, filepath.Join("./data", "progress"), cfg.ProgressDir)
	require.Equal(t, []string{"*"}, cfg.AllowedOrigins)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORTUMEM_ADDR", ":9090")
	t.Setenv("PORTUMEM_SECRET", "prod-secret")
	t.Setenv("PORTUMEM_TOKEN_TTL_SECONDS", "3600")

	cfg, err := load(t)
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.Addr)
	require.Equal(t, "prod-secret", cfg.Secret)
	require.Equal(t, time.Hour, cfg.TokenTTL())
}

func TestLoadFlagOverridesEnv(t *testing.T) {
	t.Setenv("PORTUMEM_ADDR", ":9090")

	cfg, err := load(t, "--addr", ":7070")
	require.NoError(t, err)
	require.Equal(t, ":7070", cfg.Addr)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("addr: \":6060\"\ndata_dir: /srv/drill\n"), 0o644))

	cfg, err := load(t, "--config", path)
	require.NoError(t, err)
	require.Equal(t, ":6060", cfg.Addr)
	require.Equal(t, filepath.Join("/srv/drill", "words.json"), cfg.WordsFile)
}

func TestLoadMissingConfigFile(t *testing.T) {
	_, err := load(t, "--config", filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("PORTUMEM_TOKEN_TTL_SECONDS", "0")
	_, err := load(t)
	require.Error(t, err)
}
