package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":3026", cfg.ListenAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.AllowAnonymous)
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "raktar.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
domain_name: registry.example.com
listen_addr: ":8080"
database_path: /tmp/raktar.db
crates_dir: /tmp/crates
log_level: debug
allow_anonymous: true
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "registry.example.com", cfg.DomainName)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "/tmp/raktar.db", cfg.DatabasePath)
	assert.Equal(t, "/tmp/crates", cfg.CratesDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.AllowAnonymous)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "raktar.yaml")
	require.NoError(t, os.WriteFile(path, []byte("domain_name: from-file.example.com\n"), 0644))

	t.Setenv("DOMAIN_NAME", "from-env.example.com")
	t.Setenv("LISTEN_ADDR", ":9090")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env.example.com", cfg.DomainName)
	assert.Equal(t, ":9090", cfg.ListenAddr)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
