package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConf(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "procfs.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := writeConf(t, `
root = "/host/proc"
max_read_bytes = 4096
color = false
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, &Config{Root: "/host/proc", MaxReadBytes: 4096}, cfg)

	t.Setenv("PROCFS_ROOT", "/mnt/proc")
	t.Setenv("PROCFS_DEBUG", "true")
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/mnt/proc", cfg.Root)
	assert.Equal(t, 4096, cfg.MaxReadBytes)
	assert.True(t, cfg.Debug)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = Load(writeConf(t, `rooot = "/proc"`))
	assert.ErrorContains(t, err, "rooot")

	_, err = Load(writeConf(t, `max_read_bytes = 0`))
	assert.ErrorContains(t, err, "max_read_bytes")

	t.Setenv("PROCFS_MAX_READ", "lots")
	_, err = Load("")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	err := (&Config{}).Validate()
	assert.ErrorContains(t, err, "root")
	assert.ErrorContains(t, err, "max_read_bytes")
}
