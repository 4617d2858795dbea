package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ".facevault", c.DataDir)
	assert.Equal(t, "info", c.LogLevel)
	assert.Empty(t, c.DBPath)
	assert.Empty(t, c.VaultPath)
}

func TestNormalize_DerivesPathsFromDataDir(t *testing.T) {
	c := Config{DataDir: "/data"}
	c.Normalize()

	assert.Equal(t, filepath.Join("/data", "facevault.db"), c.DBPath)
	assert.Equal(t, filepath.Join("/data", "vault.bin"), c.VaultPath)
	assert.Equal(t, filepath.Join("/data", "auth_attempts.log"), c.AuditLogPath)
	assert.Equal(t, filepath.Join("/data", "images"), c.ImageDir)
}

func TestNormalize_KeepsExplicitPaths(t *testing.T) {
	c := Config{DataDir: "/data", VaultPath: "/elsewhere/v.bin"}
	c.Normalize()

	assert.Equal(t, "/elsewhere/v.bin", c.VaultPath)
	assert.Equal(t, filepath.Join("/data", "facevault.db"), c.DBPath)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, ".facevault", cfg.DataDir)
	assert.Equal(t, filepath.Join(".facevault", "vault.bin"), cfg.VaultPath)
}
