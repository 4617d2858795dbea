package config

import "path/filepath"

// Config holds runtime settings for the FaceVault CLI.
//
// Fields:
//   - DataDir: directory holding every persistent artifact.
//   - DBPath: SQLite database with face samples, PIN and settings.
//   - VaultPath: the encrypted credential vault file.
//   - AuditLogPath: append-only authentication attempt log.
//   - ImageDir: where registration audit images are saved.
//   - LogLevel: one of debug, info, warn, error.
type Config struct {
	DataDir      string
	DBPath       string
	VaultPath    string
	AuditLogPath string
	ImageDir     string
	LogLevel     string
}

// LoadDefaults populates c with sensible defaults. Derived paths are
// left empty here and filled by Normalize so that a JSON or flag
// override of DataDir moves them along.
func (c *Config) LoadDefaults() {
	c.DataDir = ".facevault"
	c.LogLevel = "info"
}

// Normalize fills every empty path field relative to DataDir.
func (c *Config) Normalize() {
	if c.DBPath == "" {
		c.DBPath = filepath.Join(c.DataDir, "facevault.db")
	}
	if c.VaultPath == "" {
		c.VaultPath = filepath.Join(c.DataDir, "vault.bin")
	}
	if c.AuditLogPath == "" {
		c.AuditLogPath = filepath.Join(c.DataDir, "auth_attempts.log")
	}
	if c.ImageDir == "" {
		c.ImageDir = filepath.Join(c.DataDir, "images")
	}
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	cfg.Normalize()
	return cfg
}
