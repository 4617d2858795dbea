package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_parseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("overrides data dir and log level", func(t *testing.T) {
		os.Args = []string{"testbin", "-d", "/tmp/fv", "-l", "debug"}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseFlags(cfg)

		assert.Equal(t, "/tmp/fv", cfg.DataDir)
		assert.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("keeps defaults without flags", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseFlags(cfg)

		assert.Equal(t, ".facevault", cfg.DataDir)
		assert.Equal(t, "info", cfg.LogLevel)
	})

	t.Run("ignores unrelated flags", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", "conf.json", "-d", "/tmp/fv"}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseFlags(cfg)

		assert.Equal(t, "/tmp/fv", cfg.DataDir)
	})
}
