package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	assert.NotEmpty(t, cfg.DataDir)
	assert.Equal(t, "tracediary", cfg.KeyringService)
	assert.Empty(t, cfg.DatabasePath)
}

func TestResolveDatabasePath(t *testing.T) {
	cfg := &Config{DataDir: "/data"}
	assert.Equal(t, filepath.Join("/data", "database", "trace.db"), cfg.ResolveDatabasePath())

	cfg.DatabasePath = "/elsewhere/trace.db"
	assert.Equal(t, "/elsewhere/trace.db", cfg.ResolveDatabasePath())
}
