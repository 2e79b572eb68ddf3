// Package config holds runtime settings for the trace diary CLI and the
// defaults -> JSON file -> flags layering used to populate them.
package config

import (
	"os"
	"path/filepath"
)

// Config holds runtime settings.
//
// Fields:
//   - DataDir: root directory for the database and the encrypted diaries.
//   - DatabasePath: sqlite file path; defaults to <DataDir>/database/trace.db.
//   - KeyringService: service name of the OS secret entry caching the
//     master key.
type Config struct {
	DataDir        string
	DatabasePath   string
	KeyringService string
}

// LoadDefaults populates c with sensible defaults. The data directory lands
// under the user config dir, falling back to the working directory when the
// platform does not define one.
func (c *Config) LoadDefaults() {
	base, err := os.UserConfigDir()
	if err != nil {
		base = "."
	}
	c.DataDir = filepath.Join(base, "tracediary")
	c.DatabasePath = ""
	c.KeyringService = "tracediary"
}

// ResolveDatabasePath returns the explicit DatabasePath when set, otherwise
// the default location under DataDir.
func (c *Config) ResolveDatabasePath() string {
	if c.DatabasePath != "" {
		return c.DatabasePath
	}
	return filepath.Join(c.DataDir, "database", "trace.db")
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags. Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
