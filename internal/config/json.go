package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/tracediary/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling; values are
// copied into the runtime Config afterwards.
type JsonConfig struct {
	DataDir        string `json:"data_dir"`
	DatabasePath   string `json:"database_path"`
	KeyringService string `json:"keyring_service"`
}

// parseJson overlays cfg with values from the JSON file named by the -c or
// -config flag. No flag, no overlay. Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DataDir != "" {
		cfg.DataDir = jc.DataDir
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.KeyringService != "" {
		cfg.KeyringService = jc.KeyringService
	}
}
