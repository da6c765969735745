package config

import (
	"encoding/json"
	"os"

	"github.com/cdot/divelog/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
type JsonConfig struct {
	Addr  string   `json:"addr"`
	File  string   `json:"file"`
	Users []string `json:"users"`
}

// parseJson overlays cfg with values loaded from the JSON file named by the
// -c/-config flags. When no file is named the function is a no-op.
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

	if jc.Addr != "" {
		cfg.Addr = jc.Addr
	}
	if jc.File != "" {
		cfg.File = jc.File
	}
	if len(jc.Users) > 0 {
		cfg.Users = jc.Users
	}
}
