package config

import (
	"encoding/json"
	"os"

	"github.com/sqlagent/sqlagent-cli/internal/flagx"
	"github.com/sqlagent/sqlagent-cli/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It
// relies on timex.Duration so JSON can specify the timeout either as a
// string like "30s" or as integer nanoseconds.
type JsonConfig struct {
	BaseURL        string         `json:"base_url"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	StatePath      string         `json:"state_path"`
	LogLevel       string         `json:"log_level"`
}

// parseJson overlays cfg with values loaded from the JSON file named by
// the -c/-config flag. Absent flag means no JSON stage; a present but
// unreadable file panics (caller may recover).
//
// Only fields actually present in the file override defaults.
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

	if jc.BaseURL != "" {
		cfg.BaseURL = jc.BaseURL
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.StatePath != "" {
		cfg.StatePath = jc.StatePath
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}
