// Package config holds runtime settings for the SQL Agent CLI and the
// loading pipeline that fills them in: defaults, then a JSON file, then
// environment variables, then command-line flags, each stage overriding
// the one before it.
package config

import "time"

// Config holds runtime settings for the SQL Agent CLI.
//
// Fields:
//   - BaseURL: root of the backend REST API, including the /api/v1 prefix.
//   - RequestTimeout: per-request HTTP timeout.
//   - StatePath: sqlite file holding the persisted session.
//   - LogLevel: debug|info|warn|error.
type Config struct {
	BaseURL        string        `env:"SQLAGENT_BASE_URL"`
	RequestTimeout time.Duration `env:"SQLAGENT_REQUEST_TIMEOUT"`
	StatePath      string        `env:"SQLAGENT_STATE_PATH"`
	LogLevel       string        `env:"SQLAGENT_LOG_LEVEL"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://localhost:8000/api/v1"
	c.RequestTimeout = 30 * time.Second
	c.StatePath = "sqlagent.db"
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays
// values from JSON (if present), the environment, and command-line
// flags. Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
