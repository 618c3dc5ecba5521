package config

import "time"

// Config holds runtime settings for the KONGENGA CLI.
//
// Fields:
//   - ServerURL: base URL of the KONGENGA API.
//   - DataDir: directory holding the local session database and the log.
//   - RequestTimeout: per-request timeout of API calls.
//   - Language: message language used until the user picks one.
type Config struct {
	ServerURL      string
	DataDir        string
	RequestTimeout time.Duration
	Language       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8001"
	c.DataDir = ".kongenga"
	c.RequestTimeout = 10 * time.Second
	c.Language = "fr"
}

// LoadConfig constructs a Config, applies defaults, then overlays the
// environment, JSON (if present) and command-line flags (if present). Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
