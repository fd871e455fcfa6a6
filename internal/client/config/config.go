package config

import "time"

// Config holds runtime settings for the AssetTrack client.
//
// Fields:
//   - ServerURL: base URL of the item service, e.g. "https://assets.example.com".
//   - Timeout: per-request transport timeout.
//   - DatabasePath: SQLite file holding remembered credentials and suggestions.
//   - LogFormat: "text", "json" or "zap".
//   - LogLevel: "debug", "info", "warn" or "error".
//   - CredentialSecret: secret mixed into the key that seals remembered credentials.
type Config struct {
	ServerURL        string        `envconfig:"SERVER_URL"`
	Timeout          time.Duration `envconfig:"TIMEOUT"`
	DatabasePath     string        `envconfig:"DATABASE_PATH"`
	LogFormat        string        `envconfig:"LOG_FORMAT"`
	LogLevel         string        `envconfig:"LOG_LEVEL"`
	CredentialSecret string        `envconfig:"CREDENTIAL_SECRET"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.Timeout = 15 * time.Second
	c.DatabasePath = "assettrack.db"
	c.LogFormat = "text"
	c.LogLevel = "info"
	c.CredentialSecret = ""
}

// LoadConfig constructs a Config, applies defaults, then overlays the JSON
// file (if any), ASSETTRACK_* environment variables and command-line flags.
// Later sources take precedence over earlier ones.
func LoadConfig(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseEnv(cfg)
	parseFlags(cfg, args)
	return cfg
}
