package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/assettrack/internal/flagx"
	"github.com/dmitrijs2005/assettrack/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Absent keys keep the
// value already in Config.
type JsonConfig struct {
	ServerURL        *string         `json:"server_url"`
	Timeout          *timex.Duration `json:"timeout"`
	DatabasePath     *string         `json:"database_path"`
	LogFormat        *string         `json:"log_format"`
	LogLevel         *string         `json:"log_level"`
	CredentialSecret *string         `json:"credential_secret"`
}

// parseJson overlays cfg with the file named by -c / -config. Without the
// flag it does nothing. Panics on read or unmarshal errors.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerURL != nil {
		cfg.ServerURL = *jc.ServerURL
	}
	if jc.Timeout != nil {
		cfg.Timeout = jc.Timeout.Duration
	}
	if jc.DatabasePath != nil {
		cfg.DatabasePath = *jc.DatabasePath
	}
	if jc.LogFormat != nil {
		cfg.LogFormat = *jc.LogFormat
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	if jc.CredentialSecret != nil {
		cfg.CredentialSecret = *jc.CredentialSecret
	}
}
