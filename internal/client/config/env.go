package config

import "github.com/kelseyhightower/envconfig"

const envPrefix = "ASSETTRACK"

// parseEnv overlays cfg with ASSETTRACK_* variables. Unset variables leave
// the current value alone. Panics on values that do not parse.
func parseEnv(cfg *Config) {
	if err := envconfig.Process(envPrefix, cfg); err != nil {
		panic(err)
	}
}
