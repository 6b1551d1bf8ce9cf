package config

import "github.com/kelseyhightower/envconfig"

// parseEnv overlays cfg with ONBOARDING_* variables. Unset variables leave
// the current value alone; malformed ones panic.
func parseEnv(cfg *Config) {
	if err := envconfig.Process(envPrefix, cfg); err != nil {
		panic(err)
	}
}
