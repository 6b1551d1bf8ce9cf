package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/onboarding/internal/flagx"
	"github.com/dmitrijs2005/onboarding/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
type JsonConfig struct {
	ServerEndpointAddr  string         `json:"server_endpoint_addr"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
	GoogleClientID      string         `json:"google_client_id"`
	GoogleClientSecret  string         `json:"google_client_secret"`
	RedirectPort        int            `json:"redirect_port"`
	OnboardingPages     int            `json:"onboarding_pages"`
	LocalDBPath         string         `json:"local_db_path"`
	LogLevel            string         `json:"log_level"`
}

// parseJson overlays cfg with the non-empty values of the file named by
// -c / -config. Read or decode errors panic.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigFile(args)
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

	if jc.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = jc.ServerEndpointAddr
	}
	if jc.OnlineCheckInterval.Duration != 0 {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.GoogleClientID != "" {
		cfg.GoogleClientID = jc.GoogleClientID
	}
	if jc.GoogleClientSecret != "" {
		cfg.GoogleClientSecret = jc.GoogleClientSecret
	}
	if jc.RedirectPort != 0 {
		cfg.RedirectPort = jc.RedirectPort
	}
	if jc.OnboardingPages != 0 {
		cfg.OnboardingPages = jc.OnboardingPages
	}
	if jc.LocalDBPath != "" {
		cfg.LocalDBPath = jc.LocalDBPath
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}
