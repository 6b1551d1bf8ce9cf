// Package config loads runtime configuration for the onboarding CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment variables with the ONBOARDING_ prefix (see parseEnv).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   address:port of the backend gRPC endpoint
//	-i int      online status check interval (seconds)
//	-p int      loopback port for the Google sign-in redirect (0 = any)
//	-l string   log level (debug, info, warn, error)
//
// # JSON schema
//
// Intervals use timex.Duration, so they can be strings like "3s" or integer
// nanoseconds:
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "online_check_interval": "3s",
//	  "google_client_id": "...apps.googleusercontent.com",
//	  "google_client_secret": "...",
//	  "redirect_port": 8085,
//	  "onboarding_pages": 3,
//	  "log_level": "info"
//	}
//
// # Environment
//
//	ONBOARDING_SERVER_ADDR, ONBOARDING_ONLINE_CHECK_INTERVAL,
//	ONBOARDING_GOOGLE_CLIENT_ID, ONBOARDING_GOOGLE_CLIENT_SECRET,
//	ONBOARDING_REDIRECT_PORT, ONBOARDING_PAGES, ONBOARDING_LOG_LEVEL
package config
