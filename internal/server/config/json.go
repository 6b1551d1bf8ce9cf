package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/onboarding/internal/flagx"
	"github.com/dmitrijs2005/onboarding/internal/timex"
)

// JsonConfig is the on-disk shape of Config. Durations use timex.Duration,
// so "15m" and integer nanoseconds are both accepted.
type JsonConfig struct {
	EndpointAddrGRPC             string         `json:"endpoint_addr_grpc"`
	DatabaseDSN                  string         `json:"database_dsn"`
	SecretKey                    string         `json:"secret_key"`
	AccessTokenValidityDuration  timex.Duration `json:"access_token_validity_duration"`
	RefreshTokenValidityDuration timex.Duration `json:"refresh_token_validity_duration"`
	ProfileBackend               string         `json:"profile_backend"`
	RedisAddr                    string         `json:"redis_addr"`
	RedisPassword                string         `json:"redis_password"`
	RedisDB                      int            `json:"redis_db"`
	S3RootUser                   string         `json:"s3_root_user"`
	S3RootPassword               string         `json:"s3_root_password"`
	S3Bucket                     string         `json:"s3_bucket"`
	S3Region                     string         `json:"s3_region"`
	S3BaseEndpoint               string         `json:"s3_base_endpoint"`
	GoogleClientID               string         `json:"google_client_id"`
	ResendAPIKey                 string         `json:"resend_api_key"`
	MailFrom                     string         `json:"mail_from"`
	PasswordResetURL             string         `json:"password_reset_url"`
	PasswordResetTTL             timex.Duration `json:"password_reset_ttl"`
	AMQPURL                      string         `json:"amqp_url"`
	AMQPExchange                 string         `json:"amqp_exchange"`
	MaxLoginAttempts             int            `json:"max_login_attempts"`
	LoginAttemptWindow           timex.Duration `json:"login_attempt_window"`
	LogLevel                     string         `json:"log_level"`
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}

func overlayDuration(dst *time.Duration, v timex.Duration) {
	if v.Duration != 0 {
		*dst = v.Duration
	}
}

// parseJson overlays config with the non-empty values of the file named by
// -c / -config. If the file cannot be read or contains invalid JSON, the
// function panics.
func parseJson(config *Config, args []string) {
	path := flagx.ConfigFile(args)
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.ProfileBackend, c.ProfileBackend)
	setString(&config.RedisAddr, c.RedisAddr)
	setString(&config.RedisPassword, c.RedisPassword)
	setInt(&config.RedisDB, c.RedisDB)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.GoogleClientID, c.GoogleClientID)
	setString(&config.ResendAPIKey, c.ResendAPIKey)
	setString(&config.MailFrom, c.MailFrom)
	setString(&config.PasswordResetURL, c.PasswordResetURL)
	setString(&config.AMQPURL, c.AMQPURL)
	setString(&config.AMQPExchange, c.AMQPExchange)
	setInt(&config.MaxLoginAttempts, c.MaxLoginAttempts)
	setString(&config.LogLevel, c.LogLevel)

	overlayDuration(&config.AccessTokenValidityDuration, c.AccessTokenValidityDuration)
	overlayDuration(&config.RefreshTokenValidityDuration, c.RefreshTokenValidityDuration)
	overlayDuration(&config.PasswordResetTTL, c.PasswordResetTTL)
	overlayDuration(&config.LoginAttemptWindow, c.LoginAttemptWindow)
}
