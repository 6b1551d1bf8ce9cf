package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/onboarding/internal/flagx"
)

var serverFlags = []string{"-a", "-d", "-s", "-t", "-r", "-k", "-u", "-p", "-b", "-g", "-e", "-l"}

// parseFlags populates Config from command-line flags.
//
// Supported flags:
//
//	-a  gRPC endpoint address
//	-d  database DSN
//	-s  JWT secret key
//	-t  access token validity (minutes)
//	-r  refresh token validity (minutes)
//	-k  profile backend: document, keypath, object or memory
//	-u  S3 root user
//	-p  S3 root password
//	-b  S3 bucket
//	-g  S3 region
//	-e  S3 base endpoint
//	-l  log level
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, serverFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.EndpointAddrGRPC, "a", cfg.EndpointAddrGRPC, "address and port to run gRPC server")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.SecretKey, "s", cfg.SecretKey, "JWT secret key")
	accessMinutes := fs.Int("t", int(cfg.AccessTokenValidityDuration.Minutes()), "access token validity (in minutes)")
	refreshMinutes := fs.Int("r", int(cfg.RefreshTokenValidityDuration.Minutes()), "refresh token validity (in minutes)")
	fs.StringVar(&cfg.ProfileBackend, "k", cfg.ProfileBackend, "profile backend (document, keypath, object, memory)")
	fs.StringVar(&cfg.S3RootUser, "u", cfg.S3RootUser, "S3 root user")
	fs.StringVar(&cfg.S3RootPassword, "p", cfg.S3RootPassword, "S3 root password")
	fs.StringVar(&cfg.S3Bucket, "b", cfg.S3Bucket, "S3 bucket")
	fs.StringVar(&cfg.S3Region, "g", cfg.S3Region, "S3 region")
	fs.StringVar(&cfg.S3BaseEndpoint, "e", cfg.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.AccessTokenValidityDuration = time.Duration(*accessMinutes) * time.Minute
	cfg.RefreshTokenValidityDuration = time.Duration(*refreshMinutes) * time.Minute
}
