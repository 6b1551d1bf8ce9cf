package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/onboarding/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
// Only -a, -i, -p, -f and -l are looked at; anything else in args is ignored.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-i", "-p", "-f", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.IntVar(&cfg.RedirectPort, "p", cfg.RedirectPort, "loopback port for the Google sign-in redirect")
	fs.StringVar(&cfg.LocalDBPath, "f", cfg.LocalDBPath, "local session database file")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
}
