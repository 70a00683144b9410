package config

import (
	"flag"
	"io"
	"strings"
	"time"

	"github.com/dmitrijs2005/wotracker/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g. ":8080")
//	-g string   gRPC health bind address
//	-d string   PostgreSQL DSN
//	-s string   session signing secret
//	-t int      session max age, minutes
//	-l string   login path reported to the UI
//	-o string   comma-separated CORS origins
//	-r          enable server-side session revocation
//	-m          run the development migrations at startup
//	-v string   log level
//
// Only these flags are parsed; anything else on the command line (the
// -c config flag, for one) is ignored here.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-g", "-d", "-s", "-t", "-l", "-o", "-r", "-m", "-v"})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "HTTP address and port")
	fs.StringVar(&config.GRPCHealthAddr, "g", config.GRPCHealthAddr, "gRPC health address and port")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "session signing secret")
	maxAge := fs.Int("t", int(config.SessionMaxAge.Minutes()), "session max age (in minutes)")
	fs.StringVar(&config.LoginPath, "l", config.LoginPath, "login page path")
	origins := fs.String("o", strings.Join(config.CORSOrigins, ","), "allowed CORS origins, comma separated")
	fs.BoolVar(&config.RevocationEnabled, "r", config.RevocationEnabled, "enable session revocation on logout")
	fs.BoolVar(&config.RunMigrations, "m", config.RunMigrations, "run development migrations")
	fs.StringVar(&config.LogLevel, "v", config.LogLevel, "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			config.SessionMaxAge = time.Duration(*maxAge) * time.Minute
		case "o":
			config.CORSOrigins = splitList(*origins)
		}
	})
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimRight(strings.TrimSpace(p), "/"); p != "" {
			out = append(out, p)
		}
	}
	return out
}
