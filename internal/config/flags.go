package config

import (
	"flag"
	"os"

	"github.com/hanifgold/sitecms/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   HTTP listen address
//	-b string   remote backend: supabase, sqlite or postgres
//	-d string   database DSN (sqlite path or Postgres DSN)
//	-l string   log level
//
// Only the flags listed here are consumed; the config-file flags (-c/-config)
// are handled separately and all others are left for the caller.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-b", "-d", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.StringVar(&cfg.Addr, "a", cfg.Addr, "HTTP listen address")
	fs.StringVar(&cfg.Backend, "b", cfg.Backend, "remote backend (supabase|sqlite|postgres)")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
