package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/memories/internal/flagx"
)

var knownFlags = []string{"-b", "-p", "-d", "-r", "-k", "-t", "-m", "-l", "-f"}

// parseFlags overlays cfg with the command-line flags listed in doc.go.
// Other flags in args are ignored. Parse errors panic.
func parseFlags(cfg *Config, args []string) {
	fs := flag.NewFlagSet("memories", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.Backend, "b", cfg.Backend, "storage backend")
	fs.StringVar(&cfg.SQLitePath, "p", cfg.SQLitePath, "SQLite database path")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "PostgreSQL DSN")
	fs.StringVar(&cfg.RedisAddr, "r", cfg.RedisAddr, "Redis address")
	fs.StringVar(&cfg.SessionSecret, "k", cfg.SessionSecret, "session signing secret")
	ttl := fs.Int("t", int(cfg.SessionTTL.Minutes()), "session lifetime (in minutes)")
	fs.StringVar(&cfg.HashScheme, "m", cfg.HashScheme, "password hash scheme")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFormat, "f", cfg.LogFormat, "log format")

	if err := fs.Parse(flagx.FilterArgs(args, knownFlags)); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.SessionTTL = time.Duration(*ttl) * time.Minute
		}
	})
}
