package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/crownstore/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   SQLite database path
//	-b string   store backend: sqlite or redis
//	-r string   Redis address
//	-l string   log level: debug, info, warn, error
//
// os.Args is filtered with flagx.FilterArgs first so -c/-config and flags of
// other components pass through untouched.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-b", "-r", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "sqlite database path")
	fs.StringVar(&cfg.StoreBackend, "b", cfg.StoreBackend, "store backend (sqlite|redis)")
	fs.StringVar(&cfg.RedisAddr, "r", cfg.RedisAddr, "redis address")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
