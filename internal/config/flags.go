package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/tracediary/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-d string   data directory (database and encrypted diaries)
//	-b string   sqlite database path override
//
// Args are filtered through flagx.FilterArgs so flags owned by other
// components do not interfere.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-b"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory")
	fs.StringVar(&cfg.DatabasePath, "b", cfg.DatabasePath, "database path")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
