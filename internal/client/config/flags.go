package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/flagx"
)

// parseFlags applies the short flags owned by this package. Other flags in
// args are filtered out with flagx.FilterArgs first.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-d", "-a", "-i", "-r", "-l"})

	fs := flag.NewFlagSet("notes", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "path of the local database")
	fs.StringVar(&cfg.HealthAddr, "a", cfg.HealthAddr, "health endpoint used for online checks")
	interval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.StringVar(&cfg.RemoteKind, "r", cfg.RemoteKind, "remote kind: none, s3 or postgres")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	if *interval != int(cfg.OnlineCheckInterval.Seconds()) {
		cfg.OnlineCheckInterval = time.Duration(*interval) * time.Second
	}
	return nil
}
