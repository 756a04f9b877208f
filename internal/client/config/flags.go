package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/tripdiary/internal/flagx"
)

var knownFlags = []string{"-a", "-i", "-d", "-u", "-l", "-w"}

// parseFlags overlays cfg with command-line flags:
//
//	-a string    backend base URL
//	-i int       online check interval in seconds
//	-d string    SQLite snapshot file ("" disables persistence)
//	-u duration  diary upload timeout (0 waits indefinitely)
//	-l string    log level: debug, info, warn, error
//	-w string    work directory for temporary files
//
// Unknown flags are filtered out first so other packages may own them.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("tripdiary", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.BaseURL, "a", cfg.BaseURL, "backend base url")
	interval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "sqlite snapshot file")
	fs.DurationVar(&cfg.UploadTimeout, "u", cfg.UploadTimeout, "diary upload timeout, 0 waits indefinitely")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.WorkDir, "w", cfg.WorkDir, "work directory")

	if err := fs.Parse(flagx.FilterArgs(args, knownFlags)); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "i" {
			cfg.OnlineCheckInterval = time.Duration(*interval) * time.Second
		}
	})
	return nil
}
