package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/eldercare/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-b string   storage backend: web or device
//	-d string   data directory
//	-l string   log level
//	-i int      vitals refresh interval in seconds
//
// Only these flags are parsed; the rest of args is ignored. The interval is
// overridden only when -i is given, so sub-second file values survive.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-b", "-d", "-l", "-i"})

	fs := flag.NewFlagSet("eldercare", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.Backend, "b", cfg.Backend, "storage backend (web|device)")
	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug|info|warn|error)")
	vitalsInterval := fs.Int("i", int(cfg.VitalsInterval.Seconds()), "vitals refresh interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "i" {
			cfg.VitalsInterval = time.Duration(*vitalsInterval) * time.Second
		}
	})
	return nil
}
