package config

import (
	"flag"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/contactdir/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the backend
//	-t int      request timeout (in seconds)
//	-d int      search debounce (in milliseconds)
//	-o string   download directory for pictures and exports
//	-l string   log level: debug, info, warn, error
//
// os.Args is filtered with flagx.FilterArgs so flags owned by other
// components do not cause parse errors here.
func parseFlags(cfg *Config) error {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-d", "-o", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the directory backend")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	debounce := fs.Int("d", int(cfg.SearchDebounce.Milliseconds()), "search debounce (in milliseconds)")
	fs.StringVar(&cfg.DownloadDir, "o", cfg.DownloadDir, "download directory")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	cfg.SearchDebounce = time.Duration(*debounce) * time.Millisecond
	return nil
}
