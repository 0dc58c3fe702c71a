package config

import (
	"flag"
	"os"
	"time"

	"github.com/dbelyaev/coachbase/internal/flagx"
)

// parseFlags populates client Config fields from command-line flags.
//
//	-s string   server base URL
//	-t int      request timeout, seconds
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-s", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.ServerURL, "s", config.ServerURL, "server base URL")
	timeout := fs.Int("t", int(config.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.RequestTimeout = time.Duration(*timeout) * time.Second
}
