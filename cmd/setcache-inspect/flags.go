// flags.go defines the command-line surface of setcache-inspect using
// pflag, the corpus's preferred flag package for CLI tools (see
// calvinalkan-agent-task).
//
// © 2025 arena-cache authors. MIT License.
package main

import (
	"time"

	"github.com/spf13/pflag"
)

type options struct {
	target           string
	json             bool
	watch            bool
	interval         time.Duration
	heapProfile      string
	goroutineProfile string
	version          bool
}

func parseFlags() *options {
	opts := &options{}

	pflag.StringVarP(&opts.target, "target", "t", "http://localhost:6060", "base URL of the target process")
	pflag.BoolVar(&opts.json, "json", false, "print the snapshot as JSON instead of a table")
	pflag.BoolVarP(&opts.watch, "watch", "w", false, "poll the snapshot endpoint repeatedly")
	pflag.DurationVar(&opts.interval, "interval", 2*time.Second, "polling interval when --watch is set")
	pflag.StringVar(&opts.heapProfile, "heap-profile", "", "download a heap pprof snapshot to this path and exit")
	pflag.StringVar(&opts.goroutineProfile, "goroutine-profile", "", "download a goroutine pprof snapshot to this path and exit")
	pflag.BoolVar(&opts.version, "version", false, "print the build version and exit")

	pflag.Parse()
	return opts
}
