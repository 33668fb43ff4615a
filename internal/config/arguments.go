package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	flag "github.com/spf13/pflag"
	"github.com/icmptools/eping/internal/version"
)

type Args struct {
	Destination string
	Source      string // source address to bind outgoing probes to
	Size        int    // ICMP data bytes per probe
	Interval    time.Duration
	NoResolve   bool

	// Output
	Json     bool   // output json to stdout
	JsonFile string // output json to file while keeping text output
	Plain    bool   // force text output without a terminal

	// Logging
	Log      string // log file path, empty means stderr only
	LogLevel string // log level: debug, info, warning, error
}

func ParseArgs() (Args, error) {
	var args Args
	var showVersion bool

	// Set custom usage message
	flag.Usage = func() {
		println("eping - single-target ICMP echo latency probe")
		println()
		println("Continuously pings one IPv4 destination and prints every reply as it arrives.")
		println()
		println("Usage:")
		println("  eping [OPTIONS] DESTINATION")
		println()
		println("Examples:")
		println("  eping <destination>                  # Classic ping output")
		println("  eping -i 200ms <destination>         # Probe every 200 ms")
		println("  eping -J <destination>               # JSON lines to stdout")
		println("  eping -j replies.json <destination>  # JSON to file, text on the terminal")
		println()
		println("Options:")
		flag.PrintDefaults()
		println()
		println("Documentation: https://github.com/icmptools/eping")
		println("Report issues: https://github.com/icmptools/eping/issues")
	}

	flag.BoolVarP(&showVersion, "version", "v", false, "Show version information")
	flag.StringVarP(&args.Source, "source", "I", "", "Source address to bind outgoing probes to")
	flag.IntVarP(&args.Size, "size", "s", 56, "ICMP data bytes per probe")
	flag.DurationVarP(&args.Interval, "interval", "i", 500*time.Millisecond, "Delay between a reply and the next probe")
	flag.BoolVarP(&args.NoResolve, "no-resolve", "n", false, "Do not resolve reply addresses to hostnames")
	flag.BoolVarP(&args.Json, "json", "J", false, "Write JSON output to stdout (disables text output)")
	flag.StringVarP(&args.JsonFile, "json-file", "j", "", "Write JSON output to file (keeps text output)")
	flag.BoolVar(&args.Plain, "plain", false, "Force text output even when stdout is not a terminal")
	flag.StringVarP(&args.Log, "log", "l", "", "Diagnostic log file (logs also go to stderr)")
	flag.StringVar(&args.LogLevel, "log-level", "warning", "Log level: debug, info, warning, error")
	flag.Parse()

	// Handle version flag
	if showVersion {
		fmt.Println(version.FullVersion())
		os.Exit(0)
	}

	args.Destination = flag.Arg(0)
	if args.Destination == "" {
		return args, errors.New("destination is required")
	}

	// Size is not validated here: the probe engine clamps it to the
	// supported range and logs the adjustment.
	switch {
	case args.Json && args.JsonFile != "":
		return args, errors.New("cannot use both --json and --json-file")
	case args.Json && args.Plain:
		return args, errors.New("cannot use both --json and --plain")
	case args.Interval <= 0:
		return args, errors.New("interval must be positive")
	}

	return args, nil
}
