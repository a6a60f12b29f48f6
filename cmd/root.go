// Package cmd wires up the CLI flags and dispatches to the relay core.
package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	flag "github.com/spf13/pflag"

	"chatrelay/config"
	"chatrelay/relay"
	"chatrelay/util"
)

// version is overridable at link time:
//
//	go build -ldflags "-X chatrelay/cmd.version=2.0.0"
var version = "1.0.0" //nolint:gochecknoglobals

// Execute parses args and runs the relay.
func Execute(ctx context.Context, args []string) error {
	cfg, run, err := parseArgs(args)
	if err != nil || !run {
		return err
	}
	logger := util.NewLogger(cfg.Verbose)
	return relay.New(cfg, logger).Run(ctx)
}

// parseArgs resolves flags, environment, and the positional argument
// into a validated Config.  The returned bool is false when the
// invocation is already complete (help, version, dry-run).
//
// Port precedence, highest first: the PORT variable, then -p or the
// positional argument, then the default of 4000.
func parseArgs(args []string) (*config.Config, bool, error) {
	cfg := config.New()
	config.LoadFromEnv(cfg)
	envVerbose := cfg.Verbose

	fs := flag.NewFlagSet("chatrelay", flag.ContinueOnError)

	// ── listener ─────────────────────────────────────────────────
	fs.IntVarP(&cfg.Port, "port", "p", cfg.Port, "TCP listen port")

	// ── session lifecycle ────────────────────────────────────────
	idleSec := int(cfg.IdleTimeout / time.Second)
	sweepSec := int(cfg.SweepInterval / time.Second)
	fs.IntVar(&idleSec, "idle-timeout", idleSec, "Evict authenticated sessions idle longer than this (seconds)")
	fs.IntVar(&sweepSec, "sweep-interval", sweepSec, "How often the idle reaper scans (seconds)")

	// ── protocol limits ──────────────────────────────────────────
	fs.IntVar(&cfg.MaxLineLen, "max-line", cfg.MaxLineLen, "Maximum protocol line length in bytes (0 = unbounded)")
	fs.IntVar(&cfg.OutboxDepth, "outbox-depth", cfg.OutboxDepth, "Per-session outbound queue length")

	// ── output ───────────────────────────────────────────────────
	fs.CountVarP(&cfg.Verbose, "verbose", "v", "Increase verbosity (repeatable)")

	var showVersion, showHelp, dryRun bool
	fs.BoolVar(&showVersion, "version", false, "Print version and exit")
	fs.BoolVarP(&showHelp, "help", "h", false, "Show this help")
	fs.BoolVar(&dryRun, "dry-run", false, "Validate configuration and exit")

	fs.Usage = func() { printUsage(fs) }

	// ── parse ────────────────────────────────────────────────────
	if err := fs.Parse(args); err != nil {
		return nil, false, err
	}

	if showHelp {
		printUsage(fs)
		return nil, false, nil
	}
	if showVersion {
		fmt.Printf("chatrelay %s\n", version)
		return nil, false, nil
	}
	if !fs.Changed("verbose") {
		cfg.Verbose = envVerbose
	}
	cfg.IdleTimeout = time.Duration(idleSec) * time.Second
	cfg.SweepInterval = time.Duration(sweepSec) * time.Second

	// ── positional argument ──────────────────────────────────────
	switch remaining := fs.Args(); len(remaining) {
	case 0:
	case 1:
		port, err := config.ParsePort(remaining[0])
		if err != nil {
			return nil, false, err
		}
		cfg.Port = port
	default:
		return nil, false, fmt.Errorf("too many arguments: %v", remaining[1:])
	}

	// The environment owns the port when set: PORT outranks both the
	// flag and the argument.
	if port, ok := config.EnvPort(); ok {
		cfg.Port = port
	}

	// ── validate ─────────────────────────────────────────────────
	if err := cfg.Validate(); err != nil {
		return nil, false, err
	}
	return cfg, !dryRun, nil
}

func printUsage(fs *flag.FlagSet) {
	fmt.Fprintf(os.Stderr, `chatrelay – TCP line-protocol chat relay v%s

Clients connect over plain TCP, claim a username with LOGIN, and
exchange broadcast (MSG), private (DM), and presence (WHO) traffic.

Usage:
  chatrelay [options] [port]

Options:
`, version)
	fs.PrintDefaults()
	fmt.Fprintf(os.Stderr, `
Environment:
  PORT                 Listen port (wins over -p and the argument)
  CHAT_IDLE_TIMEOUT    Idle timeout in seconds
  CHAT_SWEEP_INTERVAL  Reaper interval in seconds
  CHAT_MAX_LINE        Line length cap in bytes
  CHAT_VERBOSE         Verbosity level

Examples:
  chatrelay                       Listen on port 4000
  chatrelay 9000                  Listen on port 9000
  PORT=9000 chatrelay -vv         Verbose relay on port 9000
  nc localhost 4000               Connect as a client
`)
}
