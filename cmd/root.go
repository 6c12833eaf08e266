// Package cmd wires up the CLI flags and dispatches to the chat core.
package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	flag "github.com/spf13/pflag"

	"dogechat/config"
	"dogechat/internal/core"
	"dogechat/util"
)

// version is overridable at link time:
//
//	go build -ldflags "-X dogechat/cmd.version=2.0.0"
var version = "1.0.0" //nolint:gochecknoglobals

// Execute parses args and runs a chat session.
func Execute(ctx context.Context, args []string) error {
	cfg, done, err := parseArgs(args)
	if err != nil || done {
		return err
	}

	logger := util.NewLogger(cfg.Verbose)
	mode, err := core.Build(cfg, logger)
	if err != nil {
		return err
	}
	return mode.Run(ctx)
}

// parseArgs layers defaults, environment and flags into a validated
// Config.  done reports that help or version was printed and nothing
// should run.
func parseArgs(args []string) (cfg *config.Config, done bool, err error) {
	cfg = config.Default()
	config.LoadFromEnv(cfg)

	fs := flag.NewFlagSet("dogechat", flag.ContinueOnError)

	// ── connection ───────────────────────────────────────────────
	fs.StringVarP(&cfg.Host, "host", "H", cfg.Host, "Chat server host")
	fs.IntVarP(&cfg.Port, "port", "p", cfg.Port, "Chat server port")
	fs.StringVarP(&cfg.Transport, "transport", "t", cfg.Transport, "Transport: tcp or ws")
	fs.StringVar(&cfg.WSPath, "ws-path", cfg.WSPath, "Request path for the ws transport")
	fs.BoolVarP(&cfg.NoDNS, "no-dns", "n", cfg.NoDNS, "Numeric-only, no DNS resolution")

	timeoutSec := int(cfg.Timeout / time.Second)
	fs.IntVarP(&timeoutSec, "timeout", "w", timeoutSec, "Connect timeout in seconds")
	writeTimeoutSec := int(cfg.WriteTimeout / time.Second)
	fs.IntVar(&writeTimeoutSec, "write-timeout", writeTimeoutSec, "Write timeout in seconds (0 = none)")

	// ── identity ─────────────────────────────────────────────────
	fs.StringVarP(&cfg.Username, "username", "u", cfg.Username, "Name to join the chat as")

	// ── output ───────────────────────────────────────────────────
	verbose := 0
	fs.CountVarP(&verbose, "verbose", "v", "Increase verbosity (repeatable)")

	var showVersion, showHelp bool
	fs.BoolVar(&showVersion, "version", false, "Print version and exit")
	fs.BoolVarP(&showHelp, "help", "h", false, "Show this help")

	fs.Usage = func() { printUsage(fs) }

	// ── parse ────────────────────────────────────────────────────
	if err := fs.Parse(args); err != nil {
		return nil, false, err
	}

	if showHelp {
		printUsage(fs)
		return nil, true, nil
	}
	if showVersion {
		fmt.Printf("dogechat %s\n", version)
		return nil, true, nil
	}

	cfg.Timeout = time.Duration(timeoutSec) * time.Second
	cfg.WriteTimeout = time.Duration(writeTimeoutSec) * time.Second
	cfg.Verbose += verbose

	// ── positional arguments ─────────────────────────────────────
	if err := parsePositional(cfg, fs.Args()); err != nil {
		return nil, false, err
	}

	// ── validate ─────────────────────────────────────────────────
	if err := cfg.Validate(); err != nil {
		return nil, false, err
	}
	return cfg, false, nil
}

// ── helpers ──────────────────────────────────────────────────────────

// parsePositional accepts an optional host and port after the flags.
func parsePositional(cfg *config.Config, remaining []string) error {
	switch len(remaining) {
	case 0:
	case 2:
		port, err := config.ParsePort(remaining[1])
		if err != nil {
			return fmt.Errorf("port: %w", err)
		}
		cfg.Port = port
		fallthrough
	case 1:
		cfg.Host = remaining[0]
	default:
		return fmt.Errorf("too many arguments (use --help for usage)")
	}
	return nil
}

func printUsage(fs *flag.FlagSet) {
	fmt.Fprintf(os.Stderr, `dogechat – terminal chat client v%s

Usage:
  dogechat -u <name> [options] [host] [port]

Options:
`, version)
	fs.PrintDefaults()
	fmt.Fprintf(os.Stderr, `
Environment:
  DOGECHAT_HOST, DOGECHAT_PORT, DOGECHAT_USERNAME, DOGECHAT_TRANSPORT,
  DOGECHAT_WS_PATH, DOGECHAT_TIMEOUT, DOGECHAT_WRITE_TIMEOUT,
  DOGECHAT_NO_DNS, DOGECHAT_VERBOSE

Examples:
  dogechat -u alice                           Join 127.0.0.1:80
  dogechat -u bob chat.example.com 9000       Join a remote server
  dogechat -u carol -t ws --ws-path /chat h 8080
  echo "hello" | dogechat -u dave h 9000      Send one line and wait
`)
}
