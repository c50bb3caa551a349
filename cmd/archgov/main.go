// Package main provides the archgov binary entry point.
// archgov validates the relationship graph of architecture decision
// records, classifies decision language and serves the rule catalog.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/c360studio/archgov/config"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "archgov"
)

// errViolations makes a command exit non-zero after it has already
// printed its findings.
var errViolations = errors.New("governance violations found")

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		cancel()
		os.Exit(1)
	}
}

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	root       string
	logLevel   string
}

func rootCmd() *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Architecture decision record governance",
		Long: `archgov loads the architecture decision records under a docs root and
enforces their governance rules.

It provides:
- Relationship validation (dangling references, missing inverses, cycles)
- Front matter classification of governed documents
- Decision language scanning (必须 / 禁止 / 建议)
- The rule and clause catalog with rule id parsing
- RDF and JSON export, a Markdown relationship map and a watch mode`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Config file path (YAML); default searches for archgov.yaml")
	cmd.PersistentFlags().StringVar(&flags.root, "root", "", "Docs root directory (overrides config)")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		validateCmd(flags),
		cyclesCmd(flags),
		classifyCmd(flags),
		scanCmd(flags),
		rulesCmd(flags),
		ruleidCmd(flags),
		exportCmd(flags),
		mapCmd(flags),
		watchCmd(flags),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
			},
		},
	)

	return cmd
}

// newLogger configures slog on stderr and installs it as the default.
func newLogger(logLevel string) *slog.Logger {
	level := slog.LevelWarn
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

// loadConfig applies the config layers and then the command-line overrides.
func loadConfig(flags *globalFlags, logger *slog.Logger) (*config.Config, error) {
	loader := config.NewLoader(logger)

	var (
		cfg *config.Config
		err error
	)
	if flags.configPath != "" {
		cfg, err = loader.LoadFile(flags.configPath)
	} else {
		cfg, err = loader.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if flags.root != "" {
		cfg.Merge(&config.Config{Docs: config.DocsConfig{Root: flags.root}})
	}
	return cfg, nil
}

// newApp is the common prologue of commands that need configuration.
func newApp(flags *globalFlags) (*App, error) {
	logger := newLogger(flags.logLevel)
	cfg, err := loadConfig(flags, logger)
	if err != nil {
		return nil, err
	}
	return NewApp(cfg, logger)
}
