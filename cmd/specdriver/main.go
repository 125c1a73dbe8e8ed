// Package main provides the specdriver binary entry point.
// Specdriver is the helper tool behind the spec-driven-dev and
// implementing-specs skills: it validates the three-document spec artifact
// set, tracks task status in tasks.md, and checks that the generator
// templates stay aligned with the validator's expectations.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/c360studio/specdriver/config"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "specdriver"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		configPath string
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Spec artifact validation and task tracking",
		Long: `Specdriver operates on the spec artifact set (requirements.md, plan.md,
tasks.md) that drives spec-driven implementation.

It provides:
- Structural validation of a spec directory before implementation
- Task status listing and single-task status updates in tasks.md
- Alignment checking between generator templates and validator rules

All operations are local, synchronous file transformations.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(logLevel)
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(validateCmd(&configPath))
	cmd.AddCommand(tasksCmd())
	cmd.AddCommand(alignCmd(&configPath))

	// Version command
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}

// setupLogging configures the default slog logger for the process.
func setupLogging(logLevel string) {
	level := slog.LevelInfo
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

// loadConfig loads configuration, preferring an explicit --config path over
// the layered loader.
func loadConfig(configPath string) (*config.Config, error) {
	if configPath != "" {
		cfg, err := config.LoadFromFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		merged := config.DefaultConfig()
		merged.Merge(cfg)
		if err := merged.Validate(); err != nil {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
		return merged, nil
	}

	return config.NewLoader(slog.Default()).Load()
}
