package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/talgya/inequality-sim/internal/config"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	configPath string
	logLevel   string
}

var rootCmd = &cobra.Command{
	Use:   "inequality",
	Short: "Agent-based wealth inequality simulator",
	Long: "inequality runs a population of agents through an economic policy and\n" +
		"tracks the Gini coefficient, total wealth and class mobility.",
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&rootFlags.configPath, "config", "", "YAML config file (defaults are used for missing keys)")
	f.StringVar(&rootFlags.logLevel, "log-level", "info", "log level: debug, info, warn, error")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(policiesCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.Version = version
}

func setupLogging(cmd *cobra.Command, _ []string) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(rootFlags.logLevel))); err != nil {
		return fmt.Errorf("--log-level: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return nil
}

// loadConfig returns the config file contents, or the defaults when no file was given.
func loadConfig() (config.File, error) {
	if rootFlags.configPath == "" {
		return config.Default(), nil
	}
	f, err := config.Load(rootFlags.configPath)
	if err != nil {
		return config.File{}, fmt.Errorf("load config: %w", err)
	}
	slog.Info("config loaded", "path", rootFlags.configPath)
	return f, nil
}
