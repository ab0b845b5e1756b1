package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/belphemur/jalaali-picker/internal/config"
	"github.com/belphemur/jalaali-picker/internal/constants"
	"github.com/belphemur/jalaali-picker/internal/logging"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// Determine if we're in development mode
	isDev := os.Getenv("ENV") != "production"
	logging.Initialize(isDev)
	logger := logging.GetLogger("main")

	if err := newRootCommand().Execute(); err != nil {
		logger.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "jalaali-picker",
		Short:         "Jalaali (Persian) calendar date picker",
		Long:          "Jalaali calendar engine with a headless date picker, served over HTTP or used from the command line.",
		Version:       version + " (" + commit + ", " + date + ")",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	// CONFIG_FILE keeps working for container deployments.
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", os.Getenv("CONFIG_FILE"), "path to a TOML config file (defaults and JALAALI_ env vars when empty)")

	load := func() (*config.Config, error) {
		return loadConfig(configPath)
	}
	rootCmd.AddCommand(
		newServeCommand(load),
		newConvertCommand(load),
		newMonthCommand(load),
	)
	return rootCmd
}

// loadConfig loads the configuration and applies its logging settings.
func loadConfig(path string) (*config.Config, error) {
	logger := logging.GetLogger("main")

	cfg, err := config.Load(path)
	if err != nil {
		// Log error before returning, as the command error won't have config context
		logger.Error().Err(err).Str("config_path", path).Msg("Failed to load configuration")
		return nil, err
	}

	if cfg.Service.Development {
		logging.Initialize(true)
	}
	if err := logging.SetLogLevel(cfg.Service.LogLevel); err != nil {
		logger.Warn().Err(err).Msg("Invalid log level, using info")
	}
	logger.Debug().
		Str("log_level", cfg.Service.LogLevel).
		Str("app", constants.AppIdentifier).
		Msg("Configuration loaded")
	return cfg, nil
}
