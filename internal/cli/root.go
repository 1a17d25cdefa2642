package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/mgpai22/podmeta/internal/config"
	"github.com/mgpai22/podmeta/internal/logging"
	"github.com/mgpai22/podmeta/internal/metrics"
)

var (
	verbose     bool
	configPath  string
	logFile     string
	metricsFile string

	logger   *logging.Logger
	settings *config.Settings
	stats    *metrics.Metrics
)

var rootCmd = &cobra.Command{
	Use:   "podmeta",
	Short: "Podcast transcript parser and metadata generator",
	Long: `Podmeta reads podcast transcripts in the common timestamped layouts,
normalizes their timing and turns them into publishable metadata:
episode titles, descriptions, YouTube chapters and subtitle files.

Text generation is delegated to an AI assistant (Gemini, OpenAI,
Anthropic or any local command that reads a prompt on stdin).`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the CLI and flushes logs and metrics afterwards.
func Execute() error {
	err := rootCmd.Execute()
	if finishErr := finish(); err == nil {
		err = finishErr
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		StringVar(&configPath, "config", "", "Settings file (default $XDG_CONFIG_HOME/podmeta/config.yaml)")
	rootCmd.PersistentFlags().
		StringVar(&logFile, "log-file", "", "Also write debug logs to this file (rotated)")
	rootCmd.PersistentFlags().
		StringVar(&metricsFile, "metrics-file", "", "Write run metrics in Prometheus text format to this file")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output file or directory")
}

func setup(cmd *cobra.Command, args []string) error {
	envErr := godotenv.Load()

	if logFile == "" {
		logger = logging.NewLogger(verbose)
	} else {
		logger = logging.New(logging.Options{Verbose: verbose, File: logFile})
	}
	stats = metrics.New()

	if envErr != nil && !errors.Is(envErr, fs.ErrNotExist) {
		logger.Warnw("Ignoring unreadable .env file", "error", envErr)
	}

	if configPath == "" {
		path, err := config.DefaultPath()
		if err != nil {
			return err
		}
		configPath = path
	}

	// config subcommands must work on a file with bad values so it can be fixed
	load := config.Load
	if isConfigCommand(cmd) {
		load = config.Read
	}
	s, err := load(configPath)
	if err != nil {
		return err
	}
	settings = s

	logger.Debugw("Loaded settings", "path", configPath)
	return nil
}

func isConfigCommand(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c == configCmd {
			return true
		}
	}
	return false
}

func finish() error {
	var err error
	if stats != nil && metricsFile != "" {
		if err = stats.WriteTextfile(metricsFile); err == nil {
			logger.Debugw("Wrote metrics", "path", metricsFile)
		}
	}
	if logger != nil {
		_ = logger.Close()
	}
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	return nil
}
