// Package cli defines the command line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Amreshcodee/itemhub/internal/config"
	"github.com/Amreshcodee/itemhub/internal/tui"
)

// NewRootCmd builds the root command. Running without a subcommand starts
// the interactive TUI client.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "itemhub",
		Short:        "Browse and manage a priced item catalog",
		SilenceUsage: true,
		Example: `  # Start the interactive client
  itemhub

  # Run the backend API server
  itemhub serve`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return cmd.Help()
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}

			logger, err := initTUILogger(cfg)
			if err != nil {
				return fmt.Errorf("initializing logger: %w", err)
			}
			defer func() {
				_ = logger.Sync()
			}()

			return tui.Run(cfg, logger)
		},
	}

	cmd.AddCommand(newServeCmd())

	return cmd
}

// initTUILogger initializes the logger for the interactive client. The
// altscreen renderer owns the terminal, so logs go to a file when one is
// configured and are discarded otherwise.
func initTUILogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.LogFile == "" {
		return zap.NewNop(), nil
	}
	return initLoggerTo(cfg.LogLevel, cfg.LogFile)
}

// initLogger initializes a stderr zap logger with the specified log level.
func initLogger(level string) (*zap.Logger, error) {
	return initLoggerTo(level, "stderr")
}

func initLoggerTo(level, output string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	zapConfig := zap.Config{
		Level:       zap.NewAtomicLevelAt(zapLevel),
		Development: false,
		Sampling: &zap.SamplingConfig{
			Initial:    100,
			Thereafter: 100,
		},
		Encoding: "json",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "timestamp",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller",
			FunctionKey:    zapcore.OmitKey,
			MessageKey:     "message",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.LowercaseLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.SecondsDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
		OutputPaths:      []string{output},
		ErrorOutputPaths: []string{output},
	}

	return zapConfig.Build()
}
