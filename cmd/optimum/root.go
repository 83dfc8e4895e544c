package main

import (
	"log/slog"
	"os"

	"github.com/rwcarlsen/optimum/cmd/optimum/config"
	"github.com/spf13/cobra"
)

var (
	logLevel   string
	configPath string
	logger     *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "optimum",
	Short: "Run numerical optimizers against benchmark and user problems",
	Long: `optimum drives the particle-swarm solver in
github.com/rwcarlsen/optimum against the functions in testfunctions, with
optional checkpointing and resumption.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var level slog.Level
		switch logLevel {
		case "debug":
			level = slog.LevelDebug
		case "warn":
			level = slog.LevelWarn
		case "error":
			level = slog.LevelError
		default:
			level = slog.LevelInfo
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)

		return config.Load(configPath)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default ~/.optimum.yaml)")
}
