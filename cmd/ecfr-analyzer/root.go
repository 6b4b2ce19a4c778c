package main

import (
	"errors"
	"io/fs"

	"github.com/ecfr-analyzer/ecfr-analyzer/internal/config"
	"github.com/ecfr-analyzer/ecfr-analyzer/pkg/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	envFile string
)

var rootCmd = &cobra.Command{
	Use:          "ecfr-analyzer",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// variables already set in the environment win over the file
		err := godotenv.Load(envFile)
		if errors.Is(err, fs.ErrNotExist) && !cmd.Flags().Changed("env-file") {
			return nil
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(workerCmd)

	rootCmd.PersistentFlags().StringVarP(&envFile, "env-file", "e", ".env", "Path to an env file with configuration overrides")
}

// loadConfig reads the configuration and installs the global logger. The
// returned func flushes and restores the previous logger.
func loadConfig(build func(zap.AtomicLevel) *zap.Logger) (*config.Config, func(), error) {
	cfg, err := config.New()
	if err != nil {
		return nil, nil, err
	}

	logger := build(log.ParseLevel(cfg.Service.LogLevel))
	undo := zap.ReplaceGlobals(logger)

	return cfg, func() {
		_ = logger.Sync()
		undo()
	}, nil
}
