package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mastercactapus/gcvm/config"
	"github.com/mastercactapus/gcvm/internal/logging"
	"github.com/spf13/cobra"
)

var (
	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "gcvm",
	Short: "gcvm interprets GCode programs against an in-memory machine",
	Long: `gcvm reads a GCode program line by line, dispatches each command to a
handler, and tracks the resulting machine state (position, feed rate,
spindle, tool). Every problem is reported with its line number and the
offending token.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")

		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return err
		}

		if lv, _ := cmd.Flags().GetString("log-level"); lv != "" {
			cfg.General.LogLevel = lv
		}
		level, err := logging.ParseLevel(cfg.General.LogLevel)
		if err != nil {
			return fmt.Errorf("invalid log level %q", cfg.General.LogLevel)
		}
		logger = logging.New(level)

		return nil
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a TOML config file.")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error.")
}
