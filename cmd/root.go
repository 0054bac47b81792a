/*
Copyright © 2025 MAROUANE BOUFAROUJ <boufaroujmarouan@gmail.com>
*/
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/chibuka/algoviz/internal/config"
	"github.com/chibuka/algoviz/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// quietLogs marks commands that own the terminal. Their logs only go to
// log_file so nothing is drawn over the player.
const quietLogs = "quiet-logs"

var (
	debug bool

	appCfg *config.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "algoviz",
	Short: "Watch algorithms run, one step at a time",
	Long: `algoviz - Step through classic algorithms in your terminal

algoviz asks a small compute service for the full execution trace of an
algorithm and plays it back step by step. Pause, rewind and change speed
as it runs.

Quick Start:
  1. Start the service:   algoviz serve
  2. Sort an array:       algoviz sort 5 2 9 1
  3. Test a number:       algoviz prime 97`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("could not load config file: %w", err)
		}
		appCfg = cfg

		l, err := logging.New(logging.Options{
			Debug: debug,
			File:  cfg.LogFile,
			Quiet: cmd.Annotations[quietLogs] == "true",
		})
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func Execute() {
	err := rootCmd.ExecuteContext(context.Background())
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	config.Init()
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
}
