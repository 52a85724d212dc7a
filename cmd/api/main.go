// Copyright (c) 2026 Helpdesk. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the helpdesk HTTP API server.
//
// # Commands
//
//   - api (no subcommand): serve the HTTP API.
//   - api migrate [up|down]: apply or revert database migrations and exit.
//   - api hash-password: print a bcrypt hash for provisioning accounts by hand.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/taibuivan/helpdesk/internal/platform/config"
	"github.com/taibuivan/helpdesk/internal/platform/constants"
)

var rootCmd = &cobra.Command{
	Use:   "api",
	Short: "Helpdesk API server",
	Long: `Helpdesk API serves clients, technicians and service orders over HTTP,
guarded by bearer-token authentication and role-based access control.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}
		return serve(cmd.Context(), cfg, log)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(hashPasswordCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger builds the process-wide JSON logger and installs it as the default.
func newLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})).With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	return log
}

// loadConfig reads the environment and returns a logger honouring DEBUG.
func loadConfig() (*config.Config, *slog.Logger, error) {
	log := newLogger(false)

	cfg, err := config.Load()
	if err != nil {
		log.Error("startup_failure", slog.String("context", "load configuration"), slog.Any("error", err))
		return nil, nil, err
	}

	if cfg.Debug {
		log = newLogger(true)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("storage", cfg.StorageDriver),
	)
	return cfg, log, nil
}
