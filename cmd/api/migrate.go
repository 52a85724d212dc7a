// Copyright (c) 2026 Helpdesk. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/taibuivan/helpdesk/internal/platform/config"
	"github.com/taibuivan/helpdesk/internal/platform/migration"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down]",
	Short:     "Run database migrations",
	Long:      `Applies (up, the default) or reverts (down) every migration under MIGRATION_PATH, then exits.`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{string(migration.Up), string(migration.Down)},
	RunE: func(cmd *cobra.Command, args []string) error {
		direction := migration.Up
		if len(args) == 1 {
			parsed, err := migration.ParseDirection(args[0])
			if err != nil {
				return err
			}
			direction = parsed
		}

		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.StorageDriver != config.StoragePostgres {
			return errors.New("migrate requires STORAGE_DRIVER=postgres")
		}

		return migration.Run(cfg.DatabaseURL, cfg.MigrationPath, direction, log)
	},
}
