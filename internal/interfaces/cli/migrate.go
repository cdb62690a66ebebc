package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/juristech/prazojus/internal/infrastructure/database/postgres"
	"github.com/juristech/prazojus/pkg/errors"
)

func newMigrateCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(
		newMigrateUpCmd(root),
		newMigrateDownCmd(root),
		newMigrateStatusCmd(root),
	)
	return cmd
}

func withConnection(root *rootOptions, fn func(*postgres.Connection, string) error) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	log, err := root.newLogger()
	if err != nil {
		return err
	}
	conn, err := openDatabase(cfg, log)
	if err != nil {
		return err
	}
	defer conn.Close()
	return fn(conn, cfg.Database.MigrationPath)
}

func newMigrateUpCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withConnection(root, func(conn *postgres.Connection, dir string) error {
				return conn.RunMigrations(dir)
			})
		},
	}
}

func newMigrateDownCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "down [steps]",
		Short: "Roll back migrations (default one step)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			steps := 1
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil || n <= 0 {
					return errors.Newf(errors.ErrCodeInvalidArgument, "steps must be a positive integer, got %q", args[0])
				}
				steps = n
			}
			return withConnection(root, func(conn *postgres.Connection, dir string) error {
				return conn.RollbackMigrations(dir, steps)
			})
		},
	}
}

func newMigrateStatusCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the applied migration version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withConnection(root, func(conn *postgres.Connection, dir string) error {
				version, dirty, err := conn.MigrationStatus(dir)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "version=%d dirty=%t\n", version, dirty)
				return nil
			})
		},
	}
}
