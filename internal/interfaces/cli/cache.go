package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/juristech/prazojus/internal/infrastructure/database/redis"
	"github.com/juristech/prazojus/pkg/errors"
)

func newClearCacheCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clear-cache",
		Short: "Drop the shared Redis holiday cache",
		Long: "Removes every cached holiday range from Redis so the next\n" +
			"computation re-reads PostgreSQL.  A running API server also clears\n" +
			"its in-process cache through POST /api/v1/cache/clear.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			if cfg.Redis.Addr == "" {
				return errors.New(errors.ErrCodeInvalidArgument, "redis is not configured (redis.addr is empty)")
			}
			log, err := root.newLogger()
			if err != nil {
				return err
			}

			client, err := redis.NewClient(cfg.Redis, log)
			if err != nil {
				return err
			}
			defer client.Close()

			removed, err := client.DeleteByPrefix(cmd.Context(), cfg.Redis.KeyPrefix+"holidays:")
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d cached holiday range(s)\n", removed)
			return nil
		},
	}
}
