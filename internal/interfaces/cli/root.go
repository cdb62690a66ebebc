// Package cli implements the prazo command-line tool: deadline computation,
// holiday imports, cache maintenance, and schema migrations.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/juristech/prazojus/internal/config"
	"github.com/juristech/prazojus/internal/infrastructure/database/postgres"
	"github.com/juristech/prazojus/internal/infrastructure/monitoring/logging"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
)

type rootOptions struct {
	configPath string
	logLevel   string
}

// NewRootCommand builds the prazo command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "prazo",
		Short:         "prazojus CLI for Brazilian procedural deadline computation",
		Version:       fmt.Sprintf("%s (commit: %s)", Version, GitCommit),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "config file path (default: PRAZO_* environment)")
	pf.StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	cmd.AddCommand(
		newComputeCmd(opts),
		newImportHolidaysCmd(opts),
		newClearCacheCmd(opts),
		newMigrateCmd(opts),
	)

	return cmd
}

// loadConfig resolves configuration from the --config file or, absent one,
// from PRAZO_* environment variables.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	if o.configPath != "" {
		return config.Load(o.configPath)
	}
	return config.LoadFromEnv()
}

// newLogger builds a console logger on stderr so command output on stdout
// stays machine-readable.
func (o *rootOptions) newLogger() (logging.Logger, error) {
	return logging.NewLogger(logging.LogConfig{
		Level:            o.logLevel,
		Format:           "console",
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	})
}

// openDatabase connects to PostgreSQL using the resolved configuration.
// Callers own the returned connection.
func openDatabase(cfg *config.Config, log logging.Logger) (*postgres.Connection, error) {
	return postgres.NewConnection(cfg.Database, log)
}

// Execute runs the CLI and returns the process exit error, if any.
func Execute() error {
	return NewRootCommand().Execute()
}
