// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chatsql/chatsql-mcp/internal/config"
	"github.com/chatsql/chatsql-mcp/internal/logging"
)

// app carries state shared by subcommands once the root pre-run has loaded it.
type app struct {
	version   string
	envFile   string
	logLevel  string
	logFormat string

	cfg    *config.Config
	logger *zap.Logger
}

// NewRootCommand builds the chatsql command tree.
func NewRootCommand(version string) *cobra.Command {
	a := &app{version: version}

	root := &cobra.Command{
		Use:           "chatsql",
		Short:         "Extract SQL practice quiz documents from language model output",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	flags.StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error); overrides CHATSQL_LOG_LEVEL")
	flags.StringVar(&a.logFormat, "log-format", "", "log format (json, console); overrides CHATSQL_LOG_FORMAT")

	root.AddCommand(
		newExtractCommand(a),
		newServeCommand(a),
		newStepsCommand(),
	)
	return root
}

func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.Load(a.envFile)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.LogFormat = a.logFormat
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("failed to configure logging: %w", err)
	}

	a.cfg = cfg
	a.logger = logger
	return nil
}
