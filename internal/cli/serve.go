// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/chatsql/chatsql-mcp/internal/extraction"
	"github.com/chatsql/chatsql-mcp/internal/httpapi"
	"github.com/chatsql/chatsql-mcp/internal/tool"
)

func newServeCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a long-lived extraction server",
	}
	cmd.AddCommand(newServeMCPCommand(a), newServeHTTPCommand(a))
	return cmd
}

func newServeMCPCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the extract_quiz_document tool over MCP stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			server := tool.NewServer(a.logger, a.version)
			a.logger.Info("starting mcp server on stdio")
			if err := server.Run(cmd.Context(), &mcp.StdioTransport{}); err != nil {
				return fmt.Errorf("mcp server: %w", err)
			}
			return nil
		},
	}
}

func newServeHTTPCommand(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "http",
		Short: "Serve POST /v1/extract over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = a.cfg.HTTPAddr
			}
			return httpapi.NewServer(a.logger, addr, a.cfg.MaxInputBytes).Run(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address; defaults to CHATSQL_HTTP_ADDR")
	return cmd
}

func newStepsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "steps",
		Short: "List the normalization steps in the order they run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for i, name := range extraction.DefaultPipeline().RegisteredSteps() {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", i+1, name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
