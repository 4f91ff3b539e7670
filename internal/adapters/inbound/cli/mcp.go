package cli

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	mcpadapter "github.com/designlint/designlint/internal/adapters/inbound/mcp"
	"github.com/designlint/designlint/internal/adapters/outbound/document"
	"github.com/designlint/designlint/internal/adapters/outbound/storage"
	"github.com/designlint/designlint/internal/logger"
)

func newMCPCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the designlint MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd(opts))
	return cmd
}

func newMCPServeCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve <document>",
		Short: "Start designlint MCP server (stdio)",
		Long:  "Start the designlint MCP server using stdio transport. This lets AI assistants lint a document, inspect layers, and manage ignored errors.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			doc, err := document.Load(args[0], document.WithLogger(logger.For(logger.ComponentDocument)))
			if err != nil {
				return err
			}
			logger.For(logger.ComponentMCP).Infow("Serving document over stdio", "document", doc.Name(), "nodes", doc.Len())
			s := mcpadapter.NewDesignLintMCPServer(doc, storage.New(cfg.StorageDir), cfg)
			return server.ServeStdio(s)
		},
	}
}
