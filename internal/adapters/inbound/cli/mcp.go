package cli

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	mcpadapter "github.com/xeenaa/implaudit/internal/adapters/inbound/mcp"
)

func newMCPCmd(global *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the implaudit MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd(global))
	return cmd
}

func newMCPServeCmd(global *globalOptions) *cobra.Command {
	var projectPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start implaudit MCP server (stdio)",
		Long:  "Start the implaudit MCP server using stdio transport. Assistants can run the audit and read the check registry.",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := global.logger()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			if projectPath == "" {
				projectPath = "."
			}
			s := mcpadapter.NewAuditMCPServer(projectPath, logger)
			return server.ServeStdio(s)
		},
	}

	cmd.Flags().StringVar(&projectPath, "path", "", "Project path (defaults to current working directory)")

	return cmd
}
