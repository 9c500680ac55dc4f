package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pagectl/internal/tools"
)

const serverVersion = "0.1.0"

// mcpCmd serves the tool registry over MCP on stdio. Everything the CLI can
// do is exposed as a tool, so an agent connected here has the same surface
// as a shell user.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the page tools as an MCP server on stdio",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup()
		if err != nil {
			return err
		}

		reg := tools.NewRegistry(logger)
		tools.RegisterPageTools(reg, tools.Deps{
			Cfg:    a.cfg,
			Client: a.client,
			Pub:    a.pub,
			Log:    logger,
		})

		srv := mcp.NewServer(&mcp.Implementation{Name: "pagectl", Version: serverVersion}, nil)
		tools.RegisterMCP(srv, reg)

		logger.Info("mcp server starting", zap.Int("tools", reg.Count()))
		return srv.Run(cmd.Context(), &mcp.StdioTransport{})
	},
}
