package main

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/srg/thingy52mcp/internal/config"
	"github.com/srg/thingy52mcp/internal/session"
	"github.com/srg/thingy52mcp/internal/toolsurface"
	"github.com/srg/thingy52mcp/internal/transport/goble"
	"github.com/srg/thingy52mcp/internal/uuidregistry"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server over stdio",
	Long: `Starts the MCP bridge, listening for tool calls on stdin/stdout.
Connect an MCP client (Claude Desktop, an agent harness, etc.) to this
process to scan for, connect to, and drive a Thingy:52.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("name", "thingy52mcp", "MCP server name advertised to clients")
}

func runServe(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, err := configureLogger(cmd, cfg.LogLevel)
	if err != nil {
		return err
	}

	registry := uuidregistry.New()
	transport := goble.New(logger)
	sess := session.New(transport, registry, logger)
	toolSrv := toolsurface.New(sess)

	serverName, _ := cmd.Flags().GetString("name")
	mcpServer := toolsurface.Register(toolSrv, serverName, formatVersion(version))

	logger.WithField("version", version).Info("starting thingy52mcp MCP server")
	return server.ServeStdio(mcpServer)
}
