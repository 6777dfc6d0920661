package main

import (
	"fmt"

	mcpserverlib "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/hiveworks/swarmrouter/internal/config"
	"github.com/hiveworks/swarmrouter/internal/mcpserver"
)

var (
	mcpCatalogPath string
	mcpLogPath     string
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the swarm over the Model Context Protocol on stdio",
	Long: `Run SwarmRouter as an MCP server on stdin/stdout.

Exposes the delegate_task, get_task_status, swarm_status, and list_tasks
tools, the swarm://status and swarm://tasks resources, and a
delegation-analysis prompt. Intended
to be launched by an MCP client such as Claude Desktop.`,
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().StringVar(&mcpCatalogPath, "catalog", "", "YAML dance catalog override")
	mcpCmd.Flags().StringVar(&mcpLogPath, "log", "", "Debug log file path")
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if mcpCatalogPath != "" {
		cfg.Catalog.Path = mcpCatalogPath
	}
	if mcpLogPath != "" {
		cfg.Log.Path = mcpLogPath
	}
	// stdio transport owns stdout; never hot-reload mid-session.
	cfg.Catalog.Watch = false

	eng, err := buildEngine(cfg)
	if err != nil {
		return err
	}
	defer eng.Close()

	s := mcpserver.New(eng.delegator)
	if err := mcpserverlib.ServeStdio(s); err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}
