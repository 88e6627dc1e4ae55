package main

import (
	"github.com/spf13/cobra"

	"cbx/internal/mcp"
	"cbx/internal/version"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for editor and agent integration",
	Long: `Start the Model Context Protocol (MCP) server.

The server communicates over stdio using JSON-RPC 2.0 and exposes the
codebase analysis tools:
  - loadCodebase: load a project into the bounded analysis context
  - analyzeArchitecture, semanticSearch, suggestImprovements,
    explainCodeflow, codebaseSummary, askWithContext: model-backed analysis
  - exportSession: write the session to a readable document
  - getStats: session cache statistics

This command is typically invoked by MCP clients, not directly by users.`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	server := mcp.NewServer(version.Info(), mcp.Deps{
		Loader:           a.loader,
		Cache:            a.cache,
		Dispatcher:       a.dispatcher,
		Exporter:         a.exporter,
		DefaultMaxTokens: a.cfg.Loader.MaxTokens,
	}, a.logger)

	return server.Start()
}
