package main

import (
	"github.com/spf13/cobra"

	"cbx/internal/version"
)

var (
	// configDir is the CLI --config flag value (empty means default)
	configDir string
)

var rootCmd = &cobra.Command{
	Use:   "cbx",
	Short: "CBX - Codebase Context Bridge",
	Long: `CBX (Codebase Context Bridge) loads a project's source files into a
bounded-size, relevance-ranked text context and relays analysis prompts to a
remote large-language-model API. It runs either as an MCP stdio server for
editor/agent integration or as a direct CLI.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate(version.Full() + "\n")
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "",
		"Configuration directory (default: $CBX_HOME or ~/.cbx)")
}
