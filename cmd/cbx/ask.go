package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"cbx/internal/analyze"
)

var (
	askProject   string
	askMaxTokens int
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a question about a codebase",
	Long: `Ask loads the project, builds the ranked context, and relays the
question to the configured model with the full context attached.

The session cache lives per process, so ask always loads the project
first. For interactive multi-question sessions use the MCP server.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVar(&askProject, "project", ".",
		"Project directory to load")
	askCmd.Flags().IntVar(&askMaxTokens, "max-tokens", 0,
		"Token budget for the context (default: configured loader budget)")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	maxTokens := askMaxTokens
	if maxTokens <= 0 {
		maxTokens = a.cfg.Loader.MaxTokens
	}

	loaded, err := a.loader.Load(askProject, maxTokens)
	if err != nil {
		return err
	}
	a.cache.Put(loaded)

	question := strings.Join(args, " ")
	answer, err := a.dispatcher.Dispatch(cmd.Context(), analyze.TaskAsk, analyze.Params{
		Question: question,
	})
	if err != nil {
		return err
	}

	fmt.Println(answer)
	return nil
}
