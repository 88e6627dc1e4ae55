package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsProject string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the ranked file table for a project",
	Long: `Stats loads the project and prints the full ranked file table with
per-file token counts and relevance scores. Use it to inspect exactly
which files would reach the model and in what order.`,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().StringVar(&statsProject, "project", ".",
		"Project directory to load")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	ctx, err := a.loader.Load(statsProject, a.cfg.Loader.MaxTokens)
	if err != nil {
		return err
	}

	fmt.Printf("Project: %s\n", ctx.ProjectPath)
	fmt.Printf("Budget:  %d tokens, used %d\n\n", ctx.MaxTokens, ctx.TotalTokens)

	if ctx.FileCount() == 0 {
		fmt.Println("No files fit the token budget.")
		return nil
	}

	fmt.Printf("%-4s %-50s %-12s %8s %7s\n", "#", "Path", "Language", "Tokens", "Score")
	for i, f := range ctx.Files {
		fmt.Printf("%-4d %-50s %-12s %8d %7.2f\n", i+1, f.Path, f.Language, f.Tokens, f.Score)
	}
	if ctx.Approximate {
		fmt.Println("\nToken counts are approximate (length heuristic).")
	}

	return nil
}
