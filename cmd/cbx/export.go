package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cbx/internal/export"
)

var (
	exportProject  string
	exportCompress bool
)

var exportCmd = &cobra.Command{
	Use:   "export <destination>",
	Short: "Export the loaded session to a markdown document",
	Long: `Export loads the project and writes the session to a markdown document:
project metadata, the ranked file list, and any recorded analyses.

A ".gz" destination suffix or the --compress flag gzips the output.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportProject, "project", ".",
		"Project directory to load")
	exportCmd.Flags().BoolVar(&exportCompress, "compress", false,
		"Gzip the exported document")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	loaded, err := a.loader.Load(exportProject, a.cfg.Loader.MaxTokens)
	if err != nil {
		return err
	}
	a.cache.Put(loaded)

	written, err := a.exporter.Export(export.Options{
		Destination: args[0],
		Compress:    exportCompress,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Session exported to %s\n", written)
	return nil
}
