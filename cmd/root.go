package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "recall",
	Short: "Hybrid retrieval engine for personal knowledge bases",
	Long: `Recall ingests your documents into a two-tier chunk index and answers
natural language queries with parent-document retrieval: small chunks
are matched for precision, full parent chunks are returned for context.
It integrates with AI agents via MCP and exposes a REST API.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".recall.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
