package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/recall-labs/recall/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing knowledge base tools for AI agents like Claude Code.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		eng, cleanup, err := buildEngine(cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		// Set version from the cmd package variable.
		mcpserver.Version = Version

		fmt.Fprintf(os.Stderr, "recall MCP server started on stdio (collection=%s)\n", cfg.Collection)

		srv := mcpserver.NewServer(eng, cfg.Collection, cfg.TopK)
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
