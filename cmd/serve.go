package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/robertwhiffin/ai-slide-generator-sub002/internal/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing presentation tools for AI agents like Claude Code.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		engine, database, err := openEngine(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		// Set version from the cmd package variable.
		mcpserver.Version = Version

		fmt.Fprintf(os.Stderr, "slidegen MCP server started on stdio (db=%s, provider=%s)\n", cfg.Database, cfg.Provider)

		srv := mcpserver.NewServer(engine)
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
