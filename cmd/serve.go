package cmd

import (
	"fmt"

	mcpserver "github.com/lukman83/wb-scrap/mcp"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start MCP stdio server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := setup()
	if err != nil {
		return err
	}
	platformName, _ := cmd.Flags().GetString("platform")

	fmt.Fprintln(cmd.ErrOrStderr(), "Starting wb-scrap MCP server on stdio...")
	if err := mcpserver.Serve(a.mcpDeps(platformName)); err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}
