package cmd

import (
	"fmt"

	"github.com/lukman83/wb-scrap/internal/logger"
	mcpserver "github.com/lukman83/wb-scrap/mcp"
	"github.com/spf13/cobra"
)

var serveHTTPCmd = &cobra.Command{
	Use:   "serve-http",
	Short: "Start MCP HTTP server",
	Long:  "Start the MCP server over HTTP with /healthz and /metrics next to the /mcp endpoint.",
	RunE:  runServeHTTP,
}

func init() {
	serveHTTPCmd.Flags().String("port", "", "HTTP port (default from $PORT or 8080)")
	serveHTTPCmd.Flags().String("api-key", "", "Bearer token required on /mcp (default from WBSCRAP_API_KEY)")
	rootCmd.AddCommand(serveHTTPCmd)
}

func runServeHTTP(cmd *cobra.Command, args []string) error {
	a, err := setup()
	if err != nil {
		return err
	}

	port := cfg.HTTPPort
	if p, _ := cmd.Flags().GetString("port"); p != "" {
		port = p
	}
	apiKey := cfg.APIKey
	if k, _ := cmd.Flags().GetString("api-key"); k != "" {
		apiKey = k
	}
	platformName, _ := cmd.Flags().GetString("platform")

	addr := fmt.Sprintf(":%s", port)
	if apiKey == "" {
		logger.Warnw("serving /mcp without authentication", "addr", addr)
	}
	return mcpserver.ServeHTTP(cmd.Context(), addr, apiKey, a.mcpDeps(platformName))
}
