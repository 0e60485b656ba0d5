// Package mcp exposes the catalog and image downloader as MCP tools over
// stdio or streamable HTTP.
package mcp

import (
	"github.com/lukman83/wb-scrap/internal/download"
	"github.com/lukman83/wb-scrap/internal/logger"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

const (
	serverName    = "wb-scrap"
	serverVersion = "1.0.0"
)

// Deps are the collaborators and defaults the tools run with. Catalogs
// are looked up in the platform registry by name.
type Deps struct {
	Platform   string
	City       string
	SPP        int
	Downloader *download.Downloader
	ImagesDir  string
	ImageSize  string
	MaxImages  int
	Log        *zap.Logger
}

// NewServer builds an MCP server with every tool registered.
func NewServer(d Deps) *server.MCPServer {
	s := server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)
	registerTools(s, newTools(d))
	return s
}

// Serve runs the MCP server on stdio until stdin closes.
func Serve(d Deps) error {
	logger.OrNop(d.Log).Info("mcp stdio server starting", zap.String("platform", d.Platform))
	return server.ServeStdio(NewServer(d))
}
