// Package mcp exposes the matching and export pipeline to MCP clients.
package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"github.com/claude/setforge/internal/catalog"
	"github.com/claude/setforge/internal/pipeline"
)

// New creates an MCP server with all tools and resources registered.
func New(pipe *pipeline.Pipeline, index *catalog.Index, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("SetForge", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("SetForge workout canonicalization server. Match free-form exercise names against the canonical catalog, inspect alternatives, and export workouts as schedule YAML, wearable JSON, or interval XML."),
	)

	h := &handlers{pipe: pipe, index: index, log: log}

	s.AddTools(
		server.ServerTool{Tool: toolMatchExercises, Handler: h.matchExercises},
		server.ServerTool{Tool: toolSuggestAlternatives, Handler: h.suggestAlternatives},
		server.ServerTool{Tool: toolExportWorkout, Handler: h.exportWorkout},
		server.ServerTool{Tool: toolListCatalog, Handler: h.listCatalog},
	)

	s.AddResources(
		server.ServerResource{Resource: resCatalog, Handler: h.catalogResource},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	pipe  *pipeline.Pipeline
	index *catalog.Index
	log   *slog.Logger
}
