// Package mcp exposes the snippet store and search engine as MCP tools
// over stdio, so coding assistants can query the same engine the CLI
// uses.
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/snip-dev/snip/internal/config"
	"github.com/snip-dev/snip/internal/db"
	"github.com/snip-dev/snip/internal/search"
	"github.com/snip-dev/snip/internal/snippet"
)

const (
	// ServerName is the MCP server name.
	ServerName = "snip"
	// ServerVersion is the advertised server version.
	ServerVersion = "1.0.0"
)

// Server wraps the MCP server with application dependencies.
type Server struct {
	mcp      *server.MCPServer
	database *db.DB
	store    *snippet.Store
	engine   *search.Engine
	cfg      config.Config
}

// NewServer opens the snippet database and builds the MCP server.
func NewServer(cfg config.Config) (*Server, error) {
	database, err := db.Open(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	s := &Server{
		mcp:      server.NewMCPServer(ServerName, ServerVersion),
		database: database,
		store:    snippet.NewStore(database),
		engine:   search.NewEngine(cfg.Search),
		cfg:      cfg,
	}
	s.registerTools()
	return s, nil
}

// Serve runs the MCP server on stdio and blocks until shutdown.
func (s *Server) Serve() error {
	defer func() { _ = s.database.Close() }()
	return server.ServeStdio(s.mcp)
}

func (s *Server) registerTools() {
	s.mcp.AddTool(mcp.NewTool("search_snippets",
		mcp.WithDescription("Fuzzy-search stored snippets by name, tags, and content. Returns matches ranked by relevance."),
		mcp.WithString("query", mcp.Description("Free-text search query. Empty returns all snippets in browse order.")),
		mcp.WithString("language", mcp.Description("Only return snippets with this exact language tag.")),
		mcp.WithString("tag", mcp.Description("Only return snippets carrying this tag.")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of results.")),
	), s.handleSearch)

	s.mcp.AddTool(mcp.NewTool("get_snippet",
		mcp.WithDescription("Fetch a snippet's full content and metadata by name."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Exact snippet name.")),
	), s.handleGet)

	s.mcp.AddTool(mcp.NewTool("add_snippet",
		mcp.WithDescription("Store a new named snippet."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Unique snippet name.")),
		mcp.WithString("content", mcp.Required(), mcp.Description("Snippet content.")),
		mcp.WithString("language", mcp.Description("Language tag, e.g. go, python, bash.")),
		mcp.WithArray("tags", mcp.Description("Tags to attach."), mcp.Items(map[string]any{"type": "string"})),
	), s.handleAdd)

	s.mcp.AddTool(mcp.NewTool("list_tags",
		mcp.WithDescription("List every tag in use with its snippet count."),
	), s.handleListTags)
}
