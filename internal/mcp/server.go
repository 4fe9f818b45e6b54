// Package mcp exposes the journal over the Model Context Protocol so
// external assistants can search memories and read statistics.
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/angeloromano11/bitiacora/internal/assistant"
	"github.com/angeloromano11/bitiacora/internal/memory"
)

// Server wires journal components into an MCP stdio server.
type Server struct {
	store     *memory.Store
	engine    *memory.Engine
	stats     *memory.Aggregator
	assistant *assistant.Assistant
	mcpServer *server.MCPServer
}

// NewServer creates an MCP server over the given store.
func NewServer(store *memory.Store, version string) *Server {
	engine := memory.NewEngine(store)
	stats := memory.NewAggregator(store)
	s := &Server{
		store:     store,
		engine:    engine,
		stats:     stats,
		assistant: assistant.New(nil, engine, stats),
	}

	s.mcpServer = server.NewMCPServer(
		"bitiacora",
		version,
		server.WithToolCapabilities(false),
	)
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("search_memories",
		mcp.WithDescription("Search stored journal memories by weighted relevance over content, topics, people, places, and emotions."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Search terms"),
		),
		mcp.WithNumber("top_k",
			mcp.Description("Maximum number of results (default 10)"),
		),
	), s.handleSearch)

	s.mcpServer.AddTool(mcp.NewTool("memory_stats",
		mcp.WithDescription("Summarize the journal: entry and session counts plus top topics, emotions, and people."),
	), s.handleStats)

	s.mcpServer.AddTool(mcp.NewTool("list_sessions",
		mcp.WithDescription("List recorded journal sessions, newest first."),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of sessions (default 10)"),
		),
	), s.handleListSessions)

	s.mcpServer.AddTool(mcp.NewTool("suggested_questions",
		mcp.WithDescription("Suggest questions to ask about the journal, derived from its dominant topics and emotions."),
	), s.handleSuggestedQuestions)
}

// Run serves MCP over stdin/stdout until the client disconnects.
func (s *Server) Run() error {
	return server.ServeStdio(s.mcpServer)
}
