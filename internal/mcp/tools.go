package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) handleSearch(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}
	topK := req.GetInt("top_k", 10)

	results := s.engine.Search(query, topK)
	if len(results) == 0 {
		return mcp.NewToolResultText("No results found."), nil
	}

	var sb strings.Builder
	for i, r := range results {
		fmt.Fprintf(&sb, "%d. [%.2f %s] %s\n", i+1, r.Score, r.Match, r.Content)
		var meta []string
		if len(r.Topics) > 0 {
			meta = append(meta, "topics: "+strings.Join(r.Topics, ", "))
		}
		if len(r.People) > 0 {
			meta = append(meta, "people: "+strings.Join(r.People, ", "))
		}
		if len(r.Places) > 0 {
			meta = append(meta, "places: "+strings.Join(r.Places, ", "))
		}
		if len(r.Emotions) > 0 {
			meta = append(meta, "emotions: "+strings.Join(r.Emotions, ", "))
		}
		if len(meta) > 0 {
			fmt.Fprintf(&sb, "   %s\n", strings.Join(meta, " | "))
		}
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func (s *Server) handleStats(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats := s.stats.Compute()

	var sb strings.Builder
	fmt.Fprintf(&sb, "Entries:  %d\n", stats.TotalEntries)
	fmt.Fprintf(&sb, "Sessions: %d\n", stats.TotalSessions)
	fmt.Fprintf(&sb, "Topics:   %d distinct\n", stats.TotalTopics)
	fmt.Fprintf(&sb, "People:   %d distinct\n", stats.TotalPeople)

	if len(stats.TopTopics) > 0 {
		sb.WriteString("\nTop topics:\n")
		for _, c := range stats.TopTopics {
			fmt.Fprintf(&sb, "  %s (%d)\n", c.Label, c.Count)
		}
	}
	if len(stats.TopEmotions) > 0 {
		sb.WriteString("\nTop emotions:\n")
		for _, c := range stats.TopEmotions {
			fmt.Fprintf(&sb, "  %s (%d)\n", c.Label, c.Count)
		}
	}
	if len(stats.TopPeople) > 0 {
		sb.WriteString("\nTop people:\n")
		for _, c := range stats.TopPeople {
			fmt.Fprintf(&sb, "  %s (%d)\n", c.Label, c.Count)
		}
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func (s *Server) handleListSessions(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := req.GetInt("limit", 10)
	if limit <= 0 {
		limit = 10
	}

	sessions, err := s.store.Sessions()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list sessions: %v", err)), nil
	}
	if len(sessions) == 0 {
		return mcp.NewToolResultText("No sessions recorded."), nil
	}
	if len(sessions) > limit {
		sessions = sessions[:limit]
	}

	var sb strings.Builder
	for _, sess := range sessions {
		title := sess.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Fprintf(&sb, "[%s] %s (%s)\n  id: %s\n\n",
			sess.CreatedAt.Format("2006-01-02 15:04"), title, sess.Type, sess.ID)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func (s *Server) handleSuggestedQuestions(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	questions := s.assistant.SuggestedQuestions()

	var sb strings.Builder
	for _, q := range questions {
		fmt.Fprintf(&sb, "- %s\n", q)
	}
	return mcp.NewToolResultText(sb.String()), nil
}
