package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/snip-dev/snip/internal/search"
	"github.com/snip-dev/snip/internal/snippet"
)

// searchHit is the wire shape of one search result.
type searchHit struct {
	Name     string   `json:"name"`
	Language string   `json:"language"`
	Tags     []string `json:"tags,omitempty"`
	Score    int      `json:"score"`
	Field    string   `json:"matched_field"`
	Preview  string   `json:"preview"`
}

func (s *Server) handleSearch(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := req.GetString("query", "")
	language := req.GetString("language", "")
	tag := req.GetString("tag", "")
	limit := req.GetInt("limit", s.cfg.DefaultLimit)

	corpus, err := s.store.List()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load snippets: %v", err)), nil
	}

	matches := s.engine.Search(corpus, search.Query{
		Text:     query,
		Language: language,
		Tag:      tag,
		Limit:    limit,
	})

	hits := make([]searchHit, 0, len(matches))
	for _, m := range matches {
		hits = append(hits, searchHit{
			Name:     m.Snippet.Name,
			Language: m.Snippet.Language,
			Tags:     m.Snippet.Tags,
			Score:    m.Score,
			Field:    string(m.Field),
			Preview:  preview(m.Snippet.Content, 120),
		})
	}

	out, err := json.MarshalIndent(hits, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode results: %v", err)), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) handleGet(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: name"), nil
	}

	sn, err := s.store.GetByName(name)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("snippet %q not found", name)), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\nLanguage: %s\n", sn.Name, sn.Language)
	if len(sn.Tags) > 0 {
		fmt.Fprintf(&b, "Tags: %s\n", strings.Join(sn.Tags, ", "))
	}
	fmt.Fprintf(&b, "Updated: %s\n\n%s", sn.UpdatedAt.Format("2006-01-02 15:04"), sn.Content)
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleAdd(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: name"), nil
	}
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: content"), nil
	}

	language := req.GetString("language", "")
	tags := req.GetStringSlice("tags", nil)

	sn := snippet.New(name, content, language, tags)
	if err := s.store.Create(sn); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to store snippet: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Stored snippet %q (id: %s)", sn.Name, sn.ID)), nil
}

func (s *Server) handleListTags(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	counts, err := s.store.TagCounts()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list tags: %v", err)), nil
	}
	if len(counts) == 0 {
		return mcp.NewToolResultText("No tags in use."), nil
	}

	var b strings.Builder
	for _, tc := range counts {
		fmt.Fprintf(&b, "%s (%d)\n", tc.Tag, tc.Count)
	}
	return mcp.NewToolResultText(b.String()), nil
}

// preview returns the first n bytes of content on a single line.
func preview(content string, n int) string {
	content = strings.ReplaceAll(content, "\n", " ")
	if len(content) > n {
		return content[:n-3] + "..."
	}
	return content
}
