package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/recall-labs/recall/internal/engine"
	"github.com/recall-labs/recall/internal/metadata"
)

// handleSearchKnowledge performs hybrid retrieval over the knowledge base.
func (s *Server) handleSearchKnowledge(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}

	collection := request.GetString("collection", s.defaultCollection)

	limit := request.GetInt("limit", s.defaultTopK)
	if limit <= 0 {
		limit = s.defaultTopK
	}

	results, err := s.engine.Search(ctx, collection, query, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	if len(results) == 0 {
		return mcp.NewToolResultText("No results found. The collection may be empty; use ingest_text or `recall ingest` to add documents."), nil
	}

	return mcp.NewToolResultText(formatSearchResults(results)), nil
}

// handleIngestText chunks and indexes a document.
func (s *Server) handleIngestText(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: text"), nil
	}

	collection := request.GetString("collection", s.defaultCollection)
	sourceID := request.GetString("source_id", "")

	res, err := s.engine.Ingest(ctx, collection, text, nil, sourceID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ingest failed: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"Ingested document %s into %q: %d parent chunk(s), %d child chunk(s).",
		res.SourceID, collection, res.Parents, res.Children,
	)), nil
}

// handleResetCollection deletes every document in a collection.
func (s *Server) handleResetCollection(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	collection, err := request.RequireString("collection")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: collection"), nil
	}

	if err := s.engine.Reset(ctx, collection); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("reset failed: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Collection %q has been reset.", collection)), nil
}

// formatSearchResults converts search results into a rich text format
// optimized for AI agent consumption.
func formatSearchResults(results []engine.SearchResult) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d result(s):\n", len(results)))

	for i, r := range results {
		sb.WriteString(fmt.Sprintf("\n--- Result %d ---\n", i+1))

		if path := metadata.String(r.Metadata, "path"); path != "" {
			sb.WriteString(fmt.Sprintf("File: %s\n", path))
		}
		if src := metadata.String(r.Metadata, metadata.KeySourceID); src != "" {
			sb.WriteString(fmt.Sprintf("Source: %s\n", src))
		}
		if lang := metadata.String(r.Metadata, "language"); lang != "" {
			sb.WriteString(fmt.Sprintf("Language: %s\n", lang))
		}
		sb.WriteString(fmt.Sprintf("Score: %.4f\n", r.Score))

		sb.WriteString("\n")
		sb.WriteString(r.Content)
		sb.WriteString("\n")
	}

	return sb.String()
}
