package mcp

import "github.com/mark3labs/mcp-go/mcp"

// searchKnowledgeTool defines the search_knowledge MCP tool.
var searchKnowledgeTool = mcp.NewTool("search_knowledge",
	mcp.WithDescription("Search the knowledge base semantically. Returns the most relevant passages with their source metadata."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Natural language search query"),
	),
	mcp.WithString("collection",
		mcp.Description("Collection to search (defaults to the configured collection)"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of results to return (default 10)"),
	),
)

// ingestTextTool defines the ingest_text MCP tool.
var ingestTextTool = mcp.NewTool("ingest_text",
	mcp.WithDescription("Add a text document to the knowledge base. The text is chunked and indexed for later retrieval."),
	mcp.WithString("text",
		mcp.Required(),
		mcp.Description("Document text to ingest"),
	),
	mcp.WithString("collection",
		mcp.Description("Collection to ingest into (defaults to the configured collection)"),
	),
	mcp.WithString("source_id",
		mcp.Description("Stable identifier for the document; re-ingesting with the same id replaces it"),
	),
)

// resetCollectionTool defines the reset_collection MCP tool.
var resetCollectionTool = mcp.NewTool("reset_collection",
	mcp.WithDescription("Delete all documents from a collection. This cannot be undone."),
	mcp.WithString("collection",
		mcp.Required(),
		mcp.Description("Collection to reset"),
	),
)
