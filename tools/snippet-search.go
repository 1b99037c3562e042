package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Epistemic-Technology/scholar-mcp/internal/logger"
	"github.com/Epistemic-Technology/scholar-mcp/internal/s2"
	"github.com/Epistemic-Technology/scholar-mcp/models"
)

type SnippetSearchQuery struct {
	Query string `json:"query" jsonschema:"text to look for in paper bodies"`
	Limit int    `json:"limit,omitempty" jsonschema:"number of snippets to return (default 10)"`
}

type SnippetSearchResponse struct {
	Snippets []models.Snippet `json:"snippets,omitempty"`
}

func SnippetSearchTool(limits s2.Limits) *mcp.Tool {
	return &mcp.Tool{
		Name:        "search_semantic_scholar_snippets",
		Description: "Search the full text of open-access papers and return matching passages with their paper, section and relevance score. Useful for finding where a claim or method is discussed.",
		InputSchema: inputSchema[SnippetSearchQuery](
			nonEmpty("query"),
			intRange("limit", 1, limits.MaxSnippetLimit),
		),
	}
}

func SnippetSearchToolHandler(ctx context.Context, req *mcp.CallToolRequest, query SnippetSearchQuery, client ScholarClient, log logger.Logger) (*mcp.CallToolResult, *SnippetSearchResponse, error) {
	log.Info("search_semantic_scholar_snippets tool called")

	snippets, err := client.SearchSnippets(ctx, query.Query, orDefault(query.Limit, DefaultNumResults))
	if err != nil {
		return nil, nil, toolError(log, "search_semantic_scholar_snippets", err)
	}

	log.Info("Found %d snippets for %q", len(snippets), query.Query)
	return nil, &SnippetSearchResponse{Snippets: snippets}, nil
}
