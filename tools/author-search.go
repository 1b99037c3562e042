package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Epistemic-Technology/scholar-mcp/internal/logger"
	"github.com/Epistemic-Technology/scholar-mcp/internal/s2"
	"github.com/Epistemic-Technology/scholar-mcp/models"
)

type AuthorSearchQuery struct {
	Query  string `json:"query" jsonschema:"author name to search for"`
	Limit  int    `json:"limit,omitempty" jsonschema:"number of authors to return (default 10)"`
	Offset int    `json:"offset,omitempty" jsonschema:"index of the first result, for paging"`
}

type AuthorSearchResponse struct {
	Total      int             `json:"total"`
	Offset     int             `json:"offset"`
	NextOffset int             `json:"next_offset,omitempty"`
	Authors    []models.Author `json:"authors,omitempty"`
}

func AuthorSearchTool(limits s2.Limits) *mcp.Tool {
	return &mcp.Tool{
		Name:        "search_semantic_scholar_authors",
		Description: "Search for authors by name. Returns author ids, names, affiliations and citation metrics.",
		InputSchema: inputSchema[AuthorSearchQuery](
			nonEmpty("query"),
			intRange("limit", 1, limits.MaxSearchLimit),
			atLeast("offset", 0),
		),
	}
}

func AuthorSearchToolHandler(ctx context.Context, req *mcp.CallToolRequest, query AuthorSearchQuery, client ScholarClient, log logger.Logger) (*mcp.CallToolResult, *AuthorSearchResponse, error) {
	log.Info("search_semantic_scholar_authors tool called")

	result, err := client.SearchAuthors(ctx, query.Query, orDefault(query.Limit, DefaultNumResults), query.Offset)
	if err != nil {
		return nil, nil, toolError(log, "search_semantic_scholar_authors", err)
	}

	log.Info("Found %d authors for %q", len(result.Authors), query.Query)
	return nil, &AuthorSearchResponse{
		Total:      result.Total,
		Offset:     result.Offset,
		NextOffset: result.Next,
		Authors:    result.Authors,
	}, nil
}
