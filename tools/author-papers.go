package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Epistemic-Technology/scholar-mcp/internal/logger"
	"github.com/Epistemic-Technology/scholar-mcp/internal/s2"
	"github.com/Epistemic-Technology/scholar-mcp/models"
)

type AuthorPapersQuery struct {
	AuthorID string `json:"author_id" jsonschema:"Semantic Scholar author id"`
	Limit    int    `json:"limit,omitempty" jsonschema:"number of papers to return (default 10)"`
	Offset   int    `json:"offset,omitempty" jsonschema:"index of the first paper, for paging"`
}

type AuthorPapersResponse struct {
	Offset     int            `json:"offset"`
	NextOffset int            `json:"next_offset,omitempty"`
	Papers     []models.Paper `json:"papers,omitempty"`
}

func AuthorPapersTool(limits s2.Limits) *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_semantic_scholar_author_papers",
		Description: "List papers written by an author, one page at a time. Use next_offset to fetch the following page.",
		InputSchema: inputSchema[AuthorPapersQuery](
			nonEmpty("author_id"),
			intRange("limit", 1, limits.MaxAuthorPapersLimit),
			atLeast("offset", 0),
		),
	}
}

func AuthorPapersToolHandler(ctx context.Context, req *mcp.CallToolRequest, query AuthorPapersQuery, client ScholarClient, log logger.Logger) (*mcp.CallToolResult, *AuthorPapersResponse, error) {
	log.Info("get_semantic_scholar_author_papers tool called")

	page, err := client.GetAuthorPapers(ctx, query.AuthorID, orDefault(query.Limit, DefaultNumResults), query.Offset)
	if err != nil {
		return nil, nil, toolError(log, "get_semantic_scholar_author_papers", err)
	}

	log.Info("Retrieved %d papers for author %s", len(page.Papers), query.AuthorID)
	return nil, &AuthorPapersResponse{
		Offset:     page.Offset,
		NextOffset: page.Next,
		Papers:     page.Papers,
	}, nil
}
