package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Epistemic-Technology/scholar-mcp/internal/logger"
	"github.com/Epistemic-Technology/scholar-mcp/internal/s2"
	"github.com/Epistemic-Technology/scholar-mcp/models"
)

type AuthorsBatchQuery struct {
	AuthorIDs []string `json:"author_ids" jsonschema:"Semantic Scholar author ids"`
	Fields    []string `json:"fields,omitempty" jsonschema:"fields to return; defaults to name, affiliations, counts and h-index"`
}

type AuthorsBatchResponse struct {
	Authors  map[string]*models.Author `json:"authors,omitempty"`
	NotFound []string                  `json:"not_found,omitempty"`
}

func AuthorsBatchTool(limits s2.Limits) *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_semantic_scholar_authors_batch",
		Description: "Get profiles for many authors in one call. Every requested id maps to its author, or null when unknown; unknown ids are also listed in not_found.",
		InputSchema: inputSchema[AuthorsBatchQuery](
			itemCount("author_ids", 1, limits.MaxAuthorBatch),
			itemsOneOf("fields", s2.AuthorFieldNames()...),
		),
	}
}

func AuthorsBatchToolHandler(ctx context.Context, req *mcp.CallToolRequest, query AuthorsBatchQuery, client ScholarClient, log logger.Logger) (*mcp.CallToolResult, *AuthorsBatchResponse, error) {
	log.Info("get_semantic_scholar_authors_batch tool called")

	fields, err := s2.ParseAuthorFields(query.Fields)
	if err != nil {
		return nil, nil, toolError(log, "get_semantic_scholar_authors_batch", err)
	}
	authors, err := client.GetAuthorsBatch(ctx, query.AuthorIDs, fields)
	if err != nil {
		return nil, nil, toolError(log, "get_semantic_scholar_authors_batch", err)
	}

	missing := s2.MissingIDs(query.AuthorIDs, authors)
	log.Info("Resolved %d of %d authors", len(authors)-len(missing), len(authors))
	return nil, &AuthorsBatchResponse{Authors: authors, NotFound: missing}, nil
}
