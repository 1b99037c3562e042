package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Epistemic-Technology/scholar-mcp/internal/logger"
	"github.com/Epistemic-Technology/scholar-mcp/internal/s2"
	"github.com/Epistemic-Technology/scholar-mcp/models"
)

type AuthorDetailsQuery struct {
	AuthorID string   `json:"author_id" jsonschema:"Semantic Scholar author id"`
	Fields   []string `json:"fields,omitempty" jsonschema:"fields to return; defaults to name, affiliations, counts and h-index"`
}

type AuthorDetailsResponse struct {
	Author *models.Author `json:"author"`
}

func AuthorDetailsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_semantic_scholar_author_details",
		Description: "Get an author's profile: name, affiliations, homepage, paper and citation counts, and h-index.",
		InputSchema: inputSchema[AuthorDetailsQuery](
			nonEmpty("author_id"),
			itemsOneOf("fields", s2.AuthorFieldNames()...),
		),
	}
}

func AuthorDetailsToolHandler(ctx context.Context, req *mcp.CallToolRequest, query AuthorDetailsQuery, client ScholarClient, log logger.Logger) (*mcp.CallToolResult, *AuthorDetailsResponse, error) {
	log.Info("get_semantic_scholar_author_details tool called")

	fields, err := s2.ParseAuthorFields(query.Fields)
	if err != nil {
		return nil, nil, toolError(log, "get_semantic_scholar_author_details", err)
	}
	author, err := client.GetAuthor(ctx, query.AuthorID, fields)
	if err != nil {
		return nil, nil, toolError(log, "get_semantic_scholar_author_details", err)
	}

	log.Info("Retrieved author %s (%s)", author.AuthorID, author.Name)
	return nil, &AuthorDetailsResponse{Author: author}, nil
}
