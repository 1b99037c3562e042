package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Epistemic-Technology/scholar-mcp/internal/logger"
	"github.com/Epistemic-Technology/scholar-mcp/models"
)

type PaperAutocompleteQuery struct {
	Query string `json:"query" jsonschema:"partial title; only the first 100 characters are used"`
}

type PaperAutocompleteResponse struct {
	Matches []models.TitleSuggestion `json:"matches,omitempty"`
}

func PaperAutocompleteTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_semantic_scholar_paper_autocomplete",
		Description: "Suggest paper titles completing a partial query, with ids and an author/year hint. Useful for interactive lookup before fetching details.",
		InputSchema: inputSchema[PaperAutocompleteQuery](nonEmpty("query")),
	}
}

func PaperAutocompleteToolHandler(ctx context.Context, req *mcp.CallToolRequest, query PaperAutocompleteQuery, client ScholarClient, log logger.Logger) (*mcp.CallToolResult, *PaperAutocompleteResponse, error) {
	log.Info("get_semantic_scholar_paper_autocomplete tool called")

	matches, err := client.AutocompleteTitle(ctx, query.Query)
	if err != nil {
		return nil, nil, toolError(log, "get_semantic_scholar_paper_autocomplete", err)
	}
	return nil, &PaperAutocompleteResponse{Matches: matches}, nil
}
