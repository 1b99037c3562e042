package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Epistemic-Technology/scholar-mcp/internal/logger"
	"github.com/Epistemic-Technology/scholar-mcp/internal/s2"
)

type CitationsReferencesQuery struct {
	PaperID   string `json:"paper_id" jsonschema:"Semantic Scholar id, DOI, arXiv id or a prefixed id"`
	Direction string `json:"direction,omitempty" jsonschema:"citations, references or both (default both)"`
	Limit     int    `json:"limit,omitempty" jsonschema:"edges to return per direction (default 10)"`
}

func CitationsReferencesTool(limits s2.Limits) *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_semantic_scholar_citations_and_references",
		Description: "Get the papers citing a paper, the papers it cites, or both, with citation contexts, intents and influence flags.",
		InputSchema: inputSchema[CitationsReferencesQuery](
			nonEmpty("paper_id"),
			oneOf("direction", string(s2.DirectionCitations), string(s2.DirectionReferences), string(s2.DirectionBoth)),
			intRange("limit", 1, limits.MaxCitationLimit),
		),
	}
}

func CitationsReferencesToolHandler(ctx context.Context, req *mcp.CallToolRequest, query CitationsReferencesQuery, client ScholarClient, log logger.Logger) (*mcp.CallToolResult, *s2.CitationsAndReferences, error) {
	log.Info("get_semantic_scholar_citations_and_references tool called")

	dir, err := s2.ParseCitationDirection(query.Direction)
	if err != nil {
		return nil, nil, toolError(log, "get_semantic_scholar_citations_and_references", err)
	}
	result, err := client.GetCitationsAndReferences(ctx, query.PaperID, dir, orDefault(query.Limit, DefaultNumResults))
	if err != nil {
		return nil, nil, toolError(log, "get_semantic_scholar_citations_and_references", err)
	}

	log.Info("Retrieved %d citations and %d references for %s", len(result.Citations), len(result.References), result.PaperID)
	return nil, result, nil
}
