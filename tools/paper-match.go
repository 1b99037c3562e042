package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Epistemic-Technology/scholar-mcp/internal/logger"
	"github.com/Epistemic-Technology/scholar-mcp/models"
)

type PaperMatchQuery struct {
	Query string `json:"query" jsonschema:"the full or near-full title of the paper"`
}

type PaperMatchResponse struct {
	Paper *models.Paper `json:"paper"`
}

func PaperMatchTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_semantic_scholar_paper_match",
		Description: "Find the single paper whose title best matches the query. Returns the paper with its match score, or a not-found error when nothing matches.",
		InputSchema: inputSchema[PaperMatchQuery](nonEmpty("query")),
	}
}

func PaperMatchToolHandler(ctx context.Context, req *mcp.CallToolRequest, query PaperMatchQuery, client ScholarClient, log logger.Logger) (*mcp.CallToolResult, *PaperMatchResponse, error) {
	log.Info("get_semantic_scholar_paper_match tool called")

	paper, err := client.MatchPaperByTitle(ctx, query.Query, nil)
	if err != nil {
		return nil, nil, toolError(log, "get_semantic_scholar_paper_match", err)
	}

	log.Info("Matched %q to paper %s (score %.1f)", query.Query, paper.PaperID, paper.MatchScore)
	return nil, &PaperMatchResponse{Paper: paper}, nil
}
