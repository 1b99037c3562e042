package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Epistemic-Technology/scholar-mcp/internal/logger"
	"github.com/Epistemic-Technology/scholar-mcp/internal/s2"
)

type RecommendationsFromPaperQuery struct {
	PaperID string `json:"paper_id" jsonschema:"the paper to find similar work for"`
	Limit   int    `json:"limit,omitempty" jsonschema:"number of recommendations (default 10)"`
}

func RecommendationsFromPaperTool(limits s2.Limits) *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_semantic_scholar_paper_recommendations",
		Description: "Recommend papers similar to a single paper.",
		InputSchema: inputSchema[RecommendationsFromPaperQuery](
			nonEmpty("paper_id"),
			intRange("limit", 1, limits.MaxRecommendationLimit),
		),
	}
}

func RecommendationsFromPaperToolHandler(ctx context.Context, req *mcp.CallToolRequest, query RecommendationsFromPaperQuery, client ScholarClient, log logger.Logger) (*mcp.CallToolResult, *RecommendationsResponse, error) {
	log.Info("get_semantic_scholar_paper_recommendations tool called")

	papers, err := client.GetRecommendationsFromPaper(ctx, query.PaperID, orDefault(query.Limit, DefaultNumResults))
	if err != nil {
		return nil, nil, toolError(log, "get_semantic_scholar_paper_recommendations", err)
	}

	log.Info("Recommended %d papers similar to %s", len(papers), query.PaperID)
	return nil, &RecommendationsResponse{Papers: papers}, nil
}
