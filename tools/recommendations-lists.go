package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Epistemic-Technology/scholar-mcp/internal/logger"
	"github.com/Epistemic-Technology/scholar-mcp/internal/s2"
	"github.com/Epistemic-Technology/scholar-mcp/models"
)

type RecommendationsFromListsQuery struct {
	PositivePaperIDs []string `json:"positive_paper_ids" jsonschema:"papers the recommendations should resemble"`
	NegativePaperIDs []string `json:"negative_paper_ids,omitempty" jsonschema:"papers the recommendations should not resemble; must not overlap the positive ids"`
	Limit            int      `json:"limit,omitempty" jsonschema:"number of recommendations (default 10)"`
}

type RecommendationsResponse struct {
	Papers []models.Paper `json:"papers,omitempty"`
}

func RecommendationsFromListsTool(limits s2.Limits) *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_semantic_scholar_paper_recommendations_from_lists",
		Description: "Recommend papers similar to a set of positive examples and unlike an optional set of negative examples.",
		InputSchema: inputSchema[RecommendationsFromListsQuery](
			itemCount("positive_paper_ids", 1, 0),
			intRange("limit", 1, limits.MaxRecommendationLimit),
		),
	}
}

func RecommendationsFromListsToolHandler(ctx context.Context, req *mcp.CallToolRequest, query RecommendationsFromListsQuery, client ScholarClient, log logger.Logger) (*mcp.CallToolResult, *RecommendationsResponse, error) {
	log.Info("get_semantic_scholar_paper_recommendations_from_lists tool called")

	papers, err := client.GetRecommendationsFromLists(ctx, s2.RecommendationRequest{
		PositivePaperIDs: query.PositivePaperIDs,
		NegativePaperIDs: query.NegativePaperIDs,
		Limit:            orDefault(query.Limit, DefaultNumResults),
	})
	if err != nil {
		return nil, nil, toolError(log, "get_semantic_scholar_paper_recommendations_from_lists", err)
	}

	log.Info("Recommended %d papers from %d positive and %d negative seeds", len(papers), len(query.PositivePaperIDs), len(query.NegativePaperIDs))
	return nil, &RecommendationsResponse{Papers: papers}, nil
}
