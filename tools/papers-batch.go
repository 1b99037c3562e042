package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Epistemic-Technology/scholar-mcp/internal/logger"
	"github.com/Epistemic-Technology/scholar-mcp/internal/s2"
	"github.com/Epistemic-Technology/scholar-mcp/models"
)

type PapersBatchQuery struct {
	PaperIDs []string `json:"paper_ids" jsonschema:"paper ids in any accepted form; duplicates are fetched once"`
	Fields   []string `json:"fields,omitempty" jsonschema:"fields to return; defaults to the full record"`
}

type PapersBatchResponse struct {
	Papers   map[string]*models.Paper `json:"papers,omitempty"`
	NotFound []string                 `json:"not_found,omitempty"`
}

func PapersBatchTool(limits s2.Limits) *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_semantic_scholar_papers_batch",
		Description: "Get details for many papers in one call. The result maps every requested id to its paper, or null when it could not be resolved; unresolved ids are also listed in not_found.",
		InputSchema: inputSchema[PapersBatchQuery](
			itemCount("paper_ids", 1, limits.MaxPaperBatch),
			itemsOneOf("fields", s2.PaperFieldNames()...),
		),
	}
}

func PapersBatchToolHandler(ctx context.Context, req *mcp.CallToolRequest, query PapersBatchQuery, client ScholarClient, log logger.Logger) (*mcp.CallToolResult, *PapersBatchResponse, error) {
	log.Info("get_semantic_scholar_papers_batch tool called")

	fields, err := s2.ParsePaperFields(query.Fields)
	if err != nil {
		return nil, nil, toolError(log, "get_semantic_scholar_papers_batch", err)
	}
	papers, err := client.GetPapersBatch(ctx, query.PaperIDs, fields)
	if err != nil {
		return nil, nil, toolError(log, "get_semantic_scholar_papers_batch", err)
	}

	missing := s2.MissingIDs(query.PaperIDs, papers)
	log.Info("Resolved %d of %d papers", len(papers)-len(missing), len(papers))
	return nil, &PapersBatchResponse{Papers: papers, NotFound: missing}, nil
}
