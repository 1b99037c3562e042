package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Epistemic-Technology/scholar-mcp/internal/logger"
	"github.com/Epistemic-Technology/scholar-mcp/internal/s2"
	"github.com/Epistemic-Technology/scholar-mcp/models"
)

type PaperDetailsQuery struct {
	PaperID string   `json:"paper_id" jsonschema:"Semantic Scholar id, DOI, arXiv id or link, or a prefixed id such as PMID:19872477"`
	Fields  []string `json:"fields,omitempty" jsonschema:"fields to return; defaults to the full record"`
}

type PaperDetailsResponse struct {
	Paper *models.Paper `json:"paper"`
}

func PaperDetailsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_semantic_scholar_paper_details",
		Description: "Get detailed information about one paper: abstract, authors, venue, publication date, fields of study, citation and reference counts, open-access PDF and external ids.",
		InputSchema: inputSchema[PaperDetailsQuery](
			nonEmpty("paper_id"),
			itemsOneOf("fields", s2.PaperFieldNames()...),
		),
	}
}

func PaperDetailsToolHandler(ctx context.Context, req *mcp.CallToolRequest, query PaperDetailsQuery, client ScholarClient, log logger.Logger) (*mcp.CallToolResult, *PaperDetailsResponse, error) {
	log.Info("get_semantic_scholar_paper_details tool called")

	fields, err := s2.ParsePaperFields(query.Fields)
	if err != nil {
		return nil, nil, toolError(log, "get_semantic_scholar_paper_details", err)
	}
	paper, err := client.GetPaper(ctx, query.PaperID, fields)
	if err != nil {
		return nil, nil, toolError(log, "get_semantic_scholar_paper_details", err)
	}

	log.Info("Retrieved paper %s", paper.PaperID)
	return nil, &PaperDetailsResponse{Paper: paper}, nil
}
