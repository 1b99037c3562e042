package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Epistemic-Technology/scholar-mcp/internal/logger"
	"github.com/Epistemic-Technology/scholar-mcp/internal/s2"
	"github.com/Epistemic-Technology/scholar-mcp/models"
)

type PaperSearchQuery struct {
	Query            string   `json:"query" jsonschema:"free-text search over titles and abstracts"`
	NumResults       int      `json:"num_results,omitempty" jsonschema:"number of papers to return (default 10)"`
	Offset           int      `json:"offset,omitempty" jsonschema:"index of the first result, for paging"`
	Year             string   `json:"year,omitempty" jsonschema:"publication year or range: 2019, 2016-2020, 2010- or -2015"`
	Venue            []string `json:"venue,omitempty" jsonschema:"restrict to these venues"`
	FieldsOfStudy    []string `json:"fields_of_study,omitempty" jsonschema:"restrict to these fields of study, e.g. Computer Science"`
	MinCitationCount int      `json:"min_citation_count,omitempty" jsonschema:"only papers with at least this many citations"`
	OpenAccessOnly   bool     `json:"open_access_only,omitempty" jsonschema:"only papers with a public PDF"`
}

type PaperSearchResponse struct {
	Total      int            `json:"total"`
	Offset     int            `json:"offset"`
	NextOffset int            `json:"next_offset,omitempty"`
	Papers     []models.Paper `json:"papers,omitempty"`
}

func PaperSearchTool(limits s2.Limits) *mcp.Tool {
	return &mcp.Tool{
		Name:        "search_semantic_scholar_papers",
		Description: "Search Semantic Scholar for papers matching a query. Returns titles, abstracts, authors, venues, years and citation counts, ranked by relevance.",
		InputSchema: inputSchema[PaperSearchQuery](
			nonEmpty("query"),
			intRange("num_results", 1, limits.MaxSearchLimit),
			atLeast("offset", 0),
			atLeast("min_citation_count", 0),
		),
	}
}

func PaperSearchToolHandler(ctx context.Context, req *mcp.CallToolRequest, query PaperSearchQuery, client ScholarClient, log logger.Logger) (*mcp.CallToolResult, *PaperSearchResponse, error) {
	log.Info("search_semantic_scholar_papers tool called")

	q := s2.PaperQuery{
		Query:            query.Query,
		Limit:            orDefault(query.NumResults, DefaultNumResults),
		Offset:           query.Offset,
		Year:             query.Year,
		Venues:           query.Venue,
		FieldsOfStudy:    query.FieldsOfStudy,
		MinCitationCount: query.MinCitationCount,
		OpenAccessOnly:   query.OpenAccessOnly,
	}
	result, err := client.SearchPapers(ctx, q)
	if err != nil {
		return nil, nil, toolError(log, "search_semantic_scholar_papers", err)
	}

	log.Info("Found %d papers for %s", len(result.Papers), q)
	return nil, &PaperSearchResponse{
		Total:      result.Total,
		Offset:     result.Offset,
		NextOffset: result.Next,
		Papers:     result.Papers,
	}, nil
}
