package tools

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Epistemic-Technology/scholar-mcp/internal/citations"
	"github.com/Epistemic-Technology/scholar-mcp/internal/logger"
	"github.com/Epistemic-Technology/scholar-mcp/internal/s2"
	"github.com/Epistemic-Technology/scholar-mcp/models"
)

type BibliographyExportQuery struct {
	PaperIDs []string `json:"paper_ids" jsonschema:"papers to include, in the order they should appear"`
}

type BibliographyExportResponse struct {
	Format     string            `json:"format"`
	Content    string            `json:"content"`
	EntryCount int               `json:"entry_count"`
	Citekeys   map[string]string `json:"citekeys,omitempty"`
	NotFound   []string          `json:"not_found,omitempty"`
}

// bibliographyFields are the paper fields a BibTeX entry draws on.
var bibliographyFields = []s2.PaperField{
	s2.PaperFieldTitle, s2.PaperFieldAuthors, s2.PaperFieldYear,
	s2.PaperFieldPublicationDate, s2.PaperFieldPublicationTypes,
	s2.PaperFieldVenue, s2.PaperFieldJournal, s2.PaperFieldExternalIDs,
	s2.PaperFieldURL, s2.PaperFieldAbstract, s2.PaperFieldOpenAccessPDF,
}

func BibliographyExportTool(limits s2.Limits) *mcp.Tool {
	return &mcp.Tool{
		Name:        "export_semantic_scholar_bibtex",
		Description: "Export papers as a BibTeX bibliography. Citekeys follow the authorYear convention and are unique within the export. Ids that cannot be resolved are listed in not_found.",
		InputSchema: inputSchema[BibliographyExportQuery](
			itemCount("paper_ids", 1, limits.MaxPaperBatch),
		),
	}
}

func BibliographyExportToolHandler(ctx context.Context, req *mcp.CallToolRequest, query BibliographyExportQuery, client ScholarClient, log logger.Logger) (*mcp.CallToolResult, *BibliographyExportResponse, error) {
	log.Info("export_semantic_scholar_bibtex tool called")

	found, err := client.GetPapersBatch(ctx, query.PaperIDs, bibliographyFields)
	if err != nil {
		return nil, nil, toolError(log, "export_semantic_scholar_bibtex", err)
	}

	// Keep request order; the same paper may be requested under two ids.
	var papers []*models.Paper
	seen := map[string]bool{}
	for _, id := range query.PaperIDs {
		p := found[strings.TrimSpace(id)]
		if p == nil || seen[p.PaperID] {
			continue
		}
		seen[p.PaperID] = true
		papers = append(papers, p)
	}

	content, keys := citations.Bibliography(papers)
	log.Info("Generated BibTeX file with %d entries", len(papers))

	return nil, &BibliographyExportResponse{
		Format:     "bibtex",
		Content:    content,
		EntryCount: len(papers),
		Citekeys:   keys,
		NotFound:   s2.MissingIDs(query.PaperIDs, found),
	}, nil
}
