package resources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Epistemic-Technology/scholar-mcp/internal/s2"
	"github.com/Epistemic-Technology/scholar-mcp/models"
)

const (
	// Scheme prefixes every resource URI served here.
	Scheme = "s2://"

	// edgeLimit is the number of citations or references a resource lists.
	edgeLimit = 100
)

// Client is the part of *s2.Client the resources read from.
type Client interface {
	GetPaper(ctx context.Context, paperID string, fields []s2.PaperField) (*models.Paper, error)
	GetCitations(ctx context.Context, paperID string, limit, offset int) (*s2.CitationPage, error)
	GetReferences(ctx context.Context, paperID string, limit, offset int) (*s2.CitationPage, error)
	GetAuthor(ctx context.Context, authorID string, fields []s2.AuthorField) (*models.Author, error)
}

// PaperResourceHandler serves papers and authors as read-only resources
type PaperResourceHandler struct {
	client Client
}

// NewPaperResourceHandler creates a new paper resource handler
func NewPaperResourceHandler(client Client) *PaperResourceHandler {
	return &PaperResourceHandler{client: client}
}

// Templates lists the URI templates ReadResource understands.
func Templates() []*mcp.ResourceTemplate {
	return []*mcp.ResourceTemplate{
		{
			URITemplate: Scheme + "paper/{paperId}",
			Name:        "s2-paper",
			Description: "A Semantic Scholar paper record. The id may be a paper id, a prefixed external id or a percent-encoded DOI",
			MIMEType:    "application/json",
		},
		{
			URITemplate: Scheme + "paper/{paperId}/citations",
			Name:        "s2-paper-citations",
			Description: "Papers citing the paper",
			MIMEType:    "application/json",
		},
		{
			URITemplate: Scheme + "paper/{paperId}/references",
			Name:        "s2-paper-references",
			Description: "Papers cited by the paper",
			MIMEType:    "application/json",
		},
		{
			URITemplate: Scheme + "author/{authorId}",
			Name:        "s2-author",
			Description: "A Semantic Scholar author profile",
			MIMEType:    "application/json",
		},
	}
}

// resourceRef is a parsed resource URI.
type resourceRef struct {
	kind string // paper or author
	id   string
	sub  string // "", citations or references
}

// parseURI splits s2://paper/<id>[/citations|/references] and
// s2://author/<id>. Paper ids may be DOIs, so every segment before an
// optional trailing sub-resource belongs to the id.
func parseURI(uri string) (resourceRef, bool) {
	rest, ok := strings.CutPrefix(uri, Scheme)
	if !ok {
		return resourceRef{}, false
	}
	kind, path, ok := strings.Cut(rest, "/")
	if !ok || path == "" {
		return resourceRef{}, false
	}

	ref := resourceRef{kind: kind}
	switch kind {
	case "paper":
		if i := strings.LastIndex(path, "/"); i > 0 {
			switch last := path[i+1:]; last {
			case "citations", "references":
				ref.sub = last
				path = path[:i]
			}
		}
	case "author":
		if strings.Contains(path, "/") {
			return resourceRef{}, false
		}
	default:
		return resourceRef{}, false
	}

	id, err := url.PathUnescape(path)
	if err != nil || strings.TrimSpace(id) == "" {
		return resourceRef{}, false
	}
	ref.id = id
	return ref, true
}

// ReadResource reads a specific resource by URI
func (h *PaperResourceHandler) ReadResource(ctx context.Context, uri string) (*mcp.ReadResourceResult, error) {
	ref, ok := parseURI(uri)
	if !ok {
		return nil, mcp.ResourceNotFoundError(uri)
	}

	var content any
	var err error
	switch {
	case ref.kind == "author":
		content, err = h.client.GetAuthor(ctx, ref.id, nil)
	case ref.sub == "citations":
		content, err = h.getEdges(ctx, ref.id, h.client.GetCitations)
	case ref.sub == "references":
		content, err = h.getEdges(ctx, ref.id, h.client.GetReferences)
	default:
		content, err = h.getPaperSummary(ctx, ref.id, uri)
	}
	if err != nil {
		if s2.IsNotFound(err) {
			return nil, mcp.ResourceNotFoundError(uri)
		}
		return nil, fmt.Errorf("failed to read %s: %w", uri, err)
	}

	data, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: "application/json",
				Text:     string(data),
			},
		},
	}, nil
}

type paperSummary struct {
	*models.Paper
	AvailableResources []string `json:"available_resources"`
}

func (h *PaperResourceHandler) getPaperSummary(ctx context.Context, paperID, uri string) (*paperSummary, error) {
	paper, err := h.client.GetPaper(ctx, paperID, nil)
	if err != nil {
		return nil, err
	}
	return &paperSummary{
		Paper: paper,
		AvailableResources: []string{
			uri + "/citations",
			uri + "/references",
		},
	}, nil
}

type edgeList struct {
	PaperID  string            `json:"paperId"`
	Returned int               `json:"returned"`
	More     bool              `json:"more"`
	Edges    []models.Citation `json:"edges"`
}

func (h *PaperResourceHandler) getEdges(ctx context.Context, paperID string, fetch func(context.Context, string, int, int) (*s2.CitationPage, error)) (*edgeList, error) {
	page, err := fetch(ctx, paperID, edgeLimit, 0)
	if err != nil {
		return nil, err
	}
	return &edgeList{
		PaperID:  paperID,
		Returned: len(page.Citations),
		More:     page.Next > 0,
		Edges:    page.Citations,
	}, nil
}
