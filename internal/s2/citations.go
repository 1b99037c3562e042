package s2

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Epistemic-Technology/scholar-mcp/models"
)

// CitationDirection selects which side of the citation graph to fetch.
type CitationDirection string

const (
	DirectionCitations  CitationDirection = "citations"
	DirectionReferences CitationDirection = "references"
	DirectionBoth       CitationDirection = "both"
)

// ParseCitationDirection validates a direction name. Empty means both.
func ParseCitationDirection(s string) (CitationDirection, error) {
	switch d := CitationDirection(s); d {
	case "":
		return DirectionBoth, nil
	case DirectionCitations, DirectionReferences, DirectionBoth:
		return d, nil
	default:
		return "", invalidArgument("direction must be one of citations, references or both, got %q", s)
	}
}

// edgeAttributes are requested alongside the linked paper's fields.
const edgeAttributes = "contexts,intents,isInfluential"

// CitationPage is one page of citation edges.
type CitationPage struct {
	Offset    int               `json:"offset"`
	Next      int               `json:"next,omitempty"`
	Citations []models.Citation `json:"citations"`
}

// CitationsAndReferences holds the requested sides of a paper's citation
// graph. A requested side is never nil; the other one is nil and left out
// of the JSON.
type CitationsAndReferences struct {
	PaperID    string            `json:"paperId"`
	Citations  []models.Citation `json:"citations,omitempty"`
	References []models.Citation `json:"references,omitempty"`
}

type edge struct {
	Contexts      []string      `json:"contexts"`
	Intents       []string      `json:"intents"`
	IsInfluential bool          `json:"isInfluential"`
	CitingPaper   *models.Paper `json:"citingPaper"`
	CitedPaper    *models.Paper `json:"citedPaper"`
}

type edgePageResponse struct {
	Offset int    `json:"offset"`
	Next   int    `json:"next"`
	Data   []edge `json:"data"`
}

// GetCitations lists papers citing paperID.
func (c *Client) GetCitations(ctx context.Context, paperID string, limit, offset int) (*CitationPage, error) {
	return c.edges(ctx, paperID, DirectionCitations, limit, offset)
}

// GetReferences lists papers cited by paperID.
func (c *Client) GetReferences(ctx context.Context, paperID string, limit, offset int) (*CitationPage, error) {
	return c.edges(ctx, paperID, DirectionReferences, limit, offset)
}

func (c *Client) edges(ctx context.Context, paperID string, dir CitationDirection, limit, offset int) (*CitationPage, error) {
	id, err := pathID("paper id", NormalizePaperID(paperID))
	if err != nil {
		return nil, err
	}
	if err := checkLimit("limit", limit, c.limits.MaxCitationLimit); err != nil {
		return nil, err
	}
	if err := checkOffset(offset); err != nil {
		return nil, err
	}

	params := url.Values{
		"limit":  {itoa(limit)},
		"fields": {edgeAttributes + "," + joinPaperFields(EdgePaperFields)},
	}
	if offset > 0 {
		params.Set("offset", itoa(offset))
	}

	var resp edgePageResponse
	path := "/paper/" + id + "/" + string(dir)
	if err := c.do(ctx, request{method: http.MethodGet, base: c.baseURL, path: path, params: params}, &resp); err != nil {
		if IsNotFound(err) {
			return nil, notFound("paper %q not found", paperID)
		}
		return nil, err
	}

	citations := make([]models.Citation, 0, len(resp.Data))
	for _, e := range resp.Data {
		linked := e.CitingPaper
		if dir == DirectionReferences {
			linked = e.CitedPaper
		}
		// Edges to papers outside the corpus come back without a record.
		if linked == nil {
			continue
		}
		citations = append(citations, models.Citation{
			Paper:         *linked,
			Contexts:      e.Contexts,
			Intents:       e.Intents,
			IsInfluential: e.IsInfluential,
		})
		if len(citations) == limit {
			break
		}
	}
	return &CitationPage{Offset: resp.Offset, Next: resp.Next, Citations: citations}, nil
}

// GetCitationsAndReferences fetches the requested sides of a paper's
// citation graph. With DirectionBoth the two requests run concurrently and
// the first failure cancels the other.
func (c *Client) GetCitationsAndReferences(ctx context.Context, paperID string, dir CitationDirection, limit int) (*CitationsAndReferences, error) {
	dir, err := ParseCitationDirection(string(dir))
	if err != nil {
		return nil, err
	}
	if NormalizePaperID(paperID) == "" {
		return nil, invalidArgument("paper id must not be empty")
	}
	if err := checkLimit("limit", limit, c.limits.MaxCitationLimit); err != nil {
		return nil, err
	}

	var dirs []CitationDirection
	if dir == DirectionBoth {
		dirs = []CitationDirection{DirectionCitations, DirectionReferences}
	} else {
		dirs = []CitationDirection{dir}
	}

	pages, err := parallel(ctx, dirs, len(dirs), func(ctx context.Context, d CitationDirection) (*CitationPage, error) {
		return c.edges(ctx, paperID, d, limit, 0)
	})
	if err != nil {
		return nil, err
	}

	result := &CitationsAndReferences{PaperID: paperID}
	for i, d := range dirs {
		switch d {
		case DirectionCitations:
			result.Citations = pages[i].Citations
		case DirectionReferences:
			result.References = pages[i].Citations
		}
	}
	return result, nil
}
