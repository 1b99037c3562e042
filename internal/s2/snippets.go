package s2

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/Epistemic-Technology/scholar-mcp/models"
)

const snippetFields = "snippet.text,snippet.snippetKind,snippet.section,snippet.snippetOffset"

// corpusId arrives as a number or a numeric string.
type snippetResponse struct {
	Data []struct {
		Score   float64 `json:"score"`
		Snippet struct {
			Text          string `json:"text"`
			SnippetKind   string `json:"snippetKind"`
			Section       string `json:"section"`
			SnippetOffset struct {
				Start int `json:"start"`
				End   int `json:"end"`
			} `json:"snippetOffset"`
		} `json:"snippet"`
		Paper struct {
			CorpusID json.Number `json:"corpusId"`
			Title    string      `json:"title"`
			Authors  []string    `json:"authors"`
		} `json:"paper"`
	} `json:"data"`
}

// SearchSnippets searches the full text of open papers and returns matching
// passages ranked by relevance.
func (c *Client) SearchSnippets(ctx context.Context, query string, limit int) ([]models.Snippet, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, invalidArgument("query must not be empty")
	}
	if err := checkLimit("limit", limit, c.limits.MaxSnippetLimit); err != nil {
		return nil, err
	}

	params := url.Values{
		"query":  {query},
		"limit":  {itoa(limit)},
		"fields": {snippetFields},
	}
	var resp snippetResponse
	if err := c.do(ctx, request{method: http.MethodGet, base: c.baseURL, path: "/snippet/search", params: params}, &resp); err != nil {
		return nil, err
	}

	snippets := make([]models.Snippet, 0, len(resp.Data))
	for _, d := range resp.Data {
		s := models.Snippet{
			PaperTitle:  d.Paper.Title,
			Authors:     d.Paper.Authors,
			Text:        d.Snippet.Text,
			Section:     d.Snippet.Section,
			Kind:        d.Snippet.SnippetKind,
			StartOffset: d.Snippet.SnippetOffset.Start,
			EndOffset:   d.Snippet.SnippetOffset.End,
			Score:       d.Score,
		}
		if id := d.Paper.CorpusID.String(); id != "" {
			s.PaperID = "CorpusId:" + id
		}
		snippets = append(snippets, s)
		if len(snippets) == limit {
			break
		}
	}
	return snippets, nil
}
