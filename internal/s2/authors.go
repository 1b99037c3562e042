package s2

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/Epistemic-Technology/scholar-mcp/models"
)

// AuthorSearchResult is one page of author search results.
type AuthorSearchResult struct {
	Total   int             `json:"total"`
	Offset  int             `json:"offset"`
	Next    int             `json:"next,omitempty"`
	Authors []models.Author `json:"authors"`
}

type authorSearchResponse struct {
	Total  int             `json:"total"`
	Offset int             `json:"offset"`
	Next   int             `json:"next"`
	Data   []models.Author `json:"data"`
}

// PaperPage is one page of a paper listing such as an author's publications.
type PaperPage struct {
	Offset int            `json:"offset"`
	Next   int            `json:"next,omitempty"`
	Papers []models.Paper `json:"papers"`
}

type paperPageResponse struct {
	Offset int            `json:"offset"`
	Next   int            `json:"next"`
	Data   []models.Paper `json:"data"`
}

func authorFieldsOrDefault(fields []AuthorField) ([]AuthorField, error) {
	if len(fields) == 0 {
		return DefaultAuthorFields, nil
	}
	for _, f := range fields {
		if !f.Valid() {
			return nil, invalidArgument("unknown author field %q", f)
		}
	}
	return fields, nil
}

// SearchAuthors finds authors by name.
func (c *Client) SearchAuthors(ctx context.Context, query string, limit, offset int) (*AuthorSearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, invalidArgument("query must not be empty")
	}
	if err := checkLimit("limit", limit, c.limits.MaxSearchLimit); err != nil {
		return nil, err
	}
	if err := checkOffset(offset); err != nil {
		return nil, err
	}

	params := url.Values{
		"query":  {query},
		"limit":  {itoa(limit)},
		"fields": {joinAuthorFields(DefaultAuthorFields)},
	}
	if offset > 0 {
		params.Set("offset", itoa(offset))
	}

	var resp authorSearchResponse
	if err := c.do(ctx, request{method: http.MethodGet, base: c.baseURL, path: "/author/search", params: params}, &resp); err != nil {
		return nil, err
	}

	authors := resp.Data
	if authors == nil {
		authors = []models.Author{}
	}
	if len(authors) > limit {
		authors = authors[:limit]
	}
	return &AuthorSearchResult{
		Total:   resp.Total,
		Offset:  resp.Offset,
		Next:    resp.Next,
		Authors: authors,
	}, nil
}

// GetAuthor fetches one author profile.
func (c *Client) GetAuthor(ctx context.Context, authorID string, fields []AuthorField) (*models.Author, error) {
	fields, err := authorFieldsOrDefault(fields)
	if err != nil {
		return nil, err
	}
	id, err := pathID("author id", authorID)
	if err != nil {
		return nil, err
	}

	params := url.Values{"fields": {joinAuthorFields(fields)}}
	var author models.Author
	if err := c.do(ctx, request{method: http.MethodGet, base: c.baseURL, path: "/author/" + id, params: params}, &author); err != nil {
		return nil, err
	}
	if author.AuthorID == "" {
		return nil, notFound("author %q not found", authorID)
	}
	return &author, nil
}

// GetAuthorPapers lists an author's papers.
func (c *Client) GetAuthorPapers(ctx context.Context, authorID string, limit, offset int) (*PaperPage, error) {
	id, err := pathID("author id", authorID)
	if err != nil {
		return nil, err
	}
	if err := checkLimit("limit", limit, c.limits.MaxAuthorPapersLimit); err != nil {
		return nil, err
	}
	if err := checkOffset(offset); err != nil {
		return nil, err
	}

	params := url.Values{
		"limit":  {itoa(limit)},
		"fields": {joinPaperFields(SearchPaperFields)},
	}
	if offset > 0 {
		params.Set("offset", itoa(offset))
	}

	var resp paperPageResponse
	if err := c.do(ctx, request{method: http.MethodGet, base: c.baseURL, path: "/author/" + id + "/papers", params: params}, &resp); err != nil {
		return nil, err
	}

	papers := resp.Data
	if papers == nil {
		papers = []models.Paper{}
	}
	if len(papers) > limit {
		papers = papers[:limit]
	}
	return &PaperPage{Offset: resp.Offset, Next: resp.Next, Papers: papers}, nil
}

// GetAuthorsBatch fetches many authors in one request. Like GetPapersBatch,
// every requested id has an entry and unresolved ids map to nil.
func (c *Client) GetAuthorsBatch(ctx context.Context, authorIDs []string, fields []AuthorField) (map[string]*models.Author, error) {
	if len(authorIDs) == 0 {
		return nil, invalidArgument("author ids must not be empty")
	}
	fields, err := authorFieldsOrDefault(fields)
	if err != nil {
		return nil, err
	}
	unique, aliases, err := normalizeIDs(authorIDs, strings.TrimSpace)
	if err != nil {
		return nil, err
	}
	if len(unique) > c.limits.MaxAuthorBatch {
		return nil, invalidArgument("at most %d author ids per batch, got %d", c.limits.MaxAuthorBatch, len(unique))
	}

	params := url.Values{"fields": {joinAuthorFields(fields)}}
	var resp []*models.Author
	err = c.do(ctx, request{
		method: http.MethodPost,
		base:   c.baseURL,
		path:   "/author/batch",
		params: params,
		body:   batchRequest{IDs: unique},
	}, &resp)
	if err != nil {
		return nil, err
	}
	if len(resp) != len(unique) {
		return nil, upstreamFailure(nil, "author batch returned %d records for %d ids", len(resp), len(unique))
	}

	byID := make(map[string]*models.Author, len(unique))
	for i, id := range unique {
		if a := resp[i]; a != nil && a.AuthorID != "" {
			byID[id] = a
		} else {
			byID[id] = nil
		}
	}
	result := make(map[string]*models.Author, len(aliases))
	for original, normalized := range aliases {
		result[original] = byID[normalized]
	}
	return result, nil
}
