package s2

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/Epistemic-Technology/scholar-mcp/models"
)

// maxAutocompleteQuery is the prefix length the autocomplete endpoint looks at.
const maxAutocompleteQuery = 100

// yearFilterPattern accepts 2019, 2016-2020, 2010- and -2015.
var yearFilterPattern = regexp.MustCompile(`^(\d{4})?(-)?(\d{4})?$`)

// PaperQuery is a relevance search over papers.
type PaperQuery struct {
	Query  string
	Limit  int // 1..Limits.MaxSearchLimit
	Offset int

	// Optional filters applied by the remote index.
	Year             string   // 2019, 2016-2020, 2010- or -2015
	Venues           []string // Venue names or ISO4 abbreviations
	FieldsOfStudy    []string // e.g. Computer Science, Medicine
	PublicationTypes []string // e.g. JournalArticle, Review
	MinCitationCount int
	OpenAccessOnly   bool

	Fields []PaperField // Defaults to SearchPaperFields
}

// PaperSearchResult is one page of search results. Next is the offset of the
// following page, or zero when there is none.
type PaperSearchResult struct {
	Total  int            `json:"total"`
	Offset int            `json:"offset"`
	Next   int            `json:"next,omitempty"`
	Papers []models.Paper `json:"papers"`
}

type paperSearchResponse struct {
	Total  int            `json:"total"`
	Offset int            `json:"offset"`
	Next   int            `json:"next"`
	Data   []models.Paper `json:"data"`
}

// SearchPapers runs a relevance search. The result never holds more than the
// requested number of papers.
func (c *Client) SearchPapers(ctx context.Context, q PaperQuery) (*PaperSearchResult, error) {
	query := strings.TrimSpace(q.Query)
	if query == "" {
		return nil, invalidArgument("query must not be empty")
	}
	if err := checkLimit("limit", q.Limit, c.limits.MaxSearchLimit); err != nil {
		return nil, err
	}
	if err := checkOffset(q.Offset); err != nil {
		return nil, err
	}
	if q.MinCitationCount < 0 {
		return nil, invalidArgument("min citation count must not be negative, got %d", q.MinCitationCount)
	}
	fields, err := listingFields(q.Fields)
	if err != nil {
		return nil, err
	}

	params := url.Values{
		"query":  {query},
		"limit":  {itoa(q.Limit)},
		"fields": {joinPaperFields(fields)},
	}
	if q.Offset > 0 {
		params.Set("offset", itoa(q.Offset))
	}
	if err := applyPaperFilters(params, q); err != nil {
		return nil, err
	}

	var resp paperSearchResponse
	if err := c.do(ctx, request{method: http.MethodGet, base: c.baseURL, path: "/paper/search", params: params}, &resp); err != nil {
		return nil, err
	}

	papers := resp.Data
	if papers == nil {
		papers = []models.Paper{}
	}
	if len(papers) > q.Limit {
		papers = papers[:q.Limit]
	}
	return &PaperSearchResult{
		Total:  resp.Total,
		Offset: resp.Offset,
		Next:   resp.Next,
		Papers: papers,
	}, nil
}

func applyPaperFilters(params url.Values, q PaperQuery) error {
	if year := strings.TrimSpace(q.Year); year != "" {
		m := yearFilterPattern.FindStringSubmatch(year)
		if m == nil || (m[1] == "" && m[3] == "") || (m[1] != "" && m[3] != "" && m[2] == "") {
			return invalidArgument("year must look like 2019, 2016-2020, 2010- or -2015, got %q", q.Year)
		}
		if m[1] != "" && m[3] != "" && m[1] > m[3] {
			return invalidArgument("year range %q is reversed", q.Year)
		}
		params.Set("year", year)
	}
	if venues := joinNonEmpty(q.Venues); venues != "" {
		params.Set("venue", venues)
	}
	if fos := joinNonEmpty(q.FieldsOfStudy); fos != "" {
		params.Set("fieldsOfStudy", fos)
	}
	if types := joinNonEmpty(q.PublicationTypes); types != "" {
		params.Set("publicationTypes", types)
	}
	if q.MinCitationCount > 0 {
		params.Set("minCitationCount", itoa(q.MinCitationCount))
	}
	if q.OpenAccessOnly {
		// The API treats the presence of the parameter as the filter.
		params.Set("openAccessPdf", "")
	}
	return nil
}

func joinNonEmpty(values []string) string {
	var parts []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, ",")
}

// listingFields applies the listing default and rejects nested lists, which
// search and recommendation endpoints do not serve.
func listingFields(fields []PaperField) ([]PaperField, error) {
	if len(fields) == 0 {
		return SearchPaperFields, nil
	}
	for _, f := range fields {
		if !f.Valid() {
			return nil, invalidArgument("unknown paper field %q", f)
		}
		if f == PaperFieldCitations || f == PaperFieldReferences {
			return nil, invalidArgument("field %q is only available on single paper lookups", f)
		}
	}
	return fields, nil
}

func detailFields(fields []PaperField) ([]PaperField, error) {
	if len(fields) == 0 {
		return DefaultPaperFields, nil
	}
	for _, f := range fields {
		if !f.Valid() {
			return nil, invalidArgument("unknown paper field %q", f)
		}
	}
	return fields, nil
}

// GetPaper fetches one paper. paperID may be a Semantic Scholar id, a
// prefixed external id (DOI:, ARXIV:, PMID:, CorpusId:, ...), a bare DOI or
// an arXiv or doi.org link.
func (c *Client) GetPaper(ctx context.Context, paperID string, fields []PaperField) (*models.Paper, error) {
	fields, err := detailFields(fields)
	if err != nil {
		return nil, err
	}
	id, err := pathID("paper id", NormalizePaperID(paperID))
	if err != nil {
		return nil, err
	}

	params := url.Values{"fields": {joinPaperFields(fields)}}
	var paper models.Paper
	if err := c.do(ctx, request{method: http.MethodGet, base: c.baseURL, path: "/paper/" + id, params: params}, &paper); err != nil {
		return nil, err
	}
	if paper.PaperID == "" {
		return nil, notFound("paper %q not found", paperID)
	}
	normalizeNestedLists(&paper, fields)
	return &paper, nil
}

// normalizeNestedLists turns requested but null citation lists into empty
// ones.
func normalizeNestedLists(p *models.Paper, fields []PaperField) {
	for _, f := range fields {
		switch f {
		case PaperFieldCitations:
			if p.Citations == nil {
				p.Citations = []models.PaperRef{}
			}
		case PaperFieldReferences:
			if p.References == nil {
				p.References = []models.PaperRef{}
			}
		}
	}
}

type matchResponse struct {
	Data []models.Paper `json:"data"`
}

// MatchPaperByTitle returns the single paper whose title best matches title,
// with its match score set. A title without a match fails with not-found.
func (c *Client) MatchPaperByTitle(ctx context.Context, title string, fields []PaperField) (*models.Paper, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, invalidArgument("title must not be empty")
	}
	fields, err := listingFields(fields)
	if err != nil {
		return nil, err
	}

	params := url.Values{
		"query":  {title},
		"fields": {joinPaperFields(fields)},
	}
	var resp matchResponse
	err = c.do(ctx, request{method: http.MethodGet, base: c.baseURL, path: "/paper/search/match", params: params}, &resp)
	if err != nil {
		if IsNotFound(err) {
			return nil, notFound("no paper matches title %q", title)
		}
		return nil, err
	}
	if len(resp.Data) == 0 || resp.Data[0].PaperID == "" {
		return nil, notFound("no paper matches title %q", title)
	}
	return &resp.Data[0], nil
}

type autocompleteResponse struct {
	Matches []models.TitleSuggestion `json:"matches"`
}

// AutocompleteTitle suggests paper titles for a partial query. Only the first
// 100 characters of the query are considered.
func (c *Client) AutocompleteTitle(ctx context.Context, partial string) ([]models.TitleSuggestion, error) {
	partial = strings.TrimSpace(partial)
	if partial == "" {
		return nil, invalidArgument("query must not be empty")
	}
	partial = truncateRunes(partial, maxAutocompleteQuery)

	var resp autocompleteResponse
	params := url.Values{"query": {partial}}
	if err := c.do(ctx, request{method: http.MethodGet, base: c.baseURL, path: "/paper/autocomplete", params: params}, &resp); err != nil {
		return nil, err
	}

	matches := resp.Matches
	if matches == nil {
		matches = []models.TitleSuggestion{}
	}
	if len(matches) > c.limits.MaxAutocomplete {
		matches = matches[:c.limits.MaxAutocomplete]
	}
	return matches, nil
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}

type batchRequest struct {
	IDs []string `json:"ids"`
}

// GetPapersBatch fetches many papers in one request. The result has an entry
// for every requested id, keyed as the caller wrote it (trimmed); ids the
// API could not resolve map to nil. Duplicates are sent once.
func (c *Client) GetPapersBatch(ctx context.Context, paperIDs []string, fields []PaperField) (map[string]*models.Paper, error) {
	if len(paperIDs) == 0 {
		return nil, invalidArgument("paper ids must not be empty")
	}
	fields, err := detailFields(fields)
	if err != nil {
		return nil, err
	}
	unique, aliases, err := normalizeIDs(paperIDs, NormalizePaperID)
	if err != nil {
		return nil, err
	}
	if len(unique) > c.limits.MaxPaperBatch {
		return nil, invalidArgument("at most %d paper ids per batch, got %d", c.limits.MaxPaperBatch, len(unique))
	}

	params := url.Values{"fields": {joinPaperFields(fields)}}
	var resp []*models.Paper
	err = c.do(ctx, request{
		method: http.MethodPost,
		base:   c.baseURL,
		path:   "/paper/batch",
		params: params,
		body:   batchRequest{IDs: unique},
	}, &resp)
	if err != nil {
		return nil, err
	}
	if len(resp) != len(unique) {
		return nil, upstreamFailure(nil, "paper batch returned %d records for %d ids", len(resp), len(unique))
	}

	byID := make(map[string]*models.Paper, len(unique))
	for i, id := range unique {
		if p := resp[i]; p != nil && p.PaperID != "" {
			normalizeNestedLists(p, fields)
			byID[id] = p
		} else {
			byID[id] = nil
		}
	}
	result := make(map[string]*models.Paper, len(aliases))
	for original, normalized := range aliases {
		result[original] = byID[normalized]
	}
	return result, nil
}

// MissingIDs lists the requested ids that a batch lookup could not resolve,
// in request order.
func MissingIDs[T any](requested []string, found map[string]*T) []string {
	var missing []string
	seen := map[string]bool{}
	for _, id := range requested {
		id = strings.TrimSpace(id)
		if seen[id] {
			continue
		}
		seen[id] = true
		if found[id] == nil {
			missing = append(missing, id)
		}
	}
	return missing
}

func (q PaperQuery) String() string {
	return fmt.Sprintf("%q (limit %d, offset %d)", q.Query, q.Limit, q.Offset)
}
