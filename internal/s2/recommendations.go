package s2

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Epistemic-Technology/scholar-mcp/models"
)

// RecommendationRequest seeds recommendations with papers the caller likes
// and, optionally, papers they do not.
type RecommendationRequest struct {
	PositivePaperIDs []string
	NegativePaperIDs []string
	Limit            int // 1..Limits.MaxRecommendationLimit
}

type recommendationBody struct {
	PositivePaperIDs []string `json:"positivePaperIds"`
	NegativePaperIDs []string `json:"negativePaperIds"`
}

type recommendationResponse struct {
	RecommendedPapers []models.Paper `json:"recommendedPapers"`
}

// validate normalizes both id lists and rejects empty positives and
// overlapping sets.
func (r RecommendationRequest) validate(maxLimit int) (recommendationBody, error) {
	if len(r.PositivePaperIDs) == 0 {
		return recommendationBody{}, invalidArgument("at least one positive paper id is required")
	}
	if err := checkLimit("limit", r.Limit, maxLimit); err != nil {
		return recommendationBody{}, err
	}
	positives, _, err := normalizeIDs(r.PositivePaperIDs, NormalizePaperID)
	if err != nil {
		return recommendationBody{}, err
	}
	negatives := []string{}
	if len(r.NegativePaperIDs) > 0 {
		negatives, _, err = normalizeIDs(r.NegativePaperIDs, NormalizePaperID)
		if err != nil {
			return recommendationBody{}, err
		}
	}

	positive := make(map[string]bool, len(positives))
	for _, id := range positives {
		positive[id] = true
	}
	for _, id := range negatives {
		if positive[id] {
			return recommendationBody{}, invalidArgument("paper %q is listed as both positive and negative", id)
		}
	}
	return recommendationBody{PositivePaperIDs: positives, NegativePaperIDs: negatives}, nil
}

// GetRecommendationsFromLists returns papers similar to the positive examples
// and dissimilar to the negative ones, best first.
func (c *Client) GetRecommendationsFromLists(ctx context.Context, req RecommendationRequest) ([]models.Paper, error) {
	body, err := req.validate(c.limits.MaxRecommendationLimit)
	if err != nil {
		return nil, err
	}

	params := url.Values{
		"limit":  {itoa(req.Limit)},
		"fields": {joinPaperFields(SearchPaperFields)},
	}
	var resp recommendationResponse
	err = c.do(ctx, request{
		method: http.MethodPost,
		base:   c.recommendationsURL,
		path:   "/papers/",
		params: params,
		body:   body,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return capPapers(resp.RecommendedPapers, req.Limit), nil
}

// GetRecommendationsFromPaper returns papers similar to a single seed paper.
func (c *Client) GetRecommendationsFromPaper(ctx context.Context, paperID string, limit int) ([]models.Paper, error) {
	id, err := pathID("paper id", NormalizePaperID(paperID))
	if err != nil {
		return nil, err
	}
	if err := checkLimit("limit", limit, c.limits.MaxRecommendationLimit); err != nil {
		return nil, err
	}

	params := url.Values{
		"limit":  {itoa(limit)},
		"fields": {joinPaperFields(SearchPaperFields)},
	}
	var resp recommendationResponse
	path := "/papers/forpaper/" + id
	if err := c.do(ctx, request{method: http.MethodGet, base: c.recommendationsURL, path: path, params: params}, &resp); err != nil {
		return nil, err
	}
	return capPapers(resp.RecommendedPapers, limit), nil
}

func capPapers(papers []models.Paper, limit int) []models.Paper {
	if papers == nil {
		return []models.Paper{}
	}
	if len(papers) > limit {
		return papers[:limit]
	}
	return papers
}
