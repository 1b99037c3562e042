package s2

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommendationsFromListsRejectsBadInputWithoutNetwork(t *testing.T) {
	c := newTestClient(t, failOnCall(t))
	ctx := context.Background()

	tests := []struct {
		name string
		req  RecommendationRequest
	}{
		{"empty positives", RecommendationRequest{Limit: 10}},
		{"only negatives", RecommendationRequest{NegativePaperIDs: []string{"a"}, Limit: 10}},
		{"overlap", RecommendationRequest{PositivePaperIDs: []string{"a", "b"}, NegativePaperIDs: []string{"b"}, Limit: 10}},
		{"overlap after normalization", RecommendationRequest{PositivePaperIDs: []string{"10.1000/x"}, NegativePaperIDs: []string{"doi:10.1000/x"}, Limit: 10}},
		{"limit zero", RecommendationRequest{PositivePaperIDs: []string{"a"}}},
		{"limit too high", RecommendationRequest{PositivePaperIDs: []string{"a"}, Limit: 501}},
		{"blank id", RecommendationRequest{PositivePaperIDs: []string{" "}, Limit: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.GetRecommendationsFromLists(ctx, tt.req)
			require.Error(t, err)
			assert.True(t, IsInvalidArgument(err), "got %v", err)
		})
	}
}

func TestRecommendationsFromLists(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/recommendations/v1/papers/", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("limit"))

		var body map[string][]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []string{"a", "DOI:10.1000/x"}, body["positivePaperIds"])
		assert.Equal(t, []string{}, body["negativePaperIds"])

		writeJSON(t, w, 200, map[string]any{"recommendedPapers": fakePapers(3)})
	})

	papers, err := c.GetRecommendationsFromLists(context.Background(), RecommendationRequest{
		PositivePaperIDs: []string{"a", "10.1000/x", "a"},
		Limit:            2,
	})
	require.NoError(t, err)
	require.Len(t, papers, 2)
	assert.Equal(t, "p0", papers[0].PaperID)
}

func TestRecommendationsFromPaper(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/recommendations/v1/papers/forpaper/CorpusId:215416146", r.URL.Path)
		writeJSON(t, w, 200, map[string]any{"recommendedPapers": nil})
	})

	papers, err := c.GetRecommendationsFromPaper(context.Background(), "corpusid:215416146", 5)
	require.NoError(t, err)
	assert.NotNil(t, papers)
	assert.Empty(t, papers)
}
