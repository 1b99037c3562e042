package s2

import (
	"context"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func citationHandler(t *testing.T, calls *int32) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		switch {
		case strings.HasPrefix(r.URL.Path, "/graph/v1/paper/fabricated"):
			writeJSON(t, w, 404, map[string]any{"error": "Paper with id fabricated not found"})
		case strings.HasSuffix(r.URL.Path, "/citations"):
			assert.Contains(t, r.URL.Query().Get("fields"), "contexts")
			writeJSON(t, w, 200, map[string]any{
				"offset": 0,
				"data": []map[string]any{
					{"contexts": []string{"as shown by"}, "intents": []string{"background"}, "isInfluential": true,
						"citingPaper": map[string]any{"paperId": "c1", "title": "Citing"}},
					{"contexts": nil, "citingPaper": nil},
				},
			})
		case strings.HasSuffix(r.URL.Path, "/references"):
			writeJSON(t, w, 200, map[string]any{"offset": 0, "data": nil})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(500)
		}
	}
}

func TestGetCitationsAndReferencesBoth(t *testing.T) {
	var calls int32
	c := newTestClient(t, citationHandler(t, &calls))

	res, err := c.GetCitationsAndReferences(context.Background(), "abc", DirectionBoth, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))

	require.NotNil(t, res.Citations)
	require.NotNil(t, res.References)
	assert.Empty(t, res.References)
	require.Len(t, res.Citations, 1)
	assert.Equal(t, "c1", res.Citations[0].Paper.PaperID)
	assert.True(t, res.Citations[0].IsInfluential)
	assert.Equal(t, []string{"background"}, res.Citations[0].Intents)
}

func TestGetCitationsAndReferencesSingleDirection(t *testing.T) {
	var calls int32
	c := newTestClient(t, citationHandler(t, &calls))

	res, err := c.GetCitationsAndReferences(context.Background(), "abc", DirectionReferences, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
	assert.NotNil(t, res.References)
	assert.Nil(t, res.Citations)
}

func TestGetCitationsAndReferencesFabricatedID(t *testing.T) {
	var calls int32
	c := newTestClient(t, citationHandler(t, &calls))

	_, err := c.GetCitationsAndReferences(context.Background(), "fabricated", DirectionBoth, 10)
	require.Error(t, err)
	assert.True(t, IsNotFound(err), "got %v", err)
}

func TestGetCitationsAndReferencesValidation(t *testing.T) {
	c := newTestClient(t, failOnCall(t))
	ctx := context.Background()

	_, err := c.GetCitationsAndReferences(ctx, "abc", "sideways", 10)
	assert.True(t, IsInvalidArgument(err))

	_, err = c.GetCitationsAndReferences(ctx, "", DirectionBoth, 10)
	assert.True(t, IsInvalidArgument(err))

	_, err = c.GetCitationsAndReferences(ctx, "abc", DirectionBoth, 0)
	assert.True(t, IsInvalidArgument(err))

	_, err = c.GetCitations(ctx, "abc", 10, -1)
	assert.True(t, IsInvalidArgument(err))
}

func TestParseCitationDirection(t *testing.T) {
	d, err := ParseCitationDirection("")
	require.NoError(t, err)
	assert.Equal(t, DirectionBoth, d)

	d, err = ParseCitationDirection("citations")
	require.NoError(t, err)
	assert.Equal(t, DirectionCitations, d)

	_, err = ParseCitationDirection("Citations")
	assert.Error(t, err)
}

func TestGetReferencesUsesCitedPaper(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/graph/v1/paper/ARXIV:1706.03762/references", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("offset"))
		writeJSON(t, w, 200, map[string]any{"offset": 5, "next": 7, "data": []map[string]any{
			{"citedPaper": map[string]any{"paperId": "r1"}},
			{"citedPaper": map[string]any{"paperId": "r2"}},
		}})
	})

	page, err := c.GetReferences(context.Background(), "https://arxiv.org/abs/1706.03762", 2, 5)
	require.NoError(t, err)
	assert.Equal(t, 7, page.Next)
	require.Len(t, page.Citations, 2)
	assert.Equal(t, "r2", page.Citations[1].Paper.PaperID)
}
