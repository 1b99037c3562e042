package s2

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/Epistemic-Technology/scholar-mcp/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakePapers(n int) []map[string]any {
	papers := make([]map[string]any, n)
	for i := range papers {
		papers[i] = map[string]any{
			"paperId":       fmt.Sprintf("p%d", i),
			"title":         fmt.Sprintf("Paper %d", i),
			"year":          2000 + i,
			"citationCount": i,
			"authors":       []map[string]any{{"authorId": "a1", "name": "Ada Lovelace"}},
		}
	}
	return papers
}

func TestSearchPapersNeverExceedsLimit(t *testing.T) {
	for _, limit := range []int{1, 5, 37, 100} {
		t.Run(fmt.Sprintf("limit_%d", limit), func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/graph/v1/paper/search", r.URL.Path)
				assert.Equal(t, fmt.Sprint(limit), r.URL.Query().Get("limit"))
				// Over-return on purpose.
				writeJSON(t, w, 200, map[string]any{"total": 1000, "offset": 0, "next": limit, "data": fakePapers(limit + 3)})
			})

			res, err := c.SearchPapers(context.Background(), PaperQuery{Query: "transformers", Limit: limit})
			require.NoError(t, err)
			assert.Len(t, res.Papers, limit)
			assert.Equal(t, 1000, res.Total)
			assert.Equal(t, limit, res.Next)
		})
	}
}

func TestSearchPapersValidation(t *testing.T) {
	c := newTestClient(t, failOnCall(t))
	ctx := context.Background()

	tests := []struct {
		name  string
		query PaperQuery
	}{
		{"empty query", PaperQuery{Query: "  ", Limit: 10}},
		{"limit too high", PaperQuery{Query: "x", Limit: 101}},
		{"negative limit", PaperQuery{Query: "x", Limit: -1}},
		{"zero limit", PaperQuery{Query: "x"}},
		{"negative offset", PaperQuery{Query: "x", Limit: 10, Offset: -5}},
		{"bad year", PaperQuery{Query: "x", Limit: 10, Year: "last year"}},
		{"reversed years", PaperQuery{Query: "x", Limit: 10, Year: "2020-2010"}},
		{"nested field", PaperQuery{Query: "x", Limit: 10, Fields: []PaperField{PaperFieldCitations}}},
		{"unknown field", PaperQuery{Query: "x", Limit: 10, Fields: []PaperField{"bogus"}}},
		{"negative citations", PaperQuery{Query: "x", Limit: 10, MinCitationCount: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.SearchPapers(ctx, tt.query)
			require.Error(t, err)
			assert.True(t, IsInvalidArgument(err), "got %v", err)
		})
	}
}

func TestSearchPapersFilters(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "protein folding", q.Get("query"))
		assert.Equal(t, "20", q.Get("offset"))
		assert.Equal(t, "2016-2020", q.Get("year"))
		assert.Equal(t, "Nature,Science", q.Get("venue"))
		assert.Equal(t, "Biology", q.Get("fieldsOfStudy"))
		assert.Equal(t, "50", q.Get("minCitationCount"))
		assert.True(t, q.Has("openAccessPdf"))
		assert.True(t, strings.HasPrefix(q.Get("fields"), "paperId,"))
		writeJSON(t, w, 200, map[string]any{"total": 0, "offset": 20, "data": nil})
	})

	res, err := c.SearchPapers(context.Background(), PaperQuery{
		Query:            "protein folding",
		Limit:            10,
		Offset:           20,
		Year:             "2016-2020",
		Venues:           []string{"Nature", " Science ", ""},
		FieldsOfStudy:    []string{"Biology"},
		MinCitationCount: 50,
		OpenAccessOnly:   true,
	})
	require.NoError(t, err)
	assert.NotNil(t, res.Papers)
	assert.Empty(t, res.Papers)
	assert.Equal(t, 20, res.Offset)
}

func TestGetPaperNormalizesIdentifier(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/graph/v1/paper/DOI:10.1038/nature14539", r.URL.Path)
		assert.Contains(t, r.URL.Query().Get("fields"), "abstract")
		writeJSON(t, w, 200, map[string]any{
			"paperId":     "abc123",
			"corpusId":    42,
			"title":       "Deep learning",
			"abstract":    nil,
			"externalIds": map[string]any{"DOI": "10.1038/nature14539", "CorpusId": 42, "MAG": nil},
			"journal":     map[string]any{"name": "Nature", "volume": "521", "pages": "436-444"},
			"authors":     nil,
		})
	})

	p, err := c.GetPaper(context.Background(), "  https://doi.org/10.1038/nature14539 ", nil)
	require.NoError(t, err)
	assert.Equal(t, "abc123", p.PaperID)
	assert.Equal(t, int64(42), p.CorpusID)
	assert.Empty(t, p.Abstract)
	assert.Equal(t, "10.1038/nature14539", p.ExternalIDs.DOI())
	assert.Equal(t, "42", p.ExternalIDs["CorpusId"])
	assert.NotContains(t, p.ExternalIDs, "MAG")
	assert.Equal(t, "Nature", p.Journal.Name)
}

func TestGetPaperRequestedListsAreNonNil(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, 200, map[string]any{"paperId": "abc", "citations": nil, "references": nil})
	})
	p, err := c.GetPaper(context.Background(), "abc", []PaperField{PaperFieldTitle, PaperFieldCitations, PaperFieldReferences})
	require.NoError(t, err)
	assert.NotNil(t, p.Citations)
	assert.NotNil(t, p.References)
}

func TestGetPaperNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, 404, map[string]any{"error": "Paper with id 0000 not found"})
	})
	_, err := c.GetPaper(context.Background(), "0000", nil)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestMatchPaperByTitleRoundTrip(t *testing.T) {
	const title = "Attention Is All You Need"
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/graph/v1/paper/204e3073870fae3d05bcbc2f6a8e263d9b72e776":
			writeJSON(t, w, 200, map[string]any{"paperId": "204e3073870fae3d05bcbc2f6a8e263d9b72e776", "title": title})
		case "/graph/v1/paper/search/match":
			assert.Equal(t, title, r.URL.Query().Get("query"))
			writeJSON(t, w, 200, map[string]any{"data": []map[string]any{
				{"paperId": "204e3073870fae3d05bcbc2f6a8e263d9b72e776", "title": title, "matchScore": 181.3},
			}})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(500)
		}
	})

	ctx := context.Background()
	p, err := c.GetPaper(ctx, "204e3073870fae3d05bcbc2f6a8e263d9b72e776", nil)
	require.NoError(t, err)

	match, err := c.MatchPaperByTitle(ctx, p.Title, nil)
	require.NoError(t, err)
	assert.Equal(t, p.PaperID, match.PaperID)
	assert.InDelta(t, 181.3, match.MatchScore, 0.001)
}

func TestMatchPaperByTitleNoMatch(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"404", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(404)
			_, _ = w.Write([]byte(`{"error":"Title match not found"}`))
		}},
		{"empty data", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"data":[]}`))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, tt.handler)
			_, err := c.MatchPaperByTitle(context.Background(), "zzzz no such paper zzzz", nil)
			require.Error(t, err)
			assert.True(t, IsNotFound(err), "got %v", err)
		})
	}
}

func TestAutocompleteTitle(t *testing.T) {
	long := strings.Repeat("é", 150)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/graph/v1/paper/autocomplete", r.URL.Path)
		assert.Equal(t, 100, len([]rune(r.URL.Query().Get("query"))))
		matches := make([]map[string]any, 15)
		for i := range matches {
			matches[i] = map[string]any{"id": fmt.Sprint(i), "title": "t", "authorsYear": "Doe, 2020"}
		}
		writeJSON(t, w, 200, map[string]any{"matches": matches})
	})

	got, err := c.AutocompleteTitle(context.Background(), long)
	require.NoError(t, err)
	assert.Len(t, got, 10)
	assert.Equal(t, "Doe, 2020", got[0].AuthorsYear)

	_, err = c.AutocompleteTitle(context.Background(), " ")
	assert.True(t, IsInvalidArgument(err))
}

func TestGetPapersBatchMapsEveryRequestedID(t *testing.T) {
	var sent []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/graph/v1/paper/batch", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var req struct {
			IDs []string `json:"ids"`
		}
		require.NoError(t, json.Unmarshal(body, &req))
		sent = req.IDs

		out := make([]any, len(req.IDs))
		for i, id := range req.IDs {
			if id == "missing" {
				out[i] = nil
				continue
			}
			out[i] = map[string]any{"paperId": "s2-" + id, "title": id}
		}
		writeJSON(t, w, 200, out)
	})

	requested := []string{"abc", "10.1038/x", "missing", "abc", "DOI:10.1038/x"}
	got, err := c.GetPapersBatch(context.Background(), requested, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"abc", "DOI:10.1038/x", "missing"}, sent)
	require.Len(t, got, 4)
	for _, id := range requested {
		assert.Contains(t, got, id)
	}
	assert.Nil(t, got["missing"])
	assert.Equal(t, "s2-abc", got["abc"].PaperID)
	assert.Same(t, got["10.1038/x"], got["DOI:10.1038/x"])

	assert.Equal(t, []string{"missing"}, MissingIDs(requested, got))
}

func TestGetPapersBatchValidation(t *testing.T) {
	c := newTestClient(t, failOnCall(t))
	c.limits.MaxPaperBatch = 3
	ctx := context.Background()

	_, err := c.GetPapersBatch(ctx, nil, nil)
	assert.True(t, IsInvalidArgument(err))

	_, err = c.GetPapersBatch(ctx, []string{"a", "b", "c", "d"}, nil)
	assert.True(t, IsInvalidArgument(err))

	_, err = c.GetPapersBatch(ctx, []string{"a", " "}, nil)
	assert.True(t, IsInvalidArgument(err))

	_, err = c.GetPapersBatch(ctx, []string{"a"}, []PaperField{"nope"})
	assert.True(t, IsInvalidArgument(err))
}

func TestGetPapersBatchDuplicatesCountOnce(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, 200, []any{map[string]any{"paperId": "a"}, map[string]any{"paperId": "b"}})
	})
	c.limits.MaxPaperBatch = 2

	got, err := c.GetPapersBatch(context.Background(), []string{"a", "b", "a", " b "}, nil)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestGetPapersBatchLengthMismatch(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, 200, []any{map[string]any{"paperId": "a"}})
	})
	_, err := c.GetPapersBatch(context.Background(), []string{"a", "b"}, nil)
	require.Error(t, err)
	assert.Equal(t, KindUpstreamFailure, KindOf(err))
}

// TestLiveSearch exercises the public API. It only runs when
// SEMANTIC_SCHOLAR_LIVE_TESTS=1.
func TestLiveSearch(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping live API test in short mode")
	}
	if os.Getenv("SEMANTIC_SCHOLAR_LIVE_TESTS") != "1" {
		t.Skip("Skipping live API test: SEMANTIC_SCHOLAR_LIVE_TESTS not set")
	}

	opts := DefaultOptions()
	opts.APIKey = os.Getenv("SEMANTIC_SCHOLAR_API_KEY")
	opts.RateLimit = 1
	c := NewClient(opts, logger.NewNoOpLogger())

	res, err := c.SearchPapers(context.Background(), PaperQuery{Query: "attention is all you need", Limit: 3})
	if IsRateLimited(err) {
		t.Skipf("rate limited by the public API: %v", err)
	}
	require.NoError(t, err)
	assert.LessOrEqual(t, len(res.Papers), 3)
}
