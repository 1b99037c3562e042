package resources

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Epistemic-Technology/scholar-mcp/internal/s2"
	"github.com/Epistemic-Technology/scholar-mcp/models"
)

// fakeClient serves fixed records and reports every other id as missing.
type fakeClient struct {
	papers    map[string]*models.Paper
	authors   map[string]*models.Author
	citations map[string][]models.Citation
	err       error
	lastID    string
}

func (f *fakeClient) GetPaper(ctx context.Context, paperID string, fields []s2.PaperField) (*models.Paper, error) {
	f.lastID = paperID
	if f.err != nil {
		return nil, f.err
	}
	if p, ok := f.papers[paperID]; ok {
		return p, nil
	}
	return nil, &s2.APIError{Kind: s2.KindNotFound, Message: "paper not found", StatusCode: 404}
}

func (f *fakeClient) GetCitations(ctx context.Context, paperID string, limit, offset int) (*s2.CitationPage, error) {
	f.lastID = paperID
	c, ok := f.citations[paperID]
	if !ok {
		return nil, &s2.APIError{Kind: s2.KindNotFound, Message: "paper not found", StatusCode: 404}
	}
	return &s2.CitationPage{Citations: c, Next: limit}, nil
}

func (f *fakeClient) GetReferences(ctx context.Context, paperID string, limit, offset int) (*s2.CitationPage, error) {
	f.lastID = paperID
	return &s2.CitationPage{Citations: []models.Citation{}}, nil
}

func (f *fakeClient) GetAuthor(ctx context.Context, authorID string, fields []s2.AuthorField) (*models.Author, error) {
	f.lastID = authorID
	if a, ok := f.authors[authorID]; ok {
		return a, nil
	}
	return nil, &s2.APIError{Kind: s2.KindNotFound, Message: "author not found", StatusCode: 404}
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		papers: map[string]*models.Paper{
			"p1":                  {PaperID: "p1", Title: "Attention Is All You Need"},
			"10.1038/nature14539": {PaperID: "p2", Title: "Deep learning"},
		},
		authors: map[string]*models.Author{
			"1741101": {AuthorID: "1741101", Name: "Oren Etzioni"},
		},
		citations: map[string][]models.Citation{
			"p1": {{Paper: models.Paper{PaperID: "c1", Title: "Citing"}, IsInfluential: true}},
		},
	}
}

func readJSON(t *testing.T, h *PaperResourceHandler, uri string) map[string]any {
	t.Helper()
	res, err := h.ReadResource(context.Background(), uri)
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	assert.Equal(t, uri, res.Contents[0].URI)
	assert.Equal(t, "application/json", res.Contents[0].MIMEType)

	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.Contents[0].Text), &out))
	return out
}

func TestReadPaperResource(t *testing.T) {
	h := NewPaperResourceHandler(newFakeClient())

	out := readJSON(t, h, "s2://paper/p1")
	assert.Equal(t, "p1", out["paperId"])
	assert.Equal(t, "Attention Is All You Need", out["title"])
	assert.Equal(t, []any{"s2://paper/p1/citations", "s2://paper/p1/references"}, out["available_resources"])
}

func TestReadPaperResourceWithDOI(t *testing.T) {
	for _, uri := range []string{"s2://paper/10.1038/nature14539", "s2://paper/10.1038%2Fnature14539"} {
		t.Run(uri, func(t *testing.T) {
			client := newFakeClient()
			h := NewPaperResourceHandler(client)

			out := readJSON(t, h, uri)
			assert.Equal(t, "p2", out["paperId"])
			assert.Equal(t, "10.1038/nature14539", client.lastID)
		})
	}
}

func TestReadCitationResources(t *testing.T) {
	client := newFakeClient()
	h := NewPaperResourceHandler(client)

	out := readJSON(t, h, "s2://paper/p1/citations")
	assert.Equal(t, "p1", out["paperId"])
	assert.EqualValues(t, 1, out["returned"])
	assert.Equal(t, true, out["more"])
	edges := out["edges"].([]any)
	require.Len(t, edges, 1)

	out = readJSON(t, h, "s2://paper/DOI:10.1038/nature14539/references")
	assert.Equal(t, "DOI:10.1038/nature14539", client.lastID)
	assert.Equal(t, []any{}, out["edges"])
}

func TestReadAuthorResource(t *testing.T) {
	h := NewPaperResourceHandler(newFakeClient())

	out := readJSON(t, h, "s2://author/1741101")
	assert.Equal(t, "Oren Etzioni", out["name"])
}

func TestReadResourceNotFound(t *testing.T) {
	h := NewPaperResourceHandler(newFakeClient())

	for _, uri := range []string{
		"s2://paper/unknown",
		"s2://paper/unknown/citations",
		"s2://author/0",
		"s2://author/a/b",
		"s2://venue/x",
		"s2://paper/",
		"pdf://p1",
	} {
		t.Run(uri, func(t *testing.T) {
			_, err := h.ReadResource(context.Background(), uri)
			require.Error(t, err)
			assert.Equal(t, mcp.ResourceNotFoundError(uri).Error(), err.Error())
		})
	}
}

func TestReadResourceUpstreamFailure(t *testing.T) {
	client := newFakeClient()
	client.err = &s2.APIError{Kind: s2.KindUpstreamFailure, Message: "bad gateway", StatusCode: 502}
	h := NewPaperResourceHandler(client)

	_, err := h.ReadResource(context.Background(), "s2://paper/p1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, s2.ErrUpstreamFailure))
}

func TestTemplates(t *testing.T) {
	var uris []string
	for _, tmpl := range Templates() {
		uris = append(uris, tmpl.URITemplate)
		assert.Equal(t, "application/json", tmpl.MIMEType)
	}
	assert.ElementsMatch(t, []string{
		"s2://paper/{paperId}",
		"s2://paper/{paperId}/citations",
		"s2://paper/{paperId}/references",
		"s2://author/{authorId}",
	}, uris)
}
