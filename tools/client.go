package tools

import (
	"context"

	"github.com/Epistemic-Technology/scholar-mcp/internal/s2"
	"github.com/Epistemic-Technology/scholar-mcp/models"
)

// ScholarClient is the part of *s2.Client the tools call. Tests substitute a
// client pointed at a fake API.
type ScholarClient interface {
	Limits() s2.Limits
	SearchPapers(ctx context.Context, q s2.PaperQuery) (*s2.PaperSearchResult, error)
	GetPaper(ctx context.Context, paperID string, fields []s2.PaperField) (*models.Paper, error)
	MatchPaperByTitle(ctx context.Context, title string, fields []s2.PaperField) (*models.Paper, error)
	AutocompleteTitle(ctx context.Context, partial string) ([]models.TitleSuggestion, error)
	GetPapersBatch(ctx context.Context, paperIDs []string, fields []s2.PaperField) (map[string]*models.Paper, error)
	SearchAuthors(ctx context.Context, query string, limit, offset int) (*s2.AuthorSearchResult, error)
	GetAuthor(ctx context.Context, authorID string, fields []s2.AuthorField) (*models.Author, error)
	GetAuthorPapers(ctx context.Context, authorID string, limit, offset int) (*s2.PaperPage, error)
	GetAuthorsBatch(ctx context.Context, authorIDs []string, fields []s2.AuthorField) (map[string]*models.Author, error)
	GetCitations(ctx context.Context, paperID string, limit, offset int) (*s2.CitationPage, error)
	GetReferences(ctx context.Context, paperID string, limit, offset int) (*s2.CitationPage, error)
	GetCitationsAndReferences(ctx context.Context, paperID string, dir s2.CitationDirection, limit int) (*s2.CitationsAndReferences, error)
	SearchSnippets(ctx context.Context, query string, limit int) ([]models.Snippet, error)
	GetRecommendationsFromLists(ctx context.Context, req s2.RecommendationRequest) ([]models.Paper, error)
	GetRecommendationsFromPaper(ctx context.Context, paperID string, limit int) ([]models.Paper, error)
}

var _ ScholarClient = (*s2.Client)(nil)
