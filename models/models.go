package models

import (
	"encoding/json"
	"strconv"
)

// Paper is a normalized Semantic Scholar paper record. Field names follow the
// remote API so responses decode directly into it.
type Paper struct {
	PaperID                  string         `json:"paperId"`
	CorpusID                 int64          `json:"corpusId,omitempty"`
	ExternalIDs              ExternalIDs    `json:"externalIds,omitempty"`
	URL                      string         `json:"url,omitempty"`
	Title                    string         `json:"title"`
	Abstract                 string         `json:"abstract,omitempty"`
	Venue                    string         `json:"venue,omitempty"`
	Year                     int            `json:"year,omitempty"`
	PublicationDate          string         `json:"publicationDate,omitempty"` // YYYY-MM-DD
	PublicationTypes         []string       `json:"publicationTypes,omitempty"`
	Journal                  *Journal       `json:"journal,omitempty"`
	FieldsOfStudy            []string       `json:"fieldsOfStudy,omitempty"`
	Authors                  []Author       `json:"authors,omitempty"`
	CitationCount            int            `json:"citationCount"`
	ReferenceCount           int            `json:"referenceCount"`
	InfluentialCitationCount int            `json:"influentialCitationCount,omitempty"`
	IsOpenAccess             bool           `json:"isOpenAccess,omitempty"`
	OpenAccessPDF            *OpenAccessPDF `json:"openAccessPdf,omitempty"`
	TLDR                     *TLDR          `json:"tldr,omitempty"`
	Citations                []PaperRef     `json:"citations,omitempty"`
	References               []PaperRef     `json:"references,omitempty"`
	MatchScore               float64        `json:"matchScore,omitempty"` // Only set by title match
}

// PaperRef is a paper listed inside another paper's citations or
// references.
type PaperRef struct {
	PaperID string `json:"paperId"`
	Title   string `json:"title,omitempty"`
	Year    int    `json:"year,omitempty"`
}

// Journal describes where a paper was published.
type Journal struct {
	Name   string `json:"name,omitempty"`
	Volume string `json:"volume,omitempty"`
	Pages  string `json:"pages,omitempty"`
}

// OpenAccessPDF points to a freely available copy of a paper.
type OpenAccessPDF struct {
	URL    string `json:"url,omitempty"`
	Status string `json:"status,omitempty"`
}

// TLDR is the machine-generated one sentence summary of a paper.
type TLDR struct {
	Model string `json:"model,omitempty"`
	Text  string `json:"text,omitempty"`
}

// Author is a normalized author reference. Counts are only present when the
// request selected them.
type Author struct {
	AuthorID      string      `json:"authorId,omitempty"`
	Name          string      `json:"name"`
	URL           string      `json:"url,omitempty"`
	Affiliations  []string    `json:"affiliations,omitempty"`
	Homepage      string      `json:"homepage,omitempty"`
	ExternalIDs   ExternalIDs `json:"externalIds,omitempty"`
	PaperCount    int         `json:"paperCount,omitempty"`
	CitationCount int         `json:"citationCount,omitempty"`
	HIndex        int         `json:"hIndex,omitempty"`
}

// Citation is one edge of the citation graph together with the paper on the
// other end of it.
type Citation struct {
	Paper         Paper    `json:"paper"`
	Contexts      []string `json:"contexts,omitempty"`
	Intents       []string `json:"intents,omitempty"`
	IsInfluential bool     `json:"isInfluential,omitempty"`
}

// Snippet is a passage of a paper's full text matching a snippet query.
type Snippet struct {
	PaperID     string   `json:"paperId"` // CorpusId:<n>
	PaperTitle  string   `json:"paperTitle,omitempty"`
	Authors     []string `json:"authors,omitempty"`
	Text        string   `json:"text"`
	Section     string   `json:"section,omitempty"`
	Kind        string   `json:"kind,omitempty"` // title, abstract or body
	StartOffset int      `json:"startOffset,omitempty"`
	EndOffset   int      `json:"endOffset,omitempty"`
	Score       float64  `json:"score"`
}

// TitleSuggestion is a single paper title completion.
type TitleSuggestion struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	AuthorsYear string `json:"authorsYear,omitempty"`
}

// ExternalIDs maps an identifier namespace (DOI, ArXiv, PubMed, CorpusId, ...)
// to its value. The remote API mixes string, numeric and list values; all
// values are kept as strings.
type ExternalIDs map[string]string

// UnmarshalJSON accepts string, numeric and null values. A list keeps its
// first string element. Values of any other shape are dropped.
func (e *ExternalIDs) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*e = nil
		return nil
	}
	ids := make(ExternalIDs, len(raw))
	for key, value := range raw {
		switch v := value.(type) {
		case nil:
			continue
		case string:
			ids[key] = v
		case float64:
			ids[key] = strconv.FormatFloat(v, 'f', -1, 64)
		case []any:
			for _, item := range v {
				if str, ok := item.(string); ok && str != "" {
					ids[key] = str
					break
				}
			}
		}
	}
	*e = ids
	return nil
}

// DOI returns the paper's DOI if known.
func (e ExternalIDs) DOI() string {
	return e["DOI"]
}

// ArXiv returns the paper's arXiv identifier if known.
func (e ExternalIDs) ArXiv() string {
	return e["ArXiv"]
}

// AuthorNames returns the display names of the paper's authors in order.
func (p *Paper) AuthorNames() []string {
	names := make([]string, 0, len(p.Authors))
	for _, a := range p.Authors {
		if a.Name != "" {
			names = append(names, a.Name)
		}
	}
	return names
}
