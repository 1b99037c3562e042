package s2

import (
	"sort"
	"strings"
)

// PaperField is a selectable attribute of a paper record.
type PaperField string

const (
	PaperFieldPaperID                  PaperField = "paperId"
	PaperFieldCorpusID                 PaperField = "corpusId"
	PaperFieldExternalIDs              PaperField = "externalIds"
	PaperFieldURL                      PaperField = "url"
	PaperFieldTitle                    PaperField = "title"
	PaperFieldAbstract                 PaperField = "abstract"
	PaperFieldVenue                    PaperField = "venue"
	PaperFieldYear                     PaperField = "year"
	PaperFieldPublicationDate          PaperField = "publicationDate"
	PaperFieldPublicationTypes         PaperField = "publicationTypes"
	PaperFieldJournal                  PaperField = "journal"
	PaperFieldFieldsOfStudy            PaperField = "fieldsOfStudy"
	PaperFieldAuthors                  PaperField = "authors"
	PaperFieldCitationCount            PaperField = "citationCount"
	PaperFieldReferenceCount           PaperField = "referenceCount"
	PaperFieldInfluentialCitationCount PaperField = "influentialCitationCount"
	PaperFieldIsOpenAccess             PaperField = "isOpenAccess"
	PaperFieldOpenAccessPDF            PaperField = "openAccessPdf"
	PaperFieldTLDR                     PaperField = "tldr"
	PaperFieldCitations                PaperField = "citations"
	PaperFieldReferences               PaperField = "references"
)

// AuthorField is a selectable attribute of an author record.
type AuthorField string

const (
	AuthorFieldAuthorID      AuthorField = "authorId"
	AuthorFieldExternalIDs   AuthorField = "externalIds"
	AuthorFieldURL           AuthorField = "url"
	AuthorFieldName          AuthorField = "name"
	AuthorFieldAffiliations  AuthorField = "affiliations"
	AuthorFieldHomepage      AuthorField = "homepage"
	AuthorFieldPaperCount    AuthorField = "paperCount"
	AuthorFieldCitationCount AuthorField = "citationCount"
	AuthorFieldHIndex        AuthorField = "hIndex"
)

var paperFields = map[PaperField]bool{
	PaperFieldPaperID: true, PaperFieldCorpusID: true, PaperFieldExternalIDs: true,
	PaperFieldURL: true, PaperFieldTitle: true, PaperFieldAbstract: true,
	PaperFieldVenue: true, PaperFieldYear: true, PaperFieldPublicationDate: true,
	PaperFieldPublicationTypes: true, PaperFieldJournal: true, PaperFieldFieldsOfStudy: true,
	PaperFieldAuthors: true, PaperFieldCitationCount: true, PaperFieldReferenceCount: true,
	PaperFieldInfluentialCitationCount: true, PaperFieldIsOpenAccess: true,
	PaperFieldOpenAccessPDF: true, PaperFieldTLDR: true, PaperFieldCitations: true,
	PaperFieldReferences: true,
}

var authorFields = map[AuthorField]bool{
	AuthorFieldAuthorID: true, AuthorFieldExternalIDs: true, AuthorFieldURL: true,
	AuthorFieldName: true, AuthorFieldAffiliations: true, AuthorFieldHomepage: true,
	AuthorFieldPaperCount: true, AuthorFieldCitationCount: true, AuthorFieldHIndex: true,
}

var (
	// DefaultPaperFields are requested for single paper lookups and batches.
	DefaultPaperFields = []PaperField{
		PaperFieldPaperID, PaperFieldCorpusID, PaperFieldExternalIDs, PaperFieldURL,
		PaperFieldTitle, PaperFieldAbstract, PaperFieldVenue, PaperFieldYear,
		PaperFieldPublicationDate, PaperFieldPublicationTypes, PaperFieldJournal,
		PaperFieldFieldsOfStudy, PaperFieldAuthors, PaperFieldCitationCount,
		PaperFieldReferenceCount, PaperFieldInfluentialCitationCount,
		PaperFieldIsOpenAccess, PaperFieldOpenAccessPDF,
	}

	// SearchPaperFields are requested for search, recommendation and listing
	// endpoints, which reject nested citation lists.
	SearchPaperFields = []PaperField{
		PaperFieldPaperID, PaperFieldTitle, PaperFieldAbstract, PaperFieldYear,
		PaperFieldAuthors, PaperFieldURL, PaperFieldVenue, PaperFieldPublicationTypes,
		PaperFieldCitationCount, PaperFieldReferenceCount, PaperFieldExternalIDs,
	}

	// EdgePaperFields are requested for the paper on the far side of a
	// citation edge.
	EdgePaperFields = []PaperField{
		PaperFieldPaperID, PaperFieldTitle, PaperFieldAuthors, PaperFieldYear,
		PaperFieldVenue, PaperFieldCitationCount, PaperFieldReferenceCount,
	}

	// DefaultAuthorFields are requested for author lookups.
	DefaultAuthorFields = []AuthorField{
		AuthorFieldAuthorID, AuthorFieldName, AuthorFieldURL, AuthorFieldAffiliations,
		AuthorFieldHomepage, AuthorFieldPaperCount, AuthorFieldCitationCount,
		AuthorFieldHIndex,
	}
)

// Valid reports whether f is a known paper field.
func (f PaperField) Valid() bool {
	return paperFields[f]
}

// Valid reports whether f is a known author field.
func (f AuthorField) Valid() bool {
	return authorFields[f]
}

// ParsePaperFields converts caller supplied names into paper fields. An empty
// input yields nil so the caller's default applies.
func ParsePaperFields(names []string) ([]PaperField, error) {
	var fields []PaperField
	for _, name := range names {
		f := PaperField(strings.TrimSpace(name))
		if !f.Valid() {
			return nil, invalidArgument("unknown paper field %q (valid: %s)", name, strings.Join(PaperFieldNames(), ", "))
		}
		fields = append(fields, f)
	}
	return fields, nil
}

// ParseAuthorFields converts caller supplied names into author fields.
func ParseAuthorFields(names []string) ([]AuthorField, error) {
	var fields []AuthorField
	for _, name := range names {
		f := AuthorField(strings.TrimSpace(name))
		if !f.Valid() {
			return nil, invalidArgument("unknown author field %q (valid: %s)", name, strings.Join(AuthorFieldNames(), ", "))
		}
		fields = append(fields, f)
	}
	return fields, nil
}

// PaperFieldNames lists every selectable paper field, sorted.
func PaperFieldNames() []string {
	names := make([]string, 0, len(paperFields))
	for f := range paperFields {
		names = append(names, string(f))
	}
	sort.Strings(names)
	return names
}

// AuthorFieldNames lists every selectable author field, sorted.
func AuthorFieldNames() []string {
	names := make([]string, 0, len(authorFields))
	for f := range authorFields {
		names = append(names, string(f))
	}
	sort.Strings(names)
	return names
}

// joinPaperFields renders the fields query parameter. paperId is always
// included so records can be keyed; duplicates are dropped.
func joinPaperFields(fields []PaperField) string {
	seen := map[PaperField]bool{}
	parts := []string{}
	add := func(f PaperField) {
		if seen[f] {
			return
		}
		seen[f] = true
		parts = append(parts, string(f))
	}
	add(PaperFieldPaperID)
	for _, f := range fields {
		add(f)
	}
	return strings.Join(parts, ",")
}

func joinAuthorFields(fields []AuthorField) string {
	seen := map[AuthorField]bool{}
	parts := []string{}
	add := func(f AuthorField) {
		if seen[f] {
			return
		}
		seen[f] = true
		parts = append(parts, string(f))
	}
	add(AuthorFieldAuthorID)
	for _, f := range fields {
		add(f)
	}
	return strings.Join(parts, ",")
}
