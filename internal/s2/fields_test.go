package s2

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePaperFields(t *testing.T) {
	fields, err := ParsePaperFields([]string{"title", " year ", "tldr"})
	require.NoError(t, err)
	assert.Equal(t, []PaperField{PaperFieldTitle, PaperFieldYear, PaperFieldTLDR}, fields)

	fields, err = ParsePaperFields(nil)
	require.NoError(t, err)
	assert.Nil(t, fields)

	_, err = ParsePaperFields([]string{"title", "Title"})
	require.Error(t, err)
	assert.True(t, IsInvalidArgument(err))
	assert.Contains(t, err.Error(), `"Title"`)
}

func TestParseAuthorFields(t *testing.T) {
	fields, err := ParseAuthorFields([]string{"name", "hIndex"})
	require.NoError(t, err)
	assert.Equal(t, []AuthorField{AuthorFieldName, AuthorFieldHIndex}, fields)

	_, err = ParseAuthorFields([]string{"papers"})
	assert.True(t, IsInvalidArgument(err))
}

func TestJoinFieldsAlwaysLeadsWithID(t *testing.T) {
	assert.Equal(t, "paperId,title,year", joinPaperFields([]PaperField{PaperFieldTitle, PaperFieldYear, PaperFieldTitle}))
	assert.Equal(t, "paperId,title", joinPaperFields([]PaperField{PaperFieldTitle, PaperFieldPaperID}))
	assert.Equal(t, "authorId", joinAuthorFields(nil))
}

func TestFieldNamesSorted(t *testing.T) {
	names := PaperFieldNames()
	assert.IsIncreasing(t, names)
	assert.Contains(t, names, "openAccessPdf")
	assert.Len(t, AuthorFieldNames(), 9)
}
