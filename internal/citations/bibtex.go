// Package citations renders Semantic Scholar papers as BibTeX.
package citations

import (
	"fmt"
	"strings"

	"github.com/Epistemic-Technology/scholar-mcp/models"
)

// GenerateBibTeXEntry renders one BibTeX entry for paper under citekey.
func GenerateBibTeXEntry(paper *models.Paper, citekey string) string {
	if citekey == "" {
		citekey = "unknown"
	}
	entryType := entryTypeFor(paper)

	var fields [][2]string
	add := func(name, value string) {
		if value = strings.TrimSpace(value); value != "" {
			fields = append(fields, [2]string{name, value})
		}
	}

	add("title", escapeBibTeX(paper.Title))
	add("author", formatBibTeXAuthors(paper.AuthorNames()))
	if venue := venueName(paper); venue != "" {
		add(venueFieldName(entryType), escapeBibTeX(venue))
	}
	add("year", paperYear(paper))
	if paper.Journal != nil {
		add("volume", paper.Journal.Volume)
		add("pages", formatBibTeXPages(paper.Journal.Pages))
	}
	add("doi", paper.ExternalIDs.DOI())
	if arxiv := paper.ExternalIDs.ArXiv(); arxiv != "" {
		add("eprint", arxiv)
		add("archivePrefix", "arXiv")
	}
	add("url", bestURL(paper))
	add("abstract", escapeBibTeX(paper.Abstract))

	var b strings.Builder
	fmt.Fprintf(&b, "@%s{%s", entryType, citekey)
	for _, f := range fields {
		fmt.Fprintf(&b, ",\n  %s = {%s}", f[0], f[1])
	}
	b.WriteString("\n}\n")
	return b.String()
}

// entryTypeFor maps the remote publication types to a BibTeX entry type.
// Journal and conference types win over the more generic ones.
func entryTypeFor(paper *models.Paper) string {
	types := map[string]bool{}
	for _, t := range paper.PublicationTypes {
		types[strings.ToLower(t)] = true
	}
	switch {
	case types["journalarticle"], types["review"], types["letterstoeditor"], types["editorial"]:
		return "article"
	case types["conference"]:
		return "inproceedings"
	case types["booksection"]:
		return "incollection"
	case types["book"]:
		return "book"
	case types["dataset"], types["news"]:
		return "misc"
	}
	if paper.Journal != nil && paper.Journal.Name != "" && paper.ExternalIDs.ArXiv() == "" {
		return "article"
	}
	return "misc"
}

func venueFieldName(entryType string) string {
	switch entryType {
	case "inproceedings", "incollection":
		return "booktitle"
	case "misc":
		return "howpublished"
	default:
		return "journal"
	}
}

func venueName(paper *models.Paper) string {
	if paper.Journal != nil && strings.TrimSpace(paper.Journal.Name) != "" {
		return paper.Journal.Name
	}
	return paper.Venue
}

// bestURL prefers the open-access PDF over the Semantic Scholar page.
func bestURL(paper *models.Paper) string {
	if paper.OpenAccessPDF != nil && paper.OpenAccessPDF.URL != "" {
		return paper.OpenAccessPDF.URL
	}
	return paper.URL
}

// formatBibTeXAuthors joins names as "Last, First and Last, First".
func formatBibTeXAuthors(authors []string) string {
	formatted := make([]string, 0, len(authors))
	for _, author := range authors {
		author = strings.TrimSpace(author)
		if author == "" {
			continue
		}
		if strings.Contains(author, ",") {
			formatted = append(formatted, escapeBibTeX(author))
			continue
		}
		parts := strings.Fields(author)
		if len(parts) == 1 {
			formatted = append(formatted, escapeBibTeX(parts[0]))
			continue
		}
		start := len(parts) - 1
		for start > 0 && particles[strings.ToLower(parts[start-1])] {
			start--
		}
		last := strings.Join(parts[start:], " ")
		first := strings.Join(parts[:start], " ")
		formatted = append(formatted, escapeBibTeX(last+", "+first))
	}
	return strings.Join(formatted, " and ")
}

// formatBibTeXPages writes ranges with an en dash: 436-444 -> 436--444.
func formatBibTeXPages(pages string) string {
	pages = strings.TrimSpace(pages)
	if pages == "" {
		return ""
	}
	parts := strings.FieldsFunc(pages, func(r rune) bool { return r == '-' || r == '–' })
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return strings.Join(parts, "--")
}

var bibtexEscaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`%`, `\%`,
	`&`, `\&`,
	`_`, `\_`,
	`$`, `\$`,
	`#`, `\#`,
)

// escapeBibTeX escapes LaTeX special characters. Braces are left alone so
// they keep protecting capitalization.
func escapeBibTeX(text string) string {
	return bibtexEscaper.Replace(text)
}

// GenerateBibTeXFile concatenates entries under a short header.
func GenerateBibTeXFile(entries []string) string {
	var b strings.Builder
	b.WriteString("% BibTeX bibliography file\n")
	b.WriteString("% Generated by scholar-mcp from Semantic Scholar records\n\n")
	b.WriteString(strings.Join(entries, "\n"))
	return b.String()
}

// Bibliography renders papers in order with unique citekeys. It returns the
// file content and the citekey chosen for each paper id.
func Bibliography(papers []*models.Paper) (string, map[string]string) {
	used := map[string]bool{}
	keys := make(map[string]string, len(papers))
	entries := make([]string, 0, len(papers))
	for _, p := range papers {
		if p == nil {
			continue
		}
		key := GenerateCitekey(p, used)
		used[key] = true
		keys[p.PaperID] = key
		entries = append(entries, GenerateBibTeXEntry(p, key))
	}
	return GenerateBibTeXFile(entries), keys
}
