package citations

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/Epistemic-Technology/scholar-mcp/models"
)

var yearPattern = regexp.MustCompile(`\b(1[5-9]|20)\d{2}\b`)

// GenerateCitekey creates a pandoc-style citekey for a paper:
// smith2020, smithJones2021 or smithEtAl2020. On collision with a key in
// existing a letter suffix is added (smith2020a, smith2020b, ...), then a
// numeric one once the alphabet is used up.
func GenerateCitekey(paper *models.Paper, existing map[string]bool) string {
	base := sanitizeCitekey(authorPart(paper.AuthorNames()) + paperYear(paper))

	if !existing[base] {
		return base
	}
	for suffix := 'a'; suffix <= 'z'; suffix++ {
		if key := base + string(suffix); !existing[key] {
			return key
		}
	}
	for n := 1; ; n++ {
		if key := base + "z" + strconv.Itoa(n); !existing[key] {
			return key
		}
	}
}

// paperYear prefers the year field and falls back to the publication date.
func paperYear(paper *models.Paper) string {
	if paper.Year > 0 {
		return strconv.Itoa(paper.Year)
	}
	return yearPattern.FindString(paper.PublicationDate)
}

// authorPart names one author, two authors, or the first author with EtAl.
func authorPart(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return lastNameKey(authors[0])
	case 2:
		return lastNameKey(authors[0]) + capitalize(lastNameKey(authors[1]))
	default:
		return lastNameKey(authors[0]) + "EtAl"
	}
}

// particles are lowercase name prefixes kept as part of the family name.
var particles = map[string]bool{
	"van": true, "von": true, "der": true, "den": true, "de": true,
	"del": true, "della": true, "di": true, "da": true, "le": true, "la": true,
}

// lastNameKey turns a display name into a camel-cased family name:
// "Ada Lovelace" -> "lovelace", "John von Neumann" -> "vonNeumann",
// "Hinton, Geoffrey E." -> "hinton".
func lastNameKey(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}

	var family []string
	if last, _, ok := strings.Cut(name, ","); ok {
		family = strings.Fields(last)
	} else {
		parts := strings.Fields(name)
		start := len(parts) - 1
		for start > 0 && particles[strings.ToLower(parts[start-1])] {
			start--
		}
		family = parts[start:]
	}
	if len(family) == 0 {
		return ""
	}

	key := strings.ToLower(family[0])
	for _, part := range family[1:] {
		key += capitalize(strings.ToLower(part))
	}
	return key
}

func capitalize(s string) string {
	for i, r := range s {
		return string(unicode.ToUpper(r)) + s[i+len(string(r)):]
	}
	return s
}

// sanitizeCitekey keeps letters, digits and underscores. Keys never start
// with a digit and are never empty.
func sanitizeCitekey(key string) string {
	var b strings.Builder
	for _, r := range key {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(r)
		}
	}

	sanitized := b.String()
	if sanitized == "" {
		return "unknown"
	}
	if unicode.IsDigit(rune(sanitized[0])) {
		sanitized = "ref" + sanitized
	}
	return sanitized
}
