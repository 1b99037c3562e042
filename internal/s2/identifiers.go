package s2

import (
	"net/url"
	"regexp"
	"strings"
)

// Identifier prefixes understood by the Graph API.
var identifierPrefixes = []string{
	"DOI:",
	"ARXIV:",
	"PMID:",
	"PMCID:",
	"CorpusId:",
	"URL:",
	"MAG:",
	"ACL:",
}

var (
	// bareDOIPattern matches a DOI without a prefix (10.<registrant>/<suffix>).
	bareDOIPattern = regexp.MustCompile(`^10\.\d{4,9}/\S+$`)

	// arxivURLPattern extracts the identifier from arxiv.org abs/pdf links.
	arxivURLPattern = regexp.MustCompile(`^https?://(?:www\.)?arxiv\.org/(?:abs|pdf)/([^?#]+?)(?:\.pdf)?(?:[?#].*)?$`)

	// doiURLPattern extracts the DOI from doi.org links.
	doiURLPattern = regexp.MustCompile(`^https?://(?:dx\.)?doi\.org/(10\.\d{4,9}/\S+)$`)
)

// NormalizePaperID trims a caller supplied paper identifier and rewrites the
// common shorthand forms into the prefixed form the API accepts:
//
//   - 10.1038/nature12373               -> DOI:10.1038/nature12373
//   - https://doi.org/10.1038/nature1   -> DOI:10.1038/nature1
//   - https://arxiv.org/abs/2106.15928  -> ARXIV:2106.15928
//   - doi:10.1038/x                     -> DOI:10.1038/x
//
// Other links get the URL: prefix. Raw 40-character S2 ids and anything
// else pass through unchanged.
func NormalizePaperID(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return ""
	}

	for _, prefix := range identifierPrefixes {
		if len(id) > len(prefix) && strings.EqualFold(id[:len(prefix)], prefix) {
			return prefix + strings.TrimSpace(id[len(prefix):])
		}
	}

	if bareDOIPattern.MatchString(id) {
		return "DOI:" + id
	}
	if m := doiURLPattern.FindStringSubmatch(id); m != nil {
		if doi, err := url.PathUnescape(m[1]); err == nil {
			return "DOI:" + doi
		}
		return "DOI:" + m[1]
	}
	if m := arxivURLPattern.FindStringSubmatch(id); m != nil {
		return "ARXIV:" + m[1]
	}
	if strings.HasPrefix(id, "https://") || strings.HasPrefix(id, "http://") {
		return "URL:" + id
	}
	return id
}

// normalizeIDs normalizes and de-duplicates ids, keeping first-seen order.
// aliases maps every id as the caller wrote it (trimmed) to its normalized
// form, so results can be keyed by what was asked for.
func normalizeIDs(ids []string, normalize func(string) string) (unique []string, aliases map[string]string, err error) {
	aliases = make(map[string]string, len(ids))
	seen := make(map[string]bool, len(ids))
	for i, id := range ids {
		n := normalize(id)
		if n == "" {
			return nil, nil, invalidArgument("id at position %d is empty", i)
		}
		aliases[strings.TrimSpace(id)] = n
		if seen[n] {
			continue
		}
		seen[n] = true
		unique = append(unique, n)
	}
	return unique, aliases, nil
}
