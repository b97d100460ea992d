package extractor

import (
	"net/url"
	"sort"
	"strings"
)

// forbiddenNameParts mark names produced by mis-split embedded URLs.
var forbiddenNameParts = []string{"http", "https", "/", "\\", " "}

// entityPrefixes mark names left over from partially decoded HTML entities.
var entityPrefixes = []string{"amp;", "nbsp;", "gt;", "lt;"}

// Parameters returns the sorted, deduplicated query parameter names of
// rawURL. HTML-escaped separators ("&amp;") are decoded first.
//
// Only names are kept. A pair without '=' or with an empty value is
// ignored. Names containing "http", "/", "\" or a space, and names starting
// with an HTML entity remnant ("amp;", "nbsp;", "gt;", "lt;"), are dropped.
// The filter applies to names only: "redir=http://evil.com" keeps "redir".
// A URL that cannot be parsed yields no names.
func Parameters(rawURL string) []string {
	rawURL = strings.ReplaceAll(rawURL, "&amp;", "&")
	if _, err := parseLenient(rawURL); err != nil {
		return nil
	}

	query := rawQuery(rawURL)
	if query == "" {
		return nil
	}

	seen := make(map[string]struct{})
	for _, pair := range strings.Split(query, "&") {
		key, value, found := strings.Cut(pair, "=")
		if !found || value == "" {
			continue
		}

		name := strings.TrimSpace(unescapeName(key))
		if !isValidName(name) {
			continue
		}
		seen[name] = struct{}{}
	}

	if len(seen) == 0 {
		return nil
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// rawQuery returns the query component of rawURL as written: the fragment
// is cut at the first '#', then the query starts after the first '?'.
func rawQuery(rawURL string) string {
	if i := strings.IndexByte(rawURL, '#'); i >= 0 {
		rawURL = rawURL[:i]
	}
	_, query, found := strings.Cut(rawURL, "?")
	if !found {
		return ""
	}
	return query
}

// unescapeName decodes a form-encoded key. Keys with invalid escapes are
// kept as written, with '+' still read as a space.
func unescapeName(key string) string {
	name, err := url.QueryUnescape(key)
	if err != nil {
		return strings.ReplaceAll(key, "+", " ")
	}
	return name
}

func isValidName(name string) bool {
	if name == "" {
		return false
	}
	for _, part := range forbiddenNameParts {
		if strings.Contains(name, part) {
			return false
		}
	}
	for _, prefix := range entityPrefixes {
		if strings.HasPrefix(name, prefix) {
			return false
		}
	}
	return true
}
