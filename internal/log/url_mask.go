package log

import (
	"net/url"
	"strings"
)

// maskURL masks credentials carried by a URL-like string: the password in
// the userinfo and the values of sensitive query parameters. The rest of
// the string is returned byte for byte, so masked URLs stay recognizable.
// changed is false when nothing was masked or s is not a URL.
func maskURL(s string) (masked string, changed bool) {
	schemeEnd := strings.Index(s, "://")
	if schemeEnd <= 0 || strings.ContainsAny(s[:schemeEnd], " \t/?#") {
		return s, false
	}

	authStart := schemeEnd + len("://")
	rest := s[authStart:]
	authEnd := strings.IndexAny(rest, "/?#")
	if authEnd < 0 {
		authEnd = len(rest)
	}
	authority, tail := rest[:authEnd], rest[authEnd:]

	if at := strings.LastIndex(authority, "@"); at >= 0 {
		if user, _, hasPassword := strings.Cut(authority[:at], ":"); hasPassword {
			authority = user + ":" + MaskValue + authority[at:]
			changed = true
		}
	}

	fragment := ""
	if i := strings.IndexByte(tail, '#'); i >= 0 {
		tail, fragment = tail[:i], tail[i:]
	}
	if path, query, ok := strings.Cut(tail, "?"); ok {
		if maskedQuery, queryChanged := maskQuery(query); queryChanged {
			tail = path + "?" + maskedQuery
			changed = true
		}
	}

	if !changed {
		return s, false
	}
	return s[:authStart] + authority + tail + fragment, true
}

// maskQuery replaces the values of sensitive parameters in a raw query.
// Both & and ; separators are kept as found.
func maskQuery(query string) (string, bool) {
	changed := false
	var b strings.Builder
	b.Grow(len(query))

	for query != "" {
		var pair string
		sep := strings.IndexAny(query, "&;")
		if sep < 0 {
			pair, query = query, ""
		} else {
			pair = query[:sep]
		}

		name, value, hasValue := strings.Cut(pair, "=")
		if hasValue && value != "" && isSensitiveKey(unescapeQueryName(name)) {
			pair = name + "=" + MaskValue
			changed = true
		}
		b.WriteString(pair)

		if sep >= 0 {
			b.WriteByte(query[sep])
			query = query[sep+1:]
		}
	}

	return b.String(), changed
}

func unescapeQueryName(name string) string {
	if unescaped, err := url.QueryUnescape(name); err == nil {
		return unescaped
	}
	return name
}
