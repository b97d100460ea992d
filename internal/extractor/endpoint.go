package extractor

import (
	"net/url"
	"strings"
)

// Endpoint returns the endpoint key for rawURL: "host/first/" when the path
// has at least one non-empty segment, "host/" otherwise. The query string,
// fragment, path parameters of the last segment (";jsessionid=...") and
// any path below the first segment are dropped.
//
// Host and segment are taken from rawURL as written: percent escapes,
// spaces and non-ASCII bytes are kept, and the host keeps userinfo and port.
// The host may be empty (scheme-less records such as "x.com/a" have an
// empty host). ok is false when rawURL cannot be parsed.
func Endpoint(rawURL string) (endpoint string, ok bool) {
	u, err := parseLenient(rawURL)
	if err != nil {
		return "", false
	}

	host, path := splitRaw(rawURL, u.Scheme)
	for _, segment := range strings.Split(path, "/") {
		if segment != "" {
			return host + "/" + segment + "/", true
		}
	}
	return host + "/", true
}

// splitRaw returns the authority and path of rawURL without decoding or
// re-escaping them. scheme is the scheme net/url found, if any.
func splitRaw(rawURL, scheme string) (authority, path string) {
	rest := rawURL
	if i := strings.IndexByte(rest, '#'); i >= 0 {
		rest = rest[:i]
	}
	if i := strings.IndexByte(rest, '?'); i >= 0 {
		rest = rest[:i]
	}
	if scheme != "" && len(rest) > len(scheme) && rest[len(scheme)] == ':' {
		rest = rest[len(scheme)+1:]
	}

	path = rest
	if strings.HasPrefix(rest, "//") {
		rest = rest[2:]
		authority, path = rest, ""
		if i := strings.IndexByte(rest, '/'); i >= 0 {
			authority, path = rest[:i], rest[i:]
		}
	}

	// Path parameters only belong to the last segment.
	last := strings.LastIndexByte(path, '/') + 1
	if i := strings.IndexByte(path[last:], ';'); i >= 0 {
		path = path[:last+i]
	}
	return authority, path
}

// parseLenient parses rawURL, retrying once with stray '%' characters
// escaped. Archived URLs frequently carry malformed percent escapes that
// net/url rejects.
func parseLenient(rawURL string) (*url.URL, error) {
	u, err := url.Parse(rawURL)
	if err == nil {
		return u, nil
	}
	fixed := escapeStrayPercent(rawURL)
	if fixed == rawURL {
		return nil, err
	}
	return url.Parse(fixed)
}

// escapeStrayPercent rewrites every '%' not followed by two hex digits as "%25".
func escapeStrayPercent(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}

	var sb strings.Builder
	sb.Grow(len(s) + 8)
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && (i+2 >= len(s) || !isHex(s[i+1]) || !isHex(s[i+2])) {
			sb.WriteString("%25")
			continue
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}

func isHex(c byte) bool {
	switch {
	case '0' <= c && c <= '9':
		return true
	case 'a' <= c && c <= 'f':
		return true
	case 'A' <= c && c <= 'F':
		return true
	}
	return false
}
