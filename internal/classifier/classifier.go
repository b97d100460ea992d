package classifier

import "strings"

// Kind is the outcome of classifying a URL.
type Kind int

const (
	// Regular is a page URL with no recognized extension.
	Regular Kind = iota

	// Static is an image, font, stylesheet or minified asset.
	// Static URLs are excluded from every output.
	Static

	// File is a URL ending in one of the recognized file extensions.
	File
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case Static:
		return "static"
	case File:
		return "file"
	default:
		return "regular"
	}
}

// staticExtensions are discarded outright. Order is irrelevant for the
// outcome but kept stable for StaticExtensions.
var staticExtensions = []string{
	".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tiff", ".tif", ".svg", ".webp",
	".ico", ".css", ".scss", ".sass", ".less", ".woff", ".woff2", ".ttf",
	".otf", ".eot", ".map", ".min.js", ".min.css",
}

// fileExtensions are tested in order; the first match names the bucket.
var fileExtensions = []string{
	// documents
	".pdf", ".doc", ".docx", ".xls", ".xlsx", ".ppt", ".pptx", ".txt",
	".xml", ".json", ".csv",
	// archives
	".zip", ".rar", ".tar", ".gz", ".7z",
	// media
	".mp3", ".mp4", ".avi", ".mov", ".wmv", ".flv", ".swf",
	// server side and scripts
	".php", ".asp", ".aspx", ".jsp", ".cfm", ".pl", ".py", ".rb",
	// data, backups and logs
	".sql", ".db", ".bak", ".backup", ".old", ".tmp", ".log",
	// configuration
	".conf", ".cfg", ".ini", ".yaml", ".yml", ".properties",
	".js", ".exe", ".html",
}

// Result is the classification of a single URL.
type Result struct {
	// Kind is the classification outcome.
	Kind Kind

	// Extension is the bucket name (extension without the leading dot).
	// It is set only when Kind is File.
	Extension string
}

// Classify decides whether url is a static resource, a file resource or a
// regular page. It never fails; unmatched URLs are Regular.
func Classify(url string) Result {
	path := strings.ToLower(StripQuery(url))

	if hasAnySuffix(path, staticExtensions) {
		return Result{Kind: Static}
	}

	for _, ext := range fileExtensions {
		if strings.HasSuffix(path, ext) {
			return Result{Kind: File, Extension: ext[1:]}
		}
	}

	return Result{Kind: Regular}
}

// IsStatic reports whether url is a static resource.
func IsStatic(url string) bool {
	return hasAnySuffix(strings.ToLower(StripQuery(url)), staticExtensions)
}

// StripQuery removes the query string and then the fragment from url.
// The query is cut first, so a '#' inside the query is removed with it.
func StripQuery(url string) string {
	if i := strings.IndexByte(url, '?'); i >= 0 {
		url = url[:i]
	}
	if i := strings.IndexByte(url, '#'); i >= 0 {
		url = url[:i]
	}
	return url
}

// StaticExtensions returns a copy of the static extension table.
func StaticExtensions() []string {
	return append([]string(nil), staticExtensions...)
}

// FileExtensions returns a copy of the file extension table in priority order.
func FileExtensions() []string {
	return append([]string(nil), fileExtensions...)
}

func hasAnySuffix(s string, suffixes []string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(s, suffix) {
			return true
		}
	}
	return false
}
