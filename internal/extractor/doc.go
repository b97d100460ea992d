// Package extractor derives reduced keys from archived URLs.
//
// Endpoint reduces a URL to its host and first path segment, a coarse key
// for grouping discovered URLs. Parameters collects query parameter names,
// filtering out artifacts of HTML-escaped or mis-split query strings.
//
// Neither function returns an error: records that cannot be parsed yield
// no key and are skipped by callers.
package extractor
