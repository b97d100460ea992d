// Package cdx queries the Wayback Machine CDX index for the archived URLs
// of a domain.
//
// The client issues one GET request per domain with a bounded timeout and
// returns the response as raw lines. It does not retry, rate limit or
// paginate: a failed request is reported to the caller, which treats the
// domain as having no results.
//
// Requests can optionally be routed through a SOCKS5 proxy (for example a
// local Tor daemon) using golang.org/x/net/proxy.
package cdx
