// Package main provides the entry point for the waybackrecon CLI.
//
// waybackrecon collects archived URLs for a list of domains from the
// Wayback Machine CDX index and derives per-domain URL lists, endpoints
// and query parameter names.
//
// Usage:
//
//	waybackrecon collect domains.txt
//	waybackrecon endpoints domains.txt
//	waybackrecon params domains.txt
//
// See --help for all available options.
package main

// main is the entry point for waybackrecon.
func main() {
	Execute()
}
