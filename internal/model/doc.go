// Package model defines the data structures shared by the waybackrecon
// pipeline, reports and history database.
//
// This package contains the following main types:
//   - URLSet: a deduplicated set of archived URL records
//   - DomainReport: everything derived for one domain during one run
//   - RunSummary: per-domain counts and the running total of one run
//
// All values are created fresh for each domain and discarded once the
// domain's artifacts are written.
package model
