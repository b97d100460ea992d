// Package pipeline turns a domain into wayback artifacts by running a
// sequence of steps over a model.DomainReport.
//
// A collect run fetches the domain's archived URLs, filters static
// resources, deduplicates and sorts them, classifies them into regular and
// file URLs, extracts endpoints and parameter names, and persists every
// list. The endpoints and params runs start from the stored URL list
// instead of the network and only produce their own artifact.
//
// Steps stop at the first error: a failure aborts the current domain only.
// The Driver runs one fresh pipeline per domain, sequentially, reports
// progress through report.Progress and accumulates a model.RunSummary.
package pipeline
