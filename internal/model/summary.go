package model

import "time"

// DomainResult is the outcome of processing one domain, as reported to the
// operator and saved to history.
type DomainResult struct {
	// Domain is the processed domain.
	Domain string `json:"domain"`

	// Count is the headline count for the command (URLs for collect,
	// endpoints or parameters for the extraction commands).
	// It is zero when processing failed.
	Count int `json:"count"`

	// Counts holds the sizes of every derived set.
	Counts Counts `json:"counts"`

	// FileTypes maps extension to URL count.
	FileTypes map[string]int `json:"file_types,omitempty"`

	// Digest is the content digest of the persisted URL list, if any.
	Digest string `json:"digest,omitempty"`

	// Error is the failure message, empty on success.
	Error string `json:"error,omitempty"` //nolint:tagliatelle // error is conventional
}

// Failed reports whether the domain failed.
func (d DomainResult) Failed() bool {
	return d.Error != ""
}

// NewDomainResult builds a DomainResult from a finished report.
// count is ignored for failed reports.
func NewDomainResult(report *DomainReport, count int) DomainResult {
	result := DomainResult{
		Domain:    report.Domain,
		Counts:    report.Counts(),
		FileTypes: report.FileTypeCounts(),
		Digest:    report.Digest,
	}
	if report.Failed() {
		result.Error = report.ErrorMessage
		return result
	}
	result.Count = count
	return result
}

// RunSummary aggregates the results of one run over a domain list.
// Only the running total is aggregated across domains; the URL sets of
// different domains are never merged.
type RunSummary struct {
	// Command is the CLI command that produced the run (collect,
	// endpoints or params).
	Command string `json:"command"`

	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at"`

	// FinishedAt is when the run ended.
	FinishedAt time.Time `json:"finished_at"`

	// Domains holds one result per processed domain, in input order.
	Domains []DomainResult `json:"domains"`

	// Total is the sum of Count over all domains.
	Total int `json:"total"`
}

// NewRunSummary creates an empty summary for command.
func NewRunSummary(command string) *RunSummary {
	return &RunSummary{
		Command:   command,
		StartedAt: time.Now(),
		Domains:   make([]DomainResult, 0),
	}
}

// Add records a domain result and adds its count to the total.
func (s *RunSummary) Add(result DomainResult) {
	s.Domains = append(s.Domains, result)
	s.Total += result.Count
}

// Finish stamps the end time.
func (s *RunSummary) Finish() {
	s.FinishedAt = time.Now()
}

// Failed returns the number of failed domains.
func (s *RunSummary) Failed() int {
	n := 0
	for _, d := range s.Domains {
		if d.Failed() {
			n++
		}
	}
	return n
}

// Succeeded returns the number of domains processed without error.
func (s *RunSummary) Succeeded() int {
	return len(s.Domains) - s.Failed()
}

// Elapsed returns the run duration, or zero if the run has not finished.
func (s *RunSummary) Elapsed() time.Duration {
	if s.FinishedAt.IsZero() {
		return 0
	}
	return s.FinishedAt.Sub(s.StartedAt)
}
