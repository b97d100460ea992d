package model

import (
	"sort"
	"time"
)

// State is the processing stage a domain has reached.
type State string

// Domain processing states, in pipeline order.
const (
	StatePending     State = "pending"
	StateFetching    State = "fetching"
	StateReading     State = "reading"
	StateDeduping    State = "deduping"
	StateClassifying State = "classifying"
	StateExtracting  State = "extracting"
	StatePersisting  State = "persisting"
	StateDone        State = "done"
	StateFailed      State = "failed"
)

// DomainReport carries everything derived for a single domain.
// Pipeline steps fill it in order; the driver reads counts from it.
//
// The URL lists are excluded from JSON: they are persisted as artifact
// files and can be large. Only counts and metadata are serialized.
type DomainReport struct {
	// Domain is the domain identifier as supplied by the caller.
	// It doubles as the name of the domain's output directory.
	Domain string `json:"domain"`

	// DateCollected is when processing of the domain started.
	DateCollected time.Time `json:"date_collected"`

	// State is the last stage reached.
	State State `json:"state"`

	// RawLines are the unfiltered lines from the fetcher or the stored list.
	RawLines []string `json:"-"`

	// Candidates are the trimmed, non-static lines that survived filtering,
	// in source order and possibly repeated.
	Candidates []string `json:"-"`

	// URLs is the deduplicated, sorted, non-static URL list.
	URLs []string `json:"-"`

	// Regular holds URLs with no recognized file extension, sorted.
	Regular []string `json:"-"`

	// Files maps an extension (without dot) to its sorted URLs.
	// Buckets are disjoint.
	Files map[string][]string `json:"-"`

	// Endpoints is the sorted endpoint key set.
	Endpoints []string `json:"-"`

	// Parameters is the sorted parameter name set.
	Parameters []string `json:"-"`

	// Written lists the artifact names persisted for the domain.
	Written []string `json:"written,omitempty"`

	// Digest is the content digest of the persisted URL list, if written.
	Digest string `json:"digest,omitempty"`

	// PerformedSteps lists the pipeline steps that completed.
	PerformedSteps []string `json:"performed_steps,omitempty"`

	// Error is the error that aborted processing, if any.
	Error error `json:"-"`

	// ErrorMessage is the string form of Error for serialization.
	ErrorMessage string `json:"error,omitempty"` //nolint:tagliatelle // error is conventional

	// fileOrder records extensions in the order their first URL was added.
	fileOrder []string
}

// NewDomainReport creates a report for domain in the pending state.
func NewDomainReport(domain string) *DomainReport {
	return &DomainReport{
		Domain:        domain,
		DateCollected: time.Now(),
		State:         StatePending,
		Files:         make(map[string][]string),
	}
}

// AddFile appends url to the bucket for ext.
func (r *DomainReport) AddFile(ext, url string) {
	if r.Files == nil {
		r.Files = make(map[string][]string)
	}
	if _, ok := r.Files[ext]; !ok {
		r.fileOrder = append(r.fileOrder, ext)
	}
	r.Files[ext] = append(r.Files[ext], url)
}

// FileExtensions returns the populated extensions in the order their first
// URL was added. Extensions set directly on Files are appended sorted.
func (r *DomainReport) FileExtensions() []string {
	out := make([]string, 0, len(r.Files))
	seen := make(map[string]bool, len(r.Files))
	for _, ext := range r.fileOrder {
		if _, ok := r.Files[ext]; ok && !seen[ext] {
			out = append(out, ext)
			seen[ext] = true
		}
	}

	var rest []string
	for ext := range r.Files {
		if !seen[ext] {
			rest = append(rest, ext)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

// FileCount returns the total number of URLs across all file buckets.
func (r *DomainReport) FileCount() int {
	total := 0
	for _, urls := range r.Files {
		total += len(urls)
	}
	return total
}

// Fail records err and marks the report failed.
func (r *DomainReport) Fail(err error) {
	r.State = StateFailed
	r.Error = err
	if err != nil {
		r.ErrorMessage = err.Error()
	}
}

// Failed reports whether processing was aborted.
func (r *DomainReport) Failed() bool {
	return r.State == StateFailed
}

// Counts returns the sizes of every derived set.
func (r *DomainReport) Counts() Counts {
	return Counts{
		URLs:       len(r.URLs),
		Regular:    len(r.Regular),
		Files:      r.FileCount(),
		Endpoints:  len(r.Endpoints),
		Parameters: len(r.Parameters),
	}
}

// FileTypeCounts returns the number of URLs per extension bucket.
func (r *DomainReport) FileTypeCounts() map[string]int {
	if len(r.Files) == 0 {
		return nil
	}
	counts := make(map[string]int, len(r.Files))
	for ext, urls := range r.Files {
		counts[ext] = len(urls)
	}
	return counts
}

// Counts holds the sizes of the sets derived for a domain.
type Counts struct {
	URLs       int `json:"urls"`
	Regular    int `json:"regular"`
	Files      int `json:"files"`
	Endpoints  int `json:"endpoints"`
	Parameters int `json:"parameters"`
}
