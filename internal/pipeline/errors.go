package pipeline

import (
	"errors"
	"fmt"

	"github.com/nao1215/waybackrecon/internal/model"
)

// ErrNoFetcher is returned by FetchStep when it has no fetcher.
var ErrNoFetcher = errors.New("no fetcher configured")

// StageError records in which state a domain failed.
// The driver uses it to choose the failure message.
type StageError struct {
	// Stage is the report state the failure happened in.
	Stage model.State

	// Domain is the domain being processed.
	Domain string

	// Path is the artifact path involved, if any.
	Path string

	// Err is the underlying error.
	Err error
}

// Error implements error.
func (e *StageError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s %s: %s: %v", e.Stage, e.Domain, e.Path, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Stage, e.Domain, e.Err)
}

// Unwrap returns the underlying error.
func (e *StageError) Unwrap() error {
	return e.Err
}
