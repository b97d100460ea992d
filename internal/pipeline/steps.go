package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/nao1215/waybackrecon/internal/artifact"
	"github.com/nao1215/waybackrecon/internal/cdx"
	"github.com/nao1215/waybackrecon/internal/classifier"
	"github.com/nao1215/waybackrecon/internal/extractor"
	"github.com/nao1215/waybackrecon/internal/model"
)

// Fetcher returns the raw archived URL lines for a domain.
// *cdx.Client satisfies it.
type Fetcher interface {
	Fetch(ctx context.Context, domain string) ([]string, error)
}

// FetchStep loads the domain's raw lines from the archive index.
type FetchStep struct {
	fetcher Fetcher
	logger  *slog.Logger
}

// NewFetchStep creates a FetchStep using fetcher.
func NewFetchStep(fetcher Fetcher, logger *slog.Logger) *FetchStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &FetchStep{fetcher: fetcher, logger: logger}
}

// Name returns the step name.
func (s *FetchStep) Name() string {
	return "fetch"
}

// Do executes the fetch step.
func (s *FetchStep) Do(ctx context.Context, report *model.DomainReport) error {
	report.State = model.StateFetching
	if s.fetcher == nil {
		return &StageError{Stage: model.StateFetching, Domain: report.Domain, Err: ErrNoFetcher}
	}

	lines, err := s.fetcher.Fetch(ctx, report.Domain)
	if err != nil {
		return &StageError{Stage: model.StateFetching, Domain: report.Domain, Err: err}
	}

	s.logger.Debug("fetched archive lines", "domain", report.Domain, "lines", len(lines))
	report.RawLines = lines
	return nil
}

// ReadStep loads the domain's previously collected URL list from the store.
type ReadStep struct {
	store artifact.Store
}

// NewReadStep creates a ReadStep reading from store.
func NewReadStep(store artifact.Store) *ReadStep {
	return &ReadStep{store: store}
}

// Name returns the step name.
func (s *ReadStep) Name() string {
	return "read"
}

// Do executes the read step. A missing list fails with an error matching
// artifact.ErrNotFound.
func (s *ReadStep) Do(_ context.Context, report *model.DomainReport) error {
	report.State = model.StateReading

	lines, err := s.store.Read(report.Domain, artifact.AllURLs)
	if err != nil {
		return &StageError{
			Stage:  model.StateReading,
			Domain: report.Domain,
			Path:   s.store.Path(report.Domain, artifact.AllURLs),
			Err:    err,
		}
	}

	report.RawLines = lines
	return nil
}

// FilterStep trims raw lines and drops the ones that are not candidate URLs.
type FilterStep struct {
	dropHeader bool
	dropStatic bool
}

// FilterOption configures a FilterStep.
type FilterOption func(*FilterStep)

// WithHeaderFilter controls whether the index column header line is dropped.
func WithHeaderFilter(drop bool) FilterOption {
	return func(s *FilterStep) {
		s.dropHeader = drop
	}
}

// WithStaticFilter controls whether static resources are dropped.
func WithStaticFilter(drop bool) FilterOption {
	return func(s *FilterStep) {
		s.dropStatic = drop
	}
}

// NewFilterStep creates a FilterStep. By default it drops blank lines,
// the header line and static resources.
func NewFilterStep(opts ...FilterOption) *FilterStep {
	s := &FilterStep{dropHeader: true, dropStatic: true}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *FilterStep) Name() string {
	return "filter"
}

// Do executes the filter step.
func (s *FilterStep) Do(_ context.Context, report *model.DomainReport) error {
	report.State = model.StateDeduping

	candidates := make([]string, 0, len(report.RawLines))
	for _, line := range report.RawLines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if s.dropHeader && line == cdx.HeaderLine {
			continue
		}
		if s.dropStatic && classifier.IsStatic(line) {
			continue
		}
		candidates = append(candidates, line)
	}

	report.Candidates = candidates
	return nil
}

// DedupeStep removes duplicate candidates and sorts them byte-wise.
type DedupeStep struct{}

// NewDedupeStep creates a DedupeStep.
func NewDedupeStep() *DedupeStep {
	return &DedupeStep{}
}

// Name returns the step name.
func (s *DedupeStep) Name() string {
	return "dedupe"
}

// Do executes the dedupe step.
func (s *DedupeStep) Do(_ context.Context, report *model.DomainReport) error {
	report.State = model.StateDeduping

	set := model.NewURLSet()
	set.AddAll(report.Candidates)
	report.URLs = set.Sorted()
	return nil
}

// ClassifyStep partitions the deduplicated URLs into regular URLs and
// file buckets keyed by extension.
type ClassifyStep struct{}

// NewClassifyStep creates a ClassifyStep.
func NewClassifyStep() *ClassifyStep {
	return &ClassifyStep{}
}

// Name returns the step name.
func (s *ClassifyStep) Name() string {
	return "classify"
}

// Do executes the classify step. Static URLs that reach this step are
// skipped.
func (s *ClassifyStep) Do(_ context.Context, report *model.DomainReport) error {
	report.State = model.StateClassifying

	regular := make([]string, 0, len(report.URLs))
	for _, u := range report.URLs {
		result := classifier.Classify(u)
		switch result.Kind {
		case classifier.File:
			report.AddFile(result.Extension, u)
		case classifier.Regular:
			regular = append(regular, u)
		case classifier.Static:
		}
	}

	report.Regular = regular
	return nil
}

// EndpointStep extracts the endpoint key of every deduplicated URL.
type EndpointStep struct{}

// NewEndpointStep creates an EndpointStep.
func NewEndpointStep() *EndpointStep {
	return &EndpointStep{}
}

// Name returns the step name.
func (s *EndpointStep) Name() string {
	return "endpoints"
}

// Do executes the endpoint step. URLs that fail to parse are skipped.
func (s *EndpointStep) Do(_ context.Context, report *model.DomainReport) error {
	report.State = model.StateExtracting

	set := model.NewURLSet()
	for _, u := range report.URLs {
		if endpoint, ok := extractor.Endpoint(u); ok {
			set.Add(endpoint)
		}
	}

	report.Endpoints = set.Sorted()
	return nil
}

// ParameterStep collects the query parameter names of every deduplicated URL.
type ParameterStep struct{}

// NewParameterStep creates a ParameterStep.
func NewParameterStep() *ParameterStep {
	return &ParameterStep{}
}

// Name returns the step name.
func (s *ParameterStep) Name() string {
	return "parameters"
}

// Do executes the parameter step.
func (s *ParameterStep) Do(_ context.Context, report *model.DomainReport) error {
	report.State = model.StateExtracting

	set := model.NewURLSet()
	for _, u := range report.URLs {
		set.AddAll(extractor.Parameters(u))
	}

	report.Parameters = set.Sorted()
	return nil
}

// Artifact selects one kind of output written by PersistStep.
type Artifact int

// Artifacts PersistStep can write.
const (
	// ArtifactAllURLs is the full deduplicated URL list.
	ArtifactAllURLs Artifact = iota
	// ArtifactRegularURLs is the list of URLs without a file extension.
	ArtifactRegularURLs
	// ArtifactFiles is one list per populated extension bucket.
	ArtifactFiles
	// ArtifactEndpoints is the endpoint key list.
	ArtifactEndpoints
	// ArtifactParameters is the parameter name list, each suffixed with "=".
	ArtifactParameters
)

// PersistStep writes the selected artifacts through the store.
// The digest of the first selected artifact is recorded in the report.
type PersistStep struct {
	store     artifact.Store
	artifacts []Artifact
}

// NewPersistStep creates a PersistStep writing artifacts in the given order.
func NewPersistStep(store artifact.Store, artifacts ...Artifact) *PersistStep {
	return &PersistStep{store: store, artifacts: artifacts}
}

// Name returns the step name.
func (s *PersistStep) Name() string {
	return "persist"
}

// Do executes the persist step. The list files are always written, even
// when empty; extension files only exist for populated buckets.
func (s *PersistStep) Do(ctx context.Context, report *model.DomainReport) error {
	report.State = model.StatePersisting

	for i, a := range s.artifacts {
		if err := ctx.Err(); err != nil {
			return err
		}

		var err error
		switch a {
		case ArtifactAllURLs:
			err = s.write(report, artifact.AllURLs, report.URLs, i == 0)
		case ArtifactRegularURLs:
			err = s.write(report, artifact.RegularURLs, report.Regular, i == 0)
		case ArtifactFiles:
			for _, ext := range report.FileExtensions() {
				if err = s.write(report, artifact.ExtensionFile(ext), report.Files[ext], false); err != nil {
					break
				}
			}
		case ArtifactEndpoints:
			err = s.write(report, artifact.Endpoints, report.Endpoints, i == 0)
		case ArtifactParameters:
			err = s.write(report, artifact.Parameters, parameterLines(report.Parameters), i == 0)
		default:
			err = errors.New("unknown artifact")
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *PersistStep) write(report *model.DomainReport, name string, lines []string, primary bool) error {
	if err := s.store.Write(report.Domain, name, lines); err != nil {
		return &StageError{
			Stage:  model.StatePersisting,
			Domain: report.Domain,
			Path:   s.store.Path(report.Domain, name),
			Err:    err,
		}
	}
	report.Written = append(report.Written, name)
	if primary {
		report.Digest = artifact.Digest(lines)
	}
	return nil
}

// parameterLines appends the "=" placeholder to each parameter name.
func parameterLines(names []string) []string {
	lines := make([]string, len(names))
	for i, name := range names {
		lines[i] = name + "="
	}
	return lines
}
