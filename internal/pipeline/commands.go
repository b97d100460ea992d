package pipeline

import (
	"errors"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nao1215/waybackrecon/internal/artifact"
	"github.com/nao1215/waybackrecon/internal/model"
	"github.com/nao1215/waybackrecon/internal/report"
)

// Command names, as recorded in run summaries and history.
const (
	CommandCollect    = "collect"
	CommandEndpoints  = "endpoints"
	CommandParameters = "params"
)

// CollectPipeline fetches, filters, classifies, extracts and persists
// every artifact of a domain.
func CollectPipeline(fetcher Fetcher, store artifact.Store, opts ...Option) *Pipeline {
	p := New(opts...)
	p.AddSteps(
		NewFetchStep(fetcher, p.logger),
		NewFilterStep(),
		NewDedupeStep(),
		NewClassifyStep(),
		NewEndpointStep(),
		NewParameterStep(),
		NewPersistStep(store,
			ArtifactAllURLs,
			ArtifactRegularURLs,
			ArtifactFiles,
			ArtifactEndpoints,
			ArtifactParameters,
		),
	)
	return p
}

// EndpointPipeline reads the stored URL list and writes endpoints.txt.
func EndpointPipeline(store artifact.Store, opts ...Option) *Pipeline {
	p := New(opts...)
	p.AddSteps(
		NewReadStep(store),
		storedListFilter(),
		NewDedupeStep(),
		NewEndpointStep(),
		NewPersistStep(store, ArtifactEndpoints),
	)
	return p
}

// ParameterPipeline reads the stored URL list and writes parameters.txt.
func ParameterPipeline(store artifact.Store, opts ...Option) *Pipeline {
	p := New(opts...)
	p.AddSteps(
		NewReadStep(store),
		storedListFilter(),
		NewDedupeStep(),
		NewParameterStep(),
		NewPersistStep(store, ArtifactParameters),
	)
	return p
}

// storedListFilter only trims and drops blank lines: a stored list was
// already filtered when it was collected.
func storedListFilter() *FilterStep {
	return NewFilterStep(WithHeaderFilter(false), WithStaticFilter(false))
}

// Command describes one batch command run by a Driver: how to build a
// fresh pipeline per domain, what the domain's count is and which
// progress lines to print.
type Command struct {
	// Name is recorded in summaries and history.
	Name string

	// Noun names what is counted ("URLs", "endpoints", "parameters").
	Noun string

	newPipeline func() *Pipeline
	count       func(*model.DomainReport) int
	announce    func(report.Progress, *model.DomainReport)
	describe    func(report.Progress, *model.DomainReport)
}

// NewCollectCommand returns the collect command.
func NewCollectCommand(fetcher Fetcher, store artifact.Store, opts ...Option) Command {
	return Command{
		Name: CommandCollect,
		Noun: "URLs",
		newPipeline: func() *Pipeline {
			return CollectPipeline(fetcher, store, opts...)
		},
		count: func(r *model.DomainReport) int {
			return len(r.URLs)
		},
		announce: func(p report.Progress, r *model.DomainReport) {
			p.Info("Collecting URLs for %s...", r.Domain)
		},
		describe: func(p report.Progress, r *model.DomainReport) {
			p.Info("Found %d total URLs for %s", len(r.URLs), r.Domain)
			p.Info("URLs: %d, Files: %d", len(r.Regular), r.FileCount())
			if len(r.Files) > 0 {
				parts := make([]string, 0, len(r.Files))
				for _, ext := range r.FileExtensions() {
					parts = append(parts, ext+": "+strconv.Itoa(len(r.Files[ext])))
				}
				p.Info("File types: %s", strings.Join(parts, ", "))
			}
			p.Info("Saved to %s/", filepath.Dir(store.Path(r.Domain, artifact.AllURLs)))
		},
	}
}

// NewEndpointCommand returns the endpoints command.
func NewEndpointCommand(store artifact.Store, opts ...Option) Command {
	return Command{
		Name: CommandEndpoints,
		Noun: "endpoints",
		newPipeline: func() *Pipeline {
			return EndpointPipeline(store, opts...)
		},
		count: func(r *model.DomainReport) int {
			return len(r.Endpoints)
		},
		describe: func(p report.Progress, r *model.DomainReport) {
			p.Info("Processed %s: %d unique endpoints", r.Domain, len(r.Endpoints))
			p.Info("Saved to %s", store.Path(r.Domain, artifact.Endpoints))
		},
	}
}

// NewParameterCommand returns the params command.
func NewParameterCommand(store artifact.Store, opts ...Option) Command {
	return Command{
		Name: CommandParameters,
		Noun: "parameters",
		newPipeline: func() *Pipeline {
			return ParameterPipeline(store, opts...)
		},
		count: func(r *model.DomainReport) int {
			return len(r.Parameters)
		},
		describe: func(p report.Progress, r *model.DomainReport) {
			p.Info("Processed %s: %d unique parameters", r.Domain, len(r.Parameters))
			p.Info("Saved to %s", store.Path(r.Domain, artifact.Parameters))
		},
	}
}

// describeFailure prints the failure line for a domain, based on where
// it failed.
func (c Command) describeFailure(p report.Progress, r *model.DomainReport) {
	var stageErr *StageError
	if !errors.As(r.Error, &stageErr) {
		p.Fail("Error processing %s: %v", r.Domain, r.Error)
		return
	}

	switch stageErr.Stage {
	case model.StateFetching:
		p.Fail("Error collecting URLs for %s: %v", r.Domain, stageErr.Err)
	case model.StateReading:
		if errors.Is(stageErr.Err, artifact.ErrNotFound) {
			p.Fail("File not found: %s", stageErr.Path)
			return
		}
		p.Fail("Error reading %s: %v", stageErr.Path, stageErr.Err)
	case model.StatePersisting:
		p.Fail("Error saving %s for %s: %v", c.Noun, r.Domain, stageErr.Err)
	default:
		p.Fail("Error processing %s: %v", r.Domain, stageErr.Err)
	}
}
