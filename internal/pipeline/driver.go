package pipeline

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/nao1215/waybackrecon/internal/artifact"
	"github.com/nao1215/waybackrecon/internal/model"
	"github.com/nao1215/waybackrecon/internal/report"
)

// History records the result of each successfully processed domain.
// *database.HistoryDB satisfies it.
type History interface {
	SaveRun(ctx context.Context, command string, result model.DomainResult) (int64, error)
}

// Driver processes a list of domains one after another.
// Each domain gets a fresh report and a fresh pipeline, so nothing leaks
// between domains; a failing domain contributes zero and the loop moves on.
type Driver struct {
	progress report.Progress
	history  History
	logger   *slog.Logger
}

// DriverOption configures a Driver.
type DriverOption func(*Driver)

// WithProgress sets the progress sink. The default discards progress.
func WithProgress(progress report.Progress) DriverOption {
	return func(d *Driver) {
		d.progress = progress
	}
}

// WithHistory records every successful domain result in history.
func WithHistory(history History) DriverOption {
	return func(d *Driver) {
		d.history = history
	}
}

// WithDriverLogger sets a custom logger for the driver.
func WithDriverLogger(logger *slog.Logger) DriverOption {
	return func(d *Driver) {
		d.logger = logger
	}
}

// NewDriver creates a Driver.
func NewDriver(opts ...DriverOption) *Driver {
	d := &Driver{}
	for _, opt := range opts {
		opt(d)
	}
	if d.progress == nil {
		d.progress = report.NopProgress{}
	}
	if d.logger == nil {
		d.logger = slog.Default()
	}
	return d
}

// Run executes cmd for every domain in order and returns the run summary.
//
// Domain failures are reported and counted as zero; they never make Run
// fail. Run only returns an error when ctx is cancelled, in which case the
// summary holds the domains processed so far.
func (d *Driver) Run(ctx context.Context, cmd Command, domains []string) (*model.RunSummary, error) {
	summary := model.NewRunSummary(cmd.Name)
	d.progress.Found(len(domains))

	for i, domain := range domains {
		if err := ctx.Err(); err != nil {
			summary.Finish()
			return summary, err
		}

		d.progress.Start(i+1, len(domains), domain)
		result := d.processDomain(ctx, cmd, domain)
		summary.Add(result)

		if d.history != nil && !result.Failed() {
			if _, err := d.history.SaveRun(ctx, cmd.Name, result); err != nil {
				d.logger.Warn("failed to save run history", "domain", domain, "error", err)
			}
		}
	}

	summary.Finish()
	d.logger.Debug("run complete",
		"command", cmd.Name,
		"domains", len(domains),
		"failed", summary.Failed(),
		"total", summary.Total,
		"elapsed", summary.Elapsed(),
	)
	d.progress.Complete("Total " + cmd.Noun + " across all domains: " + strconv.Itoa(summary.Total))

	return summary, nil
}

// processDomain runs one domain through a fresh pipeline.
func (d *Driver) processDomain(ctx context.Context, cmd Command, domain string) model.DomainResult {
	r := model.NewDomainReport(domain)

	if err := artifact.ValidateDomain(domain); err != nil {
		r.Fail(&StageError{Stage: model.StatePending, Domain: domain, Err: err})
		cmd.describeFailure(d.progress, r)
		return model.NewDomainResult(r, 0)
	}

	if cmd.announce != nil {
		cmd.announce(d.progress, r)
	}

	if err := cmd.newPipeline().Execute(ctx, r); err != nil {
		cmd.describeFailure(d.progress, r)
		return model.NewDomainResult(r, 0)
	}

	if cmd.describe != nil {
		cmd.describe(d.progress, r)
	}
	return model.NewDomainResult(r, cmd.count(r))
}
