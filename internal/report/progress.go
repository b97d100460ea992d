package report

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Progress receives human-readable progress events from a run.
// Implementations decide where the lines go; the driver never writes to
// stdout directly.
type Progress interface {
	// Found announces how many domains will be processed.
	Found(n int)

	// Start announces that domain index of total is being processed.
	// index is 1-based.
	Start(index, total int, domain string)

	// Info reports a successful step or a result.
	Info(format string, args ...any)

	// Fail reports a problem with the current domain or input.
	Fail(format string, args ...any)

	// Complete announces the end of the run. A non-empty summary is
	// printed as an extra result line.
	Complete(summary string)
}

// ConsoleProgress writes progress lines with "[+]" and "[-]" prefixes.
// Prefixes are colored when the output is a terminal unless colors are
// disabled.
type ConsoleProgress struct {
	output io.Writer
	ok     *color.Color
	bad    *color.Color
	step   *color.Color
}

// ConsoleOption configures a ConsoleProgress.
type ConsoleOption func(*ConsoleProgress)

// WithoutColor disables colored prefixes.
func WithoutColor() ConsoleOption {
	return func(p *ConsoleProgress) {
		p.ok.DisableColor()
		p.bad.DisableColor()
		p.step.DisableColor()
	}
}

// NewConsoleProgress creates a ConsoleProgress writing to output.
// If output is nil, os.Stdout is used.
func NewConsoleProgress(output io.Writer, opts ...ConsoleOption) *ConsoleProgress {
	if output == nil {
		output = os.Stdout
	}
	p := &ConsoleProgress{
		output: output,
		ok:     color.New(color.FgGreen, color.Bold),
		bad:    color.New(color.FgRed, color.Bold),
		step:   color.New(color.FgCyan),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Found implements Progress.
func (p *ConsoleProgress) Found(n int) {
	p.Info("Found %d domains to process", n)
}

// Start implements Progress.
func (p *ConsoleProgress) Start(index, total int, domain string) {
	fmt.Fprintln(p.output)
	p.step.Fprintf(p.output, "[%d/%d]", index, total) //nolint:errcheck // console output
	fmt.Fprintf(p.output, " Processing %s\n", domain)
}

// Info implements Progress.
func (p *ConsoleProgress) Info(format string, args ...any) {
	p.line(p.ok, "[+]", format, args...)
}

// Fail implements Progress.
func (p *ConsoleProgress) Fail(format string, args ...any) {
	p.line(p.bad, "[-]", format, args...)
}

// Complete implements Progress.
func (p *ConsoleProgress) Complete(summary string) {
	fmt.Fprintln(p.output)
	p.Info("Complete!")
	if summary != "" {
		p.Info("%s", summary)
	}
}

func (p *ConsoleProgress) line(c *color.Color, prefix, format string, args ...any) {
	c.Fprint(p.output, prefix) //nolint:errcheck // console output
	fmt.Fprintf(p.output, " "+format+"\n", args...)
}

// NopProgress discards all progress events.
type NopProgress struct{}

// Found implements Progress.
func (NopProgress) Found(int) {}

// Start implements Progress.
func (NopProgress) Start(int, int, string) {}

// Info implements Progress.
func (NopProgress) Info(string, ...any) {}

// Fail implements Progress.
func (NopProgress) Fail(string, ...any) {}

// Complete implements Progress.
func (NopProgress) Complete(string) {}
