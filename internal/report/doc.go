// Package report provides console progress output and run summary writers.
//
// Progress is the sink the pipeline driver reports to while it works
// through the domain list. ConsoleProgress prints the familiar "[+]" and
// "[-]" prefixed lines; NopProgress discards everything.
//
// Once a run finishes, its model.RunSummary can be rendered with one of
// the Writer implementations:
//   - MarkdownWriter: GitHub Flavored Markdown with tables and a file type chart
//   - JSONWriter: structured JSON for tool integration
//
// Both implement the Writer interface.
package report
