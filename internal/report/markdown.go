package report

import (
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nao1215/waybackrecon/internal/model"
)

// MarkdownWriter outputs run summaries in GitHub Flavored Markdown.
type MarkdownWriter struct {
	baseWriter

	// upper renders extension labels ("pdf" becomes "PDF").
	upper cases.Caser
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
		upper:      cases.Upper(language.Und),
	}
}

// Write outputs the summary in Markdown format.
func (w *MarkdownWriter) Write(summary *model.RunSummary) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, summary)
	w.writeAlert(md, summary)
	w.writeDomains(md, summary)
	w.writeFileTypes(md, summary)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the title and the run properties table.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, summary *model.RunSummary) {
	md.H1("Wayback Recon Summary")
	md.PlainText("")

	finished := "-"
	if !summary.FinishedAt.IsZero() {
		finished = summary.FinishedAt.Format("2006-01-02 15:04:05 MST")
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Command", "`" + summary.Command + "`"},
			{"Started", summary.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Finished", finished},
			{"Elapsed", summary.Elapsed().Round(time.Millisecond).String()},
			{"Domains", strconv.Itoa(len(summary.Domains))},
			{"Succeeded", strconv.Itoa(summary.Succeeded())},
			{"Failed", strconv.Itoa(summary.Failed())},
			{"Total", "**" + strconv.Itoa(summary.Total) + "**"},
		},
	})
	md.PlainText("")
}

// writeAlert writes a callout describing the run outcome.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, summary *model.RunSummary) {
	switch failed := summary.Failed(); {
	case len(summary.Domains) == 0:
		md.Note("No domains were processed.")
	case failed == len(summary.Domains):
		md.Cautionf("All %d domain(s) failed.", failed)
	case failed > 0:
		md.Warningf("%d of %d domain(s) failed and contributed nothing to the total.", failed, len(summary.Domains))
	default:
		md.Tip("All domains were processed successfully.")
	}
	md.PlainText("")
}

// writeDomains writes one row per processed domain.
func (w *MarkdownWriter) writeDomains(md *markdown.Markdown, summary *model.RunSummary) {
	md.H2("Domains")
	md.PlainText("")

	if len(summary.Domains) == 0 {
		md.PlainText("No domains processed.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(summary.Domains))
	for i, d := range summary.Domains {
		status := "✅ OK"
		if d.Failed() {
			status = "❌ " + truncateString(d.Error, 60)
		}
		rows[i] = []string{
			"`" + d.Domain + "`",
			strconv.Itoa(d.Count),
			strconv.Itoa(d.Counts.URLs),
			strconv.Itoa(d.Counts.Regular),
			strconv.Itoa(d.Counts.Files),
			strconv.Itoa(d.Counts.Endpoints),
			strconv.Itoa(d.Counts.Parameters),
			status,
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Domain", "Count", "URLs", "Regular", "Files", "Endpoints", "Parameters", "Status"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeFileTypes writes the file type breakdown across all domains.
// The section is omitted when no file URLs were found.
func (w *MarkdownWriter) writeFileTypes(md *markdown.Markdown, summary *model.RunSummary) {
	totals := make(map[string]int)
	for _, d := range summary.Domains {
		for ext, n := range d.FileTypes {
			totals[ext] += n
		}
	}
	if len(totals) == 0 {
		return
	}

	exts := make([]string, 0, len(totals))
	for ext := range totals {
		exts = append(exts, ext)
	}
	// Most frequent first, ties by name.
	sort.Slice(exts, func(i, j int) bool {
		if totals[exts[i]] != totals[exts[j]] {
			return totals[exts[i]] > totals[exts[j]]
		}
		return exts[i] < exts[j]
	})

	md.H2("File Types")
	md.PlainText("")

	rows := make([][]string, len(exts))
	for i, ext := range exts {
		rows[i] = []string{w.upper.String(ext), "`" + ext + ".txt`", strconv.Itoa(totals[ext])}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Type", "File", "URLs"},
		Rows:   rows,
	})
	md.PlainText("")

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("File URLs by Type"),
		piechart.WithShowData(true),
	)
	for _, ext := range exts {
		chart.LabelAndIntValue(w.upper.String(ext), uint64(totals[ext])) //nolint:gosec // counts are non-negative
	}
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeFooter writes the summary footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Summary generated by [waybackrecon](https://github.com/nao1215/waybackrecon)*")
}

// truncateString truncates a string to maxLen runes with ellipsis.
// Newlines are flattened so the value fits in a table cell.
func truncateString(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
