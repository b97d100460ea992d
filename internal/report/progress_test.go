package report

import (
	"bytes"
	"testing"
)

// TestConsoleProgress tests the console progress lines.
func TestConsoleProgress(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := NewConsoleProgress(&buf, WithoutColor())

	p.Found(2)
	p.Start(1, 2, "example.com")
	p.Info("Found %d total URLs for %s", 3, "example.com")
	p.Fail("File not found: %s", "missing/wayback_urls.txt")
	p.Complete("Total endpoints across all domains: 5")

	want := "[+] Found 2 domains to process\n" +
		"\n[1/2] Processing example.com\n" +
		"[+] Found 3 total URLs for example.com\n" +
		"[-] File not found: missing/wayback_urls.txt\n" +
		"\n[+] Complete!\n" +
		"[+] Total endpoints across all domains: 5\n"

	if got := buf.String(); got != want {
		t.Errorf("unexpected output:\n got: %q\nwant: %q", got, want)
	}
}

// TestConsoleProgress_CompleteWithoutSummary tests the bare completion line.
func TestConsoleProgress_CompleteWithoutSummary(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	NewConsoleProgress(&buf, WithoutColor()).Complete("")

	if got := buf.String(); got != "\n[+] Complete!\n" {
		t.Errorf("unexpected output %q", got)
	}
}

// TestConsoleProgress_LiteralPercent tests that summaries are not treated as format strings.
func TestConsoleProgress_LiteralPercent(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	NewConsoleProgress(&buf, WithoutColor()).Complete("100% done")

	if got := buf.String(); got != "\n[+] Complete!\n[+] 100% done\n" {
		t.Errorf("unexpected output %q", got)
	}
}

// TestNopProgress tests that NopProgress satisfies Progress.
func TestNopProgress(t *testing.T) {
	t.Parallel()

	var p Progress = NopProgress{}
	p.Found(1)
	p.Start(1, 1, "example.com")
	p.Info("x")
	p.Fail("y")
	p.Complete("z")
}
