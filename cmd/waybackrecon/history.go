package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nao1215/waybackrecon/internal/database"
)

// historyDateFormat is the timestamp layout of history listings.
const historyDateFormat = "2006-01-02 15:04:05"

// NewHistoryCmd creates the history command.
// It shows the runs recorded in the history database.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [domain]",
		Short: "Show recorded runs and how a domain changed between them",
		Long: `History displays the runs stored in the history database.

For a domain it lists every recorded run, newest first, followed by the
change between the two latest runs of each command. When both runs wrote
identical output, the change is reported as unchanged.

Examples:
  # List every domain with recorded runs
  waybackrecon history --list-domains

  # Show runs and changes for a domain
  waybackrecon history example.com

  # Show the details of one run
  waybackrecon history --id 12`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	cmd.Flags().BoolP("list-domains", "L", false,
		"List all domains in the history database")
	cmd.Flags().Int64P("id", "i", 0,
		"Show the details of the run with this ID")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	listDomains, err := cmd.Flags().GetBool("list-domains")
	if err != nil {
		return err
	}
	runID, err := cmd.Flags().GetInt64("id")
	if err != nil {
		return err
	}

	// Validate arguments before opening the database.
	if !listDomains && runID <= 0 && len(args) == 0 {
		return errors.New("domain is required (use --list-domains to see recorded domains)")
	}

	dbDir, err := cmd.Flags().GetString(flagDBDir)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	db, err := database.Open(dbDir, database.Options{CreateIfNotExists: false})
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintln(out, "No run history found.")
			fmt.Fprintln(out, "\nUse 'waybackrecon collect <domains-file>' to record runs.")
			return nil
		}
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	switch {
	case listDomains:
		return listRecordedDomains(ctx, out, db)
	case runID > 0:
		return showRun(ctx, out, db, runID)
	default:
		return showDomainHistory(ctx, out, db, args[0])
	}
}

// listRecordedDomains lists all domains that have records in the database.
func listRecordedDomains(ctx context.Context, out io.Writer, db *database.HistoryDB) error {
	domains, err := db.ListDomains(ctx)
	if err != nil {
		return fmt.Errorf("failed to list domains: %w", err)
	}

	if len(domains) == 0 {
		fmt.Fprintln(out, "No domains found in the history database.")
		fmt.Fprintln(out, "\nUse 'waybackrecon collect <domains-file>' to record runs.")
		return nil
	}

	fmt.Fprintf(out, "Recorded domains (%d):\n\n", len(domains))
	for _, domain := range domains {
		fmt.Fprintf(out, "  • %s\n", domain)
	}
	fmt.Fprintln(out, "\nUse 'waybackrecon history <domain>' to see the runs of a domain.")

	return nil
}

// showDomainHistory lists the runs of domain and the latest changes.
func showDomainHistory(ctx context.Context, out io.Writer, db *database.HistoryDB, domain string) error {
	records, err := db.GetHistory(ctx, domain)
	if err != nil {
		return fmt.Errorf("failed to get history: %w", err)
	}

	if len(records) == 0 {
		fmt.Fprintf(out, "No run history found for %s\n", domain)
		return nil
	}

	fmt.Fprintf(out, "Run history for %s (%d runs):\n\n", domain, len(records))
	fmt.Fprintf(out, "  %-6s  %-19s  %-10s  %8s  %s\n", "ID", "Date", "Command", "Count", "Digest")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 60))
	for _, r := range records {
		fmt.Fprintf(out, "  %-6d  %-19s  %-10s  %8d  %s\n",
			r.ID,
			r.Timestamp.Local().Format(historyDateFormat),
			r.Command,
			r.Count,
			shortDigest(r.Digest),
		)
	}

	deltas := database.Deltas(records)
	if len(deltas) == 0 {
		fmt.Fprintln(out, "\nAt least 2 runs of the same command are required to show changes.")
		return nil
	}

	fmt.Fprintln(out, "\nChanges since the previous run:")
	for _, d := range deltas {
		fmt.Fprintf(out, "  %-10s  %d -> %d (%s)\n", d.Command, d.Previous.Count, d.Latest.Count, formatChange(d))
	}
	return nil
}

// showRun prints the details of one run.
func showRun(ctx context.Context, out io.Writer, db *database.HistoryDB, id int64) error {
	record, err := db.GetRunByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get run %d: %w", id, err)
	}
	if record == nil {
		return fmt.Errorf("run with ID %d not found", id)
	}

	fmt.Fprintf(out, "Run %d\n\n", record.ID)
	fmt.Fprintf(out, "  Domain:   %s\n", record.Domain)
	fmt.Fprintf(out, "  Command:  %s\n", record.Command)
	fmt.Fprintf(out, "  Date:     %s\n", record.Timestamp.Local().Format(historyDateFormat))
	fmt.Fprintf(out, "  Count:    %d\n", record.Count)
	if record.Digest != "" {
		fmt.Fprintf(out, "  Digest:   %s\n", record.Digest)
	}

	counts := record.Result.Counts
	fmt.Fprintf(out, "\n  URLs: %d, Regular: %d, Files: %d, Endpoints: %d, Parameters: %d\n",
		counts.URLs, counts.Regular, counts.Files, counts.Endpoints, counts.Parameters)

	if len(record.Result.FileTypes) > 0 {
		exts := make([]string, 0, len(record.Result.FileTypes))
		for ext := range record.Result.FileTypes {
			exts = append(exts, ext)
		}
		sort.Strings(exts)

		parts := make([]string, 0, len(exts))
		for _, ext := range exts {
			parts = append(parts, fmt.Sprintf("%s: %d", ext, record.Result.FileTypes[ext]))
		}
		fmt.Fprintf(out, "  File types: %s\n", strings.Join(parts, ", "))
	}
	return nil
}

// formatChange describes the difference between two runs.
func formatChange(d database.Delta) string {
	if d.Unchanged {
		return "unchanged"
	}
	return fmt.Sprintf("%+d", d.Change)
}

// shortDigest abbreviates a digest for tabular output.
func shortDigest(digest string) string {
	if digest == "" {
		return "-"
	}
	if len(digest) > 12 {
		return digest[:12]
	}
	return digest
}
