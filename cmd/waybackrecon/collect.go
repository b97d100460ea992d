package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/nao1215/waybackrecon/internal/artifact"
	"github.com/nao1215/waybackrecon/internal/cdx"
	"github.com/nao1215/waybackrecon/internal/config"
	"github.com/nao1215/waybackrecon/internal/pipeline"
)

// NewCollectCmd creates the collect command.
func NewCollectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "collect <domains-file>",
		Short: "Collect archived URLs for every domain in a file",
		Long: `Collect queries the Wayback Machine CDX index for every domain listed in
the domains file (one domain per line) and writes, per domain:

  wayback_urls.txt   every unique non-static URL, sorted
  wayback_url.txt    URLs that are not files of a known type
  <ext>.txt          URLs of each file type (pdf.txt, php.txt, ...)
  endpoints.txt      unique host/first-path-segment/ endpoints
  parameters.txt     unique query parameter names

Static assets such as images, stylesheets and fonts are discarded.

Examples:
  # Collect URLs for the domains in domains.txt
  waybackrecon collect domains.txt

  # Write output below ./recon and a JSON run summary
  waybackrecon collect -o recon --summary recon/summary.json --json domains.txt

  # Query through a SOCKS5 proxy with a longer timeout
  waybackrecon collect --proxy 127.0.0.1:9050 -t 2m domains.txt`,
		Args: exactArgs(1),
		RunE: runCollectCmd,
	}

	cmd.Flags().DurationP(config.FlagTimeout, "t", config.DefaultTimeout,
		"Timeout of one CDX request")
	cmd.Flags().String(config.FlagCDXURL, config.DefaultCDXURL,
		"CDX search endpoint")
	cmd.Flags().String(config.FlagUserAgent, config.DefaultUserAgent,
		"User-Agent header sent to the CDX index")
	cmd.Flags().String(config.FlagProxy, "",
		"Route CDX requests through a SOCKS5 proxy (e.g., 127.0.0.1:9050)")
	addSummaryFlags(cmd)

	return cmd
}

// runCollectCmd executes the collect command.
func runCollectCmd(cmd *cobra.Command, args []string) error {
	return runBatch(cmd, args, newCollectCommand)
}

// newCollectCommand wires a CDX client into the collect pipeline.
func newCollectCommand(cfg *config.Config, store artifact.Store, logger *slog.Logger) (pipeline.Command, error) {
	opts := []cdx.Option{
		cdx.WithEndpoint(cfg.CDXURL),
		cdx.WithTimeout(cfg.Timeout),
		cdx.WithUserAgent(cfg.UserAgent),
		cdx.WithLogger(logger),
	}
	if cfg.ProxyAddress != "" {
		opts = append(opts, cdx.WithProxy(cfg.ProxyAddress))
	}

	client, err := cdx.NewClient(opts...)
	if err != nil {
		return pipeline.Command{}, fmt.Errorf("failed to create CDX client: %w", err)
	}

	return pipeline.NewCollectCommand(client, store, pipeline.WithLogger(logger)), nil
}
