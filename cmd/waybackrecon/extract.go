package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/nao1215/waybackrecon/internal/artifact"
	"github.com/nao1215/waybackrecon/internal/config"
	"github.com/nao1215/waybackrecon/internal/pipeline"
)

// NewEndpointsCmd creates the endpoints command.
func NewEndpointsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "endpoints <domains-file>",
		Short: "Extract unique endpoints from collected URLs",
		Long: `Endpoints reads the wayback_urls.txt that collect stored for every domain
in the domains file and writes endpoints.txt: one host/first-segment/
entry per unique endpoint, sorted.

Examples:
  waybackrecon endpoints domains.txt
  waybackrecon endpoints -o recon domains.txt`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, args, func(_ *config.Config, store artifact.Store, logger *slog.Logger) (pipeline.Command, error) {
				return pipeline.NewEndpointCommand(store, pipeline.WithLogger(logger)), nil
			})
		},
	}
	addSummaryFlags(cmd)

	return cmd
}

// NewParamsCmd creates the params command.
func NewParamsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "params <domains-file>",
		Short: "Extract unique query parameter names from collected URLs",
		Long: `Params reads the wayback_urls.txt that collect stored for every domain in
the domains file and writes parameters.txt: one "name=" line per unique
query parameter name, sorted. Names that look like URLs, paths or HTML
entity residue are skipped.

Examples:
  waybackrecon params domains.txt
  waybackrecon params -o recon domains.txt`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, args, func(_ *config.Config, store artifact.Store, logger *slog.Logger) (pipeline.Command, error) {
				return pipeline.NewParameterCommand(store, pipeline.WithLogger(logger)), nil
			})
		},
	}
	addSummaryFlags(cmd)

	return cmd
}
