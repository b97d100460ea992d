package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/waybackrecon/internal/artifact"
	"github.com/nao1215/waybackrecon/internal/config"
	"github.com/nao1215/waybackrecon/internal/database"
	seclog "github.com/nao1215/waybackrecon/internal/log"
	"github.com/nao1215/waybackrecon/internal/model"
	"github.com/nao1215/waybackrecon/internal/pipeline"
	"github.com/nao1215/waybackrecon/internal/report"
)

// Summary flag names, shared by the batch commands.
const (
	flagSummary  = "summary"
	flagJSON     = "json"
	flagMarkdown = "markdown"
)

// newCommandFunc builds the pipeline command for one run.
type newCommandFunc func(cfg *config.Config, store artifact.Store, logger *slog.Logger) (pipeline.Command, error)

// addSummaryFlags registers the run summary flags on cmd.
func addSummaryFlags(cmd *cobra.Command) {
	cmd.Flags().String(flagSummary, "",
		"Write a run summary to the specified file path (creates directories if needed)")
	cmd.Flags().BoolP(flagJSON, "j", false,
		"Write the run summary as JSON (mutually exclusive with --markdown)")
	cmd.Flags().BoolP(flagMarkdown, "m", false,
		"Write the run summary as Markdown, the default (mutually exclusive with --json)")
}

// runBatch loads the domain list named by args[0] and runs the command
// built by newCommand over every domain.
func runBatch(cmd *cobra.Command, args []string, newCommand newCommandFunc) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	var consoleOpts []report.ConsoleOption
	if cfg.NoColor {
		consoleOpts = append(consoleOpts, report.WithoutColor())
	}
	progress := report.NewConsoleProgress(cmd.OutOrStdout(), consoleOpts...)

	domains, err := config.LoadDomains(cfg.DomainsFile)
	if err != nil {
		if errors.Is(err, config.ErrNoDomains) {
			progress.Fail("No valid domains found in the file")
		} else {
			progress.Fail("Error reading file %s: %v", cfg.DomainsFile, err)
		}
		return errReported
	}
	cfg.Domains = domains

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := newLogger(cmd.ErrOrStderr(), cfg)
	slog.SetDefault(logger)

	store := artifact.NewFileStore(cfg.OutputDir)
	command, err := newCommand(cfg, store, logger)
	if err != nil {
		return err
	}

	driverOpts := []pipeline.DriverOption{
		pipeline.WithProgress(progress),
		pipeline.WithDriverLogger(logger),
	}
	if cfg.SaveToDB {
		db, err := database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			// History is optional; the run itself can still succeed.
			logger.Warn("run history disabled", "dir", cfg.DBDir, "error", err)
		} else {
			defer db.Close()
			driverOpts = append(driverOpts, pipeline.WithHistory(db))
		}
	}

	ctx, stop := signalContext(cmd)
	defer stop()

	summary, err := pipeline.NewDriver(driverOpts...).Run(ctx, command, cfg.Domains)
	if summaryErr := writeSummary(cfg, summary); summaryErr != nil {
		logger.Error("failed to write run summary", "path", cfg.SummaryFile, "error", summaryErr)
		progress.Fail("Error writing summary %s: %v", cfg.SummaryFile, summaryErr)
	}
	if err != nil {
		return fmt.Errorf("run interrupted: %w", err)
	}
	return nil
}

// signalContext returns the command context cancelled on SIGINT or SIGTERM.
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
}

// buildConfig creates a Config from cobra command flags and the
// configuration file. Flags given explicitly win over file values.
func buildConfig(cmd *cobra.Command, domainsFile string) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.DomainsFile = domainsFile

	flags := cmd.Flags()
	var err error

	if cfg.Verbose, err = flags.GetBool(flagVerbose); err != nil {
		return nil, err
	}
	if cfg.NoColor, err = flags.GetBool(flagNoColor); err != nil {
		return nil, err
	}
	if cfg.LogJSON, err = flags.GetBool(flagLogJSON); err != nil {
		return nil, err
	}
	if cfg.ConfigFilePath, err = flags.GetString(flagConfig); err != nil {
		return nil, err
	}
	if cfg.OutputDir, err = flags.GetString(config.FlagOutputDir); err != nil {
		return nil, err
	}
	if cfg.DBDir, err = flags.GetString(flagDBDir); err != nil {
		return nil, err
	}
	noHistory, err := flags.GetBool(flagNoHistory)
	if err != nil {
		return nil, err
	}
	cfg.SaveToDB = !noHistory

	// Fetch flags only exist on collect.
	if flags.Lookup(config.FlagTimeout) != nil {
		if cfg.Timeout, err = flags.GetDuration(config.FlagTimeout); err != nil {
			return nil, err
		}
		if cfg.CDXURL, err = flags.GetString(config.FlagCDXURL); err != nil {
			return nil, err
		}
		if cfg.UserAgent, err = flags.GetString(config.FlagUserAgent); err != nil {
			return nil, err
		}
		if cfg.ProxyAddress, err = flags.GetString(config.FlagProxy); err != nil {
			return nil, err
		}
	}

	if flags.Lookup(flagSummary) != nil {
		if cfg.SummaryFile, err = flags.GetString(flagSummary); err != nil {
			return nil, err
		}
		if cfg.JSONSummary, err = flags.GetBool(flagJSON); err != nil {
			return nil, err
		}
		if cfg.MarkdownSummary, err = flags.GetBool(flagMarkdown); err != nil {
			return nil, err
		}
	}

	// If the user explicitly specified a config file path, error if not found.
	// Otherwise silently run with defaults when no file exists.
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	if configPath == "" {
		if cfg.ConfigFilePath != "" {
			return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
		}
		return cfg, nil
	}

	file, err := config.LoadConfigFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
	}
	if err := cfg.ApplyFile(file, flags.Changed); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
	}

	return cfg, nil
}

// newLogger builds the diagnostic logger for a run.
func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	if cfg.LogJSON {
		return seclog.NewSecureJSONLogger(w, cfg.Verbose)
	}
	return seclog.NewSecureLogger(w, cfg.Verbose)
}

// writeSummary writes the run summary in the requested format.
// It does nothing when no summary file was requested.
func writeSummary(cfg *config.Config, summary *model.RunSummary) error {
	if cfg.SummaryFile == "" || summary == nil {
		return nil
	}

	dir := filepath.Dir(cfg.SummaryFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create summary directory: %w", err)
		}
	}

	// Summaries list the analysed domains, keep them private to the owner.
	f, err := os.OpenFile(cfg.SummaryFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create summary file: %w", err)
	}
	defer f.Close()

	var writer report.Writer
	if cfg.JSONSummary {
		writer = report.NewJSONWriter(f, report.WithPrettyPrint(), report.WithVersion(getVersion()))
	} else {
		writer = report.NewMarkdownWriter(f)
	}

	if _, err := writer.Write(summary); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}
