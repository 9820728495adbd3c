package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"mediasweep/internal/config"
	"mediasweep/internal/logging"
	"mediasweep/internal/orphans"
	"mediasweep/internal/services"
	"mediasweep/internal/services/arr"
)

type orphansFlags struct {
	url         string
	apiKey      string
	mediaDir    string
	resultsFile string
	extensions  []string
	printLimit  int
	jsonOutput  bool
	summary     bool
}

type orphansReport struct {
	RunID     string          `json:"run_id"`
	Service   string          `json:"service"`
	URL       string          `json:"url"`
	MediaRoot string          `json:"media_root"`
	Known     int             `json:"known"`
	Observed  int             `json:"observed"`
	Orphaned  []string        `json:"orphaned"`
	Exclusive []string        `json:"exclusive"`
	Files     orphans.Outputs `json:"files"`
}

type orphansFailure struct {
	RunID      string `json:"run_id"`
	Service    string `json:"service"`
	URL        string `json:"url"`
	StatusCode int    `json:"status_code"`
	Error      string `json:"error"`
}

func newOrphansCommand(ctx *commandContext) *cobra.Command {
	orphansCmd := &cobra.Command{
		Use:   "orphans",
		Short: "Find media files the library manager does not track",
	}

	orphansCmd.AddCommand(newOrphansScanCommand(ctx, arr.KindMovies))
	orphansCmd.AddCommand(newOrphansScanCommand(ctx, arr.KindSeries))

	return orphansCmd
}

func newOrphansScanCommand(ctx *commandContext, kind arr.Kind) *cobra.Command {
	var flags orphansFlags

	cmd := &cobra.Command{
		Use:     string(kind),
		Aliases: []string{kind.ConfigSection()},
		Short:   fmt.Sprintf("Compare %s's library with the files under its media root", kind.ServiceName()),
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := cmd.CalledAs()
			if name == "" {
				name = cmd.Name()
			}
			kind, err := arr.ParseKind(name)
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			svc, err := applyOrphansFlags(cmd, cfg, kind, flags)
			if err != nil {
				return err
			}
			return runOrphansScan(cmd, ctx, cfg, kind, svc, flags)
		},
	}

	cmd.Flags().StringVar(&flags.url, "url", "", fmt.Sprintf("%s base URL", kind.ServiceName()))
	cmd.Flags().StringVar(&flags.apiKey, "api-key", "", fmt.Sprintf("%s API key", kind.ServiceName()))
	cmd.Flags().StringVar(&flags.mediaDir, "media-dir", "", "Media root to scan")
	cmd.Flags().StringVar(&flags.resultsFile, "results-file", "", "File that receives the orphan list when it exceeds the print limit")
	cmd.Flags().StringSliceVar(&flags.extensions, "ext", nil, "Recognized file extension (repeatable)")
	cmd.Flags().IntVar(&flags.printLimit, "print-limit", 0, "Largest orphan count printed instead of written to the results file")
	cmd.Flags().BoolVar(&flags.jsonOutput, "json", false, "Print the result as JSON")
	cmd.Flags().BoolVar(&flags.summary, "summary", false, "Print a table of set sizes after the report")
	return cmd
}

// applyOrphansFlags layers explicit flags over the loaded config and checks
// the result.
func applyOrphansFlags(cmd *cobra.Command, cfg *config.Config, kind arr.Kind, flags orphansFlags) (*config.Service, error) {
	section := kind.ConfigSection()
	svc, err := cfg.Service(section)
	if err != nil {
		return nil, err
	}
	if v := strings.TrimSpace(flags.url); v != "" {
		svc.URL = strings.TrimRight(v, "/")
	}
	if v := strings.TrimSpace(flags.apiKey); v != "" {
		svc.APIKey = v
	}
	if v := strings.TrimSpace(flags.mediaDir); v != "" {
		expanded, err := config.ExpandPath(v)
		if err != nil {
			return nil, fmt.Errorf("--media-dir: %w", err)
		}
		svc.MediaDir = expanded
	}
	if len(flags.extensions) > 0 {
		svc.Extensions = config.NormalizeExtensions(flags.extensions)
	}
	if v := strings.TrimSpace(flags.resultsFile); v != "" {
		expanded, err := config.ExpandPath(v)
		if err != nil {
			return nil, fmt.Errorf("--results-file: %w", err)
		}
		cfg.Report.ResultsFile = expanded
	}
	if cmd.Flags().Changed("print-limit") {
		cfg.Report.PrintLimit = flags.printLimit
	}

	if err := cfg.Validate(); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "cli", "validate", "", err)
	}
	if err := cfg.ValidateService(section); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "cli", "validate", "", err)
	}
	return svc, nil
}

func runOrphansScan(cmd *cobra.Command, cmdCtx *commandContext, cfg *config.Config, kind arr.Kind, svc *config.Service, flags orphansFlags) error {
	logger, err := cmdCtx.newLogger(cmd)
	if err != nil {
		return err
	}
	ctx, runID := runContext(cmd)
	ctx = services.WithService(ctx, kind.ConfigSection())
	logger = logging.NewComponentLogger(logger, "orphans")

	client, err := arr.NewClient(arr.Config{
		Kind:    kind,
		BaseURL: svc.URL,
		APIKey:  svc.APIKey,
		Timeout: time.Duration(svc.TimeoutSeconds) * time.Second,
	})
	if err != nil {
		return err
	}

	scanner := &orphans.Scanner{
		Lister:      client,
		MediaRoot:   svc.MediaDir,
		Extensions:  orphans.Extensions(svc.Extensions),
		Logger:      logger,
		ServiceName: kind.ServiceName(),
		ServiceURL:  client.BaseURL(),
	}

	out := cmd.OutOrStdout()
	result, err := scanner.Run(ctx)
	if err != nil {
		var statusErr *arr.StatusError
		if errors.As(err, &statusErr) {
			message := fmt.Sprintf("Failed to connect to %s: %d", statusErr.Service, statusErr.StatusCode)
			if flags.jsonOutput {
				return writeJSON(cmd, orphansFailure{
					RunID:      runID,
					Service:    statusErr.Service,
					URL:        svc.URL,
					StatusCode: statusErr.StatusCode,
					Error:      message,
				})
			}
			fmt.Fprintln(out, message)
			return nil
		}
		return err
	}
	if result.ObservedEmpty {
		logging.WithContext(ctx, logger).Info("no eligible files on disk; nothing to report",
			logging.String(logging.FieldPath, svc.MediaDir),
		)
		if flags.jsonOutput {
			return writeJSON(cmd, newOrphansReport(runID, kind, svc, result, orphans.Outputs{}))
		}
		return nil
	}

	outputs, err := orphans.Report(out, result, orphans.ReportOptions{
		ResultsFile: cfg.Report.ResultsFile,
		PrintLimit:  cfg.Report.PrintLimit,
		Quiet:       flags.jsonOutput,
	})
	if err != nil {
		return err
	}

	if flags.jsonOutput {
		return writeJSON(cmd, newOrphansReport(runID, kind, svc, result, outputs))
	}
	if flags.summary {
		fmt.Fprintln(out, renderOrphansSummary(result))
	}
	return nil
}

func newOrphansReport(runID string, kind arr.Kind, svc *config.Service, result orphans.Result, outputs orphans.Outputs) orphansReport {
	report := orphansReport{
		RunID:     runID,
		Service:   kind.ServiceName(),
		URL:       svc.URL,
		MediaRoot: svc.MediaDir,
		Known:     result.Known.Len(),
		Observed:  result.Observed.Len(),
		Orphaned:  result.Orphaned,
		Exclusive: result.Exclusive,
		Files:     outputs,
	}
	if report.Orphaned == nil {
		report.Orphaned = []string{}
	}
	if report.Exclusive == nil {
		report.Exclusive = []string{}
	}
	return report
}

func renderOrphansSummary(result orphans.Result) string {
	rows := [][]string{
		{"Known", strconv.Itoa(result.Known.Len())},
		{"Observed", strconv.Itoa(result.Observed.Len())},
		{"Orphaned", strconv.Itoa(len(result.Orphaned))},
		{"Exclusive", strconv.Itoa(len(result.Exclusive))},
	}
	return renderTable([]string{"Set", "Files"}, rows, []columnAlignment{alignLeft, alignRight})
}
