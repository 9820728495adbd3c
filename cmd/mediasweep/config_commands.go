package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"mediasweep/internal/config"
	"mediasweep/internal/preflight"
	"mediasweep/internal/services/arr"
)

const maskedSecret = "********"

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigValidateCommand(ctx))
	configCmd.AddCommand(newConfigShowCommand(ctx))

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			} else {
				expanded, err := config.ExpandPath(target)
				if err != nil {
					return fmt.Errorf("resolve config path: %w", err)
				}
				target = expanded
			}

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				} else if !os.IsNotExist(err) {
					return fmt.Errorf("check config path: %w", err)
				}
			}

			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Set radarr.api_key and sonarr.api_key (or export RADARR_API_KEY / SONARR_API_KEY) before scanning.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	var connect bool

	cmd := &cobra.Command{
		Use:         "validate",
		Short:       "Validate the configuration and report per-service readiness",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			fmt.Fprintf(out, "Config path: %s\n", ctx.configPath)
			if !ctx.configExists {
				fmt.Fprintln(out, "Config file did not exist; defaults were used")
			}
			for _, kind := range []arr.Kind{arr.KindMovies, arr.KindSeries} {
				svc, err := cfg.Service(kind.ConfigSection())
				if err != nil {
					return err
				}
				fmt.Fprintln(out, renderSectionHeader(kind.ServiceName(), colorize))
				fmt.Fprintln(out, renderStatusLine("URL", statusOK, svc.URL, colorize))
				fmt.Fprintln(out, renderStatusLine("Extensions", statusOK, strings.Join(svc.Extensions, " "), colorize))
				for _, result := range preflight.RunService(cmd.Context(), cfg, kind, preflight.Options{Connect: connect}) {
					fmt.Fprintln(out, renderPreflightResult(result, colorize))
				}
			}
			fmt.Fprintln(out, renderSectionHeader("Report", colorize))
			fmt.Fprintln(out, renderPreflightResult(preflight.CheckResultsLocation(cfg.Report.ResultsFile), colorize))
			fmt.Fprintln(out, renderStatusLine("Print limit", statusOK, fmt.Sprintf("%d", cfg.Report.PrintLimit), colorize))
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}

	cmd.Flags().BoolVar(&connect, "connect", false, "Also query each service's API")
	return cmd
}

// renderPreflightResult shows failed checks as warnings: they block a scan,
// not the configuration itself.
func renderPreflightResult(result preflight.Result, colorize bool) string {
	kind := statusOK
	if !result.Passed {
		kind = statusWarn
	}
	return renderStatusLine(result.Name, kind, result.Detail, colorize)
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	var reveal bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as TOML",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			effective := *cfg
			if !reveal {
				effective.Radarr.APIKey = maskSecret(effective.Radarr.APIKey)
				effective.Sonarr.APIKey = maskSecret(effective.Sonarr.APIKey)
			}
			data, err := effective.Encode()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "# source: %s (exists: %s)\n", displayPath(ctx.configPath), yesNo(ctx.configExists))
			_, err = out.Write(data)
			return err
		},
	}

	cmd.Flags().BoolVar(&reveal, "reveal", false, "Print API keys instead of masking them")
	return cmd
}

func maskSecret(value string) string {
	if value == "" {
		return ""
	}
	return maskedSecret
}

func displayPath(path string) string {
	if path == "" {
		return "(defaults)"
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		if rel, err := filepath.Rel(home, path); err == nil && !strings.HasPrefix(rel, "..") {
			return filepath.Join("~", rel)
		}
	}
	return path
}
