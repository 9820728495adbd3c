package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mediasweep/internal/dedup"
)

func newDedupCommand() *cobra.Command {
	var jsonOutput bool
	var noProgress bool

	cmd := &cobra.Command{
		Use:         "dedup <file>",
		Short:       "Write a copy of a text file with repeated lines removed",
		Long:        "Reads <file> and writes <stem>.dedup<ext> next to it, keeping the first occurrence of every line in order. The input is never modified.",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			var opts dedup.Options
			var bar *byteProgress
			if !noProgress && !jsonOutput && shouldColorize(cmd.ErrOrStderr()) {
				if info, err := os.Stat(input); err == nil && info.Mode().IsRegular() {
					bar = newByteProgress(cmd.ErrOrStderr(), "Deduplicating", info.Size())
					opts.OnProgress = bar.Update
				}
			}

			result, err := dedup.File(cmd.Context(), input, opts)
			if bar != nil {
				bar.Finish(err != nil)
			}
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, result)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deduplication complete. Output written to %s.\n", result.Output)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the result as JSON")
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "Disable the progress bar")
	return cmd
}
