// ABOUTME: CLI command that summarizes the highest similarity per word.
// ABOUTME: Decodes the report file and prints one line per searched word.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/2389-research/wordsim/internal/report"
)

var bestCmd = &cobra.Command{
	Use:   "best",
	Short: "Show the highest similarity per word from the output file",
	Long:  "Read the report output file and print the best similarity score recorded for each word.",
	Args:  cobra.NoArgs,
	RunE:  runBest,
}

func init() {
	rootCmd.AddCommand(bestCmd)
}

func runBest(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	scores, err := globalSession.BestScores()
	if err != nil {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
	}

	lines := report.SummaryLines(scores)
	if len(lines) == 0 {
		_, _ = fmt.Fprintln(out, report.NoScoresMessage)
		return nil
	}
	for _, line := range lines {
		_, _ = fmt.Fprintln(out, line)
	}
	return nil
}
