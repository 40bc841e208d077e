// ABOUTME: CLI command for one-shot similarity searches.
// ABOUTME: Loads the embedding table, searches every word, prints and writes the report.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
)

var searchNoWrite bool

var searchCmd = &cobra.Command{
	Use:   "search <words...>",
	Short: "Find words similar to the given words",
	Long: `Search the embedding table for every given word and report the words
whose cosine similarity exceeds the threshold, plus the single best match.

Words are lower-cased before lookup. The combined report is written to the
output file unless --no-write is set.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().BoolVar(&searchNoWrite, "no-write", false, "Print results without writing the output file")
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := globalSession.LoadTable(); err != nil {
		return err
	}

	batch, err := globalSession.Search(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintln(out, "Results for all entered words:")
	_, _ = fmt.Fprint(out, batch.Text)

	if searchNoWrite {
		return nil
	}
	if err := globalSession.Persist(batch.Text); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "\nResults have been written to the output file: %s\n", globalSession.Info().OutputPath)
	return nil
}
