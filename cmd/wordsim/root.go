// ABOUTME: Root Cobra command and global flags for the wordsim CLI.
// ABOUTME: Loads config, applies flag overrides, and builds the logger and search session.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/2389-research/wordsim/internal/config"
	"github.com/2389-research/wordsim/internal/logging"
	"github.com/2389-research/wordsim/internal/session"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

var globalConfig *config.Config
var globalLogger *slog.Logger
var globalSession *session.Session

var rootCmd = &cobra.Command{
	Use:     "wordsim",
	Short:   "Similarity search with word embeddings",
	Version: version,
	Long: `
██╗    ██╗ ██████╗ ██████╗ ██████╗ ███████╗██╗███╗   ███╗
██║    ██║██╔═══██╗██╔══██╗██╔══██╗██╔════╝██║████╗ ████║
██║ █╗ ██║██║   ██║██████╔╝██║  ██║███████╗██║██╔████╔██║
██║███╗██║██║   ██║██╔══██╗██║  ██║╚════██║██║██║╚██╔╝██║
╚███╔███╔╝╚██████╔╝██║  ██║██████╔╝███████║██║██║ ╚═╝ ██║
 ╚══╝╚══╝  ╚═════╝ ╚═╝  ╚═╝╚═════╝ ╚══════╝╚═╝╚═╝     ╚═╝

   Similarity Search with Word Embeddings

Find the words closest to yours by cosine similarity over a
pre-computed embedding table, and keep the results in a report file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" {
			return nil
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		applyFlagOverrides(cmd.Flags(), cfg)
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		globalConfig = cfg

		// Log lines on stderr would tear the menu's rendering.
		if cmd.Name() == "menu" {
			globalLogger = logging.Discard()
		} else {
			globalLogger = logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
		}

		sess, err := session.FromConfig(cfg, globalLogger)
		if err != nil {
			return fmt.Errorf("failed to create session: %w", err)
		}
		globalSession = sess
		return nil
	},
}

func init() {
	registerConfigFlags(rootCmd.PersistentFlags())
}

// registerConfigFlags defines the flags that override config file values.
func registerConfigFlags(fs *pflag.FlagSet) {
	fs.String("embeddings", "", "Path to the word embeddings file")
	fs.String("output", "", "Path to the report output file")
	fs.Float64("threshold", 0, "Minimum similarity score (exclusive) for a match")
	fs.Int("dimension", 0, "Number of vector components per embedding")
	fs.String("log-level", "", "Log level: debug, info, warn, or error")
	fs.String("log-format", "", "Log format: text or json")
}

// applyFlagOverrides copies explicitly set flags over the loaded config.
// Unset flags leave the file values alone.
func applyFlagOverrides(flags *pflag.FlagSet, cfg *config.Config) {
	if flags.Changed("embeddings") {
		cfg.Embeddings.Path, _ = flags.GetString("embeddings")
	}
	if flags.Changed("output") {
		cfg.Output.Path, _ = flags.GetString("output")
	}
	if flags.Changed("threshold") {
		cfg.Search.Threshold, _ = flags.GetFloat64("threshold")
	}
	if flags.Changed("dimension") {
		cfg.Embeddings.Dimension, _ = flags.GetInt("dimension")
	}
	if flags.Changed("log-level") {
		cfg.Log.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-format") {
		cfg.Log.Format, _ = flags.GetString("log-format")
	}
}
