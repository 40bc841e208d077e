// ABOUTME: Cobra command to show or persist the effective configuration.
// ABOUTME: Prints merged file and flag settings as YAML, optionally saving them.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/2389-research/wordsim/internal/config"
)

var configSave bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Print the configuration after applying command-line flags.

With --save, the result is written to the config file so later runs use it.`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().BoolVar(&configSave, "save", false, "Write the effective configuration to the config file")
}

func runConfig(cmd *cobra.Command, args []string) error {
	data, err := globalConfig.Marshal()
	if err != nil {
		return fmt.Errorf("failed to render config: %w", err)
	}
	out := cmd.OutOrStdout()
	_, _ = fmt.Fprint(out, string(data))

	if !configSave {
		return nil
	}
	if err := globalConfig.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	path, err := config.GetConfigPath()
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "\nConfig saved to %s\n", path)
	return nil
}
