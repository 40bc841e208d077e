// ABOUTME: Cobra command for the interactive search menu.
// ABOUTME: Launches the bubbletea menu over the configured search session.
package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/2389-research/wordsim/internal/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Interactive search menu",
	Long: `Open the interactive menu to switch embedding and output files,
search words, and review the highest similarity per word.`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func init() {
	rootCmd.AddCommand(menuCmd)
}

func runMenu(cmd *cobra.Command, args []string) error {
	// The menu can pick a different embedding file, so a failed load is not fatal.
	if err := globalSession.LoadTable(); err != nil {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
	}

	p := tea.NewProgram(tui.NewMenuModel(globalSession))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
