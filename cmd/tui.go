package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/theirongolddev/messbook/internal/config"
	"github.com/theirongolddev/messbook/internal/tui"
	"github.com/theirongolddev/messbook/internal/tui/theme"
	"github.com/theirongolddev/messbook/pkg/logging"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive TUI dashboard",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	theme.SetActive(appCfg.Appearance.Theme)

	// The alt screen owns stderr, so logs go to a file next to the data.
	logPath := filepath.Join(appCfg.DataDir(), "messbook-tui.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0o750); err == nil {
		//nolint:gosec // log path is derived from the user's data dir
		if f, err := os.OpenFile(logPath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600); err == nil {
			defer func() { _ = f.Close() }()
			logging.SetupWriter(f, appCfg.General.LogLevel)
		}
	}

	svc, closeFn, err := openService(cmd.Context())
	if err != nil {
		return err
	}
	defer closeFn()

	// Force TrueColor profile so all background styling produces ANSI codes
	lipgloss.SetColorProfile(termenv.TrueColor)

	app := tui.NewApp(svc, appCfg, !config.Exists())
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
