package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/messbook/internal/config"
	"github.com/theirongolddev/messbook/internal/tui"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	Args:  cobra.NoArgs,
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	form, apply := tui.NewSetupForm(appCfg)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup cancelled; nothing saved.")
			return nil
		}
		return fmt.Errorf("setup form: %w", err)
	}

	cfg, err := apply()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Printf("  Storage: %s in %s\n", cfg.General.Backend, cfg.DataDir())
	fmt.Println()
	fmt.Println("  Try `messbook members add --name NAME --email EMAIL` or `messbook tui`.")
	return nil
}
