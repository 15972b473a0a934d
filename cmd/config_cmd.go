package cmd

import (
	"fmt"

	"github.com/theirongolddev/messbook/internal/cli"
	"github.com/theirongolddev/messbook/internal/config"
	"github.com/theirongolddev/messbook/internal/store"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg := appCfg

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Backend:    %s\n", cfg.General.Backend)
	switch cfg.General.Backend {
	case store.BackendPostgres:
		if cfg.General.DSN != "" {
			fmt.Println("    DSN:        set")
		} else {
			fmt.Println("    DSN:        not configured")
		}
	case store.BackendBolt:
		fmt.Printf("    Data file:  %s\n", store.BoltPath(cfg.DataDir()))
	case store.BackendMemory:
		fmt.Println("    Data file:  none (records vanish on exit)")
	default:
		fmt.Printf("    Data file:  %s\n", store.SQLitePath(cfg.DataDir()))
	}
	logLevel := cfg.General.LogLevel
	if logLevel == "" {
		logLevel = "info"
	}
	fmt.Printf("    Log level:  %s\n", logLevel)
	fmt.Println()

	fmt.Println("  [Budget]")
	fmt.Printf("    Meals per day:     %d\n", cfg.Budget.MealsPerDay)
	fmt.Printf("    Calculator budget: %s\n", cli.FormatMoney(cfg.Budget.CalculatorBudget))
	fmt.Printf("    Calculator days:   %d\n", cfg.Budget.CalculatorDays)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Server]")
	fmt.Printf("    Address:       %s\n", cfg.Server.Addr)
	fmt.Printf("    Poll interval: %ds\n", cfg.Server.PollIntervalSec)
	fmt.Printf("    Events buffer: %d\n", cfg.Server.EventsBuffer)
	fmt.Println()

	fmt.Println("  Run `messbook setup` to reconfigure.")
	return nil
}
