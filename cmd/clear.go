package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/theirongolddev/messbook/internal/mess"

	"github.com/spf13/cobra"
)

var flagClearYes bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every record and the budget",
	Args:  cobra.NoArgs,
	RunE:  runClear,
}

func init() {
	clearCmd.Flags().BoolVar(&flagClearYes, "yes", false, "Confirm deleting all data")
	rootCmd.AddCommand(clearCmd)
}

func runClear(_ *cobra.Command, _ []string) error {
	if !flagClearYes {
		return errors.New("refusing to delete all data without --yes")
	}
	return withService(func(ctx context.Context, svc *mess.Service) error {
		if err := svc.ClearAll(ctx); err != nil {
			return err
		}
		fmt.Printf("  Cleared all %s data in %s\n", appCfg.General.Backend, appCfg.DataDir())
		return nil
	})
}
