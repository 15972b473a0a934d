package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/messbook/internal/cli"
	"github.com/theirongolddev/messbook/internal/plan"

	"github.com/spf13/cobra"
)

var flagPlansMenus bool

var plansCmd = &cobra.Command{
	Use:   "plans",
	Short: "List the meal plan tiers",
	Args:  cobra.NoArgs,
	RunE:  runPlans,
}

func init() {
	plansCmd.Flags().BoolVar(&flagPlansMenus, "menus", false, "Print each tier's suggested menu")
	rootCmd.AddCommand(plansCmd)
}

func runPlans(_ *cobra.Command, _ []string) error {
	tiers := plan.All()

	if flagPlansMenus {
		for _, t := range tiers {
			fmt.Println()
			printTier(os.Stdout, plannerHeading(t), t)
		}
		return nil
	}

	rows := make([][]string, 0, len(tiers))
	for _, t := range tiers {
		rows = append(rows, []string{string(t.ID), t.Name, t.Range, t.Tagline})
	}
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:    "Meal plans (per-meal budget)",
		Headers:  []string{"ID", "Plan", "Range", "Summary"},
		Rows:     rows,
		TextCols: 4,
	}))
	hint("Show menus with `messbook plans --menus`.")
	return nil
}
