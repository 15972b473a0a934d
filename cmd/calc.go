package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/theirongolddev/messbook/internal/cli"
	"github.com/theirongolddev/messbook/internal/mess"
	"github.com/theirongolddev/messbook/internal/model"

	"github.com/spf13/cobra"
)

var calcIn model.CalculatorInput

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Meal budget calculator",
	Long: "Spread a monthly budget, less everything spent so far, over a number of days\n" +
		"and meals per day, and suggest a meal plan for the resulting per-meal amount.",
	Args: cobra.NoArgs,
	RunE: runCalc,
}

func init() {
	calcCmd.Flags().Float64Var(&calcIn.MonthlyBudget, "budget", 0, "Monthly budget (default from config)")
	calcCmd.Flags().IntVar(&calcIn.Days, "days", 0, "Days to cover (default from config)")
	calcCmd.Flags().IntVar(&calcIn.MealsPerDay, "meals", 0, "Meals per day (default from config)")
	rootCmd.AddCommand(calcCmd)
}

func runCalc(cmd *cobra.Command, _ []string) error {
	in := calcIn
	if !cmd.Flags().Changed("budget") {
		in.MonthlyBudget = appCfg.Budget.CalculatorBudget
	}
	if !cmd.Flags().Changed("days") {
		in.Days = appCfg.Budget.CalculatorDays
	}
	if !cmd.Flags().Changed("meals") {
		in.MealsPerDay = appCfg.Budget.MealsPerDay
	}

	return withService(func(ctx context.Context, svc *mess.Service) error {
		v, err := svc.Calculator(ctx, in)
		if err != nil {
			return err
		}
		r := v.Result

		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Meal budget calculator",
			Headers: []string{"", "Value"},
			Rows: [][]string{
				{"Budget", cli.FormatMoney(r.MonthlyBudget)},
				{"Days", strconv.Itoa(r.Days)},
				{"Meals per day", strconv.Itoa(r.MealsPerDay)},
				{"---"},
				{"Spent so far", cli.FormatMoney(r.Spent)},
				{"Remaining", cli.FormatMoney(r.Remaining)},
				{"Daily", cli.FormatMoney(r.Daily)},
				{"Per meal", cli.FormatMoney(r.PerMeal)},
			},
		}))
		fmt.Println()
		printTier(os.Stdout, v.Tier.Label(), v.Tier)
		return nil
	})
}
