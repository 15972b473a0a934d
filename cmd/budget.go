package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/theirongolddev/messbook/internal/cli"
	"github.com/theirongolddev/messbook/internal/mess"
	"github.com/theirongolddev/messbook/internal/plan"

	"github.com/spf13/cobra"
)

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Month-end meal budget planner and meter",
	Args:  cobra.NoArgs,
	RunE:  runBudget,
}

var budgetSetCmd = &cobra.Command{
	Use:   "set AMOUNT",
	Short: "Set the monthly meal budget",
	Args:  cobra.ExactArgs(1),
	RunE:  runBudgetSet,
}

func init() {
	budgetCmd.AddCommand(budgetSetCmd)
	rootCmd.AddCommand(budgetCmd)
}

func runBudget(_ *cobra.Command, _ []string) error {
	return withService(func(ctx context.Context, svc *mess.Service) error {
		v, err := svc.Planner(ctx)
		if err != nil {
			return err
		}
		p := v.Stats

		fmt.Println()
		fmt.Println(cli.RenderTitle("MEAL BUDGET  " + svc.Now().Format("January 2006")))
		fmt.Println()

		if v.HasMeter {
			fmt.Printf("  %s\n\n", cli.RenderMeter(v.Meter, 30))
		} else {
			fmt.Println("  No budget set.")
			hint("Set one with `messbook budget set 3000`.")
			fmt.Println()
		}

		fmt.Print(cli.RenderTable(cli.Table{
			Headers: []string{"Planner", "Value"},
			Rows: [][]string{
				{"Monthly budget", cli.FormatMoney(p.Budget)},
				{"Spent", cli.FormatMoney(p.Spent)},
				{"Remaining", cli.FormatMoney(p.Remaining)},
				{"---"},
				{"Days remaining", strconv.Itoa(p.DaysRemaining)},
				{"Members", strconv.Itoa(p.Members)},
				{"Meals per day", strconv.Itoa(p.MealsPerDay)},
				{"---"},
				{"Per meal", cli.FormatMoney(p.PerMeal)},
				{"Plan", v.Tier.Name},
			},
		}))
		fmt.Println()
		printTier(os.Stdout, plannerHeading(v.Tier), v.Tier)
		return nil
	})
}

func runBudgetSet(_ *cobra.Command, args []string) error {
	amount, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("budget %q: %w", args[0], mess.ErrInvalidBudget)
	}
	return withService(func(ctx context.Context, svc *mess.Service) error {
		if err := svc.SetBudget(ctx, amount); err != nil {
			return err
		}
		fmt.Printf("  Monthly meal budget set to %s\n", cli.FormatMoney(amount))
		return nil
	})
}

// plannerHeading is the title a tier carries in the month-end planner.
func plannerHeading(t plan.Tier) string {
	if t.Heading != "" {
		return t.Heading
	}
	return t.Name
}

// printTier prints a plan's heading, tagline and suggested menu. The heading
// differs between the planner and the calculator, so callers pass it in.
func printTier(w io.Writer, heading string, t plan.Tier) {
	fmt.Fprintf(w, "  %s\n", heading)
	if t.Range != "" {
		fmt.Fprintf(w, "  %s\n", cli.RenderMuted(t.Range+" per meal"))
	}
	if t.Tagline != "" {
		fmt.Fprintf(w, "  %s\n", t.Tagline)
	}
	if t.HasMenu() {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "    Breakfast  %s\n", t.Breakfast)
		fmt.Fprintf(w, "    Lunch      %s\n", t.Lunch)
		fmt.Fprintf(w, "    Dinner     %s\n", t.Dinner)
	}
	if t.Suggestion != "" {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "  %s\n", cli.RenderMuted(t.Suggestion))
	}
}
