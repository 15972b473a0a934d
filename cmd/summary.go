package cmd

import (
	"context"
	"fmt"

	"github.com/theirongolddev/messbook/internal/cli"
	"github.com/theirongolddev/messbook/internal/mess"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Totals, meal rate and spend breakdown",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	return withService(func(ctx context.Context, svc *mess.Service) error {
		s, err := svc.Summary(ctx, flagFrom, flagTo)
		if err != nil {
			return err
		}

		fmt.Println()
		fmt.Println(cli.RenderTitle("MESS SUMMARY  " + rangeLabel()))
		fmt.Println()

		if s.ExpenseCount == 0 && s.TotalMeals == 0 && len(s.Members) == 0 {
			fmt.Println("  No records yet.")
			hint("Add members with `messbook members add` or open the dashboard with `messbook tui`.")
			return nil
		}

		fmt.Print(cli.RenderTable(cli.Table{
			Headers: []string{"Metric", "Value"},
			Rows: [][]string{
				{"Members", cli.FormatNumber(int64(len(s.Members)))},
				{"Expenses", cli.FormatNumber(int64(s.ExpenseCount))},
				{"Total spent", cli.FormatMoney(s.TotalExpenses)},
				{"Total meals", cli.FormatNumber(int64(s.TotalMeals))},
				{"Meal rate", cli.FormatMoney(s.MealRate)},
				{"---"},
				{"Outside debts", cli.FormatMoney(s.TotalDebts)},
				{"Open tasks", cli.FormatNumber(int64(s.OpenTasks))},
				{"Notices", cli.FormatNumber(int64(s.NoticeCount))},
			},
		}))

		if len(s.Categories) > 0 {
			fmt.Println()
			rows := make([][]string, 0, len(s.Categories))
			for _, c := range s.Categories {
				rows = append(rows, []string{
					c.Category,
					cli.FormatNumber(int64(c.Count)),
					cli.FormatMoney(c.Amount),
					cli.FormatPercent(c.SharePercent),
				})
			}
			fmt.Print(cli.RenderTable(cli.Table{
				Title:   "By category",
				Headers: []string{"Category", "Count", "Amount", "Share"},
				Rows:    rows,
			}))
		}

		if len(s.Days) > 1 {
			// Days arrive newest first.
			vals := make([]float64, len(s.Days))
			for i, d := range s.Days {
				vals[len(s.Days)-1-i] = d.Expenses
			}
			fmt.Println()
			fmt.Printf("  Daily spend %s  %s to %s\n",
				cli.RenderSparkline(vals), s.Days[len(s.Days)-1].Date, s.Days[0].Date)
		}

		hint("Per-member costs: `messbook members`. Budget: `messbook budget`.")
		return nil
	})
}
