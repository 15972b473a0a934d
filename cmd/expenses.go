package cmd

import (
	"context"
	"fmt"

	"github.com/theirongolddev/messbook/internal/cli"
	"github.com/theirongolddev/messbook/internal/mess"
	"github.com/theirongolddev/messbook/internal/model"
	"github.com/theirongolddev/messbook/internal/pipeline"

	"github.com/spf13/cobra"
)

var expenseIn mess.ExpenseInput

var expensesCmd = &cobra.Command{
	Use:     "expenses",
	Aliases: []string{"expense", "bazar"},
	Short:   "List expenses",
	Args:    cobra.NoArgs,
	RunE:    runExpenses,
}

var expensesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record an expense",
	Args:  cobra.NoArgs,
	RunE:  runExpensesAdd,
}

var expensesRmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Remove an expense",
	Args:  cobra.ExactArgs(1),
	RunE:  runExpensesRm,
}

func init() {
	expensesAddCmd.Flags().StringVar(&expenseIn.Date, "date", "", "Date (YYYY-MM-DD, default today)")
	expensesAddCmd.Flags().Float64Var(&expenseIn.Amount, "amount", 0, "Amount (required)")
	expensesAddCmd.Flags().StringVar(&expenseIn.Description, "desc", "", "What was bought (required)")
	expensesAddCmd.Flags().StringVar(&expenseIn.Category, "category", "", "Category, e.g. groceries")

	expensesCmd.AddCommand(expensesAddCmd, expensesRmCmd)
	rootCmd.AddCommand(expensesCmd)
}

func runExpenses(_ *cobra.Command, _ []string) error {
	return withService(func(ctx context.Context, svc *mess.Service) error {
		all, err := svc.Expenses(ctx)
		if err != nil {
			return err
		}
		expenses, err := inRange(all)
		if err != nil {
			return err
		}
		if len(expenses) == 0 {
			fmt.Println("\n  No expenses in range.")
			return nil
		}

		rows := make([][]string, 0, len(expenses)+2)
		for _, e := range expenses {
			rows = append(rows, []string{cli.FormatID(e.ID), e.Date, e.Description, e.Category, cli.FormatMoney(e.Amount)})
		}
		rows = append(rows, []string{"---"},
			[]string{"", "", "Total", "", cli.FormatMoney(pipeline.TotalExpenses(expenses))})

		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:    "Expenses  " + rangeLabel(),
			Headers:  []string{"ID", "Date", "Description", "Category", "Amount"},
			Rows:     rows,
			TextCols: 4,
		}))
		return nil
	})
}

func runExpensesAdd(_ *cobra.Command, _ []string) error {
	return withService(func(ctx context.Context, svc *mess.Service) error {
		in := expenseIn
		if in.Date == "" {
			in.Date = svc.Now().Format(model.DateLayout)
		}
		e, err := svc.AddExpense(ctx, in)
		if err != nil {
			return err
		}
		fmt.Printf("  Added expense %d: %s %s on %s\n", e.ID, e.Description, cli.FormatMoney(e.Amount), e.Date)
		return nil
	})
}

func runExpensesRm(_ *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	return withService(func(ctx context.Context, svc *mess.Service) error {
		ok, err := svc.RemoveExpense(ctx, id)
		if err != nil {
			return err
		}
		removed(ok, "expense", id)
		return nil
	})
}
