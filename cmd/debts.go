package cmd

import (
	"context"
	"fmt"

	"github.com/theirongolddev/messbook/internal/cli"
	"github.com/theirongolddev/messbook/internal/mess"

	"github.com/spf13/cobra"
)

var (
	flagDebtName   string
	flagDebtAmount float64
)

var debtsCmd = &cobra.Command{
	Use:     "debts",
	Aliases: []string{"debt"},
	Short:   "List money owed outside the mess",
	Args:    cobra.NoArgs,
	RunE:    runDebts,
}

var debtsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a debt",
	Args:  cobra.NoArgs,
	RunE:  runDebtsAdd,
}

var debtsRmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Remove a debt",
	Args:  cobra.ExactArgs(1),
	RunE:  runDebtsRm,
}

func init() {
	debtsAddCmd.Flags().StringVar(&flagDebtName, "name", "", "Who is owed (required)")
	debtsAddCmd.Flags().Float64Var(&flagDebtAmount, "amount", 0, "Amount owed (required)")

	debtsCmd.AddCommand(debtsAddCmd, debtsRmCmd)
	rootCmd.AddCommand(debtsCmd)
}

func runDebts(_ *cobra.Command, _ []string) error {
	return withService(func(ctx context.Context, svc *mess.Service) error {
		all, err := svc.Debts(ctx)
		if err != nil {
			return err
		}
		debts, err := inRange(all)
		if err != nil {
			return err
		}
		if len(debts) == 0 {
			fmt.Println("\n  No debts.")
			return nil
		}

		var total float64
		rows := make([][]string, 0, len(debts)+2)
		for _, d := range debts {
			rows = append(rows, []string{cli.FormatID(d.ID), d.Date, d.Name, cli.FormatMoney(d.Amount)})
			total += d.Amount
		}
		rows = append(rows, []string{"---"}, []string{"", "", "Total", cli.FormatMoney(total)})

		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:    "Debts  " + rangeLabel(),
			Headers:  []string{"ID", "Date", "Owed to", "Amount"},
			Rows:     rows,
			TextCols: 3,
		}))
		return nil
	})
}

func runDebtsAdd(_ *cobra.Command, _ []string) error {
	return withService(func(ctx context.Context, svc *mess.Service) error {
		d, err := svc.AddDebt(ctx, flagDebtName, flagDebtAmount)
		if err != nil {
			return err
		}
		fmt.Printf("  Added debt %d: %s owed %s\n", d.ID, d.Name, cli.FormatMoney(d.Amount))
		return nil
	})
}

func runDebtsRm(_ *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	return withService(func(ctx context.Context, svc *mess.Service) error {
		ok, err := svc.RemoveDebt(ctx, id)
		if err != nil {
			return err
		}
		removed(ok, "debt", id)
		return nil
	})
}
