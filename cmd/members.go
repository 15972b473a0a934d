package cmd

import (
	"context"
	"fmt"

	"github.com/theirongolddev/messbook/internal/cli"
	"github.com/theirongolddev/messbook/internal/mess"

	"github.com/spf13/cobra"
)

var memberIn mess.MemberInput

var membersCmd = &cobra.Command{
	Use:     "members",
	Aliases: []string{"member"},
	Short:   "List members with their meal cost share",
	Args:    cobra.NoArgs,
	RunE:    runMembers,
}

var membersAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a member",
	Args:  cobra.NoArgs,
	RunE:  runMembersAdd,
}

var membersRmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Remove a member",
	Args:  cobra.ExactArgs(1),
	RunE:  runMembersRm,
}

func init() {
	membersAddCmd.Flags().StringVar(&memberIn.Name, "name", "", "Full name (required)")
	membersAddCmd.Flags().StringVar(&memberIn.Email, "email", "", "Email address (required)")
	membersAddCmd.Flags().StringVar(&memberIn.Phone, "phone", "", "Phone number")
	membersAddCmd.Flags().StringVar(&memberIn.Notes, "notes", "", "Free-form notes")

	membersCmd.AddCommand(membersAddCmd, membersRmCmd)
	rootCmd.AddCommand(membersCmd)
}

func runMembers(_ *cobra.Command, _ []string) error {
	return withService(func(ctx context.Context, svc *mess.Service) error {
		s, err := svc.Summary(ctx, flagFrom, flagTo)
		if err != nil {
			return err
		}
		if len(s.Members) == 0 {
			fmt.Println("\n  No members yet.")
			hint("Add one with `messbook members add --name NAME --email EMAIL`.")
			return nil
		}

		rows := make([][]string, 0, len(s.Members)+2)
		var meals int
		var cost float64
		for _, ms := range s.Members {
			m := ms.Member
			rows = append(rows, []string{
				cli.FormatID(m.ID), m.Name, m.Email, m.Phone, m.JoinDate,
				cli.FormatNumber(int64(ms.Meals)),
				cli.FormatMoney(ms.Cost),
				cli.FormatMoney(ms.Paid),
				cli.FormatMoney(ms.Balance),
			})
			meals += ms.Meals
			cost += ms.Cost
		}
		rows = append(rows, []string{"---"},
			[]string{"", "Total", "", "", "", cli.FormatNumber(int64(meals)), cli.FormatMoney(cost), "", ""})

		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:    fmt.Sprintf("Members  %s  meal rate %s", rangeLabel(), cli.FormatMoney(s.MealRate)),
			Headers:  []string{"ID", "Name", "Email", "Phone", "Joined", "Meals", "Cost", "Paid", "Balance"},
			Rows:     rows,
			TextCols: 5,
		}))
		hint("Meals recorded under names not on the roster count toward the rate but no member's cost.")
		return nil
	})
}

func runMembersAdd(_ *cobra.Command, _ []string) error {
	return withService(func(ctx context.Context, svc *mess.Service) error {
		m, err := svc.AddMember(ctx, memberIn)
		if err != nil {
			return err
		}
		fmt.Printf("  Added member %s (id %d, joined %s)\n", m.Name, m.ID, m.JoinDate)
		return nil
	})
}

func runMembersRm(_ *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	return withService(func(ctx context.Context, svc *mess.Service) error {
		ok, err := svc.RemoveMember(ctx, id)
		if err != nil {
			return err
		}
		removed(ok, "member", id)
		return nil
	})
}
