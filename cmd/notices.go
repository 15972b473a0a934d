package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/theirongolddev/messbook/internal/cli"
	"github.com/theirongolddev/messbook/internal/mess"

	"github.com/spf13/cobra"
)

var noticesCmd = &cobra.Command{
	Use:     "notices",
	Aliases: []string{"notice", "board"},
	Short:   "Show the notice board, newest first",
	Args:    cobra.NoArgs,
	RunE:    runNotices,
}

var noticesPostCmd = &cobra.Command{
	Use:   "post TEXT...",
	Short: "Pin a notice",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runNoticesPost,
}

var noticesRmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Remove a notice",
	Args:  cobra.ExactArgs(1),
	RunE:  runNoticesRm,
}

func init() {
	noticesCmd.AddCommand(noticesPostCmd, noticesRmCmd)
	rootCmd.AddCommand(noticesCmd)
}

func runNotices(_ *cobra.Command, _ []string) error {
	return withService(func(ctx context.Context, svc *mess.Service) error {
		notices, err := svc.Notices(ctx)
		if err != nil {
			return err
		}
		if len(notices) == 0 {
			fmt.Println("\n  The board is empty.")
			return nil
		}

		now := svc.Now()
		rows := make([][]string, 0, len(notices))
		for _, n := range notices {
			rows = append(rows, []string{
				cli.FormatID(n.ID),
				n.Date + " " + n.Time,
				cli.FormatAgo(n, now),
				strings.ReplaceAll(n.Text, "\n", " "),
			})
		}
		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:    "Notice board",
			Headers:  []string{"ID", "Posted", "Age", "Notice"},
			Rows:     rows,
			TextCols: 4,
		}))
		return nil
	})
}

func runNoticesPost(_ *cobra.Command, args []string) error {
	return withService(func(ctx context.Context, svc *mess.Service) error {
		n, err := svc.PostNotice(ctx, strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Printf("  Posted notice %d at %s %s\n", n.ID, n.Date, n.Time)
		return nil
	})
}

func runNoticesRm(_ *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	return withService(func(ctx context.Context, svc *mess.Service) error {
		ok, err := svc.RemoveNotice(ctx, id)
		if err != nil {
			return err
		}
		removed(ok, "notice", id)
		return nil
	})
}
