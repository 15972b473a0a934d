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

var mealIn mess.MealInput

var mealsCmd = &cobra.Command{
	Use:     "meals",
	Aliases: []string{"meal"},
	Short:   "List daily meal counts",
	Args:    cobra.NoArgs,
	RunE:    runMeals,
}

var mealsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record one member's meals for a day",
	Args:  cobra.NoArgs,
	RunE:  runMealsAdd,
}

var mealsRmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Remove a meal count",
	Args:  cobra.ExactArgs(1),
	RunE:  runMealsRm,
}

func init() {
	mealsAddCmd.Flags().StringVar(&mealIn.Date, "date", "", "Date (YYYY-MM-DD, default today)")
	mealsAddCmd.Flags().StringVar(&mealIn.MemberName, "member", "", "Member name (required)")
	mealsAddCmd.Flags().IntVarP(&mealIn.Breakfast, "breakfast", "b", 0, "Breakfasts")
	mealsAddCmd.Flags().IntVarP(&mealIn.Lunch, "lunch", "l", 0, "Lunches")
	mealsAddCmd.Flags().IntVar(&mealIn.Dinner, "dinner", 0, "Dinners")

	mealsCmd.AddCommand(mealsAddCmd, mealsRmCmd)
	rootCmd.AddCommand(mealsCmd)
}

func runMeals(_ *cobra.Command, _ []string) error {
	return withService(func(ctx context.Context, svc *mess.Service) error {
		all, err := svc.MealCounts(ctx)
		if err != nil {
			return err
		}
		counts, err := inRange(all)
		if err != nil {
			return err
		}
		if len(counts) == 0 {
			fmt.Println("\n  No meal counts in range.")
			return nil
		}

		rows := make([][]string, 0, len(counts)+2)
		for _, mc := range counts {
			rows = append(rows, []string{
				cli.FormatID(mc.ID), mc.Date, mc.MemberName, cli.FormatMemberID(mc.MemberID),
				cli.FormatMeals(mc), cli.FormatNumber(int64(mc.Total)),
			})
		}
		rows = append(rows, []string{"---"},
			[]string{"", "", "Total", "", "", cli.FormatNumber(int64(pipeline.TotalMeals(counts)))})

		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:    "Meal counts  " + rangeLabel(),
			Headers:  []string{"ID", "Date", "Member", "Member ID", "B/L/D", "Total"},
			Rows:     rows,
			TextCols: 5,
		}))
		return nil
	})
}

func runMealsAdd(_ *cobra.Command, _ []string) error {
	return withService(func(ctx context.Context, svc *mess.Service) error {
		in := mealIn
		if in.Date == "" {
			in.Date = svc.Now().Format(model.DateLayout)
		}
		mc, err := svc.AddMealCount(ctx, in)
		if err != nil {
			return err
		}
		fmt.Printf("  Recorded %d meals for %s on %s (id %d)\n", mc.Total, mc.MemberName, mc.Date, mc.ID)
		if mc.MemberID == nil && !flagQuiet {
			fmt.Printf("  %s is not on the roster; the meals count toward the rate only.\n", mc.MemberName)
		}
		return nil
	})
}

func runMealsRm(_ *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	return withService(func(ctx context.Context, svc *mess.Service) error {
		ok, err := svc.RemoveMealCount(ctx, id)
		if err != nil {
			return err
		}
		removed(ok, "meal count", id)
		return nil
	})
}
