package cmd

import (
	"context"
	"fmt"

	"github.com/theirongolddev/messbook/internal/cli"
	"github.com/theirongolddev/messbook/internal/mess"
	"github.com/theirongolddev/messbook/internal/model"

	"github.com/spf13/cobra"
)

var (
	taskIn          mess.TaskInput
	flagTaskPending bool
)

var tasksCmd = &cobra.Command{
	Use:     "tasks",
	Aliases: []string{"task", "chores"},
	Short:   "List chores",
	Args:    cobra.NoArgs,
	RunE:    runTasks,
}

var tasksAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Assign a chore",
	Args:  cobra.NoArgs,
	RunE:  runTasksAdd,
}

var tasksToggleCmd = &cobra.Command{
	Use:   "toggle ID",
	Short: "Flip a chore between pending and completed",
	Args:  cobra.ExactArgs(1),
	RunE:  runTasksToggle,
}

var tasksRmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Remove a chore",
	Args:  cobra.ExactArgs(1),
	RunE:  runTasksRm,
}

func init() {
	tasksCmd.Flags().BoolVar(&flagTaskPending, "pending", false, "Only show pending chores")

	tasksAddCmd.Flags().StringVar(&taskIn.Name, "name", "", "Chore (required)")
	tasksAddCmd.Flags().StringVar(&taskIn.AssignedTo, "assignee", "", "Who does it (required)")
	tasksAddCmd.Flags().StringVar(&taskIn.DueDate, "due", "", "Due date (YYYY-MM-DD, required)")
	tasksAddCmd.Flags().StringVar(&taskIn.Description, "desc", "", "Details")

	tasksCmd.AddCommand(tasksAddCmd, tasksToggleCmd, tasksRmCmd)
	rootCmd.AddCommand(tasksCmd)
}

func runTasks(_ *cobra.Command, _ []string) error {
	return withService(func(ctx context.Context, svc *mess.Service) error {
		all, err := svc.Tasks(ctx)
		if err != nil {
			return err
		}
		tasks, err := inRange(all)
		if err != nil {
			return err
		}

		rows := make([][]string, 0, len(tasks))
		for _, t := range tasks {
			if flagTaskPending && t.Status != model.TaskPending {
				continue
			}
			rows = append(rows, []string{cli.FormatID(t.ID), string(t.Status), t.Name, t.AssignedTo, t.DueDate, t.Description})
		}
		if len(rows) == 0 {
			fmt.Println("\n  No chores.")
			return nil
		}

		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:    "Chores",
			Headers:  []string{"ID", "Status", "Task", "Assigned", "Due", "Details"},
			Rows:     rows,
			TextCols: 6,
		}))
		hint("Flip a chore with `messbook tasks toggle ID`.")
		return nil
	})
}

func runTasksAdd(_ *cobra.Command, _ []string) error {
	return withService(func(ctx context.Context, svc *mess.Service) error {
		t, err := svc.AddTask(ctx, taskIn)
		if err != nil {
			return err
		}
		fmt.Printf("  Added task %d: %s for %s, due %s\n", t.ID, t.Name, t.AssignedTo, t.DueDate)
		return nil
	})
}

func runTasksToggle(_ *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	return withService(func(ctx context.Context, svc *mess.Service) error {
		st, err := svc.ToggleTask(ctx, id)
		if err != nil {
			return err
		}
		fmt.Printf("  Task %d is now %s\n", id, st)
		return nil
	})
}

func runTasksRm(_ *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	return withService(func(ctx context.Context, svc *mess.Service) error {
		ok, err := svc.RemoveTask(ctx, id)
		if err != nil {
			return err
		}
		removed(ok, "task", id)
		return nil
	})
}
