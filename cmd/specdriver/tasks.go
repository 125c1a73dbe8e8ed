package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/c360studio/specdriver/artifact"
	"github.com/c360studio/specdriver/tracker"
)

// tasksCmd builds the tasks command group: list, set, stats.
func tasksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List and update tasks in a tasks.md checklist",
	}

	cmd.AddCommand(tasksListCmd())
	cmd.AddCommand(tasksSetCmd())
	cmd.AddCommand(tasksStatsCmd())

	return cmd
}

func tasksListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <tasks-file>",
		Short: "List all tasks with their current status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := tracker.List(args[0])
			if err != nil {
				return err
			}
			if len(tasks) == 0 {
				fmt.Printf("no tasks found in %s\n", args[0])
				return nil
			}
			renderTasks(tasks)
			return nil
		},
	}
}

func tasksSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <tasks-file> <task-id> <status>",
		Short: "Update the status of one task",
		Long: `Set rewrites the checkbox marker of a single task line in place.
Every other byte of the file is preserved, and the write is atomic: on any
failure the original file is left untouched.

Valid statuses: pending, in_progress, completed, blocked.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			taskID := strings.ToUpper(strings.TrimSpace(args[1]))

			status, err := artifact.ParseStatus(args[2])
			if err != nil {
				return err
			}

			tasks, err := tracker.SetStatus(path, taskID, status)
			if err != nil {
				return err
			}

			for _, t := range tasks {
				if t.ID == taskID {
					fmt.Printf("- [%s] %s: %s\n", t.Status.Marker(), t.ID, t.Description)
					break
				}
			}
			return nil
		},
	}
}

func tasksStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <tasks-file>",
		Short: "Show completion statistics for a tasks checklist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := tracker.List(args[0])
			if err != nil {
				return err
			}

			renderStats(artifact.StatsFor(tasks))
			return nil
		},
	}
}
