package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/graphscale/graphscale/internal/progress"
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Inspect the progress task hierarchy recorded by prior runs",
}

var tasksUser string

var tasksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded tasks for a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		tasks := GetTaskStore().List(tasksUser)
		if len(tasks) == 0 {
			fmt.Println("no tasks recorded")
			return nil
		}
		for _, t := range tasks {
			fmt.Printf("%s\t%s\t%.1f%%\n", t.Path(), t.Status(), t.Progress()*100)
		}
		return nil
	},
}

var tasksShowCmd = &cobra.Command{
	Use:   "show <job-id>",
	Short: "Show one recorded task's status and subtask tree",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jobID := args[0]
		task, ok := GetTaskStore().Get(tasksUser, jobID)
		if !ok {
			return fmt.Errorf("no task %q recorded for user %q", jobID, tasksUser)
		}
		return task.Visit(func(t *progress.Task) error {
			fmt.Printf("%s\t%s\t%.1f%%\n", t.Path(), t.Status(), t.Progress()*100)
			return nil
		})
	},
}

func init() {
	tasksCmd.PersistentFlags().StringVar(&tasksUser, "user", "default", "User namespace the task store is queried under")
	tasksCmd.AddCommand(tasksListCmd)
	tasksCmd.AddCommand(tasksShowCmd)
	rootCmd.AddCommand(tasksCmd)
}
