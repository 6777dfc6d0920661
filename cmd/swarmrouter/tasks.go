package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hiveworks/swarmrouter/pkg/models"
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "List all tasks known to the swarm",
	RunE:  runTasks,
}

func runTasks(cmd *cobra.Command, args []string) error {
	client, err := newAPIClient()
	if err != nil {
		return err
	}

	var summaries []models.TaskSummary
	if err := client.getJSON("/api/v1/tasks", &summaries); err != nil {
		return err
	}

	if len(summaries) == 0 {
		fmt.Println("No tasks. Run 'swarmrouter delegate <description>' to create one.")
		return nil
	}

	for _, s := range summaries {
		fmt.Printf("%s  %-11s %-8s %d bees  %s\n",
			s.TaskID,
			statusColor(s.Status),
			danceColor(string(s.Dance)),
			s.BeeCount,
			s.Description,
		)
	}
	return nil
}
