package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/hiveworks/swarmrouter/pkg/models"
)

var statusCmd = &cobra.Command{
	Use:   "status <task-id>",
	Short: "Show the status of a delegated task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskStatus,
}

// taskStatusReply mirrors the server's task detail payload.
type taskStatusReply struct {
	TaskID       string              `json:"task_id"`
	Description  string              `json:"description"`
	Status       models.TaskStatus   `json:"status"`
	Dance        models.Dance        `json:"dance_type"`
	Priority     models.TaskPriority `json:"priority"`
	MaxTokens    int                 `json:"max_tokens"`
	AssignedBees []*models.Bee       `json:"assigned_bees"`
	CreatedAt    string              `json:"created_at"`
	CompletedAt  *string             `json:"completed_at,omitempty"`
	TokenSavings float64             `json:"token_savings"`
	Result       string              `json:"result,omitempty"`
	Error        string              `json:"error,omitempty"`
}

func runTaskStatus(cmd *cobra.Command, args []string) error {
	client, err := newAPIClient()
	if err != nil {
		return err
	}

	var task taskStatusReply
	if err := client.getJSON("/api/v1/tasks/"+args[0], &task); err != nil {
		return err
	}

	fmt.Printf("Task %s\n", task.TaskID)
	fmt.Printf("  description: %s\n", task.Description)
	fmt.Printf("  status:      %s\n", statusColor(task.Status))
	fmt.Printf("  dance:       %s\n", danceColor(string(task.Dance)))
	fmt.Printf("  priority:    %s\n", task.Priority)
	fmt.Printf("  budget:      %d tokens\n", task.MaxTokens)
	fmt.Printf("  savings:     %.1f%%\n", task.TokenSavings)
	fmt.Printf("  created:     %s\n", task.CreatedAt)
	if task.CompletedAt != nil {
		fmt.Printf("  completed:   %s\n", *task.CompletedAt)
	}
	if task.Result != "" {
		fmt.Printf("  result:      %s\n", task.Result)
	}
	if task.Error != "" {
		fmt.Printf("  error:       %s\n", color.RedString(task.Error))
	}

	fmt.Printf("\nBees (%d):\n", len(task.AssignedBees))
	for _, bee := range task.AssignedBees {
		tokens := fmt.Sprintf("est %d", bee.EstimatedTokens)
		if bee.ActualTokens != nil {
			tokens = fmt.Sprintf("used %d of %d", *bee.ActualTokens, bee.EstimatedTokens)
		}
		fmt.Printf("  %s [%s] %s (%s)\n", bee.ID, beeStatusColor(bee.Status), bee.AssignedTask, tokens)
	}
	return nil
}

func statusColor(status models.TaskStatus) string {
	s := string(status)
	switch status {
	case models.TaskStatusCompleted:
		return color.GreenString(s)
	case models.TaskStatusFailed, models.TaskStatusCancelled:
		return color.RedString(s)
	case models.TaskStatusInProgress:
		return color.YellowString(s)
	default:
		return s
	}
}

func beeStatusColor(status models.BeeStatus) string {
	s := string(status)
	switch status {
	case models.BeeStatusCompleted:
		return color.GreenString(s)
	case models.BeeStatusFailed:
		return color.RedString(s)
	default:
		return s
	}
}
