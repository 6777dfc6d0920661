package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/hiveworks/swarmrouter/internal/delegate"
)

var (
	delegateType      string
	delegatePriority  string
	delegateMaxTokens int
	delegateSubtasks  []string
)

var delegateCmd = &cobra.Command{
	Use:   "delegate <description>",
	Short: "Delegate a task to the swarm",
	Long: `Send a task to a running SwarmRouter server.

The swarm classifies the description into a dance type, decomposes it
into subtasks, and recruits one bee per subtask. Pass --type to force a
dance, or --subtask (repeatable) to control the decomposition yourself.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDelegate,
}

func init() {
	delegateCmd.Flags().StringVar(&delegateType, "type", "", "Force a dance type (waggle, round, scout, tremble, converge, disperse)")
	delegateCmd.Flags().StringVar(&delegatePriority, "priority", "", "Task priority (low, medium, high, critical)")
	delegateCmd.Flags().IntVar(&delegateMaxTokens, "max-tokens", 0, "Token budget for the task (0 for server default)")
	delegateCmd.Flags().StringArrayVar(&delegateSubtasks, "subtask", nil, "Explicit subtask (repeat to provide several)")
}

func runDelegate(cmd *cobra.Command, args []string) error {
	client, err := newAPIClient()
	if err != nil {
		return err
	}

	req := delegate.Request{
		Description: strings.Join(args, " "),
		TaskType:    delegateType,
		Priority:    delegatePriority,
		MaxTokens:   delegateMaxTokens,
		Subtasks:    delegateSubtasks,
	}

	var resp delegate.Response
	if err := client.postJSON("/api/v1/tasks", req, &resp); err != nil {
		return err
	}

	fmt.Printf("%s %s\n", color.GreenString("✓"), resp.Message)
	fmt.Printf("  task:    %s\n", resp.TaskID)
	fmt.Printf("  dance:   %s\n", danceColor(string(resp.Dance)))
	fmt.Printf("  bees:    %d\n", resp.AssignedBees)
	fmt.Printf("  savings: %.1f%% estimated\n", resp.EstimatedTokenSavings)
	return nil
}

// danceColor renders a dance name in its signature color.
func danceColor(dance string) string {
	switch dance {
	case "waggle":
		return color.MagentaString(dance)
	case "round":
		return color.GreenString(dance)
	case "scout":
		return color.CyanString(dance)
	case "tremble":
		return color.RedString(dance)
	case "converge":
		return color.YellowString(dance)
	case "disperse":
		return color.BlueString(dance)
	default:
		return dance
	}
}
