package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/hiveworks/swarmrouter/pkg/models"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show swarm statistics",
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	client, err := newAPIClient()
	if err != nil {
		return err
	}

	var stats models.SwarmStatistics
	if err := client.getJSON("/api/v1/statistics", &stats); err != nil {
		return err
	}

	fmt.Printf("Swarm statistics\n")
	fmt.Printf("  total tasks:     %d\n", stats.TotalTasks)
	fmt.Printf("  active tasks:    %d\n", stats.ActiveTasks)
	fmt.Printf("  completed tasks: %d\n", stats.CompletedTasks)
	fmt.Printf("  bees deployed:   %d\n", stats.TotalBeesDeployed)
	fmt.Printf("  avg savings:     %.2f%%\n", stats.AverageTokenSavings)

	if len(stats.DanceDistribution) > 0 {
		fmt.Println("\nDance distribution:")
		dances := make([]string, 0, len(stats.DanceDistribution))
		for dance := range stats.DanceDistribution {
			dances = append(dances, string(dance))
		}
		sort.Strings(dances)
		for _, dance := range dances {
			count := stats.DanceDistribution[models.Dance(dance)]
			fmt.Printf("  %-10s %d\n", danceColor(dance), count)
		}
	}
	return nil
}
