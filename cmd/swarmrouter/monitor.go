package main

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/hiveworks/swarmrouter/internal/tui"
	"github.com/hiveworks/swarmrouter/pkg/models"
)

var monitorInterval time.Duration

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Watch the swarm in a live dashboard",
	Long: `Open a terminal dashboard that polls a running SwarmRouter server
and displays swarm statistics, dance distribution, and recent tasks.`,
	RunE: runMonitor,
}

func init() {
	monitorCmd.Flags().DurationVar(&monitorInterval, "interval", 2*time.Second, "Polling interval")
}

func runMonitor(cmd *cobra.Command, args []string) error {
	client, err := newAPIClient()
	if err != nil {
		return err
	}

	fetch := func() (tui.Snapshot, error) {
		var snapshot tui.Snapshot
		if err := client.getJSON("/api/v1/statistics", &snapshot.Stats); err != nil {
			return tui.Snapshot{}, err
		}
		var tasks []models.TaskSummary
		if err := client.getJSON("/api/v1/tasks", &tasks); err != nil {
			return tui.Snapshot{}, err
		}
		snapshot.Tasks = tasks
		return snapshot, nil
	}

	program := tea.NewProgram(tui.NewMonitor(fetch, monitorInterval), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("monitor: %w", err)
	}
	return nil
}
