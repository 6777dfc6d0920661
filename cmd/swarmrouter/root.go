package main

import (
	"os"

	"github.com/spf13/cobra"
)

// serverAddr is the address client commands use to reach a running server.
var serverAddr string

var rootCmd = &cobra.Command{
	Use:   "swarmrouter",
	Short: "Bee-swarm task delegation engine",
	Long: `SwarmRouter delegates tasks to a swarm of worker bees using
coordination patterns inspired by real bee behavior.

Each task is classified into a dance type (waggle, round, scout, tremble,
converge, disperse), decomposed into subtasks, and assigned to bees with
per-bee token budgets. The swarm tracks lifecycle state and reports how
many tokens delegation saved against the original budget.

Run 'swarmrouter serve' to start the HTTP API, or 'swarmrouter mcp' to
expose the swarm over the Model Context Protocol on stdio. The delegate,
status, tasks, stats, and monitor commands talk to a running server.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverAddr, "addr", "", "Address of the SwarmRouter server (default from config)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(delegateCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(tasksCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(monitorCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
