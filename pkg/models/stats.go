package models

// SwarmStatistics holds aggregate accounting across every task in the ledger.
type SwarmStatistics struct {
	// TotalTasks is the number of tasks ever delegated (minus evictions).
	TotalTasks int `json:"total_tasks"`
	// ActiveTasks counts tasks in assigned or in_progress.
	ActiveTasks int `json:"active_tasks"`
	// CompletedTasks counts tasks in completed.
	CompletedTasks int `json:"completed_tasks"`
	// AverageTokenSavings is the mean savings percentage over completed
	// tasks, rounded to two decimals. Zero when nothing has completed.
	AverageTokenSavings float64 `json:"average_token_savings"`
	// TotalBeesDeployed is the total worker count across all tasks.
	TotalBeesDeployed int `json:"total_bees_deployed"`
	// DanceDistribution counts tasks per dance type.
	DanceDistribution map[Dance]int `json:"dance_distribution"`
}
