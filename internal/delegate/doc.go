// Package delegate implements the swarm task-delegation engine.
//
// The delegate package provides functionality for:
//   - Classification: picking a dance type for a task via keyword scoring
//   - Decomposition: expanding a task into subtasks from the dance template
//   - Budget allocation: splitting the token budget across recruited bees
//   - Lifecycle accounting: tracking tasks and bees through the ledger and
//     computing savings statistics
//
// The Delegator ties these together: a delegation request is classified,
// decomposed, budgeted, and recorded as a task with one bee per subtask.
// Transports (HTTP, MCP, CLI) consume the Delegator and never touch the
// ledger directly.
//
// Example usage:
//
//	d := delegate.New(delegate.WithCapacity(1000))
//	resp, err := d.Delegate(delegate.Request{
//		Description: "Analyze and decompose this complex system architecture",
//		MaxTokens:   10000,
//	})
package delegate
