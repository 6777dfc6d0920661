package models

// Dance represents a bee coordination pattern used to route a task.
// Each dance maps to a different decomposition and efficiency profile,
// loosely modeled on real bee behavior.
type Dance string

const (
	// DanceWaggle is for complex tasks requiring decomposition.
	DanceWaggle Dance = "waggle"
	// DanceRound is for simple notifications and quick updates.
	DanceRound Dance = "round"
	// DanceScout is for research and exploration tasks.
	DanceScout Dance = "scout"
	// DanceTremble is for error handling and debugging tasks.
	DanceTremble Dance = "tremble"
	// DanceConverge is for consensus building across agents.
	DanceConverge Dance = "converge"
	// DanceDisperse is for parallel independent execution.
	DanceDisperse Dance = "disperse"
)

// Valid returns true if the dance is a known value.
func (d Dance) Valid() bool {
	switch d {
	case DanceWaggle, DanceRound, DanceScout, DanceTremble, DanceConverge, DanceDisperse:
		return true
	default:
		return false
	}
}

// TaskPriority represents the priority of a delegated task.
// Priority is recorded for reporting; it does not affect scheduling.
type TaskPriority string

const (
	// PriorityLow is for background work.
	PriorityLow TaskPriority = "low"
	// PriorityMedium is the default priority.
	PriorityMedium TaskPriority = "medium"
	// PriorityHigh is for urgent work.
	PriorityHigh TaskPriority = "high"
	// PriorityCritical is for work that preempts everything else.
	PriorityCritical TaskPriority = "critical"
)

// Valid returns true if the priority is a known value.
func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	default:
		return false
	}
}
