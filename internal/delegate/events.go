package delegate

import (
	"time"

	"github.com/hiveworks/swarmrouter/pkg/models"
)

// EventType represents the type of delegation event.
type EventType string

const (
	// EventTaskDelegated indicates a task was classified and recorded.
	EventTaskDelegated EventType = "task_delegated"
	// EventTaskStarted indicates a task moved to in_progress.
	EventTaskStarted EventType = "task_started"
	// EventTaskCompleted indicates a task completed.
	EventTaskCompleted EventType = "task_completed"
	// EventTaskFailed indicates a task failed.
	EventTaskFailed EventType = "task_failed"
	// EventTaskCancelled indicates a task was cancelled.
	EventTaskCancelled EventType = "task_cancelled"
	// EventBeeCompleted indicates a bee reported its result.
	EventBeeCompleted EventType = "bee_completed"
	// EventBeeFailed indicates a bee reported a failure.
	EventBeeFailed EventType = "bee_failed"
)

// Event represents a delegation lifecycle event. Events feed the debug
// log and any live subscriber such as the monitor.
type Event struct {
	// Type is the kind of event.
	Type EventType
	// TaskID is the ID of the related task.
	TaskID string
	// BeeID is the ID of the related bee, for bee events.
	BeeID string
	// Dance is the dance type of the related task, if known.
	Dance models.Dance
	// Message provides additional context about the event.
	Message string
	// Err contains error details for failure events.
	Err error
	// Tokens is the token count attached to the event, when relevant.
	Tokens int
	// Timestamp is when the event occurred.
	Timestamp time.Time
}
