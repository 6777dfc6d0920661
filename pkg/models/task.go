package models

import (
	"time"
	"unicode/utf8"
)

// TaskStatus represents the current state of a delegated task.
type TaskStatus string

const (
	// TaskStatusPending indicates the task exists but has no bees yet.
	TaskStatusPending TaskStatus = "pending"
	// TaskStatusAssigned indicates bees have been recruited for the task.
	TaskStatusAssigned TaskStatus = "assigned"
	// TaskStatusInProgress indicates work on the task has started.
	TaskStatusInProgress TaskStatus = "in_progress"
	// TaskStatusCompleted indicates the task finished successfully.
	TaskStatusCompleted TaskStatus = "completed"
	// TaskStatusFailed indicates the task failed.
	TaskStatusFailed TaskStatus = "failed"
	// TaskStatusCancelled indicates the task was cancelled before finishing.
	TaskStatusCancelled TaskStatus = "cancelled"
)

// Valid returns true if the status is a known value.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusAssigned, TaskStatusInProgress,
		TaskStatusCompleted, TaskStatusFailed, TaskStatusCancelled:
		return true
	default:
		return false
	}
}

// Terminal returns true for states no task can leave.
func (s TaskStatus) Terminal() bool {
	switch s {
	case TaskStatusCompleted, TaskStatusFailed, TaskStatusCancelled:
		return true
	default:
		return false
	}
}

// Active returns true for states counted as in-flight by statistics.
func (s TaskStatus) Active() bool {
	return s == TaskStatusAssigned || s == TaskStatusInProgress
}

// summaryDescriptionLimit is the rune cutoff for descriptions in task lists.
const summaryDescriptionLimit = 100

// Task represents a unit of delegated work owning an ordered set of bees
// and an overall token budget. The budget and description are fixed at
// creation; bees are append-only.
type Task struct {
	// ID is the unique identifier for this task.
	ID string `json:"task_id"`
	// Description is the original free-text request.
	Description string `json:"description"`
	// Priority is the reported priority; it does not affect scheduling.
	Priority TaskPriority `json:"priority"`
	// Dance is the coordination pattern chosen for the task.
	Dance Dance `json:"dance_type"`
	// Status is the current lifecycle state.
	Status TaskStatus `json:"status"`
	// MaxTokens is the total token budget for the task.
	MaxTokens int `json:"max_tokens"`
	// CreatedAt is when the task was delegated.
	CreatedAt time.Time `json:"created_at"`
	// StartedAt is when work on the task began, if it has.
	StartedAt *time.Time `json:"started_at,omitempty"`
	// CompletedAt is when the task reached a terminal state, if it has.
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	// Bees holds the workers recruited for this task, in subtask order.
	Bees []*Bee `json:"assigned_bees"`
	// Result holds the final output for completed tasks.
	Result string `json:"result,omitempty"`
	// Error holds the failure message for failed tasks.
	Error string `json:"error,omitempty"`
}

// NewTask creates a pending task with a fresh task_<hex> identifier.
func NewTask(description string, priority TaskPriority, dance Dance, maxTokens int) *Task {
	return &Task{
		ID:          "task_" + hexID(),
		Description: description,
		Priority:    priority,
		Dance:       dance,
		Status:      TaskStatusPending,
		MaxTokens:   maxTokens,
		CreatedAt:   time.Now(),
	}
}

// AssignBee appends a bee to the task. The first assignment moves the task
// from pending to assigned; later assignments append without changing status.
func (t *Task) AssignBee(b *Bee) {
	t.Bees = append(t.Bees, b)
	if t.Status == TaskStatusPending {
		t.Status = TaskStatusAssigned
	}
}

// Start moves the task to in_progress. It requires at least one assigned
// bee and a non-terminal status.
func (t *Task) Start() error {
	if t.Status.Terminal() {
		return &InvalidStateError{Op: "start", TaskID: t.ID, Status: t.Status}
	}
	if len(t.Bees) == 0 {
		return &InvalidStateError{Op: "start", TaskID: t.ID, Status: t.Status, Reason: "no bees assigned"}
	}
	now := time.Now()
	t.Status = TaskStatusInProgress
	t.StartedAt = &now
	return nil
}

// MarkComplete moves the task to completed with the given result.
// Bees are not completed implicitly; each bee is finished by its own call.
func (t *Task) MarkComplete(result string) {
	now := time.Now()
	t.Status = TaskStatusCompleted
	t.CompletedAt = &now
	t.Result = result
}

// MarkFailed moves the task to failed with the given error message.
func (t *Task) MarkFailed(errMsg string) {
	now := time.Now()
	t.Status = TaskStatusFailed
	t.CompletedAt = &now
	t.Error = errMsg
}

// Cancel moves a non-terminal task to cancelled.
func (t *Task) Cancel() error {
	if t.Status.Terminal() {
		return &InvalidStateError{Op: "cancel", TaskID: t.ID, Status: t.Status}
	}
	now := time.Now()
	t.Status = TaskStatusCancelled
	t.CompletedAt = &now
	return nil
}

// TokenSavings returns the estimated savings percentage for this task:
// (budget - used) / budget * 100, clamped to [0, 100]. Usage counts each
// bee's actual tokens when reported, its estimate otherwise.
func (t *Task) TokenSavings() float64 {
	if t.MaxTokens <= 0 {
		return 0
	}
	used := 0
	for _, b := range t.Bees {
		used += b.UsedTokens()
	}
	if used >= t.MaxTokens {
		return 0
	}
	return float64(t.MaxTokens-used) / float64(t.MaxTokens) * 100
}

// Summary returns the list-view representation of the task.
func (t *Task) Summary() TaskSummary {
	return TaskSummary{
		TaskID:      t.ID,
		Description: truncateDescription(t.Description),
		Status:      t.Status,
		Dance:       t.Dance,
		Priority:    t.Priority,
		BeeCount:    len(t.Bees),
	}
}

// Clone returns a deep copy of the task, safe to hand to readers while
// the original keeps being mutated under the ledger lock.
func (t *Task) Clone() *Task {
	c := *t
	if t.StartedAt != nil {
		v := *t.StartedAt
		c.StartedAt = &v
	}
	if t.CompletedAt != nil {
		v := *t.CompletedAt
		c.CompletedAt = &v
	}
	c.Bees = make([]*Bee, len(t.Bees))
	for i, b := range t.Bees {
		c.Bees[i] = b.clone()
	}
	return &c
}

// TaskSummary is the compact list-view form of a task.
type TaskSummary struct {
	// TaskID is the unique task identifier.
	TaskID string `json:"task_id"`
	// Description is the task description, truncated for display.
	Description string `json:"description"`
	// Status is the current lifecycle state.
	Status TaskStatus `json:"status"`
	// Dance is the coordination pattern chosen for the task.
	Dance Dance `json:"dance_type"`
	// Priority is the reported priority.
	Priority TaskPriority `json:"priority"`
	// BeeCount is the number of bees recruited.
	BeeCount int `json:"bee_count"`
}

// truncateDescription caps a description at summaryDescriptionLimit runes,
// appending "..." when cut.
func truncateDescription(s string) string {
	if utf8.RuneCountInString(s) <= summaryDescriptionLimit {
		return s
	}
	runes := []rune(s)
	return string(runes[:summaryDescriptionLimit]) + "..."
}
