package models

import (
	"strings"

	"github.com/google/uuid"
)

// BeeStatus represents the lifecycle state of a single bee.
type BeeStatus string

const (
	// BeeStatusPending indicates the bee has been created but not finished.
	BeeStatusPending BeeStatus = "pending"
	// BeeStatusCompleted indicates the bee finished its subtask.
	BeeStatusCompleted BeeStatus = "completed"
	// BeeStatusFailed indicates the bee failed its subtask.
	BeeStatusFailed BeeStatus = "failed"
)

// Valid returns true if the status is a known value.
func (s BeeStatus) Valid() bool {
	switch s {
	case BeeStatusPending, BeeStatusCompleted, BeeStatusFailed:
		return true
	default:
		return false
	}
}

// Bee represents one worker agent assigned to a slice of a task.
// A bee is owned exclusively by its parent task and is mutated only
// through its own completion calls.
type Bee struct {
	// ID is the unique identifier for this bee.
	ID string `json:"bee_id"`
	// Dance is the coordination pattern the bee was recruited under.
	Dance Dance `json:"dance_type"`
	// AssignedTask is the subtask description given to this bee.
	AssignedTask string `json:"assigned_task"`
	// Specialty is the role label for this bee (e.g. "architect", "explorer").
	Specialty string `json:"specialty,omitempty"`
	// EstimatedTokens is the a-priori token allocation for the subtask.
	EstimatedTokens int `json:"estimated_tokens"`
	// ActualTokens is the reported token usage, set on completion.
	ActualTokens *int `json:"actual_tokens,omitempty"`
	// Status is the current lifecycle state of the bee.
	Status BeeStatus `json:"status"`
	// Result holds the bee's output once completed.
	Result string `json:"result,omitempty"`
	// Error holds the failure message if the bee failed.
	Error string `json:"error,omitempty"`
}

// NewBee creates a bee for the given dance with a fresh bee_<hex> identifier.
func NewBee(dance Dance, assignedTask, specialty string, estimatedTokens int) *Bee {
	return &Bee{
		ID:              "bee_" + shortHexID(),
		Dance:           dance,
		AssignedTask:    assignedTask,
		Specialty:       specialty,
		EstimatedTokens: estimatedTokens,
		Status:          BeeStatusPending,
	}
}

// Complete marks the bee as completed with its result and actual token usage.
// Completing an already-completed bee overwrites the previous values.
func (b *Bee) Complete(result string, actualTokens int) {
	b.Status = BeeStatusCompleted
	b.Result = result
	b.ActualTokens = &actualTokens
	b.Error = ""
}

// Fail marks the bee as failed. ActualTokens is left as-is; statistics
// treat an unset value as zero usage.
func (b *Bee) Fail(errMsg string) {
	b.Status = BeeStatusFailed
	b.Error = errMsg
}

// Efficiency returns the token efficiency (estimated-actual)/estimated.
// The second return is false until actual usage has been reported or when
// the estimate is zero.
func (b *Bee) Efficiency() (float64, bool) {
	if b.ActualTokens == nil || b.EstimatedTokens == 0 {
		return 0, false
	}
	return float64(b.EstimatedTokens-*b.ActualTokens) / float64(b.EstimatedTokens), true
}

// UsedTokens returns the tokens counted against the budget for this bee:
// actual usage when reported, the estimate otherwise.
func (b *Bee) UsedTokens() int {
	if b.ActualTokens != nil {
		return *b.ActualTokens
	}
	return b.EstimatedTokens
}

// clone returns a deep copy of the bee.
func (b *Bee) clone() *Bee {
	c := *b
	if b.ActualTokens != nil {
		v := *b.ActualTokens
		c.ActualTokens = &v
	}
	return &c
}

// shortHexID returns the first 8 hex characters of a fresh UUID.
func shortHexID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// hexID returns a full 32-character hex UUID.
func hexID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
