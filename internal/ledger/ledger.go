// Package ledger provides the in-memory task ledger: the single shared,
// mutable structure of the delegation engine. All task and bee mutations
// go through the ledger so they happen under one lock.
package ledger

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/hiveworks/swarmrouter/pkg/models"
)

// ErrTaskNotFound is returned by lifecycle operations targeting an
// unknown task id. Read-path lookups return nil instead.
var ErrTaskNotFound = errors.New("task not found")

// ErrBeeNotFound is returned by bee operations targeting an unknown bee id.
var ErrBeeNotFound = errors.New("bee not found")

// Ledger is a thread-safe, optionally capacity-bounded registry of tasks.
// A capacity of zero means unbounded, matching the original behavior of
// the system; with a positive capacity the oldest terminal task is evicted
// first, falling back to the oldest task of any status.
type Ledger struct {
	// tasks maps task IDs to tasks.
	tasks map[string]*models.Task
	// order holds task IDs in insertion order, for listing and eviction.
	order []string
	// capacity bounds the ledger size; 0 disables eviction.
	capacity int
	// mu protects all fields.
	mu sync.RWMutex
}

// New creates a ledger. capacity 0 means unbounded.
func New(capacity int) *Ledger {
	return &Ledger{
		tasks:    make(map[string]*models.Task),
		capacity: capacity,
	}
}

// Put inserts a task, evicting if the capacity is exceeded.
func (l *Ledger) Put(t *models.Task) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, exists := l.tasks[t.ID]; !exists {
		l.order = append(l.order, t.ID)
	}
	l.tasks[t.ID] = t
	l.evictLocked()
}

// Get returns a deep copy of the task, or nil when the id is unknown.
// A missing id is not an error on the read path.
func (l *Ledger) Get(id string) *models.Task {
	l.mu.RLock()
	defer l.mu.RUnlock()
	t, ok := l.tasks[id]
	if !ok {
		return nil
	}
	return t.Clone()
}

// Len returns the number of tasks currently held.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.tasks)
}

// Assign appends bees to a task. The first assignment moves the task out
// of pending; assigning to a non-pending task appends without changing
// status.
func (l *Ledger) Assign(id string, bees []*models.Bee) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	t, ok := l.tasks[id]
	if !ok {
		return fmt.Errorf("assign %s: %w", id, ErrTaskNotFound)
	}
	for _, b := range bees {
		t.AssignBee(b)
	}
	return nil
}

// Start moves a task to in_progress.
func (l *Ledger) Start(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	t, ok := l.tasks[id]
	if !ok {
		return fmt.Errorf("start %s: %w", id, ErrTaskNotFound)
	}
	return t.Start()
}

// Complete moves a task to completed with the given result. Bees are not
// completed in cascade; callers finish each bee explicitly.
func (l *Ledger) Complete(id, result string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	t, ok := l.tasks[id]
	if !ok {
		return fmt.Errorf("complete %s: %w", id, ErrTaskNotFound)
	}
	t.MarkComplete(result)
	return nil
}

// Fail moves a task to failed with the given error message.
func (l *Ledger) Fail(id, errMsg string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	t, ok := l.tasks[id]
	if !ok {
		return fmt.Errorf("fail %s: %w", id, ErrTaskNotFound)
	}
	t.MarkFailed(errMsg)
	return nil
}

// Cancel moves a non-terminal task to cancelled.
func (l *Ledger) Cancel(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	t, ok := l.tasks[id]
	if !ok {
		return fmt.Errorf("cancel %s: %w", id, ErrTaskNotFound)
	}
	return t.Cancel()
}

// CompleteBee records a bee's result and actual token usage. Completing a
// bee twice overwrites the previous values.
func (l *Ledger) CompleteBee(taskID, beeID, result string, actualTokens int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	b, err := l.findBeeLocked(taskID, beeID)
	if err != nil {
		return err
	}
	b.Complete(result, actualTokens)
	return nil
}

// FailBee records a bee failure. Actual tokens stay unset and count as
// zero in statistics.
func (l *Ledger) FailBee(taskID, beeID, errMsg string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	b, err := l.findBeeLocked(taskID, beeID)
	if err != nil {
		return err
	}
	b.Fail(errMsg)
	return nil
}

func (l *Ledger) findBeeLocked(taskID, beeID string) (*models.Bee, error) {
	t, ok := l.tasks[taskID]
	if !ok {
		return nil, fmt.Errorf("task %s: %w", taskID, ErrTaskNotFound)
	}
	for _, b := range t.Bees {
		if b.ID == beeID {
			return b, nil
		}
	}
	return nil, fmt.Errorf("task %s bee %s: %w", taskID, beeID, ErrBeeNotFound)
}

// Summaries returns list-view summaries of all tasks in insertion order.
func (l *Ledger) Summaries() []models.TaskSummary {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]models.TaskSummary, 0, len(l.order))
	for _, id := range l.order {
		if t, ok := l.tasks[id]; ok {
			out = append(out, t.Summary())
		}
	}
	return out
}

// Statistics computes aggregate accounting across all tasks. An empty
// ledger yields the zero statistics value with an empty distribution.
func (l *Ledger) Statistics() models.SwarmStatistics {
	l.mu.RLock()
	defer l.mu.RUnlock()

	stats := models.SwarmStatistics{
		DanceDistribution: make(map[models.Dance]int),
	}
	var savingsSum float64
	for _, t := range l.tasks {
		stats.TotalTasks++
		stats.TotalBeesDeployed += len(t.Bees)
		stats.DanceDistribution[t.Dance]++
		if t.Status.Active() {
			stats.ActiveTasks++
		}
		if t.Status == models.TaskStatusCompleted {
			stats.CompletedTasks++
			savingsSum += t.TokenSavings()
		}
	}
	if stats.CompletedTasks > 0 {
		avg := savingsSum / float64(stats.CompletedTasks)
		stats.AverageTokenSavings = math.Round(avg*100) / 100
	}
	return stats
}

// evictLocked removes tasks until the ledger fits its capacity. Terminal
// tasks go first in insertion order; if every task is live, the oldest
// goes. Must be called with the write lock held.
func (l *Ledger) evictLocked() {
	if l.capacity <= 0 {
		return
	}
	for len(l.tasks) > l.capacity {
		victim := -1
		for i, id := range l.order {
			if t, ok := l.tasks[id]; ok && t.Status.Terminal() {
				victim = i
				break
			}
		}
		if victim == -1 {
			victim = 0
		}
		id := l.order[victim]
		l.order = append(l.order[:victim], l.order[victim+1:]...)
		delete(l.tasks, id)
	}
}
