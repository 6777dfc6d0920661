package delegate

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hiveworks/swarmrouter/internal/catalog"
	"github.com/hiveworks/swarmrouter/internal/ledger"
	"github.com/hiveworks/swarmrouter/pkg/models"
)

// Request is a task-delegation request as it arrives at the engine
// boundary, regardless of transport.
type Request struct {
	// Description is the free-text task description. Required.
	Description string `json:"description"`
	// Priority is the task priority. Empty means the configured default.
	Priority string `json:"priority,omitempty"`
	// MaxTokens is the total token budget. Zero means the default;
	// negative values are rejected.
	MaxTokens int `json:"max_tokens,omitempty"`
	// TaskType optionally forces a dance type. Unknown values fall back
	// to automatic classification rather than failing.
	TaskType string `json:"task_type,omitempty"`
	// Subtasks optionally overrides automatic decomposition.
	Subtasks []string `json:"subtasks,omitempty"`
}

// Response summarizes a successful delegation.
type Response struct {
	// TaskID is the identifier of the recorded task.
	TaskID string `json:"task_id"`
	// Dance is the coordination pattern chosen for the task.
	Dance models.Dance `json:"dance_type"`
	// AssignedBees is the number of bees recruited.
	AssignedBees int `json:"assigned_bees"`
	// EstimatedTokenSavings is the task's savings percentage at creation.
	EstimatedTokenSavings float64 `json:"estimated_token_savings"`
	// Message is a human-readable summary.
	Message string `json:"message"`
}

// Delegator routes delegation requests through classification,
// decomposition, and budget allocation, recording the result in the
// ledger. It is safe for concurrent use.
type Delegator struct {
	catalog          *catalog.Catalog
	ledger           *ledger.Ledger
	emitter          *EventEmitter
	logger           *DebugLogger
	defaultMaxTokens int
	defaultPriority  models.TaskPriority
}

// New creates a Delegator with its own ledger.
func New(opts ...Option) *Delegator {
	o := &delegatorOptions{
		defaultMaxTokens: DefaultMaxTokens,
		defaultPriority:  models.PriorityMedium,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.catalog == nil {
		o.catalog = catalog.Default()
	}
	if o.logger == nil {
		o.logger = NopLogger()
	}
	if !o.defaultPriority.Valid() {
		o.defaultPriority = models.PriorityMedium
	}
	return &Delegator{
		catalog:          o.catalog,
		ledger:           ledger.New(o.capacity),
		emitter:          o.emitter,
		logger:           o.logger,
		defaultMaxTokens: o.defaultMaxTokens,
		defaultPriority:  o.defaultPriority,
	}
}

// Catalog returns the dance catalog in use.
func (d *Delegator) Catalog() *catalog.Catalog {
	return d.catalog
}

// Delegate validates the request, selects a dance, decomposes the task,
// allocates the budget, and records the task with one bee per subtask.
// Validation failures return a *ValidationError and leave the ledger
// unchanged.
func (d *Delegator) Delegate(req Request) (*Response, error) {
	if strings.TrimSpace(req.Description) == "" {
		return nil, &ValidationError{Field: "description", Reason: "must not be empty"}
	}
	if req.MaxTokens < 0 {
		return nil, &ValidationError{Field: "max_tokens", Reason: fmt.Sprintf("must be positive, got %d", req.MaxTokens)}
	}
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = d.defaultMaxTokens
	}

	priority := d.defaultPriority
	if req.Priority != "" {
		priority = models.TaskPriority(strings.ToLower(req.Priority))
		if !priority.Valid() {
			return nil, &ValidationError{Field: "priority", Reason: fmt.Sprintf("unknown priority %q", req.Priority)}
		}
	}

	entry, cls := d.selectDance(req.Description, req.TaskType)

	subtasks := Decompose(entry, req.Description, req.Subtasks)
	perBee := AllocatePerBee(maxTokens, len(subtasks), entry.Multiplier)

	task := models.NewTask(req.Description, priority, entry.Dance, maxTokens)
	for _, subtask := range subtasks {
		bee := models.NewBee(entry.Dance, subtask, entry.Specialty, perBee)
		task.AssignBee(bee)
		d.logger.Log("created %s for subtask: %s", bee.ID, subtask)
	}
	d.ledger.Put(task)

	d.logger.Log("delegated task %s with %d bees using %s dance (score=%d fallback=%v)",
		task.ID, len(task.Bees), task.Dance, cls.Score, cls.Fallback)
	d.emit(Event{
		Type:    EventTaskDelegated,
		TaskID:  task.ID,
		Dance:   task.Dance,
		Message: fmt.Sprintf("%d bees recruited", len(task.Bees)),
		Tokens:  maxTokens,
	})

	return &Response{
		TaskID:                task.ID,
		Dance:                 task.Dance,
		AssignedBees:          len(task.Bees),
		EstimatedTokenSavings: task.TokenSavings(),
		Message:               fmt.Sprintf("Task delegated to %d bees using %s dance", len(task.Bees), task.Dance),
	}, nil
}

// selectDance resolves the dance for a request: a valid explicit task
// type wins without scoring; anything else goes through classification.
// An unknown task type is logged and falls back to automatic
// classification, matching the tolerant behavior of the tool boundary.
func (d *Delegator) selectDance(description, taskType string) (catalog.Entry, Classification) {
	if taskType != "" {
		dance := models.Dance(strings.ToLower(taskType))
		if entry, ok := d.catalog.Lookup(dance); ok {
			return entry, Classification{Entry: entry}
		}
		d.logger.Log("invalid dance type %q, using auto-detection", taskType)
	}
	cls := Classify(d.catalog, description)
	return cls.Entry, cls
}

// Task returns a snapshot of the task, or nil when the id is unknown.
func (d *Delegator) Task(id string) *models.Task {
	return d.ledger.Get(id)
}

// Tasks returns summaries of all tasks in creation order.
func (d *Delegator) Tasks() []models.TaskSummary {
	return d.ledger.Summaries()
}

// Statistics returns aggregate swarm accounting.
func (d *Delegator) Statistics() models.SwarmStatistics {
	return d.ledger.Statistics()
}

// StartTask moves a task to in_progress.
func (d *Delegator) StartTask(id string) error {
	if err := d.ledger.Start(id); err != nil {
		return err
	}
	d.logger.Log("task %s started", id)
	d.emit(Event{Type: EventTaskStarted, TaskID: id})
	return nil
}

// CompleteTask moves a task to completed. Bees are not completed in
// cascade; each bee is finished through CompleteBee or FailBee.
func (d *Delegator) CompleteTask(id, result string) error {
	if err := d.ledger.Complete(id, result); err != nil {
		return err
	}
	d.logger.Log("task %s completed", id)
	d.emit(Event{Type: EventTaskCompleted, TaskID: id, Message: result})
	return nil
}

// FailTask moves a task to failed.
func (d *Delegator) FailTask(id, errMsg string) error {
	if err := d.ledger.Fail(id, errMsg); err != nil {
		return err
	}
	d.logger.Log("task %s failed: %s", id, errMsg)
	d.emit(Event{Type: EventTaskFailed, TaskID: id, Err: errors.New(errMsg)})
	return nil
}

// CancelTask moves a non-terminal task to cancelled.
func (d *Delegator) CancelTask(id string) error {
	if err := d.ledger.Cancel(id); err != nil {
		return err
	}
	d.logger.Log("task %s cancelled", id)
	d.emit(Event{Type: EventTaskCancelled, TaskID: id})
	return nil
}

// CompleteBee records a bee's result and actual token usage.
func (d *Delegator) CompleteBee(taskID, beeID, result string, actualTokens int) error {
	if actualTokens < 0 {
		return &ValidationError{Field: "actual_tokens", Reason: fmt.Sprintf("must be non-negative, got %d", actualTokens)}
	}
	if err := d.ledger.CompleteBee(taskID, beeID, result, actualTokens); err != nil {
		return err
	}
	d.logger.Log("bee %s on task %s completed with %d tokens", beeID, taskID, actualTokens)
	d.emit(Event{Type: EventBeeCompleted, TaskID: taskID, BeeID: beeID, Tokens: actualTokens})
	return nil
}

// FailBee records a bee failure.
func (d *Delegator) FailBee(taskID, beeID, errMsg string) error {
	if err := d.ledger.FailBee(taskID, beeID, errMsg); err != nil {
		return err
	}
	d.logger.Log("bee %s on task %s failed: %s", beeID, taskID, errMsg)
	d.emit(Event{Type: EventBeeFailed, TaskID: taskID, BeeID: beeID, Err: errors.New(errMsg)})
	return nil
}

func (d *Delegator) emit(ev Event) {
	if d.emitter == nil {
		return
	}
	ev.Timestamp = time.Now()
	d.emitter.Emit(ev)
}
