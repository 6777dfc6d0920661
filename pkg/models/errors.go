package models

import "fmt"

// InvalidStateError reports a lifecycle operation rejected because of the
// task's current status. The ledger is left unchanged when it is returned.
type InvalidStateError struct {
	// Op is the rejected operation (e.g. "start", "cancel").
	Op string
	// TaskID is the task the operation targeted.
	TaskID string
	// Status is the task status at the time of rejection.
	Status TaskStatus
	// Reason optionally narrows down why the operation was rejected.
	Reason string
}

// Error implements the error interface.
func (e *InvalidStateError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("cannot %s task %s in status %q: %s", e.Op, e.TaskID, e.Status, e.Reason)
	}
	return fmt.Sprintf("cannot %s task %s in status %q", e.Op, e.TaskID, e.Status)
}
