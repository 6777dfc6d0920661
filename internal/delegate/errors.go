package delegate

import "fmt"

// ValidationError reports a delegation request rejected before any state
// was created. The ledger is unchanged when it is returned.
type ValidationError struct {
	// Field is the request field that failed validation.
	Field string
	// Reason describes the violated precondition.
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
