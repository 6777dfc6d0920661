package delegate

import "github.com/hiveworks/swarmrouter/internal/catalog"

// Decompose produces the ordered subtask list for a task. Caller-supplied
// subtasks take precedence and are returned verbatim; otherwise the dance
// template is instantiated with the description. The result always has at
// least one entry and its order determines bee order.
func Decompose(entry catalog.Entry, description string, explicit []string) []string {
	if len(explicit) > 0 {
		out := make([]string, len(explicit))
		copy(out, explicit)
		return out
	}
	return entry.Instantiate(description)
}
