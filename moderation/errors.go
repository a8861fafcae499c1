package moderation

import "fmt"

// HierarchyError means the bot's highest role does not outrank the target
// member or role. It is checked before any mutation and surfaced to the
// invoking actor; it is never retried automatically.
type HierarchyError struct {
	Op     string
	Target string
}

func (e *HierarchyError) Error() string {
	return fmt.Sprintf("hierarchy: bot cannot manage %s (%s)", e.Target, e.Op)
}
