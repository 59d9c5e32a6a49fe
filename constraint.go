package schemakit

import "fmt"

// Predicate evaluates a whole-entity invariant. A nil result means the
// constraint is satisfied; a non-nil slice carries the arguments formatted
// positionally into the constraint's message template. Panics inside a
// predicate are not recovered by the engine — they signal a programming
// defect in the predicate, not a data-validity condition.
type Predicate func(*Entity) []any

// ConstraintSpec is a named (message-template) predicate evaluated against a
// whole entity. The message is a fmt template; constraints are evaluated in
// declaration order, which affects only the order of emitted messages.
type ConstraintSpec struct {
	Message string
	Check   Predicate
}

// Evaluate runs the predicate and, on violation, renders the message
// template with the returned arguments.
func (c *ConstraintSpec) Evaluate(e *Entity) (string, bool) {
	args := c.Check(e)
	if args == nil {
		return "", false
	}
	return fmt.Sprintf(c.Message, args...), true
}
