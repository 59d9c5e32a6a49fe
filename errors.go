package schemakit

import (
	"errors"
	"fmt"
)

// Definition error codes (exported consts for IDE completion and type safety
// by convention).
const (
	CodeDuplicateField   = "duplicate_field"
	CodeDerivedCollision = "derived_collision"
	CodeBadDeclaration   = "bad_declaration"
	CodeNilRoutine       = "nil_routine"
	CodeNotOptions       = "not_options"
)

// DefinitionError reports a malformed registration: a duplicate field name,
// a field colliding with a derived field, a declaration that is neither a
// Kind nor a Matcher, or a nil routine. Registration misuse is a programming
// defect, so the Builder panics with a *DefinitionError during the build
// step rather than returning it.
type DefinitionError struct {
	Type   string // Record type under definition ("" when unknown).
	Code   string // One of the codes listed above.
	Detail string
}

func (e *DefinitionError) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("schemakit: %s: %s", e.Code, e.Detail)
	}
	return fmt.Sprintf("schemakit: %s: %s: %s", e.Type, e.Code, e.Detail)
}

// UnknownFieldError reports a strict read of a name that is neither a
// declared nor a derived field. Lenient reads never produce it.
type UnknownFieldError struct {
	Type  string
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("schemakit: %s has no field %q", e.Type, e.Field)
}

// AsUnknownField extracts an *UnknownFieldError using errors.As internally.
func AsUnknownField(err error) (*UnknownFieldError, bool) {
	var ue *UnknownFieldError
	if errors.As(err, &ue) {
		return ue, true
	}
	return nil, false
}
