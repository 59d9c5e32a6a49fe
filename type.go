package schemakit

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Builder is the explicit registration handle threaded through a type's
// definition routine. Fields, derived fields, and constraints all register
// against the same handle, removing any ordering coupling between the
// declarations.
//
// Registration misuse (duplicate names, collisions, bad declarations) is a
// programming defect and panics with a *DefinitionError.
type Builder struct {
	meta *Metamodel
}

// Field declares a field with no default. decl is a Kind or a Matcher.
func (b *Builder) Field(name string, decl any) {
	b.FieldDefault(name, decl, nil)
}

// FieldDefault declares a field with a default value, substituted whenever
// the stored value is missing or nil.
func (b *Builder) FieldDefault(name string, decl any, def any) {
	match, err := AsMatcher(decl)
	if err != nil {
		de := err.(*DefinitionError)
		de.Type = b.meta.name
		de.Detail = fmt.Sprintf("field %q: %s", name, de.Detail)
		panic(de)
	}
	if _, dup := b.meta.fields[name]; dup {
		panic(&DefinitionError{
			Type:   b.meta.name,
			Code:   CodeDuplicateField,
			Detail: fmt.Sprintf("field %q declared twice", name),
		})
	}
	if _, dup := b.meta.derived[name]; dup {
		panic(&DefinitionError{
			Type:   b.meta.name,
			Code:   CodeDerivedCollision,
			Detail: fmt.Sprintf("field %q collides with a derived field", name),
		})
	}
	b.meta.fields[name] = &FieldSpec{Name: name, Match: match, Default: def}
	b.meta.order = append(b.meta.order, name)
}

// Derived declares a memoized computed field keyed by name.
func (b *Builder) Derived(name string, init func(*Entity) any) {
	if init == nil {
		panic(&DefinitionError{
			Type:   b.meta.name,
			Code:   CodeNilRoutine,
			Detail: fmt.Sprintf("derived field %q has a nil initializer", name),
		})
	}
	if _, dup := b.meta.fields[name]; dup {
		panic(&DefinitionError{
			Type:   b.meta.name,
			Code:   CodeDerivedCollision,
			Detail: fmt.Sprintf("derived field %q collides with a declared field", name),
		})
	}
	if _, dup := b.meta.derived[name]; dup {
		panic(&DefinitionError{
			Type:   b.meta.name,
			Code:   CodeDuplicateField,
			Detail: fmt.Sprintf("derived field %q declared twice", name),
		})
	}
	b.meta.derived[name] = &DerivedFieldSpec{Name: name, Initializer: init}
}

// Constraint declares a whole-entity invariant. message is a fmt template
// rendered with the predicate's returned arguments on violation.
func (b *Builder) Constraint(message string, check Predicate) {
	if check == nil {
		panic(&DefinitionError{
			Type:   b.meta.name,
			Code:   CodeNilRoutine,
			Detail: fmt.Sprintf("constraint %q has a nil predicate", message),
		})
	}
	b.meta.constraints = append(b.meta.constraints, &ConstraintSpec{Message: message, Check: check})
}

// Type is a registered record type. The definition routine supplied to
// NewType is captured unexecuted and runs exactly once, on the first access
// to the Metamodel from any entity of the type; concurrent first accesses
// block until the build completes and never observe a half-built state.
type Type struct {
	name   string
	define func(*Builder)
	once   sync.Once
	meta   *Metamodel
}

// NewType registers a record type. define receives the Builder handle and
// declares fields, derived fields, and constraints; it is not executed here.
func NewType(name string, define func(*Builder)) *Type {
	if define == nil {
		panic(&DefinitionError{
			Type:   name,
			Code:   CodeNilRoutine,
			Detail: "nil definition routine",
		})
	}
	return &Type{name: name, define: define}
}

// Name returns the record type's name.
func (t *Type) Name() string { return t.name }

// Metamodel returns the type's schema registry, building it on first call.
// After the build the definition routine is discarded and the returned
// Metamodel is shared, immutable, by every entity of the type.
func (t *Type) Metamodel() *Metamodel {
	t.once.Do(func() {
		m := &Metamodel{
			name:    t.name,
			fields:  map[string]*FieldSpec{},
			derived: map[string]*DerivedFieldSpec{},
		}
		t.define(&Builder{meta: m})
		t.meta = m
		t.define = nil
	})
	return t.meta
}

// New constructs an entity from initial data. Unknown keys are retained, not
// rejected; construction never fails due to data shape. The data map is
// copied, so the caller keeps ownership of its argument.
func (t *Type) New(data map[string]any) *Entity {
	store := make(map[string]any, len(data))
	for k, v := range data {
		store[k] = v
	}
	return &Entity{
		typ:   t,
		id:    uuid.NewString(),
		data:  store,
		onces: map[string]*sync.Once{},
	}
}

// OptionsFor returns the allowed values of an Options-matched field in
// declared order.
func (t *Type) OptionsFor(field string) ([]string, error) {
	return t.Metamodel().OptionsFor(field)
}
