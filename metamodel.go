package schemakit

import (
	"fmt"
	"sort"
)

// Metamodel is the built, immutable schema registry for one record type:
// its fields, derived fields, and constraints. It is created in a pending
// state inside Type and transitions to built exactly once, on the first
// field resolution of any entity of the owning type; after that it is
// shared by reference across all entities of the type for the lifetime of
// the process. Entities hold a back-reference and never own it.
type Metamodel struct {
	name        string
	fields      map[string]*FieldSpec
	order       []string // field declaration order
	derived     map[string]*DerivedFieldSpec
	constraints []*ConstraintSpec
}

// Name returns the owning record type's name.
func (m *Metamodel) Name() string { return m.name }

// FieldNames returns declared field names in declaration order.
func (m *Metamodel) FieldNames() []string {
	return append([]string(nil), m.order...)
}

// DerivedNames returns derived field names in ascending order.
func (m *Metamodel) DerivedNames() []string {
	names := make([]string, 0, len(m.derived))
	for n := range m.derived {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ConstraintCount returns the number of registered constraints.
func (m *Metamodel) ConstraintCount() int { return len(m.constraints) }

// OptionsFor returns the allowed-values set of the named field's matcher in
// declared order. It fails when the field is unknown or not Options-matched.
func (m *Metamodel) OptionsFor(field string) ([]string, error) {
	f, ok := m.fields[field]
	if !ok {
		return nil, &UnknownFieldError{Type: m.name, Field: field}
	}
	om, ok := f.Match.(optionsMatcher)
	if !ok {
		return nil, &DefinitionError{
			Type:   m.name,
			Code:   CodeNotOptions,
			Detail: fmt.Sprintf("field %q is matched by %s, not options", field, f.Match.Describe()),
		}
	}
	return om.options(), nil
}

// resolve is the single field-resolution algorithm: declared field, then
// derived field, then — strict — *UnknownFieldError, or — lenient — the raw
// data entry (nil when absent).
func (m *Metamodel) resolve(e *Entity, name string, strict bool) (any, error) {
	if f, ok := m.fields[name]; ok {
		return f.GetValue(e), nil
	}
	if d, ok := m.derived[name]; ok {
		return d.GetValue(e), nil
	}
	if strict {
		return nil, &UnknownFieldError{Type: m.name, Field: name}
	}
	v, _ := e.dataGet(name)
	return v, nil
}

// messagePrefix identifies the entity in violation messages: by its name
// field when the type declares one, by its id otherwise.
func (m *Metamodel) messagePrefix(e *Entity) string {
	if f, ok := m.fields["name"]; ok {
		return fmt.Sprintf("%s '%v'", m.name, f.GetValue(e))
	}
	return fmt.Sprintf("%s at %s", m.name, e.id)
}

// ErrorMessages collects every violation: one line per failing field in
// declaration order, then one line per violated constraint in declaration
// order. There is no short-circuiting.
func (m *Metamodel) ErrorMessages(e *Entity) []string {
	var msgs []string
	for _, name := range m.order {
		f := m.fields[name]
		if f.Validate(e) {
			continue
		}
		msgs = append(msgs, fmt.Sprintf("%s expected field '%s' to be %s, got %v",
			m.messagePrefix(e), f.Name, f.Match.Describe(), f.GetValue(e)))
	}
	for _, c := range m.constraints {
		if msg, violated := c.Evaluate(e); violated {
			msgs = append(msgs, m.messagePrefix(e)+" "+msg)
		}
	}
	return msgs
}
