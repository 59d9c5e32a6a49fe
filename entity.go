package schemakit

import "sync"

// Entity is one instance of a record type. It owns its data store — the raw
// payload plus the memoization cache for derived fields — and holds a shared
// reference to its type's Metamodel. Entities may be invalid; validity is a
// query, not a construction precondition.
//
// An entity is safe for concurrent use: the data store is guarded by a
// per-entity mutex and each derived-field initializer runs at most once.
type Entity struct {
	typ *Type
	id  string

	mu    sync.Mutex
	data  map[string]any
	onces map[string]*sync.Once // per derived field, created on demand
}

// Type returns the entity's record type.
func (e *Entity) Type() *Type { return e.typ }

// ID returns the entity's identity, used in validation messages when the
// type declares no name field.
func (e *Entity) ID() string { return e.id }

// Get is the strict read: declared and derived fields resolve (with default
// substitution and memoization); any other name fails with
// *UnknownFieldError.
func (e *Entity) Get(name string) (any, error) {
	return e.typ.Metamodel().resolve(e, name, true)
}

// MustGet is Get for names known to be declared; it panics on unknown names.
func (e *Entity) MustGet(name string) any {
	v, err := e.Get(name)
	if err != nil {
		panic(err)
	}
	return v
}

// Lookup is the lenient read: declared and derived fields resolve as in Get;
// unknown names return the raw data entry, or nil when absent. Lookup never
// fails.
func (e *Entity) Lookup(name string) any {
	v, _ := e.typ.Metamodel().resolve(e, name, false)
	return v
}

// Set stores a raw value, overwriting any previous entry. Derived fields
// already memoized under name are not recomputed; ones not yet computed are
// pre-memoized by the stored value.
func (e *Entity) Set(name string, v any) {
	e.mu.Lock()
	e.data[name] = v
	e.mu.Unlock()
}

// Data returns a copy of the data store: the initial payload, later Set
// calls, and any memoized derived values.
func (e *Entity) Data() map[string]any {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make(map[string]any, len(e.data))
	for k, v := range e.data {
		out[k] = v
	}
	return out
}

// IsValid reports whether ErrorMessages yields no items.
func (e *Entity) IsValid() bool {
	return len(e.ErrorMessages()) == 0
}

// ErrorMessages returns the complete set of violations, one line per failing
// field then per violated constraint. The slice is freshly built on each
// call and safe to traverse repeatedly; derived-field computation triggered
// by constraints is memoized, so repeated calls are idempotent.
func (e *Entity) ErrorMessages() []string {
	return e.typ.Metamodel().ErrorMessages(e)
}

func (e *Entity) dataGet(name string) (any, bool) {
	e.mu.Lock()
	v, ok := e.data[name]
	e.mu.Unlock()
	return v, ok
}

// memoize returns the cached value for a derived field, invoking the
// initializer at most once per entity. The once-guard is per field, so an
// initializer may resolve other fields — including other derived fields —
// without deadlocking; an initializer resolving itself is a defect and
// blocks, like any self-recursive definition.
func (e *Entity) memoize(d *DerivedFieldSpec) any {
	e.mu.Lock()
	if v, ok := e.data[d.Name]; ok {
		e.mu.Unlock()
		return v
	}
	once := e.onces[d.Name]
	if once == nil {
		once = new(sync.Once)
		e.onces[d.Name] = once
	}
	e.mu.Unlock()

	once.Do(func() {
		v := d.Initializer(e)
		e.mu.Lock()
		// A concurrent Set may have landed first; presence wins.
		if _, ok := e.data[d.Name]; !ok {
			e.data[d.Name] = v
		}
		e.mu.Unlock()
	})

	v, _ := e.dataGet(d.Name)
	return v
}
