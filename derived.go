package schemakit

// DerivedFieldSpec is a named, memoized computed-value rule. Once computed
// for a given entity the value is cached in that entity's data store under
// the field's name and never recomputed, even if the underlying data later
// changes: derived fields are functions of the initial snapshot by contract.
//
// The data store doubles as the memoization cache, so a derived field name
// must not collide with a real payload key — a colliding payload entry
// silently pre-memoizes and the initializer is never invoked.
type DerivedFieldSpec struct {
	Name        string
	Initializer func(*Entity) any
}

// GetValue returns the memoized value, computing it on first access.
func (d *DerivedFieldSpec) GetValue(e *Entity) any {
	return e.memoize(d)
}
