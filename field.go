package schemakit

// FieldSpec is a declared field: a named matcher with an optional default
// value. Field names are unique within one Metamodel.
type FieldSpec struct {
	Name    string
	Match   Matcher
	Default any
}

// GetValue resolves the field against the entity's data store. Default
// substitution applies uniformly whether the key is missing or
// present-but-nil; otherwise the stored value is returned unchanged.
func (f *FieldSpec) GetValue(e *Entity) any {
	v, ok := e.dataGet(f.Name)
	if !ok || v == nil {
		return f.Default
	}
	return v
}

// Validate applies the field's matcher to the resolved value, after default
// substitution: a field whose stored value is nil but whose default
// satisfies the matcher is valid.
func (f *FieldSpec) Validate(e *Entity) bool {
	return f.Match.Matches(f.GetValue(e))
}
