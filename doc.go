// Package schemakit is a schema-declaration and validation engine for
// semi-structured records ("entities").
//
// A record type declares, once, a set of named fields with matchers and
// default values, derived (memoized) fields, and named cross-field
// constraints:
//
//	Experiment := schemakit.NewType("Experiment", func(b *schemakit.Builder) {
//	    b.Field("name", schemakit.KindString)
//	    b.Field("subject", schemakit.Options("user", "visitor"))
//	    b.FieldDefault("percent_exposed", schemakit.KindInt, 100)
//	    b.Derived("is_miscellaneous", func(e *schemakit.Entity) any {
//	        v, _ := e.Get("subject")
//	        return v != "user" && v != "visitor"
//	    })
//	    b.Constraint("expected percent_exposed to not exceed 100, got %v",
//	        func(e *schemakit.Entity) []any {
//	            if n, ok := schemakit.AsInt64(e.Lookup("percent_exposed")); ok && n > 100 {
//	                return []any{n}
//	            }
//	            return nil
//	        })
//	})
//
// Entities are constructed from arbitrary key/value data and never fail to
// construct; validity is a query performed afterwards:
//
//	e := Experiment.New(map[string]any{"name": "button_color", "subject": "user"})
//	if !e.IsValid() {
//	    for _, msg := range e.ErrorMessages() {
//	        fmt.Println(msg)
//	    }
//	}
//
// ErrorMessages always reports the complete set of violations, never just
// the first. Unknown keys are retained and queryable through lenient reads
// (Lookup) but are never validated; strict reads (Get) fail with
// *UnknownFieldError for undeclared names.
//
// Design policy:
//   - Keep the public API in the root package; the CLI lives under
//     cmd/schemakit and runnable demos under examples/.
//   - Validation failures are data, not errors: they surface only through
//     ErrorMessages.
//   - Prefer black-box testing against the public API.
package schemakit
