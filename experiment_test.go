package schemakit_test

import (
	"reflect"
	"testing"

	"github.com/schemakit/schemakit"
)

// newExperimentType builds a fresh record type per test so build-once
// counting never leaks between tests.
func newExperimentType() *schemakit.Type {
	return schemakit.NewType("Experiment", func(b *schemakit.Builder) {
		b.Field("name", schemakit.KindString)
		b.Field("subject", schemakit.Options("user", "visitor", "email", "listing", "market"))
		b.Field("treatments", schemakit.Array(schemakit.KindString))
		b.FieldDefault("percent_exposed", schemakit.KindInt, 100)
		b.Field("design", schemakit.Nullable(schemakit.Pattern("^https?://")))
		b.Derived("is_miscellaneous", func(e *schemakit.Entity) any {
			v, _ := e.Get("subject")
			return v != "user" && v != "visitor"
		})
		b.Constraint("expected percent_exposed to not exceed 100, got %v",
			func(e *schemakit.Entity) []any {
				if n, ok := schemakit.AsInt64(e.Lookup("percent_exposed")); ok && n > 100 {
					return []any{n}
				}
				return nil
			})
	})
}

func TestExperiment_Valid(t *testing.T) {
	typ := newExperimentType()
	e := typ.New(map[string]any{
		"name":       "button_color",
		"subject":    "user",
		"treatments": []string{"control", "treatment"},
		"whatnot":    "gibberish",
	})

	if msgs := e.ErrorMessages(); len(msgs) != 0 {
		t.Fatalf("expected no violations, got %v", msgs)
	}
	if !e.IsValid() {
		t.Fatalf("expected valid entity")
	}
}

func TestExperiment_EmptyTreatmentsValid(t *testing.T) {
	typ := newExperimentType()
	e := typ.New(map[string]any{
		"name":       "button_color",
		"subject":    "user",
		"treatments": []string{},
	})

	if msgs := e.ErrorMessages(); len(msgs) != 0 {
		t.Fatalf("expected no violations, got %v", msgs)
	}
	if !e.IsValid() {
		t.Fatalf("expected valid entity")
	}
}

func TestExperiment_Invalid(t *testing.T) {
	typ := newExperimentType()
	e := typ.New(map[string]any{
		"name":            "button_color",
		"percent_exposed": 200,
		"design":          false,
	})

	if e.IsValid() {
		t.Fatalf("expected invalid entity")
	}
	want := []string{
		"Experiment 'button_color' expected field 'subject' to be options('user', 'visitor', 'email', 'listing', 'market'), got <nil>",
		"Experiment 'button_color' expected field 'treatments' to be array(string), got <nil>",
		"Experiment 'button_color' expected field 'design' to be nullable(regexp(^https?://)), got false",
		"Experiment 'button_color' expected percent_exposed to not exceed 100, got 200",
	}
	got := e.ErrorMessages()
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("violations mismatch:\n got %q\nwant %q", got, want)
	}
}

func TestExperiment_ErrorMessagesRestartable(t *testing.T) {
	typ := newExperimentType()
	e := typ.New(map[string]any{"name": "button_color", "percent_exposed": 200, "design": false})

	first := e.ErrorMessages()
	second := e.ErrorMessages()
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated traversal diverged:\n%q\n%q", first, second)
	}
	if len(first) != 4 {
		t.Fatalf("expected 4 violations, got %d: %q", len(first), first)
	}
}

func TestExperiment_PatternMismatch(t *testing.T) {
	typ := newExperimentType()

	e := typ.New(map[string]any{"name": "x", "subject": "user", "treatments": []string{}, "design": "covfefe"})
	msgs := e.ErrorMessages()
	if len(msgs) != 1 {
		t.Fatalf("expected a single violation, got %q", msgs)
	}
	want := "Experiment 'x' expected field 'design' to be nullable(regexp(^https?://)), got covfefe"
	if msgs[0] != want {
		t.Fatalf("got %q, want %q", msgs[0], want)
	}

	// Non-string values never match a pattern, regardless of pattern.
	e = typ.New(map[string]any{"name": "x", "subject": "user", "treatments": []string{}, "design": 9000})
	msgs = e.ErrorMessages()
	if len(msgs) != 1 || msgs[0] != "Experiment 'x' expected field 'design' to be nullable(regexp(^https?://)), got 9000" {
		t.Fatalf("unexpected violations: %q", msgs)
	}
}

func TestExperiment_WholeFloatIsNotInt(t *testing.T) {
	typ := newExperimentType()
	e := typ.New(map[string]any{
		"name":            "button_color",
		"subject":         "user",
		"treatments":      []string{},
		"percent_exposed": float64(50),
	})

	msgs := e.ErrorMessages()
	want := "Experiment 'button_color' expected field 'percent_exposed' to be int, got 50"
	if len(msgs) != 1 || msgs[0] != want {
		t.Fatalf("whole floats must not satisfy the int kind, got %q", msgs)
	}
}

func TestExperiment_OptionsFor(t *testing.T) {
	typ := newExperimentType()

	opts, err := typ.OptionsFor("subject")
	if err != nil {
		t.Fatalf("OptionsFor(subject): %v", err)
	}
	want := []string{"user", "visitor", "email", "listing", "market"}
	if !reflect.DeepEqual(opts, want) {
		t.Fatalf("got %v, want %v", opts, want)
	}

	if _, err := typ.OptionsFor("name"); err == nil {
		t.Fatalf("expected error for non-options field")
	}
	if _, err := typ.OptionsFor("covfefe"); err == nil {
		t.Fatalf("expected error for unknown field")
	} else if _, ok := schemakit.AsUnknownField(err); !ok {
		t.Fatalf("expected UnknownFieldError, got %v", err)
	}
}
