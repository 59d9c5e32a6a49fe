package schemakit_test

import (
	"testing"
)

func TestFromJSON(t *testing.T) {
	typ := newExperimentType()

	e, err := typ.FromJSON([]byte(`{
		"name": "button_color",
		"subject": "user",
		"treatments": ["control", "treatment"],
		"percent_exposed": 42,
		"whatnot": "gibberish"
	}`))
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if !e.IsValid() {
		t.Fatalf("expected valid entity, got %q", e.ErrorMessages())
	}
	if v := e.Lookup("whatnot"); v != "gibberish" {
		t.Fatalf("unknown keys should be retained, got %v", v)
	}
	// JSON numbers arrive as json.Number and satisfy the int kind.
	if n, _ := e.Get("percent_exposed"); n == nil {
		t.Fatalf("expected percent_exposed")
	}
}

func TestFromJSON_InvalidDataStillConstructs(t *testing.T) {
	typ := newExperimentType()

	e, err := typ.FromJSON([]byte(`{"name": "button_color", "percent_exposed": 200, "design": false}`))
	if err != nil {
		t.Fatalf("construction must not fail on invalid data: %v", err)
	}
	msgs := e.ErrorMessages()
	if len(msgs) != 4 {
		t.Fatalf("expected 4 violations, got %q", msgs)
	}
	if msgs[3] != "Experiment 'button_color' expected percent_exposed to not exceed 100, got 200" {
		t.Fatalf("constraint message mismatch: %q", msgs[3])
	}
}

func TestFromJSON_ShapeErrors(t *testing.T) {
	typ := newExperimentType()

	if _, err := typ.FromJSON([]byte(`{"name":`)); err == nil {
		t.Fatalf("expected error for malformed JSON")
	}
	if _, err := typ.FromJSON([]byte(`[1, 2]`)); err == nil {
		t.Fatalf("expected error for non-object document")
	}
}

func TestFromYAML(t *testing.T) {
	typ := newExperimentType()

	e, err := typ.FromYAML([]byte(`
name: button_color
subject: user
treatments:
  - control
  - treatment
percent_exposed: 42
`))
	if err != nil {
		t.Fatalf("FromYAML: %v", err)
	}
	if !e.IsValid() {
		t.Fatalf("expected valid entity, got %q", e.ErrorMessages())
	}

	if _, err := typ.FromYAML([]byte("- just\n- a\n- list\n")); err == nil {
		t.Fatalf("expected error for non-mapping document")
	}

	e, err = typ.FromYAML(nil)
	if err != nil {
		t.Fatalf("empty document should construct: %v", err)
	}
	if e.IsValid() {
		t.Fatalf("empty experiment should be invalid")
	}
}
