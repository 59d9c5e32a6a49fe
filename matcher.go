package schemakit

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
)

// Matcher is the atomic unit of type-checking: a pure predicate over a value
// plus a human-readable description. Describe output is embedded verbatim in
// validation messages and must be stable and deterministic.
type Matcher interface {
	Matches(v any) bool
	Describe() string
}

// Kind identifies a primitive value shape recognized by TypeOf. Declarations
// pass a Kind where a bare primitive check is wanted; every other matcher
// variant requires explicit construction.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindBool
	KindMap
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindMap:
		return "map"
	case KindList:
		return "list"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// AsMatcher converts a declaration into a Matcher. A Kind becomes a TypeOf
// matcher; a Matcher passes through unchanged; anything else is a
// *DefinitionError.
func AsMatcher(decl any) (Matcher, error) {
	switch d := decl.(type) {
	case Matcher:
		return d, nil
	case Kind:
		return TypeOf(d), nil
	default:
		return nil, &DefinitionError{
			Code:   CodeBadDeclaration,
			Detail: fmt.Sprintf("declaration %T is neither a Kind nor a Matcher", decl),
		}
	}
}

// mustMatcher is AsMatcher for construction sites where a bad declaration is
// a programming defect.
func mustMatcher(decl any) Matcher {
	m, err := AsMatcher(decl)
	if err != nil {
		panic(err)
	}
	return m
}

// TypeOf returns a matcher accepting values of the given primitive kind.
// KindInt also accepts an integral json.Number and KindFloat a numeric one,
// because JSON-decoded entities carry numbers in that representation. Floats
// never satisfy KindInt, even with no fractional part, and integers never
// satisfy KindFloat.
func TypeOf(k Kind) Matcher { return typeMatcher{kind: k} }

type typeMatcher struct{ kind Kind }

func (m typeMatcher) Matches(v any) bool {
	switch m.kind {
	case KindString:
		_, ok := v.(string)
		return ok
	case KindInt:
		return isInt(v)
	case KindFloat:
		return isFloat(v)
	case KindBool:
		_, ok := v.(bool)
		return ok
	case KindMap:
		_, ok := v.(map[string]any)
		return ok
	case KindList:
		return isSequence(v)
	default:
		return false
	}
}

func (m typeMatcher) Describe() string { return m.kind.String() }

// Array returns a matcher accepting only a sequence whose every element
// matches the inner declaration; an empty sequence matches. Non-sequence
// values never match.
func Array(inner any) Matcher { return arrayMatcher{inner: mustMatcher(inner)} }

type arrayMatcher struct{ inner Matcher }

func (m arrayMatcher) Matches(v any) bool {
	if !isSequence(v) {
		return false
	}
	rv := reflect.ValueOf(v)
	for i := 0; i < rv.Len(); i++ {
		if !m.inner.Matches(rv.Index(i).Interface()) {
			return false
		}
	}
	return true
}

func (m arrayMatcher) Describe() string {
	return "array(" + m.inner.Describe() + ")"
}

// Nullable returns a matcher accepting nil or any value matched by the inner
// declaration.
func Nullable(inner any) Matcher { return nullableMatcher{inner: mustMatcher(inner)} }

type nullableMatcher struct{ inner Matcher }

func (m nullableMatcher) Matches(v any) bool {
	return v == nil || m.inner.Matches(v)
}

func (m nullableMatcher) Describe() string {
	return "nullable(" + m.inner.Describe() + ")"
}

// Options returns a matcher accepting string membership in the allowed set,
// preserving declaration order for introspection. Zero allowed values is
// legal but rejects everything.
func Options(allowed ...string) Matcher {
	return optionsMatcher{allowed: append([]string(nil), allowed...)}
}

type optionsMatcher struct{ allowed []string }

func (m optionsMatcher) Matches(v any) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	for _, a := range m.allowed {
		if s == a {
			return true
		}
	}
	return false
}

func (m optionsMatcher) Describe() string {
	if len(m.allowed) == 0 {
		return "options()"
	}
	return "options('" + strings.Join(m.allowed, "', '") + "')"
}

// options returns the allowed set in declared order.
func (m optionsMatcher) options() []string {
	return append([]string(nil), m.allowed...)
}

// Pattern returns a matcher accepting strings containing a match of the
// regular expression. Non-string values never match, regardless of pattern.
// Pattern panics when expr does not compile (a definition-time defect).
func Pattern(expr string) Matcher {
	return patternMatcher{re: regexp.MustCompile(expr)}
}

type patternMatcher struct{ re *regexp.Regexp }

func (m patternMatcher) Matches(v any) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	return m.re.MatchString(s)
}

func (m patternMatcher) Describe() string {
	return "regexp(" + m.re.String() + ")"
}

// Anything returns a matcher that accepts every value.
func Anything() Matcher { return anythingMatcher{} }

type anythingMatcher struct{}

func (anythingMatcher) Matches(any) bool { return true }
func (anythingMatcher) Describe() string { return "anything" }

// Reserved returns a matcher that accepts nothing. Declaring a field with it
// marks the name as off-limits for direct storage: any stored value fails
// validation.
func Reserved() Matcher { return reservedMatcher{} }

type reservedMatcher struct{}

func (reservedMatcher) Matches(any) bool { return false }
func (reservedMatcher) Describe() string { return "reserved" }

func isSequence(v any) bool {
	if v == nil {
		return false
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Slice, reflect.Array:
		return true
	default:
		return false
	}
}
