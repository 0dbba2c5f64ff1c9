package collections

import "time"

// Kind enumerates the value shapes a field rule can declare. The set covers
// what the blog schema needs today; new kinds extend the switch in the
// validator without touching registered schemas.
type Kind string

const (
	KindString      Kind = "string"
	KindDate        Kind = "date"
	KindStringArray Kind = "string_array"
)

// FieldRule declares the expected shape of a single front-matter field.
// The zero value of Optional means the field is required, so a bare
// FieldRule{Name: "title", Kind: KindString} expresses the common case.
type FieldRule struct {
	Name string
	Kind Kind
	// Optional marks absence as acceptable; absent optional fields are
	// omitted from the validated record.
	Optional bool
	// Coerce allows raw values to be converted into the target kind
	// (e.g. ISO-8601 text into a calendar date) instead of rejected on
	// an exact-type mismatch.
	Coerce bool
	// NonEmpty rejects empty sequences for array kinds.
	NonEmpty bool
}

// Schema describes the metadata contract for one collection. Fields are
// ordered; violations are reported in declaration order.
type Schema struct {
	Name   string
	Fields []FieldRule
	// Strict rejects raw fields not declared in the schema. The default
	// is permissive: a schema is a minimum contract, not an allow-list,
	// so undeclared fields such as per-document layout hints pass
	// through untouched.
	Strict bool
}

// Field returns the rule declared for name.
func (s Schema) Field(name string) (FieldRule, bool) {
	for _, rule := range s.Fields {
		if rule.Name == name {
			return rule, true
		}
	}
	return FieldRule{}, false
}

// RawDocument is one parsed source document prior to validation. Fields
// carry whatever the front-matter parser produced, with no guarantee any
// value matches the collection schema.
type RawDocument struct {
	SourcePath string
	Fields     map[string]RawValue
}

// rawKind defines the closed set of shapes a raw front-matter value can take.
type rawKind int

const (
	rawAbsent rawKind = iota
	rawScalar
	rawSequence
)

// RawValue is a closed tagged variant over the shapes front-matter parsing
// can produce: a single scalar, an ordered sequence of scalars, or nothing.
// Modelling the boundary this way keeps the validator's type matching
// exhaustive instead of leaning on reflection.
type RawValue struct {
	kind   rawKind
	scalar any
	seq    []any
}

// Scalar wraps a single primitive value (string, bool, number, time).
func Scalar(v any) RawValue {
	return RawValue{kind: rawScalar, scalar: v}
}

// Sequence wraps an ordered list of primitive values.
func Sequence(items ...any) RawValue {
	return RawValue{kind: rawSequence, seq: items}
}

// Absent is the RawValue for a field that never appeared in the source.
func Absent() RawValue {
	return RawValue{kind: rawAbsent}
}

// FromAny normalizes an untyped parser value into the variant. Sequences of
// any element type map to Sequence; everything else is treated as a scalar.
func FromAny(v any) RawValue {
	switch value := v.(type) {
	case nil:
		return Absent()
	case RawValue:
		return value
	case []any:
		return Sequence(value...)
	case []string:
		items := make([]any, len(value))
		for i, s := range value {
			items[i] = s
		}
		return Sequence(items...)
	default:
		return Scalar(v)
	}
}

// IsAbsent reports whether the value carries no data.
func (v RawValue) IsAbsent() bool { return v.kind == rawAbsent }

// AsScalar returns the underlying scalar when the value holds one.
func (v RawValue) AsScalar() (any, bool) {
	if v.kind != rawScalar {
		return nil, false
	}
	return v.scalar, true
}

// AsSequence returns the underlying sequence when the value holds one.
func (v RawValue) AsSequence() ([]any, bool) {
	if v.kind != rawSequence {
		return nil, false
	}
	return v.seq, true
}

// Record is the typed outcome of a successful validation pass. Fields holds
// one entry per present schema field: string for KindString, time.Time for
// KindDate, []string for KindStringArray. Optional absent fields are simply
// omitted.
type Record struct {
	Collection string
	SourcePath string
	Fields     map[string]any
}

// String returns the typed value for a string field.
func (r *Record) String(name string) string {
	if r == nil {
		return ""
	}
	value, _ := r.Fields[name].(string)
	return value
}

// Date returns the typed value for a date field.
func (r *Record) Date(name string) time.Time {
	if r == nil {
		return time.Time{}
	}
	value, _ := r.Fields[name].(time.Time)
	return value
}

// Strings returns the typed value for a string-array field.
func (r *Record) Strings(name string) []string {
	if r == nil {
		return nil
	}
	value, _ := r.Fields[name].([]string)
	return value
}
