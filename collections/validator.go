package collections

import (
	"fmt"
	"sort"
	"time"
)

// dateLayout is the canonical accepted form for coerced date fields. The
// layout is locale independent so documents validate identically on every
// build host.
const dateLayout = "2006-01-02"

// Validate checks one raw document against a schema and returns either a
// fully typed record or a *Failure enumerating every violated field. The
// function is pure: it reads only its arguments, performs no I/O, and is
// safe to call concurrently for independent documents.
//
// Validation is all-or-nothing per document. A record is produced only when
// every required field is present and every present field's (coerced) value
// matches its declared kind; otherwise all violations are collected in
// schema declaration order and returned together.
func Validate(schema Schema, doc RawDocument) (*Record, error) {
	fields := make(map[string]any, len(schema.Fields))
	var violations []Violation

	for _, rule := range schema.Fields {
		raw, ok := doc.Fields[rule.Name]
		if !ok || raw.IsAbsent() {
			if rule.Optional {
				continue
			}
			violations = append(violations, Violation{
				Field:  rule.Name,
				Code:   MissingField,
				Reason: "required field is missing",
			})
			continue
		}

		value, violation := resolveField(rule, raw)
		if violation != nil {
			violations = append(violations, *violation)
			continue
		}
		fields[rule.Name] = value
	}

	if schema.Strict {
		violations = append(violations, strictViolations(schema, doc)...)
	}

	if len(violations) > 0 {
		return nil, &Failure{
			Collection: schema.Name,
			SourcePath: doc.SourcePath,
			Violations: violations,
		}
	}

	return &Record{
		Collection: schema.Name,
		SourcePath: doc.SourcePath,
		Fields:     fields,
	}, nil
}

// resolveField coerces and type-checks a single present value. It returns
// the typed value or the violation describing why the value was rejected.
func resolveField(rule FieldRule, raw RawValue) (any, *Violation) {
	switch rule.Kind {
	case KindString:
		scalar, ok := raw.AsScalar()
		if !ok {
			return nil, &Violation{Field: rule.Name, Code: TypeMismatch, Reason: "expected a single text value"}
		}
		text, ok := scalar.(string)
		if !ok {
			return nil, &Violation{
				Field:  rule.Name,
				Code:   TypeMismatch,
				Reason: fmt.Sprintf("expected text, got %T", scalar),
			}
		}
		return text, nil

	case KindDate:
		return resolveDate(rule, raw)

	case KindStringArray:
		items, ok := raw.AsSequence()
		if !ok {
			return nil, &Violation{Field: rule.Name, Code: TypeMismatch, Reason: "expected a sequence of text values"}
		}
		if rule.NonEmpty && len(items) == 0 {
			return nil, &Violation{Field: rule.Name, Code: TypeMismatch, Reason: "sequence must not be empty"}
		}
		values := make([]string, len(items))
		for i, item := range items {
			text, ok := item.(string)
			if !ok {
				return nil, &Violation{
					Field:  rule.Name,
					Code:   TypeMismatch,
					Reason: fmt.Sprintf("element %d: expected text, got %T", i, item),
				}
			}
			values[i] = text
		}
		return values, nil

	default:
		return nil, &Violation{
			Field:  rule.Name,
			Code:   TypeMismatch,
			Reason: fmt.Sprintf("unsupported field kind %q", rule.Kind),
		}
	}
}

func resolveDate(rule FieldRule, raw RawValue) (any, *Violation) {
	scalar, ok := raw.AsScalar()
	if !ok {
		return nil, &Violation{Field: rule.Name, Code: InvalidDate, Reason: "expected a date value"}
	}

	switch value := scalar.(type) {
	case time.Time:
		return value, nil
	case string:
		if !rule.Coerce {
			return nil, &Violation{Field: rule.Name, Code: TypeMismatch, Reason: "date coercion disabled for this field"}
		}
		parsed, err := time.Parse(dateLayout, value)
		if err != nil {
			return nil, &Violation{
				Field:  rule.Name,
				Code:   InvalidDate,
				Reason: fmt.Sprintf("cannot parse %q as %s date", value, dateLayout),
			}
		}
		return parsed, nil
	default:
		return nil, &Violation{
			Field:  rule.Name,
			Code:   InvalidDate,
			Reason: fmt.Sprintf("expected date text, got %T", scalar),
		}
	}
}

// strictViolations reports undeclared raw fields when the schema opts into
// strict mode. Names are sorted so repeated runs yield identical reports.
func strictViolations(schema Schema, doc RawDocument) []Violation {
	var unknown []string
	for name := range doc.Fields {
		if _, ok := schema.Field(name); !ok {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)

	violations := make([]Violation, 0, len(unknown))
	for _, name := range unknown {
		violations = append(violations, Violation{
			Field:  name,
			Code:   UnknownField,
			Reason: "field is not declared in the collection schema",
		})
	}
	return violations
}
