package collections

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func blogSchema() Schema {
	return Schema{
		Name: "blog",
		Fields: []FieldRule{
			{Name: "title", Kind: KindString},
			{Name: "description", Kind: KindString},
			{Name: "date", Kind: KindDate, Coerce: true},
			{Name: "tags", Kind: KindStringArray},
		},
	}
}

func validDoc() RawDocument {
	return RawDocument{
		SourcePath: "content/blog/modbus-register-maps.md",
		Fields: map[string]RawValue{
			"title":       Scalar("Reading Modbus Register Maps"),
			"description": Scalar("Decoding holding registers without the vendor manual"),
			"date":        Scalar("2025-12-20"),
			"tags":        Sequence("Modbus", "PLC"),
		},
	}
}

func TestValidate_WellTypedDocument(t *testing.T) {
	record, err := Validate(blogSchema(), validDoc())
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if record.Collection != "blog" {
		t.Fatalf("expected collection carried through, got %q", record.Collection)
	}
	if record.SourcePath != "content/blog/modbus-register-maps.md" {
		t.Fatalf("expected source path carried through, got %q", record.SourcePath)
	}
	if got := record.String("title"); got != "Reading Modbus Register Maps" {
		t.Fatalf("title mismatch: %q", got)
	}
	date := record.Date("date")
	if date.Year() != 2025 || date.Month() != time.December || date.Day() != 20 {
		t.Fatalf("date not coerced to calendar date: %v", date)
	}
	if got := record.Strings("tags"); !reflect.DeepEqual(got, []string{"Modbus", "PLC"}) {
		t.Fatalf("tags mismatch: %#v", got)
	}
}

func TestValidate_MissingRequiredField(t *testing.T) {
	doc := validDoc()
	delete(doc.Fields, "title")

	_, err := Validate(blogSchema(), doc)
	failure := requireFailure(t, err)

	if len(failure.Violations) != 1 {
		t.Fatalf("expected a single violation, got %#v", failure.Violations)
	}
	violation := failure.Violations[0]
	if violation.Field != "title" || violation.Code != MissingField {
		t.Fatalf("expected missing_field on title, got %#v", violation)
	}
}

func TestValidate_OptionalFieldOmitted(t *testing.T) {
	schema := blogSchema()
	schema.Fields = append(schema.Fields, FieldRule{Name: "updated", Kind: KindDate, Optional: true, Coerce: true})

	record, err := Validate(schema, validDoc())
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if _, ok := record.Fields["updated"]; ok {
		t.Fatalf("absent optional field should be omitted from the record: %#v", record.Fields)
	}
}

func TestValidate_DateCoercion(t *testing.T) {
	cases := []struct {
		name string
		raw  RawValue
		code ViolationCode
	}{
		{name: "malformed calendar date", raw: Scalar("2025-13-40"), code: InvalidDate},
		{name: "not a date at all", raw: Scalar("not-a-date"), code: InvalidDate},
		{name: "empty string", raw: Scalar(""), code: InvalidDate},
		{name: "numeric scalar", raw: Scalar(20251220), code: InvalidDate},
		{name: "sequence value", raw: Sequence("2025-12-20"), code: InvalidDate},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := validDoc()
			doc.Fields["date"] = tc.raw

			_, err := Validate(blogSchema(), doc)
			failure := requireFailure(t, err)
			if len(failure.Violations) != 1 {
				t.Fatalf("expected a single violation, got %#v", failure.Violations)
			}
			if got := failure.Violations[0].Code; got != tc.code {
				t.Fatalf("expected %s, got %s", tc.code, got)
			}
		})
	}
}

func TestValidate_DateAlreadyParsed(t *testing.T) {
	doc := validDoc()
	want := time.Date(2025, time.December, 20, 0, 0, 0, 0, time.UTC)
	doc.Fields["date"] = Scalar(want)

	record, err := Validate(blogSchema(), doc)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !record.Date("date").Equal(want) {
		t.Fatalf("expected parsed date passed through, got %v", record.Date("date"))
	}
}

func TestValidate_ArrayTyping(t *testing.T) {
	t.Run("bare scalar rejected", func(t *testing.T) {
		doc := validDoc()
		doc.Fields["tags"] = Scalar("Modbus")

		_, err := Validate(blogSchema(), doc)
		failure := requireFailure(t, err)
		if got := failure.Violations[0].Code; got != TypeMismatch {
			t.Fatalf("expected type_mismatch, got %s", got)
		}
	})

	t.Run("non string element rejected", func(t *testing.T) {
		doc := validDoc()
		doc.Fields["tags"] = Sequence("Modbus", 5)

		_, err := Validate(blogSchema(), doc)
		failure := requireFailure(t, err)
		if got := failure.Violations[0].Code; got != TypeMismatch {
			t.Fatalf("expected type_mismatch, got %s", got)
		}
	})

	t.Run("empty sequence valid by default", func(t *testing.T) {
		doc := validDoc()
		doc.Fields["tags"] = Sequence()

		record, err := Validate(blogSchema(), doc)
		if err != nil {
			t.Fatalf("Validate: %v", err)
		}
		if got := record.Strings("tags"); len(got) != 0 {
			t.Fatalf("expected empty tags, got %#v", got)
		}
	})

	t.Run("empty sequence rejected when rule demands elements", func(t *testing.T) {
		schema := blogSchema()
		for i := range schema.Fields {
			if schema.Fields[i].Name == "tags" {
				schema.Fields[i].NonEmpty = true
			}
		}
		doc := validDoc()
		doc.Fields["tags"] = Sequence()

		_, err := Validate(schema, doc)
		failure := requireFailure(t, err)
		if got := failure.Violations[0].Code; got != TypeMismatch {
			t.Fatalf("expected type_mismatch, got %s", got)
		}
	})
}

func TestValidate_StringRejectsNonTextScalars(t *testing.T) {
	doc := validDoc()
	doc.Fields["description"] = Scalar(42)

	_, err := Validate(blogSchema(), doc)
	failure := requireFailure(t, err)
	violation := failure.Violations[0]
	if violation.Field != "description" || violation.Code != TypeMismatch {
		t.Fatalf("expected type_mismatch on description, got %#v", violation)
	}
}

func TestValidate_CollectsEveryViolation(t *testing.T) {
	doc := validDoc()
	delete(doc.Fields, "title")
	doc.Fields["tags"] = Scalar("Modbus")

	_, err := Validate(blogSchema(), doc)
	failure := requireFailure(t, err)

	if len(failure.Violations) != 2 {
		t.Fatalf("expected exactly two violations, got %#v", failure.Violations)
	}
	// Declaration order: title before tags.
	if failure.Violations[0].Field != "title" || failure.Violations[0].Code != MissingField {
		t.Fatalf("first violation mismatch: %#v", failure.Violations[0])
	}
	if failure.Violations[1].Field != "tags" || failure.Violations[1].Code != TypeMismatch {
		t.Fatalf("second violation mismatch: %#v", failure.Violations[1])
	}
}

func TestValidate_UnknownFieldsIgnored(t *testing.T) {
	doc := validDoc()
	doc.Fields["layout"] = Scalar("wide")

	record, err := Validate(blogSchema(), doc)
	if err != nil {
		t.Fatalf("undeclared fields must not fail a permissive schema: %v", err)
	}
	if _, ok := record.Fields["layout"]; ok {
		t.Fatalf("undeclared field must not leak into the record: %#v", record.Fields)
	}
}

func TestValidate_StrictSchemaRejectsUnknownFields(t *testing.T) {
	schema := blogSchema()
	schema.Strict = true
	doc := validDoc()
	doc.Fields["layout"] = Scalar("wide")

	_, err := Validate(schema, doc)
	failure := requireFailure(t, err)
	violation := failure.Violations[0]
	if violation.Field != "layout" || violation.Code != UnknownField {
		t.Fatalf("expected unknown_field on layout, got %#v", violation)
	}
}

func TestValidate_Idempotent(t *testing.T) {
	schema := blogSchema()
	doc := validDoc()

	first, err := Validate(schema, doc)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	second, err := Validate(schema, doc)
	if err != nil {
		t.Fatalf("Validate (second pass): %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated validation produced different records:\n%#v\n%#v", first, second)
	}

	bad := validDoc()
	delete(bad.Fields, "title")
	_, firstErr := Validate(schema, bad)
	_, secondErr := Validate(schema, bad)
	if !reflect.DeepEqual(firstErr, secondErr) {
		t.Fatalf("repeated validation produced different failures")
	}
}

func requireFailure(t *testing.T, err error) *Failure {
	t.Helper()
	if err == nil {
		t.Fatalf("expected a validation failure")
	}
	var failure *Failure
	if !errors.As(err, &failure) {
		t.Fatalf("expected *Failure, got %T: %v", err, err)
	}
	if !errors.Is(err, ErrDocumentInvalid) {
		t.Fatalf("failure should unwrap to ErrDocumentInvalid")
	}
	return failure
}
