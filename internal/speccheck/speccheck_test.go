package speccheck

import (
	"context"
	"errors"
	"testing"
)

const minimalSpecYAML = "" +
	"openapi: 3.0.0\n" +
	"info:\n" +
	"  title: Test API\n" +
	"  version: '1.0.0'\n" +
	"paths:\n" +
	"  /hello:\n" +
	"    get:\n" +
	"      summary: Hello\n" +
	"      responses:\n" +
	"        '200':\n" +
	"          description: ok\n"

func TestValidate_MinimalDocument(t *testing.T) {
	doc, err := Validate(context.Background(), []byte(minimalSpecYAML))
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if doc.Info == nil || doc.Info.Title != "Test API" {
		t.Errorf("unexpected parsed info: %+v", doc.Info)
	}
}

func TestValidate_ParseFailure(t *testing.T) {
	_, err := Validate(context.Background(), []byte("paths: [unterminated"))
	if err == nil {
		t.Fatalf("expected parse error")
	}
	var se *SpecError
	if !errors.As(err, &se) {
		t.Fatalf("expected *SpecError, got %T", err)
	}
	if se.Code != ParseError {
		t.Errorf("code = %q, want %q", se.Code, ParseError)
	}
}

func TestValidate_ValidationFindingReturnsDocument(t *testing.T) {
	// A placeholder server URL is not resolvable; validation may flag it,
	// but the parsed document must still come back so callers can warn
	// instead of failing.
	withPlaceholder := minimalSpecYAML + "servers:\n  - url: '{{baseUrl}}'\n"
	doc, err := Validate(context.Background(), []byte(withPlaceholder))
	if err != nil {
		var se *SpecError
		if !errors.As(err, &se) {
			t.Fatalf("expected *SpecError, got %T", err)
		}
		if se.Code != ValidationError {
			t.Fatalf("code = %q, want %q", se.Code, ValidationError)
		}
		if doc == nil {
			t.Errorf("validation findings should still return the parsed document")
		}
	}
}

func TestValidate_MissingInfo(t *testing.T) {
	_, err := Validate(context.Background(), []byte("openapi: 3.0.0\npaths: {}\n"))
	if err == nil {
		t.Fatalf("expected a validation error for a document without info")
	}
	var se *SpecError
	if !errors.As(err, &se) {
		t.Fatalf("expected *SpecError, got %T", err)
	}
}
