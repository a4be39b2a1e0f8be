package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

var testSchema = &Schema{
	Name:        "failover-test-shape",
	Description: "minimal shape for validation tests",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"content": map[string]any{"type": "string"},
		},
		"required":             []any{"content"},
		"additionalProperties": false,
	},
}

func TestValidateResponse_Passes(t *testing.T) {
	err := validateResponse(testSchema, json.RawMessage(`{"content": "hello"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateResponse_RejectsBadJSON(t *testing.T) {
	err := validateResponse(testSchema, json.RawMessage(`{"content": `))
	var invalid *ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("error = %v, want ErrInvalidResponse", err)
	}
}

func TestValidateResponse_RejectsSchemaViolation(t *testing.T) {
	err := validateResponse(testSchema, json.RawMessage(`{"wrong": 1}`))
	var invalid *ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("error = %v, want ErrInvalidResponse", err)
	}
}

func TestValidateResponse_NilSchemaAcceptsAnything(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`not even json`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
