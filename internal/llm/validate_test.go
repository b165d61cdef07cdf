package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func resultsTestSchema() *Schema {
	return &Schema{
		Name: "test-results",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"results": map[string]any{
					"type":     "array",
					"minItems": 1,
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"title":           map[string]any{"type": "string"},
							"score_threshold": map[string]any{"type": "integer", "minimum": 1},
							"tone":            map[string]any{"type": "string", "enum": []any{"warm", "cool"}},
						},
						"required": []any{"title", "score_threshold"},
					},
				},
			},
			"required": []any{"results"},
		},
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"results":[{"title":"Calm","score_threshold":4,"tone":"warm"}]}`, false},
		{"optional omitted", `{"results":[{"title":"Calm","score_threshold":4}]}`, false},
		{"missing required", `{"results":[{"title":"Calm"}]}`, true},
		{"wrong type", `{"results":[{"title":"Calm","score_threshold":"four"}]}`, true},
		{"below minimum", `{"results":[{"title":"Calm","score_threshold":0}]}`, true},
		{"bad enum", `{"results":[{"title":"Calm","score_threshold":4,"tone":"hot"}]}`, true},
		{"empty array", `{"results":[]}`, true},
		{"not json", `Calm, Bold, Wild`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(resultsTestSchema(), json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var invalid *ErrInvalidResponse
				if !errors.As(err, &invalid) {
					t.Fatalf("expected ErrInvalidResponse, got %T", err)
				}
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`anything`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateResponse_CachesCompiledSchema(t *testing.T) {
	s := resultsTestSchema()
	s.Name = "test-results-cache"
	_ = validateResponse(s, json.RawMessage(`{"results":[{"title":"A","score_threshold":1}]}`))
	if _, ok := schemaCache.Load(s.Name); !ok {
		t.Fatal("expected compiled schema to be cached")
	}
}
