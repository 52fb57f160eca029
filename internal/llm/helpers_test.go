package llm

// particleSchema is a trimmed question schema: a particle cloze with
// choices and the keys that answer it.
func particleSchema() *Schema {
	return &Schema{
		Name:        "particle-question",
		Description: "A particle cloze question",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"stem":         map[string]any{"type": "string"},
				"choices":      map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				"correct_keys": map[string]any{"type": "array", "items": map[string]any{"type": "string"}, "minItems": 1},
				"explanation":  map[string]any{"type": "string"},
			},
			"required":             []any{"stem", "choices", "correct_keys"},
			"additionalProperties": false,
		},
	}
}

const particleJSON = `{"stem":"わたし ___ がくせいです。","choices":["は","を","に"],"correct_keys":["は"],"explanation":"は menandai topik."}`
