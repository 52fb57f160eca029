package questiongen

import "github.com/abhisek/kotoba/internal/llm"

// QuestionSchema defines the JSON schema for generated questions. Every
// property is required so OpenAI strict mode accepts it; unused fields
// come back as empty strings or arrays.
var QuestionSchema = &llm.Schema{
	Name:        "japanese-question",
	Description: "A single beginner (JLPT N5) Japanese practice question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"stem": map[string]any{
				"type":        "string",
				"description": "The main question or the sentence with a blank (___). Empty for kana drills.",
			},
			"passage": map[string]any{
				"type":        "string",
				"description": "Short reading text, used by true/false questions. Empty otherwise.",
			},
			"tokens": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Sentence fragments for ordering questions. Empty otherwise.",
			},
			"choices": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Answer options, at most 5. Empty for ordering questions.",
			},
			"correct_keys": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "The correct choices, or for ordering the tokens in the correct order.",
			},
			"explanation": map[string]any{
				"type":        "string",
				"description": "One-sentence explanation in Bahasa Indonesia.",
			},
			"kana_question": map[string]any{
				"type":        "string",
				"description": "The kana glyph to read, for kana drills. Empty otherwise.",
			},
			"romaji_answer": map[string]any{
				"type":        "string",
				"description": "Romaji reading of kana_question. Empty otherwise.",
			},
		},
		"required":             []any{"stem", "passage", "tokens", "choices", "correct_keys", "explanation", "kana_question", "romaji_answer"},
		"additionalProperties": false,
	},
}
