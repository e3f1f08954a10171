package content

import "github.com/abhisek/lectiz/internal/llm"

// ReadingSchema is the JSON schema the LLM must follow for a content set.
var ReadingSchema = &llm.Schema{
	Name:        "reading-content",
	Description: "A reading passage with multiple-choice comprehension questions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"passage": map[string]any{
				"type":        "string",
				"description": "The reading passage shown to the learner",
			},
			"questions": map[string]any{
				"type":        "array",
				"description": "Comprehension questions about the passage, in order",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"prompt": map[string]any{
							"type":        "string",
							"description": "The question text",
						},
						"options": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Exactly 4 answer options",
						},
						"correct_index": map[string]any{
							"type":        "integer",
							"description": "Zero-based index of the correct option (0-3)",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "Why the correct option is right, citing the passage",
						},
					},
					"required":             []any{"prompt", "options", "correct_index", "explanation"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"passage", "questions"},
		"additionalProperties": false,
	},
}
