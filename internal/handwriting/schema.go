package handwriting

import "github.com/abhisek/lingodrill/internal/llm"

// EvaluationSchema defines the JSON schema for handwriting verdicts.
var EvaluationSchema = &llm.Schema{
	Name:        "handwriting-evaluation",
	Description: "Verdict on a learner's handwritten answer",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"is_correct": map[string]any{
				"type":        "boolean",
				"description": "Whether the writing is readable and structurally correct",
			},
			"score": map[string]any{
				"type":        "number",
				"minimum":     0.0,
				"maximum":     100.0,
				"description": "Quality score from 0 to 100",
			},
			"feedback": map[string]any{
				"type":        "string",
				"description": "Brief actionable feedback for the learner",
			},
		},
		"required":             []any{"is_correct", "score", "feedback"},
		"additionalProperties": false,
	},
}
