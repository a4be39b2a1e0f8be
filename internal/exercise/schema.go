package exercise

import "github.com/yichen/tinyhabits/internal/llm"

// questionsSchema is the shared question-array definition for both shapes.
func questionsSchema() map[string]any {
	return map[string]any{
		"type": "array",
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"question_text": map[string]any{
					"type":        "string",
					"description": "The comprehension question shown to the learner",
				},
				"options": map[string]any{
					"type":        "array",
					"items":       map[string]any{"type": "string"},
					"description": "Exactly 4 answer choices",
				},
				"correct_answer": map[string]any{
					"type":        "string",
					"description": "The correct choice, repeated verbatim from options",
				},
			},
			"required":             []any{"question_text", "options", "correct_answer"},
			"additionalProperties": false,
		},
		"description": "1-2 multiple-choice comprehension questions",
	}
}

// TextExerciseSchema is the structured-output contract for reading packages.
var TextExerciseSchema = &llm.Schema{
	Name:        "text-exercise",
	Description: "A short reading passage with comprehension questions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"type": map[string]any{
				"type": "string",
				"enum": []any{"text_with_questions"},
			},
			"content": map[string]any{
				"type":        "string",
				"description": "A short passage (50-80 words) matching the topic and Lexile level",
			},
			"questions": questionsSchema(),
		},
		"required":             []any{"type", "content", "questions"},
		"additionalProperties": false,
	},
}

// AudioExerciseSchema is the structured-output contract for listening packages.
var AudioExerciseSchema = &llm.Schema{
	Name:        "audio-exercise",
	Description: "A text-to-speech script with listening comprehension questions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"type": map[string]any{
				"type": "string",
				"enum": []any{"audio_with_questions"},
			},
			"script": map[string]any{
				"type":        "string",
				"description": "A TTS script (25-30 seconds spoken) matching the topic and Lexile level",
			},
			"questions": questionsSchema(),
		},
		"required":             []any{"type", "script", "questions"},
		"additionalProperties": false,
	},
}

// schemaFor selects the contract matching the requested kind.
func schemaFor(kind Kind) *llm.Schema {
	if kind == KindAudio {
		return AudioExerciseSchema
	}
	return TextExerciseSchema
}
