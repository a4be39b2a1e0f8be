package exercise

import "testing"

func validExercise() *Exercise {
	return &Exercise{
		Kind:    KindText,
		Passage: "A short passage.",
		Questions: []Question{
			{
				Prompt:        "What is it?",
				Options:       []string{"Short", "Long"},
				CorrectOption: "Short",
			},
		},
	}
}

func TestStructural_AcceptsValid(t *testing.T) {
	if err := (&StructuralValidator{}).Validate(validExercise()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStructural_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Exercise)
	}{
		{"unknown kind", func(ex *Exercise) { ex.Kind = "video" }},
		{"empty passage", func(ex *Exercise) { ex.Passage = "" }},
		{"no questions", func(ex *Exercise) { ex.Questions = nil }},
		{"empty prompt", func(ex *Exercise) { ex.Questions[0].Prompt = "" }},
		{"one option", func(ex *Exercise) { ex.Questions[0].Options = []string{"Only"} }},
		{"answer outside options", func(ex *Exercise) { ex.Questions[0].CorrectOption = "Missing" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ex := validExercise()
			tt.mutate(ex)
			if err := (&StructuralValidator{}).Validate(ex); err == nil {
				t.Error("expected a validation error, got nil")
			}
		})
	}
}

func TestStructural_AudioNeedsScript(t *testing.T) {
	ex := validExercise()
	ex.Kind = KindAudio
	ex.Passage = ""
	if err := (&StructuralValidator{}).Validate(ex); err == nil {
		t.Error("expected a validation error for missing script")
	}

	ex.Script = "A script to read aloud."
	if err := (&StructuralValidator{}).Validate(ex); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
