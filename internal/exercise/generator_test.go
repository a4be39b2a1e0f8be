package exercise

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/yichen/tinyhabits/internal/llm"
)

func textRequest() Request {
	return Request{Topic: "Tech News", Level: Level8001000, Kind: KindText}
}

func validTextJSON() json.RawMessage {
	return json.RawMessage(`{
		"type": "text_with_questions",
		"content": "Engineers released a small update to a popular browser this week. The change makes pages load faster on slow connections and uses less battery on laptops. Many users noticed the difference within a day.",
		"questions": [
			{
				"question_text": "What did the update improve?",
				"options": ["Page load speed", "Screen brightness", "Keyboard layout", "Printer support"],
				"correct_answer": "Page load speed"
			}
		]
	}`)
}

func validAudioJSON() json.RawMessage {
	return json.RawMessage(`{
		"type": "audio_with_questions",
		"script": "Yesterday the city opened a new park near the river. Families came early to try the playground, and a small market sold fruit and bread. The mayor said more green spaces will open next year.",
		"questions": [
			{
				"question_text": "What opened near the river?",
				"options": ["A new park", "A train station", "A museum", "A library"],
				"correct_answer": "A new park"
			}
		]
	}`)
}

func TestGenerate_TextExercise(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validTextJSON()})
	gen := New(mock, DefaultConfig())

	ex, err := gen.Generate(context.Background(), textRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ex.Kind != KindText {
		t.Errorf("kind = %q, want %q", ex.Kind, KindText)
	}
	if ex.Passage == "" {
		t.Error("passage is empty")
	}
	if len(ex.Questions) != 1 {
		t.Fatalf("question count = %d, want 1", len(ex.Questions))
	}
	if ex.Questions[0].CorrectOption != "Page load speed" {
		t.Errorf("correct option = %q", ex.Questions[0].CorrectOption)
	}
}

func TestGenerate_AudioExercise(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validAudioJSON()})
	gen := New(mock, DefaultConfig())

	ex, err := gen.Generate(context.Background(), Request{Topic: "History Facts", Level: Level500800, Kind: KindAudio})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ex.Kind != KindAudio {
		t.Errorf("kind = %q, want %q", ex.Kind, KindAudio)
	}
	if ex.Script == "" {
		t.Error("script is empty")
	}
}

func TestGenerate_NilProviderReturnsPlaceholder(t *testing.T) {
	gen := New(nil, DefaultConfig())

	for _, kind := range []Kind{KindText, KindAudio} {
		ex, err := gen.Generate(context.Background(), Request{Topic: "Sports News", Level: DefaultLevel, Kind: kind})
		if err != nil {
			t.Fatalf("kind %s: unexpected error: %v", kind, err)
		}
		if ex.Kind != kind {
			t.Errorf("kind = %q, want %q", ex.Kind, kind)
		}
		if verr := (&StructuralValidator{}).Validate(ex); verr != nil {
			t.Errorf("placeholder fails its own validation: %v", verr)
		}
	}
}

func TestGenerate_ProviderErrorPropagates(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrQuotaExhausted{Attempts: 3, LastErr: errors.New("429")},
	})
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), textRequest())
	var exhausted *llm.ErrQuotaExhausted
	if !errors.As(err, &exhausted) {
		t.Fatalf("error = %v, want ErrQuotaExhausted", err)
	}
}

func TestGenerate_UnparsableBodyIsInvalidResponse(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"type": `)})
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), textRequest())
	var invalid *llm.ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("error = %v, want ErrInvalidResponse", err)
	}
}

func TestGenerate_RejectsCorrectAnswerOutsideOptions(t *testing.T) {
	bad := json.RawMessage(`{
		"type": "text_with_questions",
		"content": "A short passage about nothing in particular, long enough to pass.",
		"questions": [
			{
				"question_text": "Pick one.",
				"options": ["A", "B", "C", "D"],
				"correct_answer": "E"
			}
		]
	}`)
	mock := llm.NewMockProvider(llm.MockResponse{Content: bad})
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), textRequest())
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %v, want ValidationError", err)
	}
}
