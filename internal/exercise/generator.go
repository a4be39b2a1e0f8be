package exercise

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/yichen/tinyhabits/internal/llm"
)

// Generator produces exercises for user requests.
type Generator interface {
	// Generate returns a validated exercise for the request. With no
	// generation capability configured it returns the deterministic
	// placeholder for the requested kind; it never fails for that reason.
	Generate(ctx context.Context, req Request) (*Exercise, error)
}

// LLMGenerator implements Generator on top of the llm provider stack.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates an LLMGenerator. A nil provider puts the generator in
// placeholder mode (empty credential pool, offline/demo operation).
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// exerciseOutput is the raw wire shape shared by both exercise kinds.
type exerciseOutput struct {
	Type      string           `json:"type"`
	Content   string           `json:"content"`
	Script    string           `json:"script"`
	Questions []questionOutput `json:"questions"`
}

type questionOutput struct {
	QuestionText  string   `json:"question_text"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
}

func (g *LLMGenerator) Generate(ctx context.Context, req Request) (*Exercise, error) {
	if g.provider == nil {
		return Placeholder(req), nil
	}

	ctx = llm.WithPurpose(ctx, "exercise-gen")

	llmReq := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(req)},
		},
		Schema:      schemaFor(req.Kind),
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, llmReq)
	if err != nil {
		return nil, fmt.Errorf("exercise generation failed: %w", err)
	}

	var raw exerciseOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, &llm.ErrInvalidResponse{
			Content: resp.Content,
			Err:     fmt.Errorf("parse exercise payload: %w", err),
		}
	}

	ex := &Exercise{
		Kind:      req.Kind,
		Passage:   raw.Content,
		Script:    raw.Script,
		Questions: make([]Question, len(raw.Questions)),
	}
	for i, q := range raw.Questions {
		ex.Questions[i] = Question{
			Prompt:        q.QuestionText,
			Options:       q.Options,
			CorrectOption: q.CorrectAnswer,
		}
	}

	for _, v := range g.config.Validators {
		if verr := v.Validate(ex); verr != nil {
			return nil, verr
		}
	}

	return ex, nil
}
