package exercise

import (
	"fmt"
	"slices"
)

// StructuralValidator checks that an exercise has its kind-appropriate
// body and well-formed questions. In particular it enforces the core
// question invariant: the correct option is always one of the options.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(ex *Exercise) *ValidationError {
	if !ex.Kind.Valid() {
		return v.fail("kind must be %q or %q", KindText, KindAudio)
	}
	if ex.Kind == KindText && ex.Passage == "" {
		return v.fail("text exercise has an empty passage")
	}
	if ex.Kind == KindAudio && ex.Script == "" {
		return v.fail("audio exercise has an empty script")
	}
	if len(ex.Questions) == 0 {
		return v.fail("exercise has no questions")
	}

	for i, q := range ex.Questions {
		if q.Prompt == "" {
			return v.fail("question %d has an empty prompt", i)
		}
		if len(q.Options) < 2 {
			return v.fail("question %d has %d options, need at least 2", i, len(q.Options))
		}
		if !slices.Contains(q.Options, q.CorrectOption) {
			return v.fail("question %d: correct answer %q is not among the options", i, q.CorrectOption)
		}
	}

	return nil
}

func (v *StructuralValidator) fail(format string, args ...any) *ValidationError {
	return &ValidationError{
		Validator: v.Name(),
		Message:   fmt.Sprintf(format, args...),
	}
}
