package exercise

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are an English learning assistant. You create one short English exercise package per request for an adult learner building a daily habit.

Rules:
- Match the requested topic and Lexile level closely. Vocabulary and sentence length must fit the band.
- Reading packages carry a short passage of about 50-80 words.
- Listening packages carry a script of about 25-30 seconds of natural speaking time, written to be read aloud by a text-to-speech voice. No stage directions, no speaker labels.
- Every package carries 1-2 multiple-choice comprehension questions with exactly 4 options each.
- The correct_answer must repeat one of the options verbatim.
- Respond with the JSON object only. No extra prose.`

// buildUserMessage renders the per-request portion of the prompt.
func buildUserMessage(req Request) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Topic: %s\n", req.Topic)
	fmt.Fprintf(&b, "Lexile level: %s\n", req.Level)

	switch req.Kind {
	case KindAudio:
		b.WriteString("Content type: audio\n")
		b.WriteString("\nProduce a listening package: a TTS script (25-30 seconds spoken) plus questions testing listening comprehension.")
	default:
		b.WriteString("Content type: text\n")
		b.WriteString("\nProduce a reading package: a short passage (50-80 words) plus questions testing reading comprehension.")
	}

	return b.String()
}
