package questiongen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You write multiple-choice questions for a history trivia quiz.

Rules:
- Every question must have exactly 4 answer options and exactly one correct option.
- The answer field must repeat the correct option character for character.
- Distractors should be plausible: same era, same region, same kind of thing.
- Stick to well-established facts; avoid disputed dates and trick questions.
- Keep each question under 200 characters and each option under 60.
- Do not repeat or rephrase any question from the "already in the bank" list.`

// buildUserMessage constructs the user message from Input and Config limits.
func buildUserMessage(input Input, cfg Config) string {
	var b strings.Builder

	topic := strings.TrimSpace(input.Topic)
	if topic == "" {
		topic = "general world history"
	}
	fmt.Fprintf(&b, "Topic: %s\n", topic)
	fmt.Fprintf(&b, "Number of questions: %d\n", clampCount(input.Count))

	b.WriteString("\nAlready in the bank:\n")
	b.WriteString(buildDedup(input.Existing, cfg.MaxExisting))

	return b.String()
}
