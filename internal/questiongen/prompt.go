package questiongen

import (
	"fmt"
	"strings"

	"github.com/abhisek/kotoba/internal/bank"
)

const systemPrompt = `You write beginner Japanese practice questions (CEFR A1 / JLPT N5) for Indonesian high-school students preparing for the TKA exam.

Rules:
- Use hiragana and katakana. Avoid kanji beyond N5.
- Explanations are a single short sentence in Bahasa Indonesia.
- Always answer with JSON that matches the schema. Leave fields that do not apply to the question type empty.
- cloze: a sentence with ___ in the stem, 3 or 4 word choices, exactly one correct key.
- particle: a sentence with ___ where a particle belongs, 3 or 4 particle choices.
- ordering: split one sentence into 3 to 6 tokens given in scrambled order, no choices, correct_keys lists the same tokens in the correct order.
- tf: a statement in the stem (optionally a short passage), choices exactly ["Benar", "Salah"], one correct key.
- mc: a question in Bahasa Indonesia or Japanese with 3 or 4 choices. Multiple correct keys are allowed only if the stem says to pick all that apply.
- kana: put one kana in kana_question, its romaji in romaji_answer, and 4 romaji choices.
- Do not repeat any question from the "already asked" list.`

// buildUserMessage constructs the user message from GenerateInput and Config limits.
func buildUserMessage(input GenerateInput, cfg Config) string {
	topic := input.Topic
	if topic == "" {
		topic = "Umum"
	}

	var b strings.Builder

	fmt.Fprintf(&b, "Question type: %s (%s)\n", input.Type, input.Type.Label())
	fmt.Fprintf(&b, "Topic: %s\n", topic)
	if input.Type == bank.TypeTrueFalse {
		fmt.Fprintf(&b, "Choices must be exactly: %s\n", strings.Join(bank.TrueFalseChoices, ", "))
	}

	b.WriteString("\nAlready asked:\n")
	b.WriteString(buildDedup(input.PriorStems, cfg.MaxPriorStems))

	return b.String()
}
