package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kotoba/internal/ui/theme"
)

// TokenOrder builds a sentence from shuffled fragments. Number keys or
// Enter append the fragment under the cursor; Backspace takes the last one
// back. Once every fragment is placed, Enter submits the joined sentence.
type TokenOrder struct {
	Tokens []string
	Cursor int
	placed []int
	Locked bool
}

// NewTokenOrder creates a TokenOrder over tokens.
func NewTokenOrder(tokens []string) TokenOrder {
	return TokenOrder{Tokens: tokens}
}

// Sentence joins the placed fragments.
func (t TokenOrder) Sentence() string {
	var b strings.Builder
	for _, i := range t.placed {
		b.WriteString(t.Tokens[i])
	}
	return b.String()
}

func (t TokenOrder) used(i int) bool {
	for _, p := range t.placed {
		if p == i {
			return true
		}
	}
	return false
}

func (t TokenOrder) complete() bool {
	return len(t.placed) == len(t.Tokens)
}

// Update handles placing and removing fragments.
func (t TokenOrder) Update(msg tea.Msg) (TokenOrder, tea.Cmd) {
	if t.Locked {
		return t, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return t, nil
	}

	key := kmsg.String()
	switch key {
	case "left", "h":
		if t.Cursor > 0 {
			t.Cursor--
		}
	case "right", "l":
		if t.Cursor < len(t.Tokens)-1 {
			t.Cursor++
		}
	case "backspace":
		if n := len(t.placed); n > 0 {
			t.placed = t.placed[:n-1]
		}
	case "enter":
		if t.complete() {
			sentence := t.Sentence()
			return t, func() tea.Msg { return ChoiceSubmitMsg{Answer: []string{sentence}} }
		}
		t.place(t.Cursor)
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			t.place(int(key[0] - '1'))
		}
	}
	return t, nil
}

func (t *TokenOrder) place(i int) {
	if i < 0 || i >= len(t.Tokens) || t.used(i) {
		return
	}
	t.placed = append(t.placed, i)
}

// View renders the sentence built so far above the remaining fragments.
func (t TokenOrder) View() string {
	var b strings.Builder

	sentence := t.Sentence()
	if sentence == "" {
		sentence = "…"
	}
	b.WriteString(lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).Render(sentence))
	b.WriteString("\n\n")

	parts := make([]string, 0, len(t.Tokens))
	for i, tok := range t.Tokens {
		label := fmt.Sprintf("%d) %s", i+1, tok)
		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case t.used(i):
			style = lipgloss.NewStyle().Foreground(theme.TextDim).Strikethrough(true)
		case i == t.Cursor && !t.Locked:
			style = theme.Selected()
		}
		parts = append(parts, style.Render(label))
	}
	b.WriteString(strings.Join(parts, "   "))
	return b.String()
}
