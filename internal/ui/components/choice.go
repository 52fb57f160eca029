package components

import (
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kotoba/internal/ui/theme"
)

// ChoiceList lets the learner pick one or more options. In single mode a
// number key or Enter picks the option under the cursor; in multi mode
// Space toggles and Enter confirms.
type ChoiceList struct {
	Options  []string
	Multi    bool
	Cursor   int
	Picked   map[int]bool
	Locked   bool
	Correct  []string
	Answered []string
}

// ChoiceSubmitMsg is returned when the learner confirms a selection.
type ChoiceSubmitMsg struct {
	Answer []string
}

// ChoiceEmptyMsg is returned when Enter confirms an empty selection.
type ChoiceEmptyMsg struct{}

// NewChoiceList creates a ChoiceList over options.
func NewChoiceList(options []string, multi bool) ChoiceList {
	return ChoiceList{
		Options: options,
		Multi:   multi,
		Picked:  make(map[int]bool),
	}
}

// Lock freezes the list and records the graded answer for rendering.
func (c *ChoiceList) Lock(answered, correct []string) {
	c.Locked = true
	c.Answered = answered
	c.Correct = correct
}

// Selection returns the picked options in display order.
func (c ChoiceList) Selection() []string {
	var out []string
	for i, opt := range c.Options {
		if c.Picked[i] {
			out = append(out, opt)
		}
	}
	return out
}

// Update handles cursor movement and picking.
func (c ChoiceList) Update(msg tea.Msg) (ChoiceList, tea.Cmd) {
	if c.Locked {
		return c, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if c.Cursor > 0 {
			c.Cursor--
		}
		return c, nil
	case "down", "j":
		if c.Cursor < len(c.Options)-1 {
			c.Cursor++
		}
		return c, nil
	case "space", " ":
		if c.Multi {
			c.Picked[c.Cursor] = !c.Picked[c.Cursor]
		}
		return c, nil
	case "enter":
		if !c.Multi {
			return c, c.submit([]string{c.Options[c.Cursor]})
		}
		if sel := c.Selection(); len(sel) > 0 {
			return c, c.submit(sel)
		}
		return c, func() tea.Msg { return ChoiceEmptyMsg{} }
	}

	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		i := int(key[0] - '1')
		if i >= len(c.Options) {
			return c, nil
		}
		c.Cursor = i
		if c.Multi {
			c.Picked[i] = !c.Picked[i]
			return c, nil
		}
		return c, c.submit([]string{c.Options[i]})
	}
	return c, nil
}

func (c ChoiceList) submit(answer []string) tea.Cmd {
	return func() tea.Msg { return ChoiceSubmitMsg{Answer: answer} }
}

// View renders the options. After Lock, correct options are green and a
// wrongly picked option is red.
func (c ChoiceList) View() string {
	var b strings.Builder
	for i, opt := range c.Options {
		mark := ""
		if c.Multi {
			mark = "[ ] "
			if c.Picked[i] {
				mark = "[x] "
			}
		}
		prefix := "  "
		if i == c.Cursor && !c.Locked {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d) %s%s", prefix, i+1, mark, opt)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case c.Locked && slices.Contains(c.Correct, opt):
			style = lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
		case c.Locked && slices.Contains(c.Answered, opt):
			style = lipgloss.NewStyle().Foreground(theme.Error).Bold(true)
		case c.Locked:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == c.Cursor:
			style = theme.Selected()
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
