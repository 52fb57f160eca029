package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// TextInput wraps bubbles/textinput with Kotoba styling.
type TextInput struct {
	Model    textinput.Model
	Masked   bool
	MaxWidth int
}

// NewTextInput creates a new focused text input. Masked inputs echo
// bullets, for API keys.
func NewTextInput(placeholder string, masked bool, maxWidth int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	if masked {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	ti.Focus()

	if maxWidth > 0 {
		ti.CharLimit = maxWidth
	}

	return TextInput{
		Model:    ti,
		Masked:   masked,
		MaxWidth: maxWidth,
	}
}

// Init returns the initial command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update handles messages.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the text input.
func (t TextInput) View() string {
	return t.Model.View()
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// SetValue replaces the input value.
func (t *TextInput) SetValue(v string) {
	t.Model.SetValue(v)
}

// Focus focuses the input so it accepts key presses.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur stops the input from accepting key presses.
func (t *TextInput) Blur() {
	t.Model.Blur()
}

// Focused reports whether the input accepts key presses.
func (t TextInput) Focused() bool {
	return t.Model.Focused()
}
