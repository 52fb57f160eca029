// Package settings is the preferences screen.
package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kotoba/internal/appstate"
	"github.com/abhisek/kotoba/internal/llm"
	"github.com/abhisek/kotoba/internal/questiongen"
	"github.com/abhisek/kotoba/internal/screen"
	"github.com/abhisek/kotoba/internal/ui/components"
	"github.com/abhisek/kotoba/internal/ui/layout"
	"github.com/abhisek/kotoba/internal/ui/theme"
)

const (
	rowKanaOnly = iota
	rowShowKanji
	rowFurigana
	rowTimer
	rowSeconds
	rowSound
	rowContrast
	rowAPIKey
	rowCheckKey
	rowReset
	rowCount
)

const (
	minSeconds  = 5
	maxSeconds  = 600
	secondsStep = 5

	keyCheckTimeout = 20 * time.Second
)

// Toast messages.
const (
	MsgKeyValid      = "API Key valid dan berfungsi!"
	MsgKeyInvalid    = "API Key tidak valid atau gagal terhubung."
	MsgKeyRejected   = "API Key ditolak. Periksa kembali kuncinya."
	MsgKeyMissing    = "Masukkan API Key terlebih dahulu."
	MsgKeySaved      = "API Key disimpan."
	MsgAIUnavailable = "Integrasi AI tidak tersedia."
)

// KeyChecker validates an API key with a minimal request.
type KeyChecker interface {
	CheckKey(ctx context.Context, apiKey string) (bool, error)
}

var _ KeyChecker = (*questiongen.Providers)(nil)

type keyCheckedMsg struct {
	valid bool
	err   error
}

// SettingsScreen edits the persisted preferences.
type SettingsScreen struct {
	store   *appstate.Store
	checker KeyChecker
	state   appstate.State

	row          int
	editingKey   bool
	keyInput     components.TextInput
	checking     bool
	confirmReset bool
}

var _ screen.Screen = (*SettingsScreen)(nil)
var _ screen.KeyHintProvider = (*SettingsScreen)(nil)
var _ screen.Routed = (*SettingsScreen)(nil)
var _ screen.EscapeHandler = (*SettingsScreen)(nil)

// New creates a SettingsScreen. providers may be nil, which disables the
// API key check.
func New(store *appstate.Store, providers *questiongen.Providers) *SettingsScreen {
	var checker KeyChecker
	if providers != nil {
		checker = providers
	}
	return newScreen(store, checker)
}

func newScreen(store *appstate.Store, checker KeyChecker) *SettingsScreen {
	return &SettingsScreen{
		store:    store,
		checker:  checker,
		state:    store.State(),
		keyInput: components.NewTextInput("Masukkan API Key...", true, 200),
	}
}

func (s *SettingsScreen) Init() tea.Cmd {
	return nil
}

func (s *SettingsScreen) Title() string {
	return "Pengaturan"
}

func (s *SettingsScreen) Route() appstate.View {
	return appstate.ViewSettings
}

// HandlesEscape is true while editing the key or confirming a reset.
func (s *SettingsScreen) HandlesEscape() bool {
	return s.editingKey || s.confirmReset
}

func (s *SettingsScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.editingKey:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Simpan"},
			{Key: "Esc", Description: "Batal"},
		}
	case s.confirmReset:
		return []layout.KeyHint{
			{Key: "Y", Description: "Hapus semua"},
			{Key: "N", Description: "Batal"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Pilih"},
		{Key: "Enter", Description: "Ubah"},
		{Key: "←→", Description: "Atur"},
		{Key: "Esc", Description: "Kembali"},
	}
}

func (s *SettingsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.StateMsg:
		s.state = msg.State
		return s, nil

	case keyCheckedMsg:
		s.checking = false
		var rejected *llm.ErrInvalidKey
		switch {
		case msg.valid:
			s.toast(MsgKeyValid, appstate.ToastSuccess)
		case errors.As(msg.err, &rejected):
			s.toast(MsgKeyRejected, appstate.ToastError)
		default:
			s.toast(MsgKeyInvalid, appstate.ToastError)
		}
		return s, nil

	case tea.KeyMsg:
		switch {
		case s.editingKey:
			return s.updateKeyInput(msg)
		case s.confirmReset:
			return s.updateResetConfirm(msg)
		}

		switch msg.String() {
		case "up", "k":
			if s.row > 0 {
				s.row--
			}
		case "down", "j", "tab":
			if s.row < rowCount-1 {
				s.row++
			}
		case "left", "h":
			s.adjustSeconds(-secondsStep)
		case "right", "l":
			s.adjustSeconds(secondsStep)
		case "enter", "space", " ":
			return s, s.activate()
		}
	}
	return s, nil
}

func (s *SettingsScreen) updateKeyInput(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.editingKey = false
		s.keyInput.Blur()
		return s, nil
	case "enter":
		key := strings.TrimSpace(s.keyInput.Value())
		s.editingKey = false
		s.keyInput.Blur()
		s.save(appstate.SettingsPatch{APIKey: &key})
		s.toast(MsgKeySaved, appstate.ToastSuccess)
		return s, nil
	}
	var cmd tea.Cmd
	s.keyInput, cmd = s.keyInput.Update(msg)
	return s, cmd
}

func (s *SettingsScreen) updateResetConfirm(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		s.confirmReset = false
		if st, err := s.store.Dispatch(appstate.ResetProgress{}); err == nil {
			s.state = st
		}
	case "n", "N", "esc":
		s.confirmReset = false
	}
	return s, nil
}

// activate toggles or opens the selected row.
func (s *SettingsScreen) activate() tea.Cmd {
	cur := s.state.Settings
	on := func(b bool) *bool { return &b }

	switch s.row {
	case rowKanaOnly:
		p := appstate.SettingsPatch{KanaOnly: on(!cur.KanaOnly)}
		if !cur.KanaOnly {
			p.ShowKanji = on(false)
		}
		s.save(p)
	case rowShowKanji:
		p := appstate.SettingsPatch{ShowKanji: on(!cur.ShowKanji)}
		if !cur.ShowKanji {
			p.KanaOnly = on(false)
		}
		s.save(p)
	case rowFurigana:
		s.save(appstate.SettingsPatch{ShowFurigana: on(!cur.ShowFurigana)})
	case rowTimer:
		s.save(appstate.SettingsPatch{TimerPerQuestion: on(!cur.TimerPerQuestion)})
	case rowSound:
		s.save(appstate.SettingsPatch{Sound: on(!cur.Sound)})
	case rowContrast:
		s.save(appstate.SettingsPatch{HighContrast: on(!cur.HighContrast)})
	case rowAPIKey:
		s.editingKey = true
		s.keyInput.SetValue(cur.APIKey)
		return s.keyInput.Focus()
	case rowCheckKey:
		return s.checkKey()
	case rowReset:
		s.confirmReset = true
	}
	return nil
}

func (s *SettingsScreen) adjustSeconds(delta int) {
	if s.row != rowSeconds {
		return
	}
	secs := min(max(s.state.Settings.PerQuestionSeconds+delta, minSeconds), maxSeconds)
	s.save(appstate.SettingsPatch{PerQuestionSeconds: &secs})
}

func (s *SettingsScreen) checkKey() tea.Cmd {
	if s.checking {
		return nil
	}
	if s.checker == nil {
		s.toast(MsgAIUnavailable, appstate.ToastError)
		return nil
	}
	key := s.state.Settings.APIKey
	if key == "" {
		s.toast(MsgKeyMissing, appstate.ToastError)
		return nil
	}

	s.checking = true
	checker := s.checker
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), keyCheckTimeout)
		defer cancel()
		valid, err := checker.CheckKey(ctx, key)
		return keyCheckedMsg{valid: valid && err == nil, err: err}
	}
}

func (s *SettingsScreen) save(p appstate.SettingsPatch) {
	if st, err := s.store.Dispatch(appstate.SaveSettings{Patch: p}); err == nil {
		s.state = st
	}
}

func (s *SettingsScreen) toast(msg string, kind appstate.ToastKind) {
	if st, err := s.store.Dispatch(appstate.ShowToast{Message: msg, Kind: kind}); err == nil {
		s.state = st
	}
}

func (s *SettingsScreen) View(width, height int) string {
	if s.confirmReset {
		return renderResetConfirm(width)
	}

	set := s.state.Settings
	rows := []struct {
		label string
		value string
	}{
		{"Mode Kana-Saja", toggle(set.KanaOnly && !set.ShowKanji)},
		{"Tampilkan Kanji", toggle(set.ShowKanji)},
		{"Tampilkan Furigana", toggle(set.ShowFurigana && set.ShowKanji)},
		{"Timer per soal", toggle(set.TimerPerQuestion)},
		{"Detik per soal", fmt.Sprintf("◂ %d ▸", set.PerQuestionSeconds)},
		{"Suara", toggle(set.Sound)},
		{"Kontras tinggi", toggle(set.HighContrast)},
		{"API Key", s.keyValue()},
		{"Tes API Key", s.checkValue()},
		{"Reset progres", "hapus riwayat & favorit"},
	}

	var lines []string
	for i, r := range rows {
		style := theme.Unselected()
		prefix := "  "
		if i == s.row {
			style = theme.Selected()
			prefix = "▸ "
		}
		lines = append(lines, style.Render(fmt.Sprintf("%s%-20s", prefix, r.label))+" "+r.value)
	}

	cw := components.ContentWidth(width)
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Centered(width, theme.Primary).Bold(true).Render("Pengaturan"))
	b.WriteString("\n\n")
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw).
		Padding(1, 2).
		Render(strings.Join(lines, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, card))
	return b.String()
}

func (s *SettingsScreen) keyValue() string {
	if s.editingKey {
		return s.keyInput.View()
	}
	if s.state.Settings.APIKey == "" {
		return lipgloss.NewStyle().Foreground(theme.TextDim).Render("belum diatur")
	}
	return lipgloss.NewStyle().Foreground(theme.Success).Render(appstate.MaskKey(s.state.Settings.APIKey))
}

func (s *SettingsScreen) checkValue() string {
	if s.checking {
		return lipgloss.NewStyle().Foreground(theme.Accent).Render("Menguji...")
	}
	return lipgloss.NewStyle().Foreground(theme.TextDim).Render("Enter untuk menguji")
}

func toggle(on bool) string {
	if on {
		return lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render("[ON ]")
	}
	return lipgloss.NewStyle().Foreground(theme.TextDim).Render("[OFF]")
}

func renderResetConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(theme.Centered(width, theme.Text).Bold(true).Render("Hapus semua riwayat dan favorit?"))
	b.WriteString("\n")
	b.WriteString(theme.Centered(width, theme.TextDim).Render("Tindakan ini tidak bisa dibatalkan."))
	b.WriteString("\n\n")
	b.WriteString(theme.Centered(width, theme.Error).Render("[Y] Ya, hapus"))
	b.WriteString("\n")
	b.WriteString(theme.Centered(width, theme.Primary).Render("[N] Tidak"))
	return b.String()
}
