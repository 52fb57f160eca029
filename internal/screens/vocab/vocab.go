// Package vocab is the vocabulary browser.
package vocab

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kotoba/internal/appstate"
	"github.com/abhisek/kotoba/internal/bank"
	"github.com/abhisek/kotoba/internal/screen"
	"github.com/abhisek/kotoba/internal/ui/components"
	"github.com/abhisek/kotoba/internal/ui/layout"
	"github.com/abhisek/kotoba/internal/ui/theme"
)

var kindLabels = map[bank.VocabKind]string{
	bank.KindVerb:      "kata kerja",
	bank.KindNoun:      "kata benda",
	bank.KindAdjective: "kata sifat",
}

// VocabScreen lists the vocabulary with theme, search and favorite filters.
type VocabScreen struct {
	store   *appstate.Store
	state   appstate.State
	catalog []bank.Vocab

	themeIdx int // 0 is all themes, then bank.Themes
	favOnly  bool
	search   components.TextInput

	list   []bank.Vocab
	cursor int
	offset int
}

var _ screen.Screen = (*VocabScreen)(nil)
var _ screen.KeyHintProvider = (*VocabScreen)(nil)
var _ screen.Routed = (*VocabScreen)(nil)
var _ screen.EscapeHandler = (*VocabScreen)(nil)

// New creates a VocabScreen showing every word.
func New(store *appstate.Store) *VocabScreen {
	s := &VocabScreen{
		store:   store,
		state:   store.State(),
		catalog: bank.Vocabulary(),
		search:  components.NewTextInput("Cari romaji, arti, kana...", false, 40),
	}
	s.search.Blur()
	s.refilter()
	return s
}

func (s *VocabScreen) Init() tea.Cmd {
	return nil
}

func (s *VocabScreen) Title() string {
	return "Kosakata"
}

func (s *VocabScreen) Route() appstate.View {
	return appstate.ViewVocab
}

// HandlesEscape is true while the search box has focus; Esc leaves it.
func (s *VocabScreen) HandlesEscape() bool {
	return s.search.Focused()
}

func (s *VocabScreen) KeyHints() []layout.KeyHint {
	if s.search.Focused() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Selesai"},
			{Key: "Esc", Description: "Selesai"},
		}
	}
	return []layout.KeyHint{
		{Key: "/", Description: "Cari"},
		{Key: "←→", Description: "Tema"},
		{Key: "F", Description: "Favorit saja"},
		{Key: "Spasi", Description: "★"},
		{Key: "Esc", Description: "Kembali"},
	}
}

// Filter returns the active filter.
func (s *VocabScreen) Filter() bank.VocabFilter {
	f := bank.VocabFilter{
		Query:         s.search.Value(),
		FavoritesOnly: s.favOnly,
	}
	if s.themeIdx > 0 {
		f.Theme = bank.Themes[s.themeIdx-1]
	}
	return f
}

// Visible returns the words passing the filter.
func (s *VocabScreen) Visible() []bank.Vocab {
	return s.list
}

func (s *VocabScreen) refilter() {
	s.list = bank.FilterVocab(s.catalog, s.Filter(), s.state.Favorites)
	if s.cursor >= len(s.list) {
		s.cursor = max(len(s.list)-1, 0)
	}
}

func (s *VocabScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.StateMsg:
		s.state = msg.State
		s.refilter()
		return s, nil

	case tea.KeyMsg:
		if s.search.Focused() {
			switch msg.String() {
			case "esc", "enter":
				s.search.Blur()
				return s, nil
			}
			var cmd tea.Cmd
			s.search, cmd = s.search.Update(msg)
			s.cursor, s.offset = 0, 0
			s.refilter()
			return s, cmd
		}

		switch msg.String() {
		case "/":
			return s, s.search.Focus()
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(s.list)-1 {
				s.cursor++
			}
		case "right", "l", "tab":
			s.themeIdx = (s.themeIdx + 1) % (len(bank.Themes) + 1)
			s.cursor, s.offset = 0, 0
			s.refilter()
		case "left", "h", "shift+tab":
			s.themeIdx = (s.themeIdx + len(bank.Themes)) % (len(bank.Themes) + 1)
			s.cursor, s.offset = 0, 0
			s.refilter()
		case "f":
			s.favOnly = !s.favOnly
			s.cursor, s.offset = 0, 0
			s.refilter()
		case "space", " ", "s":
			s.toggleFavorite()
		}
	}
	return s, nil
}

func (s *VocabScreen) toggleFavorite() {
	if len(s.list) == 0 {
		return
	}
	st, err := s.store.Dispatch(appstate.ToggleFavorite{VocabID: s.list[s.cursor].ID})
	if err != nil {
		return
	}
	s.state = st
	s.refilter()
}

func (s *VocabScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderFilters()))
	b.WriteString("\n\n")

	if len(s.list) == 0 {
		b.WriteString(theme.Centered(width, theme.TextDim).Italic(true).Render("Tidak ada kosakata yang ditemukan."))
		return b.String()
	}

	rows := max(height-6, 3)
	if s.cursor < s.offset {
		s.offset = s.cursor
	}
	if s.cursor >= s.offset+rows {
		s.offset = s.cursor - rows + 1
	}
	end := min(s.offset+rows, len(s.list))

	var lines []string
	for i := s.offset; i < end; i++ {
		lines = append(lines, s.renderRow(i, s.list[i]))
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(lines, "\n")))
	b.WriteString("\n\n")
	b.WriteString(theme.Centered(width, theme.TextDim).
		Render(fmt.Sprintf("%d–%d dari %d kosakata", s.offset+1, end, len(s.list))))
	return b.String()
}

func (s *VocabScreen) renderFilters() string {
	themeLabel := "Semua Tema"
	if s.themeIdx > 0 {
		themeLabel = bank.Themes[s.themeIdx-1]
	}
	fav := "[ ]"
	if s.favOnly {
		fav = "[x]"
	}
	accent := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	return dim.Render("Tema ") + accent.Render("◂ "+themeLabel+" ▸") +
		dim.Render("   Favorit saja ") + accent.Render(fav) +
		dim.Render("   Cari ") + s.search.View()
}

func (s *VocabScreen) renderRow(i int, v bank.Vocab) string {
	star := "  "
	if s.state.IsFavorite(v.ID) {
		star = lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Render("★ ")
	}

	style := lipgloss.NewStyle().Foreground(theme.Text)
	prefix := "  "
	if i == s.cursor {
		style = theme.Selected()
		prefix = "▸ "
	}

	word := components.JapaneseText(v.JP, v.Kana, s.state.Settings)
	line := fmt.Sprintf("%s%s  %s  %s", prefix, padRight(word, 16), padRight(v.Romaji, 14), padRight(v.Meaning, 22))
	kind := lipgloss.NewStyle().Foreground(theme.TextDim).Render(kindLabels[v.Kind])
	return star + style.Render(line) + kind
}

// padRight pads s with spaces to w terminal cells.
func padRight(s string, w int) string {
	if n := lipgloss.Width(s); n < w {
		return s + strings.Repeat(" ", w-n)
	}
	return s
}
