package home

import (
	"time"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/kotoba/internal/history"
	"github.com/abhisek/kotoba/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota // Default
	MascotCelebrating                      // Gold, flower eyes: good tryout in the last day
	MascotAlert                            // Orange, exclamation: vocabulary to review
)

const mascotIdle = `┌────────┐
│  ◉  ◉  │
│  ╰──╯  │
│ あいう │
└────────┘`

const mascotCelebrating = `┌────────┐
│  ✿  ✿  │
│  ╰──╯  │
│ あいう │
└─╥════╥─┘
  ╚════╝`

const mascotAlert = `┌────────┐
│  ◉  ◉  │ !
│  ────  │
│ あいう │
└────────┘`

const (
	alertWeakVocab     = 3
	celebrateAccuracy  = 80
	celebrateRecentFor = 24 * time.Hour
)

// mascotFor picks the variant for the learner's stats. Weak vocabulary
// takes precedence over a recent tryout.
func mascotFor(stats history.Stats, now time.Time) MascotVariant {
	if len(stats.WeakVocab) >= alertWeakVocab {
		return MascotAlert
	}
	if lt := stats.LastTryout; lt != nil && lt.Accuracy >= celebrateAccuracy && now.Sub(lt.Start) < celebrateRecentFor {
		return MascotCelebrating
	}
	return MascotIdle
}

// RenderMascot returns the mascot ASCII art for the given variant.
func RenderMascot(v MascotVariant) string {
	art := mascotIdle
	fg := theme.Primary

	switch v {
	case MascotCelebrating:
		art = mascotCelebrating
		fg = theme.ArcadeYellow
	case MascotAlert:
		art = mascotAlert
		fg = theme.Accent
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
