package components

import (
	"strings"
	"unicode"

	"github.com/abhisek/kotoba/internal/appstate"
)

// JapaneseText picks the spelling of a word for the display settings:
// kana alone, kanji, or kanji followed by its reading in brackets.
func JapaneseText(jp, kana string, s appstate.Settings) string {
	if jp == "" || !s.ShowKanji {
		return kana
	}
	if s.ShowFurigana && jp != kana && hasKanji(jp) {
		return jp + "（" + kana + "）"
	}
	return jp
}

func hasKanji(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool {
		return unicode.Is(unicode.Han, r)
	}) >= 0
}
