package bank

import "strings"

// VocabKind is the part of speech of a vocabulary item.
type VocabKind string

const (
	KindVerb      VocabKind = "verb"
	KindNoun      VocabKind = "noun"
	KindAdjective VocabKind = "adjective"
)

// Themes lists the vocabulary topics in display order.
var Themes = []string{
	"Sekolah",
	"Keluarga",
	"Makanan/Minuman",
	"Waktu/Hari",
	"Tempat",
	"Hobi/Olahraga",
	"Umum",
}

// Vocab is a single vocabulary entry. Meaning is in Bahasa Indonesia.
type Vocab struct {
	ID      string    `json:"id"`
	JP      string    `json:"jp"`
	Kana    string    `json:"kana"`
	Romaji  string    `json:"romaji"`
	Meaning string    `json:"meaning"`
	Kind    VocabKind `json:"kind"`
	Themes  []string  `json:"tema"`
}

// HasTheme reports whether v is tagged with theme.
func (v Vocab) HasTheme(theme string) bool {
	for _, t := range v.Themes {
		if t == theme {
			return true
		}
	}
	return false
}

// ParticleExample is one sample sentence for a particle.
type ParticleExample struct {
	JP      string `json:"jp"`
	Kana    string `json:"kana"`
	Romaji  string `json:"romaji"`
	Meaning string `json:"meaning"`
}

// Particle is a reference entry for a grammatical particle.
type Particle struct {
	Kana      string            `json:"kana"`
	Romaji    string            `json:"romaji"`
	Functions []string          `json:"functions"`
	Examples  []ParticleExample `json:"examples"`
}

// VocabFilter narrows the vocabulary list shown to the learner.
type VocabFilter struct {
	// Theme restricts to one topic; empty means all.
	Theme string
	// Query matches romaji and meaning case-insensitively, and kana or
	// kanji spelling by substring.
	Query         string
	FavoritesOnly bool
}

// FilterVocab applies f to list, using favorites for FavoritesOnly.
func FilterVocab(list []Vocab, f VocabFilter, favorites []string) []Vocab {
	fav := make(map[string]bool, len(favorites))
	for _, id := range favorites {
		fav[id] = true
	}
	q := strings.TrimSpace(f.Query)
	lq := strings.ToLower(q)

	var out []Vocab
	for _, v := range list {
		if f.Theme != "" && !v.HasTheme(f.Theme) {
			continue
		}
		if f.FavoritesOnly && !fav[v.ID] {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(v.Romaji), lq) &&
			!strings.Contains(strings.ToLower(v.Meaning), lq) &&
			!strings.Contains(v.Kana, q) &&
			!strings.Contains(v.JP, q) {
			continue
		}
		out = append(out, v)
	}
	return out
}

// VocabIndex maps vocabulary ids to entries.
func VocabIndex(list []Vocab) map[string]Vocab {
	idx := make(map[string]Vocab, len(list))
	for _, v := range list {
		idx[v.ID] = v
	}
	return idx
}
