// Package grading decides whether a submitted answer is correct.
package grading

import (
	"strings"

	"github.com/abhisek/kotoba/internal/bank"
)

// IsCorrect reports whether submitted correctly answers q. Comparison is
// case-insensitive for every type. Ordering questions compare the joined
// sequence; all other types require the same number of picks with every
// correct key present. A nil or empty submission is never correct, and
// neither is any answer to a question with no correct keys.
func IsCorrect(q bank.Question, submitted []string) bool {
	if len(submitted) == 0 || len(q.CorrectKeys) == 0 {
		return false
	}

	want := normalize(q.CorrectKeys)
	got := normalize(submitted)

	if q.Type == bank.TypeOrdering {
		return strings.Join(got, "") == strings.Join(want, "")
	}

	if len(got) != len(want) {
		return false
	}
	picked := make(map[string]bool, len(got))
	for _, s := range got {
		picked[s] = true
	}
	for _, k := range want {
		if !picked[k] {
			return false
		}
	}
	return true
}

// Answered reports whether a submission slot holds an answer.
func Answered(submitted []string) bool {
	return len(submitted) > 0
}

func normalize(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}
