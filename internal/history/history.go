// Package history holds the answer log and the statistics derived from it.
package history

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"sort"
	"time"

	"github.com/abhisek/kotoba/internal/bank"
)

// TryoutGap is the largest gap between consecutive tryout answers that
// still counts as the same tryout run.
const TryoutGap = 30 * time.Minute

// Entry records one question the learner advanced past.
type Entry struct {
	Timestamp  time.Time         `json:"ts"`
	Type       bank.QuestionType `json:"type"`
	Topics     []string          `json:"tema,omitempty"`
	Correct    bool              `json:"correct"`
	DurationMs int64             `json:"durationMs"`
	QuestionID string            `json:"questionId,omitempty"`
	VocabIDs   []string          `json:"vocabIds,omitempty"`
	Tryout     bool              `json:"tryout,omitempty"`
}

// UnmarshalJSON accepts ts as an RFC3339 string or as epoch milliseconds,
// the form older exports use.
func (e *Entry) UnmarshalJSON(data []byte) error {
	type plain Entry
	var raw struct {
		plain
		Timestamp json.RawMessage `json:"ts"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*e = Entry(raw.plain)

	ts := bytes.TrimSpace(raw.Timestamp)
	switch {
	case len(ts) == 0 || bytes.Equal(ts, []byte("null")):
		e.Timestamp = time.Time{}
	case ts[0] == '"':
		if err := json.Unmarshal(ts, &e.Timestamp); err != nil {
			return fmt.Errorf("entry ts: %w", err)
		}
	default:
		var ms float64
		if err := json.Unmarshal(ts, &ms); err != nil {
			return fmt.Errorf("entry ts: %w", err)
		}
		e.Timestamp = time.UnixMilli(int64(ms)).UTC()
	}
	return nil
}

// Accuracy returns the rounded percentage of correct entries, or 0 when
// entries is empty.
func Accuracy(entries []Entry) int {
	if len(entries) == 0 {
		return 0
	}
	correct := 0
	for _, e := range entries {
		if e.Correct {
			correct++
		}
	}
	return int(math.Round(100 * float64(correct) / float64(len(entries))))
}

// AverageDuration returns the mean answer time in milliseconds, or 0 when
// entries is empty.
func AverageDuration(entries []Entry) int64 {
	if len(entries) == 0 {
		return 0
	}
	var total int64
	for _, e := range entries {
		total += e.DurationMs
	}
	return int64(math.Round(float64(total) / float64(len(entries))))
}

// TypeStat is the accuracy for a single question type.
type TypeStat struct {
	Type     bank.QuestionType `json:"type"`
	Accuracy int               `json:"accuracy"`
	Count    int               `json:"count"`
}

// AccuracyByType computes per-type accuracy in the order of types,
// omitting types that have no entries.
func AccuracyByType(entries []Entry, types []bank.QuestionType) []TypeStat {
	grouped := make(map[bank.QuestionType][]Entry)
	for _, e := range entries {
		grouped[e.Type] = append(grouped[e.Type], e)
	}

	var out []TypeStat
	for _, t := range types {
		g := grouped[t]
		if len(g) == 0 {
			continue
		}
		out = append(out, TypeStat{Type: t, Accuracy: Accuracy(g), Count: len(g)})
	}
	return out
}

// FrequentlyWrongVocab ranks vocabulary ids by how often they appear in
// incorrect entries, most frequent first with ties kept in first-seen
// order, and resolves the top limit ids against catalog. Ids missing from
// the catalog are dropped after the cut.
func FrequentlyWrongVocab(entries []Entry, catalog []bank.Vocab, limit int) []bank.Vocab {
	counts := make(map[string]int)
	var order []string
	for _, e := range entries {
		if e.Correct {
			continue
		}
		for _, id := range e.VocabIDs {
			if counts[id] == 0 {
				order = append(order, id)
			}
			counts[id]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if limit >= 0 && len(order) > limit {
		order = order[:limit]
	}

	idx := bank.VocabIndex(catalog)
	var out []bank.Vocab
	for _, id := range order {
		if v, ok := idx[id]; ok {
			out = append(out, v)
		}
	}
	return out
}

// Recent returns up to n entries, newest first.
func Recent(entries []Entry, n int) []Entry {
	out := slices.Clone(entries)
	slices.Reverse(out)
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// TryoutRun is a contiguous group of tryout answers.
type TryoutRun struct {
	Start    time.Time `json:"start"`
	Total    int       `json:"total"`
	Correct  int       `json:"correct"`
	Accuracy int       `json:"accuracy"`
}

// TryoutRuns groups tryout entries into runs. A new run starts whenever
// the gap to the previous tryout entry is TryoutGap or more.
func TryoutRuns(entries []Entry) []TryoutRun {
	var runs []TryoutRun
	var current []Entry
	flush := func() {
		if len(current) == 0 {
			return
		}
		correct := 0
		for _, e := range current {
			if e.Correct {
				correct++
			}
		}
		runs = append(runs, TryoutRun{
			Start:    current[0].Timestamp,
			Total:    len(current),
			Correct:  correct,
			Accuracy: Accuracy(current),
		})
		current = nil
	}

	for _, e := range entries {
		if !e.Tryout {
			continue
		}
		if len(current) > 0 && e.Timestamp.Sub(current[len(current)-1].Timestamp) >= TryoutGap {
			flush()
		}
		current = append(current, e)
	}
	flush()
	return runs
}

// LastTryout returns the most recent tryout run.
func LastTryout(entries []Entry) (TryoutRun, bool) {
	runs := TryoutRuns(entries)
	if len(runs) == 0 {
		return TryoutRun{}, false
	}
	return runs[len(runs)-1], true
}

// FormatDuration renders milliseconds as "850ms" below one second and as
// seconds with two decimals ("1.25s") otherwise.
func FormatDuration(ms int64) string {
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}
	return fmt.Sprintf("%.2fs", float64(ms)/1000)
}
