package history

import "github.com/abhisek/kotoba/internal/bank"

const (
	recentLimit    = 50
	weakVocabLimit = 5
)

// Stats is the full set of figures shown on the history view.
type Stats struct {
	Total      int          `json:"total"`
	Accuracy   int          `json:"accuracy"`
	AverageMs  int64        `json:"averageMs"`
	ByType     []TypeStat   `json:"byType"`
	Recent     []Entry      `json:"recent"`
	WeakVocab  []bank.Vocab `json:"weakVocab"`
	LastTryout *TryoutRun   `json:"lastTryout,omitempty"`
}

// Summarize computes Stats over the whole log.
func Summarize(entries []Entry, catalog []bank.Vocab) Stats {
	s := Stats{
		Total:     len(entries),
		Accuracy:  Accuracy(entries),
		AverageMs: AverageDuration(entries),
		ByType:    AccuracyByType(entries, bank.AllTypes),
		Recent:    Recent(entries, recentLimit),
		WeakVocab: FrequentlyWrongVocab(entries, catalog, weakVocabLimit),
	}
	if run, ok := LastTryout(entries); ok {
		s.LastTryout = &run
	}
	return s
}
