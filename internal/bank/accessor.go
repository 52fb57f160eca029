package bank

import (
	"sync"
)

// Accessor draws practice questions out of a static catalog.
type Accessor struct {
	mu        sync.Mutex
	rng       Rand
	questions []Question
	byID      map[string]int
}

// NewAccessor creates an Accessor over questions using rng for every shuffle.
func NewAccessor(questions []Question, rng Rand) *Accessor {
	byID := make(map[string]int, len(questions))
	for i, q := range questions {
		byID[q.ID] = i
	}
	return &Accessor{rng: rng, questions: questions, byID: byID}
}

// Default returns an Accessor over the built-in catalog.
func Default(rng Rand) *Accessor {
	return NewAccessor(Questions(), rng)
}

// GetQuestions returns up to count questions of the given type (any type
// when typeFilter is empty), skipping excludeIDs. The selection order is a
// uniform random permutation and each question's choices and tokens are
// shuffled independently.
func (a *Accessor) GetQuestions(count int, typeFilter QuestionType, excludeIDs []string) []Question {
	if count <= 0 {
		return nil
	}

	excluded := make(map[string]bool, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = true
	}

	pool := make([]Question, 0, len(a.questions))
	for _, q := range a.questions {
		if excluded[q.ID] {
			continue
		}
		if typeFilter != "" && q.Type != typeFilter {
			continue
		}
		pool = append(pool, q)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	pool = Shuffle(a.rng, pool)
	if len(pool) > count {
		pool = pool[:count]
	}

	out := make([]Question, len(pool))
	for i, q := range pool {
		q = q.Clone()
		if len(q.Choices) > 0 {
			q.Choices = Shuffle(a.rng, q.Choices)
		}
		if len(q.Tokens) > 0 {
			q.Tokens = Shuffle(a.rng, q.Tokens)
		}
		out[i] = q
	}
	return out
}

// Lookup returns the catalog question with the given id.
func (a *Accessor) Lookup(id string) (Question, bool) {
	i, ok := a.byID[id]
	if !ok {
		return Question{}, false
	}
	return a.questions[i].Clone(), true
}

// Count returns how many catalog questions match typeFilter.
func (a *Accessor) Count(typeFilter QuestionType) int {
	if typeFilter == "" {
		return len(a.questions)
	}
	n := 0
	for _, q := range a.questions {
		if q.Type == typeFilter {
			n++
		}
	}
	return n
}
