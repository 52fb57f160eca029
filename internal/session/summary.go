package session

import (
	"math"
	"time"

	"github.com/abhisek/kotoba/internal/bank"
	"github.com/abhisek/kotoba/internal/grading"
)

// Review is one row of the results view.
type Review struct {
	Question bank.Question `json:"question"`
	Answer   []string      `json:"answer"`
	Answered bool          `json:"answered"`
	Correct  bool          `json:"correct"`
}

// Summary holds the data displayed on the results screen.
type Summary struct {
	Total    int           `json:"total"`
	Correct  int           `json:"correct"`
	Accuracy int           `json:"accuracy"`
	Duration time.Duration `json:"durationNs"`
	Timed    bool          `json:"timed"`
	Reviews  []Review      `json:"reviews"`
}

// Summarize grades every question of s. It works on any phase, counting
// unanswered slots as wrong.
func Summarize(s Session) Summary {
	sum := Summary{
		Total: len(s.Questions),
		Timed: s.Timed,
	}
	for i, q := range s.Questions {
		var ans []string
		if i < len(s.Answers) {
			ans = s.Answers[i]
		}
		ok := grading.IsCorrect(q, ans)
		if ok {
			sum.Correct++
		}
		sum.Reviews = append(sum.Reviews, Review{
			Question: q,
			Answer:   ans,
			Answered: grading.Answered(ans),
			Correct:  ok,
		})
	}
	if sum.Total > 0 {
		sum.Accuracy = int(math.Round(100 * float64(sum.Correct) / float64(sum.Total)))
	}
	if !s.EndTime.IsZero() {
		sum.Duration = s.EndTime.Sub(s.StartTime)
	}
	return sum
}
