package questiongen

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/kotoba/internal/bank"
	"github.com/abhisek/kotoba/internal/llm"
	"github.com/sirupsen/logrus"
)

// Source selects where session questions come from.
type Source string

const (
	SourceLocal Source = "local"
	SourceAI    Source = "ai"
	SourceMixed Source = "mixed"
)

// ParseSource converts s into a Source. Empty means local.
func ParseSource(s string) (Source, error) {
	switch src := Source(strings.ToLower(strings.TrimSpace(s))); src {
	case "":
		return SourceLocal, nil
	case SourceLocal, SourceAI, SourceMixed:
		return src, nil
	default:
		return "", fmt.Errorf("unknown question source %q", s)
	}
}

// ErrNoGenerator is reported when AI questions are requested but no
// provider is configured.
var ErrNoGenerator = errors.New("AI generation is not configured")

// Request describes the questions wanted for a new session.
type Request struct {
	Count  int
	Type   bank.QuestionType // empty: any type
	Source Source
	Topic  string // empty: a random theme per generated question
}

// Result is the merged candidate set for a session.
type Result struct {
	Questions []bank.Question
	// Generated counts questions that came from the generator.
	Generated int
	// Failures holds one error per generation call that did not produce
	// a question; their slots were filled from the local bank.
	Failures []error
}

// FellBack reports whether any requested AI question was replaced by a
// local one.
func (r Result) FellBack() bool {
	return len(r.Failures) > 0
}

// Picker assembles session questions from the local bank and, when
// asked, the generator. Generation failures never fail a pick: every
// missing slot is filled locally.
type Picker struct {
	bank *bank.Accessor
	gen  Generator
	rng  bank.Rand
	log  *logrus.Logger
}

// NewPicker creates a Picker. gen may be nil, in which case every request
// is served locally. rng picks types and topics for generated questions
// and shuffles the merged set.
func NewPicker(accessor *bank.Accessor, gen Generator, rng bank.Rand, log *logrus.Logger) *Picker {
	return &Picker{bank: accessor, gen: gen, rng: rng, log: log}
}

// Pick returns up to req.Count questions.
func (p *Picker) Pick(ctx context.Context, req Request) Result {
	var res Result

	want := p.aiShare(req)
	if want > 0 {
		if p.gen == nil {
			res.Failures = append(res.Failures, ErrNoGenerator)
		} else {
			generated, err := GenerateBatch(ctx, p.gen, p.inputs(req, want))
			res.Failures = append(res.Failures, Failures(err)...)
			for _, q := range generated {
				q.Choices = bank.Shuffle(p.rng, q.Choices)
				q.Tokens = bank.Shuffle(p.rng, q.Tokens)
				res.Questions = append(res.Questions, q)
			}
			res.Generated = len(generated)
		}
		if res.FellBack() {
			p.log.WithFields(logrus.Fields{
				"requested": want,
				"generated": res.Generated,
			}).WithError(errors.Join(res.Failures...)).Warn("question generation fell back to local bank")
		}
	}

	local := p.bank.GetQuestions(req.Count-len(res.Questions), req.Type, nil)
	res.Questions = append(res.Questions, local...)

	if res.Generated > 0 && len(local) > 0 {
		res.Questions = bank.Shuffle(p.rng, res.Questions)
	}
	return res
}

// aiShare is the number of questions to request from the generator.
func (p *Picker) aiShare(req Request) int {
	switch req.Source {
	case SourceAI:
		return req.Count
	case SourceMixed:
		return req.Count / 2
	default:
		return 0
	}
}

func (p *Picker) inputs(req Request, n int) []GenerateInput {
	inputs := make([]GenerateInput, n)
	for i := range inputs {
		t := req.Type
		if t == "" {
			t = bank.AllTypes[p.rng.IntN(len(bank.AllTypes))]
		}
		topic := req.Topic
		if topic == "" {
			topic = bank.Themes[p.rng.IntN(len(bank.Themes))]
		}
		inputs[i] = GenerateInput{Type: t, Topic: topic}
	}
	return inputs
}

// Notice returns the message to show the learner when generation fell
// back to the local bank. A refused call because of the rate limit gets
// its own message.
func (r Result) Notice() (string, bool) {
	if !r.FellBack() {
		return "", false
	}
	var rl *llm.ErrRateLimitExceeded
	var te *llm.ErrTimeout
	err := errors.Join(r.Failures...)
	switch {
	case errors.As(err, &rl):
		return fmt.Sprintf("Batas %d soal AI per %s tercapai, memakai bank soal lokal", rl.Limit, rl.Window), true
	case errors.Is(err, ErrNoGenerator):
		return "API key belum diatur, memakai bank soal lokal", true
	case errors.As(err, &te):
		return "Pembuatan soal AI terlalu lama, memakai bank soal lokal", true
	default:
		return "Gagal membuat soal AI, memakai bank soal lokal", true
	}
}
