// Package scoring turns timed trivia answers into a session result.
package scoring

import (
	"time"

	"github.com/okian/swiftrivia/internal/domain/model"
)

// Default scoring configuration constants.
const (
	defaultBasePoints = 100
	defaultTimeBonus  = 10
	defaultTimeLimit  = 30 * time.Second
)

// Option applies a configuration option to the Scorer.
type Option func(*Scorer)

// WithBasePoints sets the points a correct answer earns before the time bonus.
func WithBasePoints(points int) Option {
	return func(s *Scorer) {
		if points > 0 {
			s.basePoints = points
		}
	}
}

// WithTimeBonus sets the bonus per second left on the clock.
func WithTimeBonus(perSecond int) Option {
	return func(s *Scorer) {
		if perSecond >= 0 {
			s.timeBonus = perSecond
		}
	}
}

// WithTimeLimit sets the per-question time limit.
func WithTimeLimit(limit time.Duration) Option {
	return func(s *Scorer) {
		if limit >= time.Second {
			s.timeLimit = limit
		}
	}
}

// Answer is one answered question.
type Answer struct {
	Correct     bool `json:"correct"`
	SecondsLeft int  `json:"seconds_left"`
}

// Scorer computes per-answer points for a timed trivia round.
type Scorer struct {
	basePoints int
	timeBonus  int
	timeLimit  time.Duration
}

// NewScorer creates a scorer with configuration options.
func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{
		basePoints: defaultBasePoints,
		timeBonus:  defaultTimeBonus,
		timeLimit:  defaultTimeLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TimeLimit returns the configured per-question limit.
func (s *Scorer) TimeLimit() time.Duration { return s.timeLimit }

// Score returns the points for a single answer. Wrong answers earn nothing;
// SecondsLeft is clamped to [0, limit].
func (s *Scorer) Score(a Answer) int {
	if !a.Correct {
		return 0
	}
	left := a.SecondsLeft
	limit := int(s.timeLimit / time.Second)
	if left < 0 {
		left = 0
	}
	if left > limit {
		left = limit
	}
	return s.basePoints + s.timeBonus*left
}

// Tally sums a round of answers into a trivia result.
func (s *Scorer) Tally(answers []Answer, timeSpent int) model.TriviaResult {
	res := model.TriviaResult{TotalQuestions: len(answers), TimeSpent: timeSpent}
	for _, a := range answers {
		res.Score += s.Score(a)
		if a.Correct {
			res.CorrectAnswers++
		}
	}
	if res.TimeSpent < 0 {
		res.TimeSpent = 0
	}
	return res
}
