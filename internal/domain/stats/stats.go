// Package stats accumulates per-mode game counters.
//
// Every function takes the current GameStats by value and returns the updated
// copy together with the points the session earned; persisting either is the
// caller's job.
package stats

import (
	"math"

	"github.com/okian/swiftrivia/internal/domain/model"
)

// PointsPerCorrectGuess is awarded for each correct emoji attempt.
const PointsPerCorrectGuess = 10

// TriviaPointsDivisor converts a trivia score into profile points.
const TriviaPointsDivisor = 10

// Accuracy is 100*correct/attempts, or 0 when nothing was attempted.
func Accuracy(correct, attempts int) float64 {
	if attempts <= 0 {
		return 0
	}
	return float64(correct) / float64(attempts) * 100
}

// RecordEmojiAttempt registers one emoji guess. streakAfter is the caller's
// streak including this guess and is only read when correct is true.
func RecordEmojiAttempt(s model.GameStats, correct bool, streakAfter int) (model.GameStats, int) {
	out := s.Clone()
	e := &out.Emoji

	e.TotalAttempts = addCapped(e.TotalAttempts, 1)
	points := 0
	if correct {
		e.CorrectAnswers = addCapped(e.CorrectAnswers, 1)
		if streakAfter < 0 {
			streakAfter = 0
		}
		e.CurrentStreak = streakAfter
		if streakAfter > e.BestStreak {
			e.BestStreak = streakAfter
		}
		points = PointsPerCorrectGuess
	} else {
		e.CurrentStreak = 0
	}
	e.AverageAccuracy = Accuracy(e.CorrectAnswers, e.TotalAttempts)
	return out, points
}

// CompleteEmojiGame counts a finished emoji round.
func CompleteEmojiGame(s model.GameStats) model.GameStats {
	out := s.Clone()
	out.Emoji.GamesPlayed = addCapped(out.Emoji.GamesPlayed, 1)
	return out
}

// RecordTriviaResult folds one finished trivia session into the counters.
func RecordTriviaResult(s model.GameStats, r model.TriviaResult, era string) (model.GameStats, int) {
	out := s.Clone()
	t := &out.Trivia

	t.GamesPlayed = addCapped(t.GamesPlayed, 1)
	t.CorrectAnswers = addCapped(t.CorrectAnswers, r.CorrectAnswers)
	t.TotalAttempts = addCapped(t.TotalAttempts, r.TotalQuestions)
	if r.Score > t.BestScore {
		t.BestScore = r.Score
	}
	if era != "" && !contains(t.CompletedEras, era) {
		t.CompletedEras = append(t.CompletedEras, era)
	}

	return out, max(r.Score, 0) / TriviaPointsDivisor
}

// addCapped adds a non-negative n to a counter, saturating at math.MaxInt.
func addCapped(counter, n int) int {
	if n <= 0 {
		return counter
	}
	if counter > math.MaxInt-n {
		return math.MaxInt
	}
	return counter + n
}

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
