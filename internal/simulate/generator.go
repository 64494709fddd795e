package simulate

import (
	"math/rand"

	"github.com/google/uuid"
	"github.com/okian/swiftrivia/internal/domain/scoring"
)

// Generator ranges.
const (
	minQuestions    = 5
	maxQuestions    = 15
	maxSecondsLeft  = 30
	maxAnswerTime   = 30
	triviaShare     = 0.6
	correctChance   = 0.7
	emojiMinGuesses = 3
	emojiMaxGuesses = 12
)

var eras = []string{ //nolint:gochecknoglobals // fixed catalogue
	"debut", "fearless", "speak_now", "red", "1989",
	"reputation", "lover", "folklore", "evermore", "midnights", "ttpd",
}

// Generator produces reproducible sessions from a seed.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a generator. Equal seeds yield equal sessions apart
// from their ids.
func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))} //nolint:gosec // reproducible test data
}

// Sessions generates n sessions with fresh ids.
func (g *Generator) Sessions(n int) []Session {
	out := make([]Session, 0, max(n, 0))
	for i := 0; i < n; i++ {
		if g.rng.Float64() < triviaShare {
			out = append(out, g.trivia())
		} else {
			out = append(out, g.emoji())
		}
	}
	return out
}

func (g *Generator) trivia() Session {
	n := minQuestions + g.rng.Intn(maxQuestions-minQuestions+1)
	answers := make([]scoring.Answer, n)
	spent := 0
	for i := range answers {
		left := g.rng.Intn(maxSecondsLeft + 1)
		answers[i] = scoring.Answer{Correct: g.rng.Float64() < correctChance, SecondsLeft: left}
		spent += maxAnswerTime - left
	}
	return Session{
		ID:        uuid.NewString(),
		Mode:      ModeTrivia,
		Era:       eras[g.rng.Intn(len(eras))],
		Answers:   answers,
		TimeSpent: spent,
	}
}

func (g *Generator) emoji() Session {
	n := emojiMinGuesses + g.rng.Intn(emojiMaxGuesses-emojiMinGuesses+1)
	attempts := make([]EmojiAttempt, n)
	streak := 0
	for i := range attempts {
		correct := g.rng.Float64() < correctChance
		if correct {
			streak++
		} else {
			streak = 0
		}
		attempts[i] = EmojiAttempt{Correct: correct, StreakAfter: streak}
	}
	return Session{ID: uuid.NewString(), Mode: ModeEmoji, Attempts: attempts}
}
