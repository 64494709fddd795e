// Package model contains the records persisted by the progress tracker and
// passed between layers.
package model

import "time"

// Game modes.
const (
	ModeEmoji  = "emoji"
	ModeTrivia = "trivia"
)

// UserProfile is the single registered player.
type UserProfile struct {
	Username     string    `json:"username"`
	Avatar       string    `json:"avatar"`
	CreatedAt    time.Time `json:"createdAt"`
	TotalPoints  int       `json:"totalPoints"`
	Level        int       `json:"level"`
	Achievements []string  `json:"achievements"`
}

// HasAchievement reports whether id was already unlocked.
func (p UserProfile) HasAchievement(id string) bool {
	for _, a := range p.Achievements {
		if a == id {
			return true
		}
	}
	return false
}

// Clone returns a copy that shares no slices with p.
func (p UserProfile) Clone() UserProfile {
	c := p
	c.Achievements = append(make([]string, 0, len(p.Achievements)), p.Achievements...)
	return c
}

// EmojiStats are the emoji-guessing counters.
type EmojiStats struct {
	GamesPlayed     int     `json:"gamesPlayed"`
	CorrectAnswers  int     `json:"correctAnswers"`
	TotalAttempts   int     `json:"totalAttempts"`
	BestStreak      int     `json:"bestStreak"`
	CurrentStreak   int     `json:"currentStreak"`
	AverageAccuracy float64 `json:"averageAccuracy"`
}

// TriviaStats are the trivia counters.
type TriviaStats struct {
	GamesPlayed    int      `json:"gamesPlayed"`
	CorrectAnswers int      `json:"correctAnswers"`
	TotalAttempts  int      `json:"totalAttempts"`
	BestScore      int      `json:"bestScore"`
	CompletedEras  []string `json:"completedEras"`
}

// GameStats groups the per-mode counters.
type GameStats struct {
	Emoji  EmojiStats  `json:"emojiGame"`
	Trivia TriviaStats `json:"triviaGame"`
}

// DefaultStats returns zeroed counters.
func DefaultStats() GameStats {
	return GameStats{Trivia: TriviaStats{CompletedEras: []string{}}}
}

// Clone returns a copy that shares no slices with s.
func (s GameStats) Clone() GameStats {
	c := s
	c.Trivia.CompletedEras = append(make([]string, 0, len(s.Trivia.CompletedEras)), s.Trivia.CompletedEras...)
	return c
}

// LeaderboardEntry is a snapshot of one finished game.
type LeaderboardEntry struct {
	ID       string    `json:"id,omitempty"`
	Username string    `json:"username"`
	Avatar   string    `json:"avatar"`
	Score    int       `json:"score"`
	Accuracy int       `json:"accuracy"`
	Date     time.Time `json:"date"`
}

// TriviaResult is the outcome of one trivia session.
type TriviaResult struct {
	Score          int `json:"score"`
	TotalQuestions int `json:"totalQuestions"`
	CorrectAnswers int `json:"correctAnswers"`
	TimeSpent      int `json:"timeSpent"` // seconds
}
