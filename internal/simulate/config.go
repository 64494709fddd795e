// Package simulate drives the progress API with random game sessions and
// checks the invariants of what it reads back.
package simulate

import (
	"time"

	"github.com/okian/swiftrivia/internal/domain/scoring"
)

// Config holds configuration for a simulation run.
type Config struct {
	BaseURL  string        // Base URL of the service
	Sessions int           // Number of game sessions to play
	Replays  int           // Number of finished sessions submitted a second time
	Workers  int           // Number of concurrent submitters
	Seed     int64         // Seed for the session generator
	Capacity int           // Expected leaderboard capacity
	Timeout  time.Duration // HTTP request timeout
	Username string
	Avatar   string
	Verbose  bool
}

// Mode names a kind of session.
type Mode string

// Session modes.
const (
	ModeTrivia Mode = "trivia"
	ModeEmoji  Mode = "emoji"
)

// EmojiAttempt is one emoji guess inside a session.
type EmojiAttempt struct {
	Correct     bool `json:"correct"`
	StreakAfter int  `json:"streak_after"`
}

// Session is one generated game.
type Session struct {
	ID   string
	Mode Mode
	Era  string

	// Trivia
	Answers   []scoring.Answer
	TimeSpent int

	// Emoji
	Attempts []EmojiAttempt
}

// Correct counts the correct answers or guesses in the session.
func (s Session) Correct() int {
	n := 0
	for _, a := range s.Answers {
		if a.Correct {
			n++
		}
	}
	for _, a := range s.Attempts {
		if a.Correct {
			n++
		}
	}
	return n
}

// Stats holds run statistics.
type Stats struct {
	SessionsGenerated  int
	SessionsSubmitted  int
	SessionsRecorded   int
	SessionsDuplicate  int
	SessionsFailed     int
	AttemptsSubmitted  int
	Unlocked           []string
	LeaderboardEntries int
	StartTime          time.Time
	EndTime            time.Time
	Duration           time.Duration
}
