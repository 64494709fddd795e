package simulate

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/okian/swiftrivia/internal/domain/model"
	"github.com/okian/swiftrivia/internal/domain/types"
	"github.com/okian/swiftrivia/pkg/logger"
)

type profileRequest struct {
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

type triviaRequest struct {
	SessionID string        `json:"session_id"`
	Era       string        `json:"era"`
	Answers   []answerInput `json:"answers"`
	TimeSpent int           `json:"time_spent"`
}

type answerInput struct {
	Correct     bool `json:"correct"`
	SecondsLeft int  `json:"seconds_left"`
}

type emojiGameRequest struct {
	SessionID      string `json:"session_id"`
	Score          int    `json:"score"`
	TotalQuestions int    `json:"total_questions"`
}

// result is what one submitted session produced.
type result struct {
	session   Session
	outcome   types.Outcome
	err       error
	attempts  int
	duplicate bool
}

// Run executes a complete simulation against cfg.BaseURL.
func Run(ctx context.Context, cfg *Config, log logger.Logger) (*Stats, error) {
	stats := &Stats{StartTime: time.Now()}
	client := NewHTTPClient(cfg.BaseURL, cfg.Timeout)

	log.Info(ctx, "starting simulation",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("sessions", cfg.Sessions),
		logger.Int("replays", cfg.Replays),
		logger.Int("workers", cfg.Workers),
		logger.Any("seed", cfg.Seed),
	)

	// Step 1: Check service health
	if err := client.Get(ctx, "/healthz", nil); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Register the player
	var p model.UserProfile
	if err := client.Post(ctx, "/profile", profileRequest{Username: cfg.Username, Avatar: cfg.Avatar}, &p); err != nil {
		return stats, fmt.Errorf("profile registration failed: %w", err)
	}
	var before model.GameStats
	if err := client.Get(ctx, "/stats", &before); err != nil {
		return stats, fmt.Errorf("stats retrieval failed: %w", err)
	}

	// Step 3: Generate and play sessions
	sessions := NewGenerator(cfg.Seed).Sessions(cfg.Sessions)
	stats.SessionsGenerated = len(sessions)
	results := play(ctx, client, sessions, cfg.Workers)

	// Step 4: Replay some finished sessions; every one must be ignored
	replays := replay(ctx, client, sessions, cfg.Replays)

	collect(stats, results, replays)
	log.Info(ctx, "sessions submitted",
		logger.Int("recorded", stats.SessionsRecorded),
		logger.Int("duplicate", stats.SessionsDuplicate),
		logger.Int("failed", stats.SessionsFailed),
	)

	// Step 5: Read back and verify
	var after model.GameStats
	if err := client.Get(ctx, "/stats", &after); err != nil {
		return stats, fmt.Errorf("stats retrieval failed: %w", err)
	}
	var board []types.RankedEntry
	if err := client.Get(ctx, "/leaderboard", &board); err != nil {
		return stats, fmt.Errorf("leaderboard retrieval failed: %w", err)
	}
	if err := client.Get(ctx, "/profile", &p); err != nil {
		return stats, fmt.Errorf("profile retrieval failed: %w", err)
	}
	stats.LeaderboardEntries = len(board)

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	verr := Verify(Observed{
		Capacity:    cfg.Capacity,
		Before:      before,
		After:       after,
		Profile:     p,
		Leaderboard: board,
		Results:     results,
		Replays:     replays,
	})
	displayFinalStats(ctx, log, stats, board, cfg.Verbose)
	if verr != nil {
		return stats, fmt.Errorf("verification failed: %w", verr)
	}
	log.Info(ctx, "simulation completed successfully")
	return stats, nil
}

// play submits sessions with a bounded number of workers.
func play(ctx context.Context, client *HTTPClient, sessions []Session, workers int) []result {
	if workers < 1 {
		workers = 1
	}
	results := make([]result, len(sessions))
	jobs := make(chan int, workers*2)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = submit(ctx, client, sessions[i])
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := range sessions {
			select {
			case <-ctx.Done():
				return
			case jobs <- i:
			}
		}
	}()
	wg.Wait()

	// sessions never dispatched because ctx ended
	for i := range results {
		if results[i].session.ID == "" {
			results[i] = result{session: sessions[i], err: ctx.Err()}
		}
	}
	return results
}

func replay(ctx context.Context, client *HTTPClient, sessions []Session, n int) []result {
	n = min(max(n, 0), len(sessions))
	out := make([]result, 0, n)
	for _, s := range sessions[:n] {
		r := result{session: s}
		r.outcome, r.err = finish(ctx, client, s)
		r.duplicate = r.outcome.Duplicate
		out = append(out, r)
	}
	return out
}

// submit plays one session: emoji guesses first, then the final result.
func submit(ctx context.Context, client *HTTPClient, s Session) result {
	r := result{session: s}
	for _, a := range s.Attempts {
		if err := client.Post(ctx, "/emoji/attempts", a, nil); err != nil {
			r.err = err
			return r
		}
		r.attempts++
	}
	r.outcome, r.err = finish(ctx, client, s)
	r.duplicate = r.outcome.Duplicate
	return r
}

func finish(ctx context.Context, client *HTTPClient, s Session) (types.Outcome, error) {
	var out types.Outcome
	switch s.Mode {
	case ModeTrivia:
		answers := make([]answerInput, len(s.Answers))
		for i, a := range s.Answers {
			answers[i] = answerInput{Correct: a.Correct, SecondsLeft: a.SecondsLeft}
		}
		req := triviaRequest{SessionID: s.ID, Era: s.Era, Answers: answers, TimeSpent: s.TimeSpent}
		return out, client.Post(ctx, "/trivia/results", req, &out)
	case ModeEmoji:
		req := emojiGameRequest{SessionID: s.ID, Score: s.Correct(), TotalQuestions: len(s.Attempts)}
		return out, client.Post(ctx, "/emoji/games", req, &out)
	default:
		return out, fmt.Errorf("unknown session mode %q", s.Mode)
	}
}

func collect(stats *Stats, results, replays []result) {
	for _, r := range append(append([]result(nil), results...), replays...) {
		stats.SessionsSubmitted++
		stats.AttemptsSubmitted += r.attempts
		switch {
		case r.err != nil:
			stats.SessionsFailed++
		case r.duplicate:
			stats.SessionsDuplicate++
		default:
			stats.SessionsRecorded++
			stats.Unlocked = append(stats.Unlocked, r.outcome.Unlocked...)
		}
	}
}

// displayFinalStats logs the final run statistics.
func displayFinalStats(ctx context.Context, log logger.Logger, stats *Stats, board []types.RankedEntry, verbose bool) {
	var sessionsPerSecond float64
	if stats.Duration > 0 {
		sessionsPerSecond = float64(stats.SessionsSubmitted) / stats.Duration.Seconds()
	}

	log.Info(ctx, "final statistics",
		logger.Int("sessionsGenerated", stats.SessionsGenerated),
		logger.Int("sessionsSubmitted", stats.SessionsSubmitted),
		logger.Int("sessionsRecorded", stats.SessionsRecorded),
		logger.Int("sessionsDuplicate", stats.SessionsDuplicate),
		logger.Int("sessionsFailed", stats.SessionsFailed),
		logger.Int("attemptsSubmitted", stats.AttemptsSubmitted),
		logger.Strings("unlocked", stats.Unlocked),
		logger.Int("leaderboardEntries", stats.LeaderboardEntries),
		logger.Duration("duration", stats.Duration),
		logger.Float64("sessionsPerSecond", sessionsPerSecond),
	)

	if !verbose {
		return
	}
	for _, e := range board[:min(len(board), 10)] {
		log.Info(ctx, "leaderboard",
			logger.Int("rank", e.Rank),
			logger.Int("score", e.Score),
			logger.Int("accuracy", e.Accuracy),
			logger.String("date", e.Date.Format(time.RFC3339)),
		)
	}
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == code
}
