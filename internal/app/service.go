// Package service wires the progress domain to storage and implements the
// operations the HTTP API exposes.
//
// Every operation loads the records it needs, applies pure domain functions
// and writes the result back while holding one lock, so concurrent requests
// observe the same sequential behaviour a single browser tab would.
package service

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/okian/swiftrivia/internal/adapters/storage"
	"github.com/okian/swiftrivia/internal/adapters/store"
	"github.com/okian/swiftrivia/internal/domain/achievement"
	"github.com/okian/swiftrivia/internal/domain/dedupe"
	"github.com/okian/swiftrivia/internal/domain/leaderboard"
	"github.com/okian/swiftrivia/internal/domain/model"
	"github.com/okian/swiftrivia/internal/domain/profile"
	"github.com/okian/swiftrivia/internal/domain/scoring"
	"github.com/okian/swiftrivia/internal/domain/stats"
	"github.com/okian/swiftrivia/internal/domain/types"
	"github.com/okian/swiftrivia/pkg/logger"
	"github.com/okian/swiftrivia/pkg/metrics"
)

const defaultDedupeSize = 10_000

// Service implements the API dependencies for the progress tracker.
type Service struct {
	mu sync.Mutex

	// Core components
	backend storage.Backend
	store   *store.Store
	deduper dedupe.Deduper
	scorer  *scoring.Scorer

	// Configuration
	capacity   int
	dedupeSize int
	now        func() time.Time
	newID      func() string

	// Logging
	logger logger.Logger
}

// New constructs a Service ready for use.
func New(opts ...Option) *Service {
	s := &Service{
		capacity:   leaderboard.DefaultCapacity,
		dedupeSize: defaultDedupeSize,
		now:        time.Now,
		newID:      uuid.NewString,
		logger:     logger.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.backend == nil {
		s.backend = storage.NewMemory()
	}
	if s.scorer == nil {
		s.scorer = scoring.NewScorer()
	}
	s.store = store.New(s.backend,
		store.WithLogger(s.logger.Named("store")),
		store.WithLeaderboardCapacity(s.capacity),
	)
	s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))
	return s
}

// Start publishes the gauges for the stored state.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.store.Leaderboard(ctx)
	metrics.UpdateLeaderboardSize(len(entries))
	if p, ok := s.store.Profile(ctx); ok {
		metrics.UpdatePlayerLevel(p.Level)
	}

	s.logger.Info(ctx, "progress service started",
		logger.Int("leaderboardCapacity", s.capacity),
		logger.Int("dedupeSize", s.dedupeSize),
		logger.Int("leaderboardEntries", len(entries)),
	)
	return nil
}

// Stop closes the backend when it holds resources.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if closer, ok := s.backend.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			s.logger.Error(context.Background(), "failed to close backend", logger.Error(err))
		}
	}
	s.logger.Info(context.Background(), "progress service stopped")
}

// Capacity returns the leaderboard capacity.
func (s *Service) Capacity() int { return s.capacity }

// CreateProfile registers a new profile, replacing any existing one. The
// username must not be blank and the avatar must be one of profile.Avatars.
func (s *Service) CreateProfile(ctx context.Context, username, avatar string) (model.UserProfile, error) {
	if err := profile.Validate(username, avatar); err != nil {
		return model.UserProfile{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := profile.New(username, avatar, s.now())
	s.store.SaveProfile(ctx, p)
	metrics.UpdatePlayerLevel(p.Level)
	s.logger.Info(ctx, "profile created", logger.String("username", p.Username))
	return p, nil
}

// Profile returns the registered profile, if any.
func (s *Service) Profile(ctx context.Context) (model.UserProfile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Profile(ctx)
}

// ClearProfile removes the registered profile. Stats and leaderboard stay.
func (s *Service) ClearProfile(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.ClearProfile(ctx)
	metrics.UpdatePlayerLevel(0)
	s.logger.Info(ctx, "profile cleared")
}

// AddPoints credits points to the profile and recomputes its level.
func (s *Service) AddPoints(ctx context.Context, points int) (model.UserProfile, error) {
	if points < 0 {
		return model.UserProfile{}, ErrInvalidPoints
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.store.Profile(ctx)
	if !ok {
		return model.UserProfile{}, ErrNoProfile
	}
	p, ok = s.credit(ctx, p, points)
	if !ok {
		return model.UserProfile{}, ErrInvalidPoints
	}
	s.store.SaveProfile(ctx, p)
	return p, nil
}

// Stats returns the stored counters.
func (s *Service) Stats(ctx context.Context) model.GameStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Stats(ctx)
}

// RecordEmojiAttempt records one emoji guess. streakAfter is the client's
// streak once this guess is counted.
func (s *Service) RecordEmojiAttempt(ctx context.Context, correct bool, streakAfter int) types.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, points := stats.RecordEmojiAttempt(s.store.Stats(ctx), correct, streakAfter)
	s.store.SaveStats(ctx, st)
	metrics.RecordEmojiAttempt(correct)

	return s.progress(ctx, st, points, nil)
}

// CompleteEmojiGame counts a finished emoji game and puts it on the
// leaderboard. A sessionID already recorded is ignored.
func (s *Service) CompleteEmojiGame(ctx context.Context, sessionID string, score, totalQuestions int) types.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.duplicate(ctx, sessionID) {
		return s.duplicateOutcome(ctx)
	}

	st := stats.CompleteEmojiGame(s.store.Stats(ctx))
	s.store.SaveStats(ctx, st)
	metrics.RecordGame(model.ModeEmoji)

	return s.progress(ctx, st, 0, func(p model.UserProfile) model.LeaderboardEntry {
		return s.entry(p, score, leaderboard.AccuracyFromScore(score, totalQuestions))
	})
}

// RecordTriviaResult folds a finished trivia session into the stats, awards
// score/10 points and records a leaderboard entry. A sessionID already
// recorded is ignored.
func (s *Service) RecordTriviaResult(ctx context.Context, sessionID string, r model.TriviaResult, era string) types.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.duplicate(ctx, sessionID) {
		return s.duplicateOutcome(ctx)
	}

	st, points := stats.RecordTriviaResult(s.store.Stats(ctx), r, era)
	s.store.SaveStats(ctx, st)
	metrics.RecordGame(model.ModeTrivia)

	return s.progress(ctx, st, points, func(p model.UserProfile) model.LeaderboardEntry {
		return s.entry(p, r.Score, leaderboard.AccuracyFromCorrect(r.CorrectAnswers, r.TotalQuestions))
	})
}

// ScoreAnswers tallies raw timed answers into a trivia result.
func (s *Service) ScoreAnswers(answers []scoring.Answer, timeSpent int) model.TriviaResult {
	return s.scorer.Tally(answers, timeSpent)
}

// AddEntry records a leaderboard entry for the current profile. Accuracy is
// round(score/totalQuestions*100). Returns false without a profile.
func (s *Service) AddEntry(ctx context.Context, score, totalQuestions int) (model.LeaderboardEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.store.Profile(ctx)
	if !ok {
		return model.LeaderboardEntry{}, false
	}
	e := s.entry(p, score, leaderboard.AccuracyFromScore(score, totalQuestions))
	s.insert(ctx, e)
	return e, true
}

// Leaderboard returns up to limit ranked entries. limit < 1 returns all.
func (s *Service) Leaderboard(ctx context.Context, limit int) []types.RankedEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return leaderboard.Rank(leaderboard.Top(s.store.Leaderboard(ctx), limit))
}

// CheckAchievements evaluates every rule against the stored state and
// returns the names of newly unlocked achievements.
func (s *Service) CheckAchievements(ctx context.Context) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.store.Profile(ctx)
	if !ok {
		return []string{}
	}
	_, unlocked := s.unlock(ctx, p, s.store.Stats(ctx))
	return unlocked
}

// Achievements lists every achievement with its unlocked state.
func (s *Service) Achievements(ctx context.Context) []types.AchievementStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, _ := s.store.Profile(ctx)
	return achievement.Catalog(p)
}

// SeenAndRecord reports whether a session id was already recorded and
// records it if not.
func (s *Service) SeenAndRecord(ctx context.Context, id string) bool {
	seen := s.deduper.SeenAndRecord(ctx, id)
	if seen {
		metrics.RecordDuplicateSubmission()
	}
	return seen
}

// Unrecord forgets a session id so it can be submitted again.
func (s *Service) Unrecord(ctx context.Context, id string) {
	s.deduper.Unrecord(ctx, id)
}

func (s *Service) duplicate(ctx context.Context, sessionID string) bool {
	if sessionID == "" {
		return false
	}
	if s.SeenAndRecord(ctx, sessionID) {
		s.logger.Debug(ctx, "duplicate session, skipping", logger.String("sessionID", sessionID))
		return true
	}
	return false
}

func (s *Service) duplicateOutcome(ctx context.Context) types.Outcome {
	out := types.Outcome{Stats: s.store.Stats(ctx), Unlocked: []string{}, Duplicate: true}
	if p, ok := s.store.Profile(ctx); ok {
		out.Profile = &p
	}
	return out
}

// progress runs the profile side of a recorded game: points, achievements
// and, when newEntry is set, the leaderboard. Without a profile only the
// already saved stats are reported.
func (s *Service) progress(
	ctx context.Context,
	st model.GameStats,
	points int,
	newEntry func(model.UserProfile) model.LeaderboardEntry,
) types.Outcome {
	out := types.Outcome{Stats: st, Unlocked: []string{}}

	p, ok := s.store.Profile(ctx)
	if !ok {
		return out
	}

	if points > 0 {
		if p, ok = s.credit(ctx, p, points); ok {
			out.PointsAwarded = points
			s.store.SaveProfile(ctx, p)
		}
	}
	p, out.Unlocked = s.unlock(ctx, p, st)
	out.Profile = &p

	if newEntry != nil {
		e := newEntry(p)
		s.insert(ctx, e)
		out.Entry = &e
	}
	return out
}

func (s *Service) credit(ctx context.Context, p model.UserProfile, points int) (model.UserProfile, bool) {
	before := p.Level
	p, ok := profile.AddPoints(p, points)
	if !ok {
		s.logger.Warn(ctx, "points refused",
			logger.Int("points", points), logger.Int("totalPoints", p.TotalPoints))
		return p, false
	}
	metrics.AddPoints(points)
	if p.Level != before {
		metrics.UpdatePlayerLevel(p.Level)
		s.logger.Info(ctx, "level up", logger.Int("level", p.Level), logger.Int("totalPoints", p.TotalPoints))
	}
	return p, true
}

// unlock evaluates achievements and saves the profile only when something
// new was unlocked.
func (s *Service) unlock(ctx context.Context, p model.UserProfile, st model.GameStats) (model.UserProfile, []string) {
	before := len(p.Achievements)
	p, unlocked := achievement.Evaluate(p, st)
	if len(unlocked) == 0 {
		return p, unlocked
	}
	for _, id := range p.Achievements[before:] {
		metrics.RecordAchievement(id)
	}
	s.store.SaveProfile(ctx, p)
	s.logger.Info(ctx, "achievements unlocked", logger.Strings("achievements", unlocked))
	return p, unlocked
}

func (s *Service) entry(p model.UserProfile, score, accuracy int) model.LeaderboardEntry {
	return model.LeaderboardEntry{
		ID:       s.newID(),
		Username: p.Username,
		Avatar:   p.Avatar,
		Score:    score,
		Accuracy: accuracy,
		Date:     s.now().UTC(),
	}
}

func (s *Service) insert(ctx context.Context, e model.LeaderboardEntry) {
	entries := leaderboard.Insert(s.store.Leaderboard(ctx), e, s.capacity)
	s.store.SaveLeaderboard(ctx, entries)
	metrics.UpdateLeaderboardSize(len(entries))
}
