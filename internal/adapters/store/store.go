// Package store reads and writes the three progress records as JSON over a
// storage.Backend.
//
// Reads never fail from the caller's point of view: a missing, corrupt or
// unreachable record yields its default. Writes never fail either; errors are
// logged and counted and the previous stored value is left as it was.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/okian/swiftrivia/internal/adapters/storage"
	"github.com/okian/swiftrivia/internal/domain/leaderboard"
	"github.com/okian/swiftrivia/internal/domain/model"
	"github.com/okian/swiftrivia/pkg/logger"
	"github.com/okian/swiftrivia/pkg/metrics"
)

// Storage keys.
const (
	KeyProfile     = "taylor_trivia_user_profile"
	KeyStats       = "taylor_trivia_game_stats"
	KeyLeaderboard = "taylor_trivia_leaderboard"
)

// Record names used in logs and metrics.
const (
	recordProfile     = "profile"
	recordStats       = "stats"
	recordLeaderboard = "leaderboard"
)

// Store is the typed accessor layer.
type Store struct {
	backend  storage.Backend
	log      logger.Logger
	capacity int
}

// Option applies a configuration option to the Store.
type Option func(*Store)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithLeaderboardCapacity bounds the leaderboard read back from storage.
func WithLeaderboardCapacity(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.capacity = n
		}
	}
}

// New creates a Store over b. A nil backend behaves like storage.Unavailable.
func New(b storage.Backend, opts ...Option) *Store {
	if b == nil {
		b = storage.Unavailable{}
	}
	s := &Store{
		backend:  b,
		log:      logger.NewNop(),
		capacity: leaderboard.DefaultCapacity,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Profile returns the stored profile, or false when there is none usable.
func (s *Store) Profile(ctx context.Context) (model.UserProfile, bool) {
	p, err := s.loadProfile(ctx)
	if err != nil {
		return model.UserProfile{}, false
	}
	return p, true
}

// SaveProfile overwrites the stored profile.
func (s *Store) SaveProfile(ctx context.Context, p model.UserProfile) {
	s.save(ctx, KeyProfile, recordProfile, p)
}

// ClearProfile removes the stored profile.
func (s *Store) ClearProfile(ctx context.Context) {
	start := time.Now()
	err := s.backend.Delete(ctx, KeyProfile)
	s.observe("delete", err, start)
	if err != nil {
		s.logFailure(ctx, "failed to clear record", recordProfile, err)
	}
}

// Stats returns the stored counters or zeroed defaults.
func (s *Store) Stats(ctx context.Context) model.GameStats {
	st, err := s.loadStats(ctx)
	if err != nil {
		return model.DefaultStats()
	}
	return st
}

// SaveStats overwrites the stored counters.
func (s *Store) SaveStats(ctx context.Context, st model.GameStats) {
	s.save(ctx, KeyStats, recordStats, st)
}

// Leaderboard returns the stored entries, ordered and bounded, or an empty list.
func (s *Store) Leaderboard(ctx context.Context) []model.LeaderboardEntry {
	entries, err := s.loadLeaderboard(ctx)
	if err != nil {
		return []model.LeaderboardEntry{}
	}
	return entries
}

// SaveLeaderboard overwrites the stored entries.
func (s *Store) SaveLeaderboard(ctx context.Context, entries []model.LeaderboardEntry) {
	if entries == nil {
		entries = []model.LeaderboardEntry{}
	}
	s.save(ctx, KeyLeaderboard, recordLeaderboard, entries)
}

func (s *Store) loadProfile(ctx context.Context) (model.UserProfile, error) {
	p, err := load[model.UserProfile](ctx, s, KeyProfile, recordProfile)
	if err != nil {
		return model.UserProfile{}, err
	}
	if p.Username == "" {
		err = fmt.Errorf("%w: profile has no username", ErrDecode)
		s.decodeFailed(ctx, recordProfile, err)
		return model.UserProfile{}, err
	}
	if p.Achievements == nil {
		p.Achievements = []string{}
	}
	if p.Level < 1 {
		p.Level = 1
	}
	return p, nil
}

func (s *Store) loadStats(ctx context.Context) (model.GameStats, error) {
	st, err := load[model.GameStats](ctx, s, KeyStats, recordStats)
	if err != nil {
		return model.GameStats{}, err
	}
	if st.Trivia.CompletedEras == nil {
		st.Trivia.CompletedEras = []string{}
	}
	return st, nil
}

func (s *Store) loadLeaderboard(ctx context.Context) ([]model.LeaderboardEntry, error) {
	entries, err := load[[]model.LeaderboardEntry](ctx, s, KeyLeaderboard, recordLeaderboard)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []model.LeaderboardEntry{}
	}
	return leaderboard.Normalize(entries, s.capacity), nil
}

func load[T any](ctx context.Context, s *Store, key, record string) (T, error) {
	var zero T

	start := time.Now()
	raw, err := s.backend.Load(ctx, key)
	s.observe("load", err, start)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrBackend, err)
		s.logFailure(ctx, "failed to load record", record, err)
		return zero, err
	}
	if raw == nil {
		return zero, ErrNotFound
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		err = fmt.Errorf("%w: %w", ErrDecode, err)
		s.decodeFailed(ctx, record, err)
		return zero, err
	}
	return v, nil
}

func (s *Store) save(ctx context.Context, key, record string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		s.logFailure(ctx, "failed to encode record", record, err)
		return
	}
	start := time.Now()
	err = s.backend.Save(ctx, key, raw)
	s.observe("save", err, start)
	if err != nil {
		s.logFailure(ctx, "failed to save record", record, err)
	}
}

func (s *Store) observe(op string, err error, start time.Time) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	metrics.RecordStorageOperation(op, result, float64(time.Since(start).Microseconds())/1000)
}

func (s *Store) decodeFailed(ctx context.Context, record string, err error) {
	metrics.RecordDecodeFailure(record)
	s.log.Error(ctx, "discarding unreadable record", logger.String("record", record), logger.Error(err))
}

func (s *Store) logFailure(ctx context.Context, msg, record string, err error) {
	if errors.Is(err, storage.ErrUnavailable) {
		s.log.Debug(ctx, msg, logger.String("record", record), logger.Error(err))
		return
	}
	s.log.Error(ctx, msg, logger.String("record", record), logger.Error(err))
}
