package service

import (
	"time"

	"github.com/okian/swiftrivia/internal/adapters/storage"
	"github.com/okian/swiftrivia/internal/domain/scoring"
	"github.com/okian/swiftrivia/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithBackend sets the persistence backend. Defaults to an in-memory backend.
func WithBackend(b storage.Backend) Option {
	return func(s *Service) {
		if b != nil {
			s.backend = b
		}
	}
}

// WithClock overrides the time source used for profile and entry dates.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLeaderboardCapacity sets how many entries the leaderboard keeps.
func WithLeaderboardCapacity(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.capacity = n
		}
	}
}

// WithDedupeSize sets how many finished session ids are remembered.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithScorer sets the trivia answer scorer.
func WithScorer(sc *scoring.Scorer) Option {
	return func(s *Service) {
		if sc != nil {
			s.scorer = sc
		}
	}
}
