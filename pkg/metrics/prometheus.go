// Package metrics provides Prometheus metrics for the swiftrivia progress tracker.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector exported by the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Gameplay
	gamesRecorded        *prometheus.CounterVec
	emojiAttempts        *prometheus.CounterVec
	pointsAwarded        prometheus.Counter
	achievementsUnlocked *prometheus.CounterVec
	duplicateSubmissions prometheus.Counter
	leaderboardSize      prometheus.Gauge
	playerLevel          prometheus.Gauge

	// Storage
	storageOperations     *prometheus.CounterVec
	storageDecodeFailures *prometheus.CounterVec
	storageLatency        *prometheus.HistogramVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // keeps Go runtime collectors out

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "swiftrivia",
		subsystem:        "progress",
		histogramBuckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250},
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // flat list of collectors
	auto := promauto.With(m.registry)

	m.gamesRecorded = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "games_recorded_total",
		Help:      "Completed game sessions by mode",
	}, []string{"mode"})

	m.emojiAttempts = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "emoji_attempts_total",
		Help:      "Emoji guesses by result",
	}, []string{"result"})

	m.pointsAwarded = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "points_awarded_total",
		Help:      "Points added to the profile",
	})

	m.achievementsUnlocked = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "achievements_unlocked_total",
		Help:      "Achievements unlocked by id",
	}, []string{"achievement"})

	m.duplicateSubmissions = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "duplicate_submissions_total",
		Help:      "Game submissions ignored because their session id was already recorded",
	})

	m.leaderboardSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "leaderboard_entries",
		Help:      "Entries currently stored on the leaderboard",
	})

	m.playerLevel = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "player_level",
		Help:      "Level of the registered profile",
	})

	m.storageOperations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "storage_operations_total",
		Help:      "Backend operations by kind and result",
	}, []string{"op", "result"})

	m.storageDecodeFailures = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "storage_decode_failures_total",
		Help:      "Stored records discarded because they could not be decoded",
	}, []string{"record"})

	m.storageLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "storage_latency_milliseconds",
		Help:      "Backend operation latency in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"op"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "HTTP requests by endpoint, method and status",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})
}

// RecordGame counts a completed session of the given mode ("emoji", "trivia").
func RecordGame(mode string) {
	if !globalManager.enabled {
		return
	}
	globalManager.gamesRecorded.WithLabelValues(mode).Inc()
}

// RecordEmojiAttempt counts one emoji guess.
func RecordEmojiAttempt(correct bool) {
	if !globalManager.enabled {
		return
	}
	result := "incorrect"
	if correct {
		result = "correct"
	}
	globalManager.emojiAttempts.WithLabelValues(result).Inc()
}

// AddPoints adds to the points counter. Non-positive values are ignored.
func AddPoints(points int) {
	if !globalManager.enabled || points <= 0 {
		return
	}
	globalManager.pointsAwarded.Add(float64(points))
}

// RecordAchievement counts an unlocked achievement.
func RecordAchievement(id string) {
	if !globalManager.enabled {
		return
	}
	globalManager.achievementsUnlocked.WithLabelValues(id).Inc()
}

// RecordDuplicateSubmission counts a replayed session id.
func RecordDuplicateSubmission() {
	if !globalManager.enabled {
		return
	}
	globalManager.duplicateSubmissions.Inc()
}

// UpdateLeaderboardSize sets the leaderboard gauge.
func UpdateLeaderboardSize(n int) {
	if !globalManager.enabled {
		return
	}
	globalManager.leaderboardSize.Set(float64(n))
}

// UpdatePlayerLevel sets the level gauge.
func UpdatePlayerLevel(level int) {
	if !globalManager.enabled {
		return
	}
	globalManager.playerLevel.Set(float64(level))
}

// RecordStorageOperation counts a backend call and observes its latency.
func RecordStorageOperation(op, result string, latencyMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.storageOperations.WithLabelValues(op, result).Inc()
	globalManager.storageLatency.WithLabelValues(op).Observe(latencyMs)
}

// RecordDecodeFailure counts a discarded stored record.
func RecordDecodeFailure(record string) {
	if !globalManager.enabled {
		return
	}
	globalManager.storageDecodeFailures.WithLabelValues(record).Inc()
}

// RecordHTTPRequest records the HTTP request counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	if !globalManager.enabled {
		return
	}
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// GetRegistry returns the registry backing the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
