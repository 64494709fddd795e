// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// maxBodyBytes bounds request bodies; every payload here is a few hundred bytes.
const maxBodyBytes = 64 << 10

// Dependencies required by HTTP handlers.
type Dependencies interface {
	ProfileDependencies
	StatsDependencies
	GameDependencies
	LeaderboardDependencies
	AchievementDependencies
}

// Server wires HTTP routes for the progress API.
type Server struct {
	healthHandler      *HealthHandler
	profileHandler     *ProfileHandler
	statsHandler       *StatsHandler
	gameHandler        *GameHandler
	leaderboardHandler *LeaderboardHandler
	achievementHandler *AchievementHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		profileHandler:     NewProfileHandler(deps),
		statsHandler:       NewStatsHandler(deps),
		gameHandler:        NewGameHandler(deps),
		leaderboardHandler: NewLeaderboardHandler(deps),
		achievementHandler: NewAchievementHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/profile", MetricsMiddleware(s.profileHandler.HandleProfile, "profile"))
	mux.HandleFunc("/profile/points", MetricsMiddleware(s.profileHandler.HandleAddPoints, "profile_points"))
	mux.HandleFunc("/avatars", MetricsMiddleware(s.profileHandler.HandleAvatars, "avatars"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/emoji/attempts", MetricsMiddleware(s.gameHandler.HandleEmojiAttempt, "emoji_attempts"))
	mux.HandleFunc("/emoji/games", MetricsMiddleware(s.gameHandler.HandleEmojiGame, "emoji_games"))
	mux.HandleFunc("/trivia/results", MetricsMiddleware(s.gameHandler.HandleTriviaResult, "trivia_results"))
	mux.HandleFunc("/leaderboard", MetricsMiddleware(s.leaderboardHandler.HandleGetLeaderboard, "leaderboard"))
	mux.HandleFunc("/achievements", MetricsMiddleware(s.achievementHandler.HandleList, "achievements"))
	mux.HandleFunc("/achievements/check", MetricsMiddleware(s.achievementHandler.HandleCheck, "achievements_check"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// decodeBody strictly decodes a single JSON object into v.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("empty body")
		}
		return fmt.Errorf("invalid json: %w", err)
	}
	if dec.More() {
		return errors.New("unexpected data after json object")
	}
	return nil
}
