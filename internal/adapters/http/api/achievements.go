package api

import (
	"context"
	"net/http"

	"github.com/okian/swiftrivia/internal/domain/types"
)

// AchievementDependencies defines the interface for achievement operations.
type AchievementDependencies interface {
	Achievements(ctx context.Context) []types.AchievementStatus
	CheckAchievements(ctx context.Context) []string
}

// AchievementHandler handles achievement requests.
type AchievementHandler struct {
	deps AchievementDependencies
}

// NewAchievementHandler creates a new achievement handler.
func NewAchievementHandler(deps AchievementDependencies) *AchievementHandler {
	return &AchievementHandler{deps: deps}
}

type checkResponse struct {
	Unlocked []string `json:"unlocked"`
}

// HandleList handles GET /achievements.
func (h *AchievementHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Achievements(r.Context()))
}

// HandleCheck handles POST /achievements/check.
func (h *AchievementHandler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, checkResponse{Unlocked: h.deps.CheckAchievements(r.Context())})
}
