package api

import (
	"context"
	"errors"
	"net/http"

	service "github.com/okian/swiftrivia/internal/app"
	"github.com/okian/swiftrivia/internal/domain/model"
	"github.com/okian/swiftrivia/internal/domain/profile"
)

// ProfileDependencies defines the interface for profile operations.
type ProfileDependencies interface {
	CreateProfile(ctx context.Context, username, avatar string) (model.UserProfile, error)
	Profile(ctx context.Context) (model.UserProfile, bool)
	ClearProfile(ctx context.Context)
	AddPoints(ctx context.Context, points int) (model.UserProfile, error)
}

// ProfileHandler handles profile requests.
type ProfileHandler struct {
	deps ProfileDependencies
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(deps ProfileDependencies) *ProfileHandler {
	return &ProfileHandler{deps: deps}
}

type createProfileRequest struct {
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

type pointsRequest struct {
	Points *int `json:"points"`
}

type avatarsResponse struct {
	Avatars []string `json:"avatars"`
}

// HandleProfile handles GET, POST and DELETE /profile.
func (h *ProfileHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.get(w, r)
	case http.MethodPost:
		h.create(w, r)
	case http.MethodDelete:
		h.deps.ClearProfile(r.Context())
		w.WriteHeader(http.StatusNoContent)
	default:
		http.NotFound(w, r)
	}
}

func (h *ProfileHandler) get(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_profile"
	p, ok := h.deps.Profile(r.Context())
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", NewKind(op, ErrNotFound))
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProfileHandler) create(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_profile"
	var req createProfileRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	p, err := h.deps.CreateProfile(r.Context(), req.Username, req.Avatar)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// HandleAddPoints handles POST /profile/points.
func (h *ProfileHandler) HandleAddPoints(w http.ResponseWriter, r *http.Request) {
	const op = "api.add_points"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req pointsRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if req.Points == nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, errors.New("missing points")))
		return
	}
	p, err := h.deps.AddPoints(r.Context(), *req.Points)
	switch {
	case errors.Is(err, service.ErrInvalidPoints):
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
	case errors.Is(err, service.ErrNoProfile):
		writeError(w, http.StatusNotFound, "not_found", WrapKind(op, ErrNotFound, err))
	case err != nil:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	default:
		writeJSON(w, http.StatusOK, p)
	}
}

// HandleAvatars handles GET /avatars.
func (h *ProfileHandler) HandleAvatars(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, avatarsResponse{Avatars: profile.Avatars()})
}
