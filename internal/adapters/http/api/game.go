package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/swiftrivia/internal/domain/guess"
	"github.com/okian/swiftrivia/internal/domain/model"
	"github.com/okian/swiftrivia/internal/domain/scoring"
	"github.com/okian/swiftrivia/internal/domain/types"
)

// GameDependencies defines the interface for recording played games.
type GameDependencies interface {
	RecordEmojiAttempt(ctx context.Context, correct bool, streakAfter int) types.Outcome
	CompleteEmojiGame(ctx context.Context, sessionID string, score, totalQuestions int) types.Outcome
	RecordTriviaResult(ctx context.Context, sessionID string, r model.TriviaResult, era string) types.Outcome
	ScoreAnswers(answers []scoring.Answer, timeSpent int) model.TriviaResult
}

// GameHandler handles emoji and trivia submissions.
type GameHandler struct {
	deps GameDependencies
}

// NewGameHandler creates a new game handler.
func NewGameHandler(deps GameDependencies) *GameHandler {
	return &GameHandler{deps: deps}
}

// emojiAttemptRequest carries either a verdict or the raw guess to match.
type emojiAttemptRequest struct {
	Correct     *bool  `json:"correct"`
	Guess       string `json:"guess"`
	Answer      string `json:"answer"`
	StreakAfter int    `json:"streak_after"`
}

func (e emojiAttemptRequest) validate() error {
	if e.Correct == nil && strings.TrimSpace(e.Answer) == "" {
		return errors.New("either correct or guess and answer are required")
	}
	if e.StreakAfter < 0 {
		return errors.New("streak_after must not be negative")
	}
	return nil
}

type emojiAttemptResponse struct {
	Correct bool `json:"correct"`
	types.Outcome
}

type emojiGameRequest struct {
	SessionID      string `json:"session_id"`
	Score          int    `json:"score"`
	TotalQuestions int    `json:"total_questions"`
}

func (e emojiGameRequest) validate() error {
	switch {
	case e.Score < 0:
		return errors.New("score must not be negative")
	case e.TotalQuestions < 0:
		return errors.New("total_questions must not be negative")
	}
	return nil
}

// triviaResultRequest carries either a tallied result or the raw answers.
type triviaResultRequest struct {
	SessionID      string           `json:"session_id"`
	Era            string           `json:"era"`
	Score          int              `json:"score"`
	TotalQuestions int              `json:"total_questions"`
	CorrectAnswers int              `json:"correct_answers"`
	TimeSpent      int              `json:"time_spent"`
	Answers        []scoring.Answer `json:"answers"`
}

func (t triviaResultRequest) validate() error {
	switch {
	case t.Score < 0:
		return errors.New("score must not be negative")
	case t.TotalQuestions < 0:
		return errors.New("total_questions must not be negative")
	case len(t.Answers) == 0 && (t.CorrectAnswers < 0 || t.CorrectAnswers > t.TotalQuestions):
		return errors.New("correct_answers must be between 0 and total_questions")
	case t.TimeSpent < 0:
		return errors.New("time_spent must not be negative")
	}
	return nil
}

// HandleEmojiAttempt handles POST /emoji/attempts.
func (h *GameHandler) HandleEmojiAttempt(w http.ResponseWriter, r *http.Request) {
	const op = "api.emoji_attempt"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req emojiAttemptRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	var correct bool
	if req.Correct != nil {
		correct = *req.Correct
	} else {
		correct = guess.Match(req.Guess, req.Answer)
	}
	streak := req.StreakAfter
	if !correct {
		streak = 0
	}
	out := h.deps.RecordEmojiAttempt(r.Context(), correct, streak)
	writeJSON(w, http.StatusOK, emojiAttemptResponse{Correct: correct, Outcome: out})
}

// HandleEmojiGame handles POST /emoji/games.
func (h *GameHandler) HandleEmojiGame(w http.ResponseWriter, r *http.Request) {
	const op = "api.emoji_game"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req emojiGameRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	writeJSON(w, http.StatusOK, h.deps.CompleteEmojiGame(r.Context(), req.SessionID, req.Score, req.TotalQuestions))
}

// HandleTriviaResult handles POST /trivia/results.
func (h *GameHandler) HandleTriviaResult(w http.ResponseWriter, r *http.Request) {
	const op = "api.trivia_result"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req triviaResultRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	result := model.TriviaResult{
		Score:          req.Score,
		TotalQuestions: req.TotalQuestions,
		CorrectAnswers: req.CorrectAnswers,
		TimeSpent:      req.TimeSpent,
	}
	if len(req.Answers) > 0 {
		result = h.deps.ScoreAnswers(req.Answers, req.TimeSpent)
	}
	writeJSON(w, http.StatusOK, h.deps.RecordTriviaResult(r.Context(), req.SessionID, result, strings.TrimSpace(req.Era)))
}
