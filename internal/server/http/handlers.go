package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"hnefatafl/internal/hnefatafl"
	"hnefatafl/internal/logging"
	"hnefatafl/internal/server/game"
)

type Handler struct {
	games *game.Manager
	log   *zap.SugaredLogger
}

func NewHandler(games *game.Manager, log *zap.SugaredLogger) *Handler {
	return &Handler{games: games, log: logging.OrNop(log)}
}

func (h *Handler) handleNewGame(w http.ResponseWriter, r *http.Request) {
	g, err := h.games.NewGame(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, g.View())
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	g, err := h.games.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, g.View())
}

func (h *Handler) handlePlay(w http.ResponseWriter, r *http.Request) {
	var req PlayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "bad json"})
		return
	}
	play, ok := req.play()
	if !ok {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "from and to are required"})
		return
	}

	id := chi.URLParam(r, "id")
	res, err := h.games.Play(r.Context(), id, play)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.log.Infow("play", "game_id", id, "play", play.String(), "update", res.Update.String())
	writeJSON(w, http.StatusOK, playResponse(res))
}

func (h *Handler) handleBotPlay(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	res, err := h.games.BotPlay(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.log.Infow("bot play", "game_id", id, "play", res.Play.String(), "update", res.Update.String())
	writeJSON(w, http.StatusOK, playResponse(res))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, game.ErrGameNotFound):
		return http.StatusNotFound
	// ErrGameOver wraps ErrIllegalPlay, so it must be checked first
	case errors.Is(err, hnefatafl.ErrGameOver), errors.Is(err, game.ErrNoPlay):
		return http.StatusConflict
	case errors.Is(err, hnefatafl.ErrIllegalPlay):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		h.log.Errorw("request failed", "error", err)
		msg = "internal error"
	}
	writeJSON(w, status, ErrorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
