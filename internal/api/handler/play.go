package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mcoot/rpslsgame/internal/api/request"
	"github.com/mcoot/rpslsgame/internal/api/response"
	"github.com/mcoot/rpslsgame/internal/model"
	"github.com/mcoot/rpslsgame/internal/services/game"
)

// PlayHandler handles round and archive endpoints
type PlayHandler struct {
	games game.ControllerInterface
}

// NewPlayHandler creates a new play handler
func NewPlayHandler(games game.ControllerInterface) *PlayHandler {
	return &PlayHandler{games: games}
}

// Play handles POST /api/v1/play
func (h *PlayHandler) Play(w http.ResponseWriter, r *http.Request) {
	var req request.PlayRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.games.SubmitOrResolve(r.Context(), req.Command)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayResponse{Result: result})
}

// ListGames handles GET /api/v1/play
func (h *PlayHandler) ListGames(w http.ResponseWriter, r *http.Request) {
	games, err := h.games.ListGames(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GamesFromModel(games))
}

// GetGame handles GET /api/v1/play/{id}
func (h *PlayHandler) GetGame(w http.ResponseWriter, r *http.Request) {
	id, ok := gameID(w, r)
	if !ok {
		return
	}

	g, err := h.games.GetGame(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(g))
}

// DeleteGame handles DELETE /api/v1/play/{id}
func (h *PlayHandler) DeleteGame(w http.ResponseWriter, r *http.Request) {
	id, ok := gameID(w, r)
	if !ok {
		return
	}

	if err := h.games.DeleteGame(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Round handles GET /api/v1/round
func (h *PlayHandler) Round(w http.ResponseWriter, r *http.Request) {
	round, err := h.games.CurrentRound(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoundFromModel(round))
}

// ResetRound handles DELETE /api/v1/round
func (h *PlayHandler) ResetRound(w http.ResponseWriter, r *http.Request) {
	if err := h.games.ResetRound(r.Context()); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

func gameID(w http.ResponseWriter, r *http.Request) (model.GameID, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id < 0 {
		WriteError(w, NewInvalidRequestError("game id must be a non-negative integer"))
		return 0, false
	}
	return model.GameID(id), true
}
