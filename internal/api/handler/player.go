package handler

import (
	"net/http"
	"net/url"

	"github.com/gorilla/mux"

	"github.com/mcoot/rpslsgame/internal/api/request"
	"github.com/mcoot/rpslsgame/internal/api/response"
	"github.com/mcoot/rpslsgame/internal/services/player"
)

// PlayerHandler handles player registry endpoints
type PlayerHandler struct {
	players player.ServiceInterface
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(players player.ServiceInterface) *PlayerHandler {
	return &PlayerHandler{players: players}
}

// Create handles POST /api/v1/players
func (h *PlayerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreatePlayerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	p, err := h.players.Create(r.Context(), req.Name)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.Created(w, "/api/v1/players/"+url.PathEscape(p.Name), response.PlayerFromModel(p))
}

// List handles GET /api/v1/players
func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	players, err := h.players.List(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayersFromModel(players))
}

// Get handles GET /api/v1/players/{name}
func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.players.Lookup(r.Context(), mux.Vars(r)["name"])
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(p))
}

// Delete handles DELETE /api/v1/players/{name}
func (h *PlayerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.players.Delete(r.Context(), mux.Vars(r)["name"]); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}
