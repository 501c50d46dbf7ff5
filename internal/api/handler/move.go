package handler

import (
	"net/http"
	"net/url"

	"github.com/gorilla/mux"

	"github.com/mcoot/rpslsgame/internal/api/request"
	"github.com/mcoot/rpslsgame/internal/api/response"
	"github.com/mcoot/rpslsgame/internal/services/move"
)

// MoveHandler handles move registry endpoints
type MoveHandler struct {
	moves move.ServiceInterface
}

// NewMoveHandler creates a new move handler
func NewMoveHandler(moves move.ServiceInterface) *MoveHandler {
	return &MoveHandler{moves: moves}
}

// Create handles POST /api/v1/moves
func (h *MoveHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateMoveRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	m, err := h.moves.Create(r.Context(), req.Name)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.Created(w, "/api/v1/moves/"+url.PathEscape(m.Name), response.MoveFromModel(m))
}

// List handles GET /api/v1/moves
func (h *MoveHandler) List(w http.ResponseWriter, r *http.Request) {
	moves, err := h.moves.List(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MovesFromModel(moves))
}

// Get handles GET /api/v1/moves/{name}
func (h *MoveHandler) Get(w http.ResponseWriter, r *http.Request) {
	m, err := h.moves.Lookup(r.Context(), mux.Vars(r)["name"])
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MoveFromModel(m))
}

// Delete handles DELETE /api/v1/moves/{name}
func (h *MoveHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.moves.Delete(r.Context(), mux.Vars(r)["name"]); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}
