package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/rpslsgame/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Error codes
const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeInvalidCommand      = "INVALID_COMMAND"
	CodeInvalidPlayerName   = "INVALID_PLAYER_NAME"
	CodeInvalidMove         = "INVALID_MOVE"
	CodeInsufficientPlayers = "INSUFFICIENT_PLAYERS"
	CodePlayerNotFound      = "PLAYER_NOT_FOUND"
	CodeMoveNotFound        = "MOVE_NOT_FOUND"
	CodeGameNotFound        = "GAME_NOT_FOUND"
	CodeNoActiveRound       = "NO_ACTIVE_ROUND"
	CodePlayerExists        = "PLAYER_EXISTS"
	CodeMoveExists          = "MOVE_EXISTS"
	CodePlayerInRound       = "PLAYER_IN_ROUND"
	CodeMoveInRound         = "MOVE_IN_ROUND"
	CodeAlreadyMoved        = "ALREADY_MOVED"
	CodeRoundChanged        = "ROUND_CHANGED"
	CodeBadRequest          = "BAD_REQUEST"
	CodeNotFound            = "NOT_FOUND"
	CodeConflict            = "CONFLICT"
	CodeInternalError       = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// sentinelCodes maps specific model errors to their codes
var sentinelCodes = []struct {
	err  error
	code string
}{
	{model.ErrInvalidCommand, CodeInvalidCommand},
	{model.ErrInvalidPlayerName, CodeInvalidPlayerName},
	{model.ErrInvalidMove, CodeInvalidMove},
	{model.ErrInsufficientPlayers, CodeInsufficientPlayers},
	{model.ErrPlayerNotFound, CodePlayerNotFound},
	{model.ErrMoveNotFound, CodeMoveNotFound},
	{model.ErrGameNotFound, CodeGameNotFound},
	{model.ErrNoActiveRound, CodeNoActiveRound},
	{model.ErrPlayerExists, CodePlayerExists},
	{model.ErrMoveExists, CodeMoveExists},
	{model.ErrPlayerInRound, CodePlayerInRound},
	{model.ErrMoveInRound, CodeMoveInRound},
	{model.ErrAlreadyMoved, CodeAlreadyMoved},
	{model.ErrRoundChanged, CodeRoundChanged},
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// Status returns the HTTP status an error maps to
func Status(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError. The status comes from the
// error kind; the code from the specific sentinel when there is one.
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	status, code := statusForKind(model.Kind(err))
	if status == http.StatusInternalServerError {
		return &httpError{status, APIError{CodeInternalError, "Internal server error"}}
	}

	for _, sc := range sentinelCodes {
		if errors.Is(err, sc.err) {
			code = sc.code
			break
		}
	}
	return &httpError{status, APIError{code, err.Error()}}
}

func statusForKind(kind error) (int, string) {
	switch kind {
	case model.ErrBadRequest:
		return http.StatusBadRequest, CodeBadRequest
	case model.ErrNotFound:
		return http.StatusNotFound, CodeNotFound
	case model.ErrConflict:
		return http.StatusConflict, CodeConflict
	default:
		return http.StatusInternalServerError, CodeInternalError
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
